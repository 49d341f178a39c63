package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildGridAlwaysFortyTwo(t *testing.T) {
	for year := 2019; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := BuildGrid(month, year, Date{})
			if len(cells) != GridCells {
				t.Fatalf("%s %d: expected %d cells, got %d", month, year, GridCells, len(cells))
			}

			lead, body, trail := partition(cells)
			if lead+body+trail != GridCells {
				t.Fatalf("%s %d: partition %d+%d+%d does not cover the grid", month, year, lead, body, trail)
			}
			if body != DaysIn(month, year) {
				t.Fatalf("%s %d: expected %d month days, got %d", month, year, DaysIn(month, year), body)
			}
			if want := int(NewDate(year, month, 1).Weekday()); lead != want {
				t.Fatalf("%s %d: expected %d leading cells, got %d", month, year, want, lead)
			}
		}
	}
}

func partition(cells []DayCell) (lead, body, trail int) {
	for _, c := range cells {
		switch {
		case c.IsCurrentMonth:
			body++
		case body == 0:
			lead++
		default:
			trail++
		}
	}
	return lead, body, trail
}

func TestBuildGridFebruaryStartingSunday(t *testing.T) {
	// February 2015 has 28 days and starts on a Sunday.
	cells := BuildGrid(time.February, 2015, Date{})
	lead, body, trail := partition(cells)
	if lead != 0 || body != 28 || trail != 14 {
		t.Fatalf("expected 0/28/14, got %d/%d/%d", lead, body, trail)
	}
	if got := cells[0].Date; got != NewDate(2015, time.February, 1) {
		t.Fatalf("expected grid to start on Feb 1, got %s", got)
	}
	if got := cells[41].Date; got != NewDate(2015, time.March, 14) {
		t.Fatalf("expected grid to end on Mar 14, got %s", got)
	}
}

func TestBuildGridPaddingDates(t *testing.T) {
	// March 2024 starts on a Friday.
	cells := BuildGrid(time.March, 2024, Date{})
	if got := cells[0].Date; got != NewDate(2024, time.February, 25) {
		t.Fatalf("expected first cell Feb 25, got %s", got)
	}
	if got := cells[5].Date; got != NewDate(2024, time.March, 1) {
		t.Fatalf("expected sixth cell Mar 1, got %s", got)
	}
	if got := cells[41].Date; got != NewDate(2024, time.April, 6) {
		t.Fatalf("expected last cell Apr 6, got %s", got)
	}
	for i := 1; i < len(cells); i++ {
		if cells[i].Date != cells[i-1].Date.AddDays(1) {
			t.Fatalf("cells %d and %d are not consecutive: %s %s", i-1, i, cells[i-1].Date, cells[i].Date)
		}
	}
}

func TestBuildGridToday(t *testing.T) {
	tests := map[string]struct {
		today Date
		want  int
	}{
		"inside month":      {today: NewDate(2024, time.March, 15), want: 1},
		"padding day":       {today: NewDate(2024, time.February, 26), want: 0},
		"other month":       {today: NewDate(2023, time.March, 15), want: 0},
		"no reference date": {today: Date{}, want: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cells := BuildGrid(time.March, 2024, tc.today)
			got := 0
			for _, c := range cells {
				if c.IsToday {
					got++
					if c.Date != tc.today {
						t.Fatalf("today flag on %s, want %s", c.Date, tc.today)
					}
				}
			}
			if got != tc.want {
				t.Fatalf("expected %d today cells, got %d", tc.want, got)
			}
		})
	}
}

func TestBuildGridIdempotent(t *testing.T) {
	today := NewDate(2024, time.March, 15)
	a := BuildGrid(time.March, 2024, today)
	b := BuildGrid(time.March, 2024, today)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical grids")
	}
}

func TestCacheMatchesBuildGrid(t *testing.T) {
	c, err := NewCache(2)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	today := NewDate(2024, time.March, 15)
	first := c.Grid(time.March, 2024, today)
	if !reflect.DeepEqual(first, BuildGrid(time.March, 2024, today)) {
		t.Fatalf("cached grid differs from BuildGrid")
	}

	// A different today on the cached layout must not leak the old flag.
	second := c.Grid(time.March, 2024, NewDate(2024, time.March, 1))
	for _, cell := range second {
		if cell.IsToday && cell.Date != NewDate(2024, time.March, 1) {
			t.Fatalf("stale today flag on %s", cell.Date)
		}
	}
	if !first[19].IsToday {
		t.Fatalf("first result was mutated by the second call")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-01"` {
		t.Fatalf("unexpected json %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON([]byte(`"2024-3-1"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("expected %s, got %s", d, back)
	}
	if err := back.UnmarshalJSON([]byte(`""`)); err != nil || !back.IsZero() {
		t.Fatalf("expected empty string to decode as zero date, got %v %v", back, err)
	}
}
