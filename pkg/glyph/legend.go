package glyph

// Legend is one bucket of the calendar day coloring.
type Legend struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Label string `json:"label"`
	// Min is the lowest habit progress, in percent, that falls in this bucket.
	Min float64 `json:"min"`
}

var (
	// NoEntryLegend colors days without an entry.
	NoEntryLegend = Legend{Name: "none", Color: "#374151", Label: "no entry", Min: -1}

	legend = []Legend{
		{Name: "green", Color: "#4CAF50", Label: string(Excellent), Min: 100},
		{Name: "light-green", Color: "#8BC34A", Label: string(Good), Min: 80},
		{Name: "yellow", Color: "#FFC107", Label: string(Neutral), Min: 60},
		{Name: "orange", Color: "#FF9800", Label: string(Bad), Min: 40},
		{Name: "red", Color: "#F44336", Label: string(Terrible), Min: 0},
	}
)

// DefaultLegend returns the habit buckets from fullest to emptiest, followed
// by the no-entry bucket.
func DefaultLegend() []Legend {
	out := make([]Legend, 0, len(legend)+1)
	out = append(out, legend...)
	return append(out, NoEntryLegend)
}

// LegendForProgress picks the bucket for a day that has an entry.
func LegendForProgress(progress float64) Legend {
	if progress >= 100 {
		return legend[0]
	}
	for _, l := range legend[1:] {
		if progress >= l.Min {
			return l
		}
	}
	return legend[len(legend)-1]
}
