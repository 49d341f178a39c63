package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/journal"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSearchJournalTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerSaveEntryTool(srv, svc)
	registerMonthCalendarTool(srv, svc)
	registerListGoalsTool(srv, svc)
	registerAddGoalTool(srv, svc)
	registerUpdateGoalProgressTool(srv, svc)
	registerCompleteGoalTool(srv, svc)
	registerGoalSummaryTool(srv, svc)
}

func registerSearchJournalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_journal",
		mcp.WithDescription("Search daily entries and goals by case-insensitive substring."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for in reflections, gratitude notes, goal titles and descriptions."),
		),
		mcp.WithString("kinds",
			mcp.Description("Which records to search."),
			mcp.Enum("all", "entries", "goals"),
		),
		mcp.WithString("range",
			mcp.Description("Only include records after the start of this period."),
			mcp.Enum("all", "week", "month", "year"),
		),
		mcp.WithString("sort",
			mcp.Description("Result ordering."),
			mcp.Enum("relevance", "date", "mood"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Query string `json:"query"`
			Kinds string `json:"kinds"`
			Range string `json:"range"`
			Sort  string `json:"sort"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.Search(ctx, SearchOptions{
			Query:  args.Query,
			Kinds:  args.Kinds,
			Range:  args.Range,
			SortBy: args.Sort,
			Limit:  limit,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   args.Query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch the journal entry for a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD form."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Entry(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSaveEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_entry",
		mcp.WithDescription("Create or update the journal entry for a date. Omitted fields keep their stored value."),
		mcp.WithString("date",
			mcp.Description("Date in YYYY-MM-DD form; defaults to today."),
		),
		mcp.WithString("mood",
			mcp.Description("Mood for the day."),
			mcp.Enum("excellent", "good", "neutral", "bad", "terrible"),
		),
		mcp.WithString("reflection",
			mcp.Description("Free-text reflection."),
		),
		mcp.WithArray("gratitude",
			mcp.Description("Up to three gratitude notes."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithObject("habits",
			mcp.Description("Habit name to done flag."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date       string          `json:"date"`
			Mood       *string         `json:"mood"`
			Reflection *string         `json:"reflection"`
			Gratitude  []string        `json:"gratitude"`
			Habits     map[string]bool `json:"habits"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SaveEntry(ctx, SaveEntryOptions{
			Date:       args.Date,
			Mood:       args.Mood,
			Reflection: args.Reflection,
			Gratitude:  args.Gratitude,
			Habits:     args.Habits,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMonthCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_calendar",
		mcp.WithDescription("Return the six-week calendar grid for a month with each day's habit color, mood and the month overview."),
		mcp.WithNumber("year",
			mcp.Description("Four digit year; defaults to the current year."),
		),
		mcp.WithNumber("month",
			mcp.Description("Month number 1-12; defaults to the current month."),
			mcp.Min(1),
			mcp.Max(12),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := svc.now()
		year := request.GetInt("year", now.Year())
		month := request.GetInt("month", int(now.Month()))

		view, err := svc.Month(ctx, year, time.Month(month))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerListGoalsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_goals",
		mcp.WithDescription("List goals with their progress."),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed goals (default true)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goals, err := svc.Goals(ctx, request.GetBool("include_completed", true))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"goals": goals,
			"count": len(goals),
		})
	})
}

func registerAddGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_goal",
		mcp.WithDescription("Create a new goal."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short goal title."),
		),
		mcp.WithString("description",
			mcp.Description("Longer description."),
		),
		mcp.WithString("category",
			mcp.Description("Goal category."),
			mcp.Enum("personal", "health", "career", "learning", "financial"),
		),
		mcp.WithString("priority",
			mcp.Description("Goal priority."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("deadline",
			mcp.Description("Optional deadline in YYYY-MM-DD form."),
		),
		mcp.WithNumber("target",
			mcp.Description("Optional numeric target."),
			mcp.Min(0),
		),
		mcp.WithString("unit",
			mcp.Description("Unit for the target, such as books or km."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string           `json:"title"`
			Description string           `json:"description"`
			Category    string           `json:"category"`
			Priority    string           `json:"priority"`
			Deadline    string           `json:"deadline"`
			Target      journal.Quantity `json:"target"`
			Unit        string           `json:"unit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		in := app.GoalInput{
			Title:       args.Title,
			Description: args.Description,
			Category:    args.Category,
			Priority:    args.Priority,
			Target:      args.Target,
			Unit:        args.Unit,
		}
		if strings.TrimSpace(args.Deadline) != "" {
			d, err := calendar.ParseDate(args.Deadline)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid deadline: %v", err)), nil
			}
			in.Deadline = &d
		}

		dto, err := svc.AddGoal(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateGoalProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_goal_progress",
		mcp.WithDescription("Record the current value of a goal."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("Current value toward the target."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, err := request.RequireFloat("value")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UpdateGoalProgress(ctx, id, value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_goal",
		mcp.WithDescription("Mark a goal as completed, or reopen it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Completed state to set (default true)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.CompleteGoal(ctx, id, request.GetBool("completed", true))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGoalSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"goal_summary",
		mcp.WithDescription("Aggregate goal counts by category and priority with the average progress."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.GoalSummary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
