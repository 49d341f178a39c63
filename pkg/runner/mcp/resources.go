package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerGoalsResource(srv, svc)
	registerEntryTemplate(srv, svc)
	registerMonthTemplate(srv, svc)
}

func registerGoalsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"daylog://goals",
		"Goals",
		mcp.WithResourceDescription("All goals with progress and the goal summary."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		goals, err := svc.Goals(ctx, true)
		if err != nil {
			return nil, err
		}
		summary, err := svc.GoalSummary(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"goals":   goals,
			"count":   len(goals),
			"summary": summary,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daylog://entries/{date}",
		"Daily Entry",
		mcp.WithTemplateDescription("The journal entry for a YYYY-MM-DD date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request, "date")
		if date == "" {
			return nil, fmt.Errorf("entry date is required")
		}

		dto, err := svc.Entry(ctx, date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"entry": dto})
	})
}

func registerMonthTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daylog://calendar/{year}/{month}",
		"Month Calendar",
		mcp.WithTemplateDescription("Six-week calendar grid and overview for a month."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		year, err := strconv.Atoi(templateArg(request, "year"))
		if err != nil {
			return nil, fmt.Errorf("invalid year: %w", err)
		}
		month, err := strconv.Atoi(templateArg(request, "month"))
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid month %q", templateArg(request, "month"))
		}

		view, err := svc.Month(ctx, year, time.Month(month))
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

// templateArg reads a URI template variable, which the server may deliver
// as a string or a single-element list.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
