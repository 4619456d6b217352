// Package mcptools exposes perk grid rendering and validation as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"perkgrid/internal/dom"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/fetch"
	"perkgrid/internal/render"
	"perkgrid/internal/tui/view"
	"perkgrid/internal/widget"
	"perkgrid/pkg/logging"
)

const (
	subsystem = "MCP"

	ToolRender   = "perk_grid_render"
	ToolValidate = "perk_grid_validate"
	ToolList     = "perk_grid_list"

	defaultTextWidth = 100
)

// Catalog lists the event ids that can be rendered by id.
type Catalog interface {
	IDs() []string
	Get(id string) (eventdata.EventData, bool)
}

// Tools implements the perk grid MCP tools.
type Tools struct {
	fetcher fetch.Fetcher
	catalog Catalog
}

// NewTools creates the tools. fetcher loads grids requested by event id;
// catalog backs perk_grid_list and may be nil.
func NewTools(fetcher fetch.Fetcher, catalog Catalog) *Tools {
	return &Tools{fetcher: fetcher, catalog: catalog}
}

// GetTools returns the tool definitions.
func (t *Tools) GetTools() []mcp.Tool {
	return []mcp.Tool{
		t.renderTool(),
		t.validateTool(),
		t.listTool(),
	}
}

func (t *Tools) renderTool() mcp.Tool {
	return mcp.NewTool(ToolRender,
		mcp.WithDescription("Render a perk grid as HTML or as a text table. Give either event_id or data."),
		mcp.WithString("event_id",
			mcp.Description("Event id to fetch the perk grid for"),
		),
		mcp.WithString("data",
			mcp.Description("Event data as JSON, used instead of fetching"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: html)"),
			mcp.Enum("html", "text"),
		),
		mcp.WithString("display",
			mcp.Description("Grid display (default: responsive)"),
			mcp.Enum(string(render.DisplayGrid), string(render.DisplayList), string(render.DisplayResponsive)),
		),
		mcp.WithString("grid_title",
			mcp.Description("Title shown in the grid's corner cell"),
		),
		mcp.WithNumber("width",
			mcp.Description("Line width of the text format in columns (default: 100)"),
		),
	)
}

func (t *Tools) validateTool() mcp.Tool {
	return mcp.NewTool(ToolValidate,
		mcp.WithDescription("Check that a JSON document is valid perk grid event data"),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description("Event data as JSON"),
		),
	)
}

func (t *Tools) listTool() mcp.Tool {
	return mcp.NewTool(ToolList,
		mcp.WithDescription("List the perk grids available by event id"),
	)
}

// ServerTools pairs every tool with its handler.
func (t *Tools) ServerTools() []server.ServerTool {
	var out []server.ServerTool
	for _, tool := range t.GetTools() {
		out = append(out, server.ServerTool{Tool: tool, Handler: t.handlerFor(tool.Name)})
	}
	return out
}

func (t *Tools) handlerFor(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var result *mcp.CallToolResult
		var err error

		switch name {
		case ToolRender:
			result, err = t.HandleRender(ctx, req)
		case ToolValidate:
			result, err = t.HandleValidate(ctx, req)
		case ToolList:
			result, err = t.HandleList(ctx, req)
		default:
			err = fmt.Errorf("unknown perk grid tool: %s", name)
		}

		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}
		return result, nil
	}
}

// NewServer creates an MCP server with the perk grid tools registered.
func NewServer(t *Tools, version string) *server.MCPServer {
	s := server.NewMCPServer("perkgrid", version, server.WithToolCapabilities(false))
	s.AddTools(t.ServerTools()...)
	return s
}

// HandleRender handles perk_grid_render.
func (t *Tools) HandleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, errResult := t.loadData(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	attrs := widget.DefaultAttributes()
	if d := req.GetString("display", ""); d != "" {
		display, err := render.ParseDisplay(d)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		attrs.Display = display
	}
	attrs.GridTitle = req.GetString("grid_title", "")

	format := req.GetString("format", "html")
	if format != "html" && format != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'html' or 'text'", format)), nil
	}

	mount := dom.NewElement(widget.TagName, "")
	dom.NewDocument().Body().Append(mount)
	r, err := render.Render(mount, data, attrs.RenderOptions(), render.Env{})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if format == "text" {
		width := req.GetInt("width", defaultTextWidth)
		if width <= 0 {
			width = defaultTextWidth
		}
		return mcp.NewToolResultText(view.RenderMount(mount, width, "")), nil
	}
	return mcp.NewToolResultText(mount.InnerHTML()), nil
}

// loadData decodes the data argument or fetches event_id. A non-nil result
// reports a problem to the caller.
func (t *Tools) loadData(ctx context.Context, req mcp.CallToolRequest) (eventdata.EventData, *mcp.CallToolResult) {
	if raw := req.GetString("data", ""); raw != "" {
		data, err := eventdata.Decode([]byte(raw))
		if err != nil {
			return eventdata.EventData{}, mcp.NewToolResultError(fmt.Sprintf("Invalid event data: %v", err))
		}
		return data, nil
	}

	eventID := req.GetString("event_id", "")
	if eventID == "" {
		return eventdata.EventData{}, mcp.NewToolResultError("either event_id or data is required")
	}
	if t.fetcher == nil {
		return eventdata.EventData{}, mcp.NewToolResultError("fetching by event_id is not configured")
	}
	data, err := t.fetcher.Fetch(ctx, eventID)
	if err != nil {
		logging.Error(subsystem, err, "fetching perk grid %s", eventID)
		return eventdata.EventData{}, mcp.NewToolResultError(fmt.Sprintf("Failed to load perk grid %s: %v", eventID, err))
	}
	return data, nil
}

type validationResult struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Packages int    `json:"packages"`
	Perks    int    `json:"perks"`
}

// HandleValidate handles perk_grid_validate. Invalid data is a successful
// call whose result says why; only a missing argument is an error.
func (t *Tools) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	var out validationResult
	data, err := eventdata.Decode([]byte(raw))
	var typeErr *eventdata.TypeError
	switch {
	case err == nil:
		out = validationResult{
			Valid:    true,
			ID:       data.ID,
			Name:     data.Name,
			Packages: len(data.Packages),
			Perks:    len(data.Perks),
		}
	case errors.As(err, &typeErr):
		out = validationResult{Error: typeErr.Error()}
	default:
		return nil, err
	}

	return jsonResult(out)
}

type listEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Packages int    `json:"packages"`
	Perks    int    `json:"perks"`
}

// HandleList handles perk_grid_list.
func (t *Tools) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.catalog == nil {
		return mcp.NewToolResultText("No perk grids available"), nil
	}

	entries := []listEntry{}
	for _, id := range t.catalog.IDs() {
		data, ok := t.catalog.Get(id)
		if !ok {
			continue
		}
		entries = append(entries, listEntry{ID: id, Name: data.Name, Packages: len(data.Packages), Perks: len(data.Perks)})
	}
	return jsonResult(entries)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
