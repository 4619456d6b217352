package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/demo"
	"perkgrid/internal/eventdata"
)

func newTools(t *testing.T) *Tools {
	t.Helper()
	store, err := demo.NewStore("")
	require.NoError(t, err)
	return NewTools(store, store)
}

func request(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected TextContent")
	return text.Text
}

func sampleJSON(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(eventdata.Sample())
	require.NoError(t, err)
	return string(body)
}

func TestGetTools(t *testing.T) {
	tools := newTools(t).GetTools()

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
		assert.NotEmpty(t, tool.Description)
	}
	assert.True(t, names[ToolRender])
	assert.True(t, names[ToolValidate])
	assert.True(t, names[ToolList])
	assert.Len(t, newTools(t).ServerTools(), 3)
}

func TestHandleRender_HTMLByEventID(t *testing.T) {
	at := newTools(t)
	result, err := at.HandleRender(context.Background(), request(ToolRender, map[string]interface{}{
		"event_id":   eventdata.SampleID,
		"grid_title": "Sponsors",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	html := resultText(t, result)
	assert.True(t, strings.HasPrefix(html, "<div"))
	assert.Contains(t, html, cssclass.Grid)
	assert.Contains(t, html, cssclass.DisplayAsGrid, "no width source keeps grid display")
	assert.Contains(t, html, "Sponsors")
	assert.Contains(t, html, "Diamond")
}

func TestHandleRender_TextFromData(t *testing.T) {
	at := NewTools(nil, nil)
	result, err := at.HandleRender(context.Background(), request(ToolRender, map[string]interface{}{
		"data":    sampleJSON(t),
		"format":  "text",
		"display": "list",
		"width":   float64(40),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Silver")
	assert.Contains(t, text, "$24")
	assert.NotContains(t, text, "<div")
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tools   *Tools
		args    map[string]interface{}
		message string
	}{
		{
			name:    "no source",
			tools:   newTools(t),
			args:    map[string]interface{}{},
			message: "either event_id or data is required",
		},
		{
			name:    "invalid data",
			tools:   newTools(t),
			args:    map[string]interface{}{"data": `{"id": 1}`},
			message: "Invalid event data",
		},
		{
			name:    "unknown event",
			tools:   newTools(t),
			args:    map[string]interface{}{"event_id": "missing"},
			message: "Failed to load perk grid missing",
		},
		{
			name:    "no fetcher",
			tools:   NewTools(nil, nil),
			args:    map[string]interface{}{"event_id": eventdata.SampleID},
			message: "not configured",
		},
		{
			name:    "bad display",
			tools:   newTools(t),
			args:    map[string]interface{}{"event_id": eventdata.SampleID, "display": "table"},
			message: "display",
		},
		{
			name:    "bad format",
			tools:   newTools(t),
			args:    map[string]interface{}{"event_id": eventdata.SampleID, "format": "pdf"},
			message: "Invalid format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.tools.HandleRender(context.Background(), request(ToolRender, tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.message)
		})
	}
}

func TestHandleValidate(t *testing.T) {
	at := newTools(t)

	result, err := at.HandleValidate(context.Background(), request(ToolValidate, map[string]interface{}{
		"data": sampleJSON(t),
	}))
	require.NoError(t, err)
	var ok validationResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &ok))
	assert.True(t, ok.Valid)
	assert.Equal(t, eventdata.SampleID, ok.ID)
	assert.Equal(t, 3, ok.Packages)

	result, err = at.HandleValidate(context.Background(), request(ToolValidate, map[string]interface{}{
		"data": `{"id": "x", "name": "X", "packages": "nope", "perks": []}`,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError, "invalid data is a result, not a failure")
	var bad validationResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &bad))
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Error)

	result, err = at.HandleValidate(context.Background(), request(ToolValidate, map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleList(t *testing.T) {
	result, err := newTools(t).HandleList(context.Background(), request(ToolList, nil))
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, listEntry{ID: eventdata.SampleID, Name: "EmberConf", Packages: 3, Perks: 3}, entries[0])

	result, err = NewTools(nil, nil).HandleList(context.Background(), request(ToolList, nil))
	require.NoError(t, err)
	assert.Equal(t, "No perk grids available", resultText(t, result))
}

func TestServerToolsDispatch(t *testing.T) {
	for _, st := range newTools(t).ServerTools() {
		if st.Tool.Name != ToolList {
			continue
		}
		result, err := st.Handler(context.Background(), request(ToolList, nil))
		require.NoError(t, err)
		assert.False(t, result.IsError)
	}

	result, err := newTools(t).handlerFor("nope")(context.Background(), request("nope", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(newTools(t), "test"))
}
