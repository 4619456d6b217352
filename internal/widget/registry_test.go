package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/dom"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/render"
)

func TestRegistry_DefineIsIdempotent(t *testing.T) {
	r := NewRegistry()
	first := func(el *dom.Element) Widget { return nil }

	assert.True(t, r.Define(TagName, first))
	assert.False(t, r.Define(TagName, func(el *dom.Element) Widget { return nil }))
	assert.True(t, r.Defined(TagName))
	assert.False(t, r.Defined("other-grid"))
}

func TestRegistry_Upgrade(t *testing.T) {
	r := NewRegistry()
	r.Define(TagName, func(el *dom.Element) Widget {
		return NewHost(el, ParseDataset(Dataset(el)), Config{Fetcher: returning(eventdata.Sample(), nil)})
	})

	doc := dom.NewDocument()
	section := dom.NewElement("section", "")
	a := dom.NewElement(TagName, "", dom.WithAttr("data-event-id", "a"), dom.WithAttr("data-display", "list"))
	b := dom.NewElement(TagName, "", dom.WithAttr("data-event-id", "b"))
	section.Append(a, dom.NewElement("div", ""), b)
	doc.Body().Append(section)

	widgets := r.Upgrade(doc.Body())
	require.Len(t, widgets, 2)

	host := widgets[0].(*Host)
	assert.Equal(t, "a", host.Attributes().EventID)
	assert.Equal(t, render.DisplayList, host.Attributes().Display)
	assert.Same(t, a, host.Element())

	require.NoError(t, widgets[1].OnAttach(context.Background()))
	assert.NotNil(t, widgets[1].(*Host).Rendered())
}

func TestRegister_DefaultRegistry(t *testing.T) {
	Register(Config{})
	assert.True(t, Registered())
	assert.False(t, Register(Config{}), "second registration is a no-op")
}

func TestParseDataset(t *testing.T) {
	a := ParseDataset(map[string]string{
		"data-event-id":             "evt",
		"gridTitle":                 "Sponsors",
		"placeholder-text":          "Wait",
		"data-error-text":           "Oops",
		"limitedText":               "Few left",
		"sold-out-text":             "Gone",
		"display":                   "grid",
		"data-min-width-perk":       "240px",
		"minWidthPackage":           "120",
		"allow-keyboard-navigation": "false",
	})

	assert.Equal(t, Attributes{
		EventID:                 "evt",
		GridTitle:               "Sponsors",
		PlaceholderText:         "Wait",
		ErrorText:               "Oops",
		LimitedText:             "Few left",
		SoldOutText:             "Gone",
		Display:                 render.DisplayGrid,
		MinWidthPerk:            240,
		MinWidthPackage:         120,
		AllowKeyboardNavigation: false,
	}, a)
}

func TestParseDataset_MalformedValuesKeepDefaults(t *testing.T) {
	a := ParseDataset(map[string]string{
		"eventId":                 "evt",
		"display":                 "table",
		"minWidthPerk":            "wide",
		"minWidthPackage":         "-5",
		"allowKeyboardNavigation": "sometimes",
		"unrelated":               "x",
	})

	want := DefaultAttributes()
	want.EventID = "evt"
	assert.Equal(t, want, a)
}

func TestAttributes_RenderOptions(t *testing.T) {
	a := DefaultAttributes()
	a.GridTitle = "T"
	opts := a.RenderOptions()
	assert.Equal(t, "T", opts.GridTitle)
	assert.Equal(t, render.DefaultMinWidthPerk, opts.MinWidthPerk)
	assert.True(t, opts.AllowKeyboardNavigation)
}
