package eventdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"id": "event-1",
	"name": "Event 1",
	"packages": [
		{
			"id": "package-1",
			"name": "Package 1",
			"price": 1000,
			"limited": false,
			"soldOut": false,
			"perks": [
				{"id": "perk-1", "description": "Perk 1", "type": "simple", "limited": false, "soldOut": false, "value": true},
				{"id": "perk-2", "description": "Perk 2", "type": "quantity", "limited": true, "soldOut": false, "value": 3},
				{"id": "perk-3", "description": "Perk 3", "type": "freeform", "limited": false, "soldOut": true, "value": "Included"}
			]
		}
	],
	"perks": [
		{"id": "perk-1", "description": "Perk 1", "type": "simple", "limited": false, "soldOut": false},
		{"id": "perk-2", "description": "Perk 2", "type": "quantity", "limited": true, "soldOut": false},
		{"id": "perk-3", "description": "Perk 3", "type": "freeform", "limited": false, "soldOut": true}
	]
}`

func TestDecode_Valid(t *testing.T) {
	data, err := Decode([]byte(validBody))
	require.NoError(t, err)

	assert.Equal(t, "event-1", data.ID)
	require.Len(t, data.Packages, 1)
	require.Len(t, data.Perks, 3)

	pkg := data.Packages[0]
	assert.EqualValues(t, 1000, pkg.Price)
	assert.Equal(t, KindBool, ValueFor(data.Perks[0], pkg).Kind())
	assert.Equal(t, "3", ValueFor(data.Perks[1], pkg).String())
	assert.Equal(t, "Included", ValueFor(data.Perks[2], pkg).String())
	assert.Nil(t, ValueFor(Perk{ID: "unknown"}, pkg))
}

func TestDecode_RoundTripIsLossless(t *testing.T) {
	data, err := Decode([]byte(validBody))
	require.NoError(t, err)

	out, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, validBody, string(out))

	var again EventData
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, data, again)
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	_, err := Decode([]byte(`{"name": "x", "packages": [], "perks": [], "venue": {"city": "Portland"}}`))
	assert.NoError(t, err)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "not an object",
			body:    `[1, "a"]`,
			message: `Expected event to be an object, not [1, "a"]`,
		},
		{
			name:    "missing name",
			body:    `{"packages": [], "perks": []}`,
			message: `Expected event.name to be a string, not undefined`,
		},
		{
			name:    "packages null",
			body:    `{"name": "x", "packages": null, "perks": []}`,
			message: `Expected event.packages to be an array, not null`,
		},
		{
			name:    "string price",
			body:    `{"name": "x", "packages": [{"name": "p", "price": "10", "limited": false, "soldOut": false, "perks": []}], "perks": []}`,
			message: `Expected package.price to be a valid number, not "10"`,
		},
		{
			name:    "fractional price",
			body:    `{"name": "x", "packages": [{"name": "p", "price": 10.5, "limited": false, "soldOut": false, "perks": []}], "perks": []}`,
			message: `Expected package.price to be a valid number, not 10.5`,
		},
		{
			name:    "unsafe price",
			body:    `{"name": "x", "packages": [{"name": "p", "price": 9007199254740993, "limited": false, "soldOut": false, "perks": []}], "perks": []}`,
			message: `Expected package.price to be a valid number, not 9007199254740993`,
		},
		{
			name:    "package soldOut missing",
			body:    `{"name": "x", "packages": [{"name": "p", "price": 1, "limited": false, "perks": []}], "perks": []}`,
			message: `Expected package.soldOut to be a boolean, not undefined`,
		},
		{
			name:    "unknown perk type",
			body:    `{"name": "x", "packages": [], "perks": [{"description": "d", "type": "bonus", "limited": false, "soldOut": false}]}`,
			message: `Expected type to be one of ["simple", "quantity", "freeform"], not "bonus"`,
		},
		{
			name:    "perk type number",
			body:    `{"name": "x", "packages": [], "perks": [{"description": "d", "type": 1, "limited": false, "soldOut": false}]}`,
			message: `Expected type to be a string, not 1`,
		},
		{
			name:    "perk limited string",
			body:    `{"name": "x", "packages": [], "perks": [{"description": "d", "type": "simple", "limited": "no", "soldOut": false}]}`,
			message: `Expected perk.limited to be a boolean, not "no"`,
		},
		{
			name:    "perk value object",
			body:    `{"name": "x", "packages": [{"name": "p", "price": 1, "limited": false, "soldOut": false, "perks": [{"description": "d", "type": "simple", "limited": false, "soldOut": false, "value": {"a": 1}}]}], "perks": []}`,
			message: `Expected perk value to be a number, string, or boolean value, not { a: 1 }`,
		},
		{
			name:    "perk value out of range",
			body:    `{"name": "x", "packages": [{"name": "p", "price": 1, "limited": false, "soldOut": false, "perks": [{"description": "d", "type": "quantity", "limited": false, "soldOut": false, "value": 1e400}]}], "perks": []}`,
			message: `Expected perk value to be a valid number, not 1e400`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, IsTypeError(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestDecode_InvalidJSONIsTypeError(t *testing.T) {
	_, err := Decode([]byte(`<html>`))
	require.Error(t, err)
	assert.True(t, IsTypeError(err))
}

func TestDecode_IntegralFloatPrice(t *testing.T) {
	data, err := Decode([]byte(`{"name": "x", "packages": [{"name": "p", "price": 1e3, "limited": false, "soldOut": false, "perks": []}], "perks": []}`))
	require.NoError(t, err)
	assert.EqualValues(t, 1000, data.Packages[0].Price)
}

func TestDecode_PackagePerkValues(t *testing.T) {
	body := func(value string) []byte {
		return []byte(`{"name": "x", "packages": [{"name": "p", "price": 1, "limited": false, "soldOut": false, "perks": [` +
			`{"id": "q", "description": "d", "type": "quantity", "limited": false, "soldOut": false` + value + `}]}], ` +
			`"perks": [{"id": "q", "description": "d", "type": "quantity", "limited": false, "soldOut": false}]}`)
	}

	tests := []struct {
		name   string
		value  string
		truthy bool
		kind   ValueKind
		text   string
	}{
		{name: "null", value: `, "value": null`},
		{name: "missing", value: ``},
		{name: "fractional", value: `, "value": 1.5`, truthy: true, kind: KindFloat, text: "1.5"},
		{name: "beyond safe integer", value: `, "value": 9007199254740993`, truthy: true, kind: KindFloat, text: "9007199254740992"},
		{name: "integral float", value: `, "value": 2.0`, truthy: true, kind: KindInt, text: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode(body(tt.value))
			require.NoError(t, err)

			v := ValueFor(data.Perks[0], data.Packages[0])
			assert.Equal(t, tt.truthy, v.Truthy())
			if !tt.truthy {
				assert.Nil(t, v)
				return
			}
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.String())
		})
	}
}

func TestPerkValue_Truthy(t *testing.T) {
	var missing *PerkValue
	assert.False(t, missing.Truthy())
	assert.False(t, BoolValue(false).Truthy())
	assert.False(t, IntValue(0).Truthy())
	assert.False(t, StringValue("").Truthy())
	assert.True(t, BoolValue(true).Truthy())
	assert.True(t, IntValue(-1).Truthy())
	assert.True(t, StringValue("all").Truthy())
	assert.False(t, FloatValue(0).Truthy())
	assert.True(t, FloatValue(0.5).Truthy())
}

func TestPerkValue_JSON(t *testing.T) {
	var pwv PerkWithValue
	require.NoError(t, json.Unmarshal([]byte(`{"id": "p", "description": "d", "type": "quantity", "limited": false, "soldOut": false, "value": 12}`), &pwv))
	require.NotNil(t, pwv.Value)
	assert.Equal(t, KindInt, pwv.Value.Kind())
	assert.Equal(t, int64(12), pwv.Value.Interface())

	err := json.Unmarshal([]byte(`{"value": [1]}`), &pwv)
	assert.True(t, IsTypeError(err))

	out, err := json.Marshal(PerkWithValue{Perk: Perk{ID: "p", Type: PerkTypeSimple}})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "value")
}

func TestSample_IsValid(t *testing.T) {
	body, err := json.Marshal(Sample())
	require.NoError(t, err)

	data, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, Sample(), data)
}
