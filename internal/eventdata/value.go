package eventdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the wire type of a PerkValue.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindString
	KindFloat
)

// PerkValue is a package's value for a perk: a boolean for simple perks, an
// integer for quantities, a string for freeform perks (and the occasional
// quantity sentinel such as "all"). Numbers that are not safe integers are
// kept as floats.
type PerkValue struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
}

func BoolValue(b bool) *PerkValue     { return &PerkValue{kind: KindBool, b: b} }
func IntValue(i int64) *PerkValue     { return &PerkValue{kind: KindInt, i: i} }
func StringValue(s string) *PerkValue { return &PerkValue{kind: KindString, s: s} }
func FloatValue(f float64) *PerkValue  { return &PerkValue{kind: KindFloat, f: f} }

// Kind returns the wire type of v.
func (v *PerkValue) Kind() ValueKind { return v.kind }

// Truthy applies ordinary truthiness: false, 0, "" and a nil value are
// falsy.
func (v *PerkValue) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	default:
		return v.s != ""
	}
}

func (v *PerkValue) String() string {
	if v == nil {
		return ""
	}
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.s
	}
}

// Interface returns the underlying bool, int64, float64 or string.
func (v *PerkValue) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

func (v PerkValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *PerkValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if err := assertPerkValue(raw); err != nil {
		return err
	}
	parsed, err := perkValueFrom(raw)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// perkValueFrom converts an already validated decoded JSON value.
func perkValueFrom(raw any) (*PerkValue, error) {
	switch x := raw.(type) {
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		if n, ok := safeInteger(x); ok {
			return IntValue(n), nil
		}
		f, ok := finiteNumber(x)
		if !ok {
			return nil, fmt.Errorf("perk value %s is not a valid number", x)
		}
		return FloatValue(f), nil
	default:
		return nil, fmt.Errorf("unsupported perk value %T", raw)
	}
}
