package eventdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxSafeInteger is the largest integer exactly representable in an IEEE
// double, which is what the API's clients parse numbers into.
const maxSafeInteger = 1<<53 - 1

// TypeError reports data that does not have the shape of EventData.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return e.Message
}

// IsTypeError reports whether err is or wraps a *TypeError.
func IsTypeError(err error) bool {
	var typeErr *TypeError
	return errors.As(err, &typeErr)
}

func assertType(condition bool, format string, args ...any) error {
	if condition {
		return nil
	}
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

// undefined stands in for a key absent from a JSON object.
type undefined struct{}

func field(record map[string]any, key string) any {
	v, ok := record[key]
	if !ok {
		return undefined{}
	}
	return v
}

// AssertIsEventData validates generic decoded JSON (as produced by a
// json.Decoder with UseNumber) against the EventData shape. Unknown keys
// are ignored.
func AssertIsEventData(input any) error {
	record, ok := input.(map[string]any)
	if err := assertType(ok, "Expected event to be an object, not %s", inspect(input)); err != nil {
		return err
	}

	name := field(record, "name")
	if err := assertType(isString(name), "Expected event.name to be a string, not %s", inspect(name)); err != nil {
		return err
	}

	packages, ok := field(record, "packages").([]any)
	if err := assertType(ok, "Expected event.packages to be an array, not %s", inspect(field(record, "packages"))); err != nil {
		return err
	}
	for _, p := range packages {
		if err := AssertIsPackage(p); err != nil {
			return err
		}
	}

	perks, ok := field(record, "perks").([]any)
	if err := assertType(ok, "Expected event.perks to be an array, not %s", inspect(field(record, "perks"))); err != nil {
		return err
	}
	for _, p := range perks {
		if err := AssertIsPerk(p); err != nil {
			return err
		}
	}
	return nil
}

// AssertIsPackage validates a single package. Its perks are validated as
// perks, plus their value when one is present.
func AssertIsPackage(input any) error {
	record, ok := input.(map[string]any)
	if err := assertType(ok, "Expected package to be an object, not %s", inspect(input)); err != nil {
		return err
	}

	name := field(record, "name")
	if err := assertType(isString(name), "Expected package.name to be a string, not %s", inspect(name)); err != nil {
		return err
	}

	price := field(record, "price")
	number, isNumber := price.(json.Number)
	_, safe := safeInteger(number)
	if err := assertType(isNumber && safe, "Expected package.price to be a valid number, not %s", inspect(price)); err != nil {
		return err
	}

	if err := assertBool(record, "package.limited", "limited"); err != nil {
		return err
	}
	if err := assertBool(record, "package.soldOut", "soldOut"); err != nil {
		return err
	}

	perks, ok := field(record, "perks").([]any)
	if err := assertType(ok, "Expected package.perks to be an array, not %s", inspect(field(record, "perks"))); err != nil {
		return err
	}
	for _, p := range perks {
		if err := AssertIsPerk(p); err != nil {
			return err
		}
		// A null value is the same as no value.
		if v := p.(map[string]any)["value"]; v != nil {
			if err := assertPerkValue(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssertIsPerk validates a single perk.
func AssertIsPerk(input any) error {
	record, ok := input.(map[string]any)
	if err := assertType(ok, "Expected perk to be an object, not %s", inspect(input)); err != nil {
		return err
	}

	description := field(record, "description")
	if err := assertType(isString(description), "Expected perk.description to be a string, not %s", inspect(description)); err != nil {
		return err
	}

	if err := assertPerkType(field(record, "type")); err != nil {
		return err
	}

	if err := assertBool(record, "perk.limited", "limited"); err != nil {
		return err
	}
	return assertBool(record, "perk.soldOut", "soldOut")
}

func assertPerkType(v any) error {
	s, ok := v.(string)
	if err := assertType(ok, "Expected type to be a string, not %s", inspect(v)); err != nil {
		return err
	}
	known := make([]any, len(PerkTypes))
	for i, t := range PerkTypes {
		known[i] = string(t)
	}
	return assertType(PerkType(s).Valid(), "Expected type to be one of %s, not %s", inspect(known), inspect(v))
}

func assertPerkValue(v any) error {
	if n, ok := v.(json.Number); ok {
		_, valid := finiteNumber(n)
		return assertType(valid, "Expected perk value to be a valid number, not %s", n)
	}
	_, isBool := v.(bool)
	return assertType(isString(v) || isBool,
		"Expected perk value to be a number, string, or boolean value, not %s", inspect(v))
}

func assertBool(record map[string]any, path, key string) error {
	v := field(record, key)
	_, ok := v.(bool)
	return assertType(ok, "Expected %s to be a boolean, not %s", path, inspect(v))
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// safeInteger parses n and reports whether it is an integer within the
// safe range. Integral floats such as 1.0 or 1e3 count.
func safeInteger(n json.Number) (int64, bool) {
	if n == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, i >= -maxSafeInteger && i <= maxSafeInteger
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

// finiteNumber parses n as a float64, rejecting values out of range.
func finiteNumber(n json.Number) (float64, bool) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// inspect renders a decoded JSON value for error messages.
func inspect(v any) string {
	switch x := v.(type) {
	case undefined:
		return "undefined"
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = inspect(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if len(x) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + inspect(x[k])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Decode parses and validates an API response body.
func Decode(body []byte) (EventData, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return EventData{}, &TypeError{Message: fmt.Sprintf("Expected event data to be JSON: %v", err)}
	}
	return FromGeneric(raw)
}

// FromGeneric validates generic decoded JSON and converts it to EventData.
func FromGeneric(raw any) (EventData, error) {
	if err := AssertIsEventData(raw); err != nil {
		return EventData{}, err
	}

	record := raw.(map[string]any)
	data := EventData{
		ID:   stringField(record, "id"),
		Name: record["name"].(string),
	}
	for _, item := range record["packages"].([]any) {
		pkg, err := packageFrom(item.(map[string]any))
		if err != nil {
			return EventData{}, err
		}
		data.Packages = append(data.Packages, pkg)
	}
	for _, item := range record["perks"].([]any) {
		data.Perks = append(data.Perks, perkFrom(item.(map[string]any)))
	}
	if data.Packages == nil {
		data.Packages = []Package{}
	}
	if data.Perks == nil {
		data.Perks = []Perk{}
	}
	return data, nil
}

func packageFrom(record map[string]any) (Package, error) {
	price, _ := safeInteger(record["price"].(json.Number))
	pkg := Package{
		ID:      stringField(record, "id"),
		Name:    record["name"].(string),
		Price:   price,
		Limited: record["limited"].(bool),
		SoldOut: record["soldOut"].(bool),
		Perks:   []PerkWithValue{},
	}
	for _, item := range record["perks"].([]any) {
		perkRecord := item.(map[string]any)
		pwv := PerkWithValue{Perk: perkFrom(perkRecord)}
		if raw := perkRecord["value"]; raw != nil {
			v, err := perkValueFrom(raw)
			if err != nil {
				return Package{}, err
			}
			pwv.Value = v
		}
		pkg.Perks = append(pkg.Perks, pwv)
	}
	return pkg, nil
}

func perkFrom(record map[string]any) Perk {
	return Perk{
		ID:          stringField(record, "id"),
		Description: record["description"].(string),
		Type:        PerkType(record["type"].(string)),
		Limited:     record["limited"].(bool),
		SoldOut:     record["soldOut"].(bool),
	}
}

// stringField returns an id-like field as a string. Ids are not validated;
// numeric ids keep their literal text.
func stringField(record map[string]any, key string) string {
	switch v := record[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
