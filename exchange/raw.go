package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingName = errors.New("missing exchange name")

// Raw source field names
const (
	FieldName            = "name"
	FieldLongDescription = "long-description"
	FieldScore           = "score"
	FieldKYCCheck        = "kyc-check"
	FieldKYCType         = "kyc-type"
	FieldCash            = "cash"
	FieldP2P             = "p2p"
	FieldCustodial       = "custodial"
	FieldURL             = "url"
	FieldTorOnion        = "tor-onion"
)

// Raw is a single exchange record, as listed in the source document.
// Only the name is decoded up front. The fields an exchange is rendered
// from are decoded by Listing, once the record is known to be listed
type Raw struct {
	fields map[string]json.RawMessage

	Name string
}

// Listing holds the typed fields a listed exchange is rendered from
type Listing struct {
	LongDescription string
	URL             URLs
	Onion           Onion
	Score           float64
	Custodial       Custody
	Cash            bool
	P2P             bool
}

// Kind is the kind of a comparable raw field value
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a comparable raw field value
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
}

// BoolValue wraps a boolean field value
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// NumberValue wraps a numeric field value
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindNumber:
		return fmt.Sprintf("%g", v.Number)
	default:
		return "<invalid>"
	}
}

// Field returns the named source field as a comparable value.
// Fields that are absent, or that are neither booleans nor numbers, are not comparable
func (r *Raw) Field(name string) (Value, bool) {
	data, ok := r.fields[name]
	if !ok {
		return Value{}, false
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil && string(data) != "null" {
		return BoolValue(b), true
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil && string(data) != "null" {
		return NumberValue(n), true
	}

	return Value{}, false
}

func (r *Raw) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := Raw{
		fields: fields,
	}

	name, ok := fields[FieldName]
	if !ok {
		return errMissingName
	}

	if err := json.Unmarshal(name, &out.Name); err != nil || out.Name == "" {
		return errMissingName
	}

	*r = out

	return nil
}

// Listing decodes the rendered fields of the record.
// Absent fields keep their zero value, except the custody model, which is required
func (r *Raw) Listing() (*Listing, error) {
	var l Listing

	targets := []struct {
		dst any
		key string
	}{
		{&l.LongDescription, FieldLongDescription},
		{&l.Score, FieldScore},
		{&l.Cash, FieldCash},
		{&l.P2P, FieldP2P},
		{&l.URL, FieldURL},
		{&l.Onion, FieldTorOnion},
	}

	for _, target := range targets {
		raw, ok := r.fields[target.key]
		if !ok {
			continue
		}

		if err := json.Unmarshal(raw, target.dst); err != nil {
			return nil, fmt.Errorf("unable to decode %q of %q, %w", target.key, r.Name, err)
		}
	}

	// The custody model has no sensible default
	custodial, ok := r.fields[FieldCustodial]
	if !ok {
		return nil, fmt.Errorf("%w: missing for %q", ErrInvalidCustody, r.Name)
	}

	if err := json.Unmarshal(custodial, &l.Custodial); err != nil {
		return nil, fmt.Errorf("unable to decode %q of %q, %w", FieldCustodial, r.Name, err)
	}

	return &l, nil
}

// NewRaw builds a record from a field set, as it would be decoded from JSON
func NewRaw(fields map[string]any) (*Raw, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("unable to encode fields, %w", err)
	}

	var r Raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}
