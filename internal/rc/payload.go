package rc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Lookup reads payload fields on the receiving side. Missing fields read
// as their zero value.
type Lookup interface {
	String(field string) string
	Bool(field string) bool
	Strings(field string) []string
}

// Payload is the ordered field set a command encodes for one invocation.
// Values are strings, booleans or string lists.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

func (p *Payload) set(field string, v any) *Payload {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[field]; !ok {
		p.keys = append(p.keys, field)
	}
	p.values[field] = v
	return p
}

// SetString sets a string field.
func (p *Payload) SetString(field, v string) *Payload { return p.set(field, v) }

// SetBool sets a boolean field.
func (p *Payload) SetBool(field string, v bool) *Payload { return p.set(field, v) }

// SetStrings sets a string list field. The slice is copied.
func (p *Payload) SetStrings(field string, v []string) *Payload {
	return p.set(field, slices.Clone(v))
}

// Has reports whether field is set.
func (p *Payload) Has(field string) bool {
	_, ok := p.values[field]
	return ok
}

// Fields returns the field names in the order they were set.
func (p *Payload) Fields() []string {
	return slices.Clone(p.keys)
}

// String returns a string field, or "" when absent or not a string.
func (p *Payload) String(field string) string {
	s, _ := p.values[field].(string)
	return s
}

// Bool returns a boolean field, or false when absent or not a boolean.
func (p *Payload) Bool(field string) bool {
	b, _ := p.values[field].(bool)
	return b
}

// Strings returns a copy of a string list field, or nil when absent.
func (p *Payload) Strings(field string) []string {
	v, _ := p.values[field].([]string)
	return slices.Clone(v)
}

// MarshalJSON encodes the payload as a JSON object in field order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("payload field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping field order. Null fields
// are dropped; any value other than a string, boolean or string list is
// rejected.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	order, err := objectKeys(data)
	if err != nil {
		return err
	}

	*p = Payload{values: make(map[string]any, len(raw))}
	for _, k := range order {
		msg := raw[k]
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("payload field %q: %w", k, err)
		}
		switch val := v.(type) {
		case nil:
		case string:
			p.SetString(k, val)
		case bool:
			p.SetBool(k, val)
		case []any:
			var list []string
			if err := json.Unmarshal(msg, &list); err != nil {
				return fmt.Errorf("payload field %q: want a list of strings: %w", k, err)
			}
			p.SetStrings(k, list)
		default:
			return fmt.Errorf("payload field %q: unsupported value %s", k, msg)
		}
	}
	return nil
}

// objectKeys returns the top-level keys of a JSON object in document
// order, without duplicates.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("payload: unexpected token %v", tok)
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
