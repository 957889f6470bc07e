package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// object is a decoded JSON object whose values are still raw. Decoders read
// fields out of it one by one so every failure can name its field.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected object, got null", ErrInvalidValue)
	}
	if err := checkDuplicateKeys(data); err != nil {
		return nil, err
	}
	return obj, nil
}

// checkDuplicateKeys rejects an object that names the same key twice.
// data must already be known to hold a well-formed JSON object.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		key, _ := tok.(string)
		if seen[key] {
			return &FieldError{Field: key, Value: "duplicate key", Err: ErrInvalidValue}
		}
		seen[key] = true
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	return nil
}

// raw returns the raw value of key, treating JSON null as absent.
func (o object) raw(key string) (json.RawMessage, bool) {
	v, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// checkKeys rejects keys outside allowed, in sorted order so the reported
// key is deterministic.
func (o object) checkKeys(allowed map[string]bool) error {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !allowed[k] {
			return &FieldError{Field: k, Err: ErrUnknownField}
		}
	}
	return nil
}

func (o object) optString(key string) (string, bool, error) {
	v, ok := o.raw(key)
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false, &FieldError{Field: key, Value: string(v), Err: ErrInvalidValue}
	}
	return s, true, nil
}

func (o object) requireString(key string) (string, error) {
	s, ok, err := o.optString(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &FieldError{Field: key, Err: ErrMissingField}
	}
	return s, nil
}

func (o object) requireInt(key string) (int, error) {
	v, ok := o.raw(key)
	if !ok {
		return 0, &FieldError{Field: key, Err: ErrMissingField}
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, &FieldError{Field: key, Value: string(v), Err: ErrInvalidValue}
	}
	return n, nil
}

func (o object) requireUint(key string) (uint, error) {
	v, ok := o.raw(key)
	if !ok {
		return 0, &FieldError{Field: key, Err: ErrMissingField}
	}
	var n uint
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, &FieldError{Field: key, Value: string(v), Err: ErrInvalidValue}
	}
	return n, nil
}

func (o object) color() (Color, error) {
	s, ok, err := o.optString("color")
	if err != nil || !ok {
		return Color{}, err
	}
	return ParseColor(s)
}

// marshal encodes v without HTML escaping, so text such as "<b>" survives a
// round trip byte-for-byte.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
