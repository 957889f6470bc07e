package canvas

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Color is either a preset name or a hex color. On the wire it is always a
// bare JSON string: hex colors start with '#', anything else is a preset.
// The zero value means "no color".
type Color struct {
	preset string
	hex    string
}

// The six named presets. The preset vocabulary is open: any other non-empty
// name (including the numeric presets "1".."6") is a valid preset too.
var (
	Red    = Color{preset: "red"}
	Orange = Color{preset: "orange"}
	Yellow = Color{preset: "yellow"}
	Green  = Color{preset: "green"}
	Cyan   = Color{preset: "cyan"}
	Purple = Color{preset: "purple"}
)

// Preset returns a preset color with the given name. An empty name yields
// the zero Color. Names starting with '#' are not presets; encoding a
// canvas that holds one fails with ErrMalformedColor. Use [ParseColor] for
// input of unknown kind.
func Preset(name string) Color {
	return Color{preset: name}
}

// ParseHex parses a '#'-prefixed hex color in one of the forms #RGB, #RGBA,
// #RRGGBB or #RRGGBBAA. The original text, including letter case, is kept
// for encoding.
func ParseHex(s string) (Color, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, &FieldError{Field: "color", Value: s, Err: ErrMalformedColor}
	}
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return Color{}, &FieldError{Field: "color", Value: s, Err: ErrMalformedColor}
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return Color{}, &FieldError{Field: "color", Value: s, Err: ErrMalformedColor}
		}
	}
	return Color{hex: s}, nil
}

// ParseColor decodes the wire form of a color: '#' selects hex parsing,
// everything else is taken verbatim as a preset name.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{}, &FieldError{Field: "color", Err: ErrMalformedColor}
	}
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	return Color{preset: s}, nil
}

// validateColor rejects presets that would read back as hex colors.
func validateColor(c Color) error {
	if strings.HasPrefix(c.preset, "#") {
		return &FieldError{Field: "color", Value: c.preset, Err: ErrMalformedColor}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// IsZero reports whether c is the absent color.
func (c Color) IsZero() bool { return c.preset == "" && c.hex == "" }

// IsPreset reports whether c is a named preset.
func (c Color) IsPreset() bool { return c.preset != "" }

// IsHex reports whether c is a hex color.
func (c Color) IsHex() bool { return c.hex != "" }

// String returns the wire form of c.
func (c Color) String() string {
	if c.hex != "" {
		return c.hex
	}
	return c.preset
}

// RGBA returns the channels of a hex color. Short forms are expanded
// (#f80 is #ff8800) and a missing alpha channel is 255. ok is false for
// presets and the zero Color.
func (c Color) RGBA() (r, g, b, a uint8, ok bool) {
	if c.hex == "" {
		return 0, 0, 0, 0, false
	}
	digits := c.hex[1:]
	if len(digits) <= 4 {
		var long strings.Builder
		for i := 0; i < len(digits); i++ {
			long.WriteByte(digits[i])
			long.WriteByte(digits[i])
		}
		digits = long.String()
	}
	channel := func(i int) uint8 {
		v, _ := strconv.ParseUint(digits[2*i:2*i+2], 16, 8)
		return uint8(v)
	}
	a = 255
	if len(digits) == 8 {
		a = channel(3)
	}
	return channel(0), channel(1), channel(2), a, true
}

// MarshalJSON implements json.Marshaler. The zero Color encodes as null;
// the node and edge encoders omit it instead.
func (c Color) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	if err := validateColor(c); err != nil {
		return nil, err
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FieldError{Field: "color", Value: string(data), Err: ErrMalformedColor}
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
