package domain

import (
	"unicode/utf16"
	"unicode/utf8"
)

// resourceText indexes resource content in UTF-16 code units, the unit the
// browser reports coverage offsets in. ASCII text is sliced directly.
type resourceText struct {
	raw   string
	units []uint16
}

func newResourceText(s string) resourceText {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return resourceText{raw: s, units: utf16.Encode([]rune(s))}
		}
	}

	return resourceText{raw: s}
}

func (t resourceText) Len() int {
	if t.units != nil {
		return len(t.units)
	}

	return len(t.raw)
}

// Slice returns the text in [start, end). Callers check bounds.
func (t resourceText) Slice(start, end int) string {
	if t.units != nil {
		return string(utf16.Decode(t.units[start:end]))
	}

	return t.raw[start:end]
}
