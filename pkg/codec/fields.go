package codec

import (
	"strconv"
	"strings"
)

// Field describes one editable value of a record type R. Layouts expose
// their fields as an ordered list so a form can be built without
// reflection; Set is nil for read-only fields.
type Field[R any] struct {
	Key   string
	Label string
	Get   func(r *R) string
	Set   func(r *R, value string) error
}

// ReadOnly reports whether the field has no setter.
func (f Field[R]) ReadOnly() bool {
	return f.Set == nil
}

// FindField looks a field up by key, case-insensitively.
func FindField[R any](fields []Field[R], key string) (Field[R], bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Key, key) {
			return f, true
		}
	}
	return Field[R]{}, false
}

// parseUint parses a decimal or 0x-prefixed value that must fit in bits.
// An empty value is zero.
func parseUint(key, value string, bits int) (uint64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return 0, formatErrorf("%s: %q is not a %d-bit unsigned integer", key, value, bits)
	}
	return n, nil
}

func uint32Field[R any](key, label string, p func(r *R) *uint32) Field[R] {
	return Field[R]{
		Key:   key,
		Label: label,
		Get:   func(r *R) string { return strconv.FormatUint(uint64(*p(r)), 10) },
		Set: func(r *R, value string) error {
			n, err := parseUint(key, value, 32)
			if err != nil {
				return err
			}
			*p(r) = uint32(n)
			return nil
		},
	}
}

func uint16Field[R any](key, label string, p func(r *R) *uint16) Field[R] {
	return Field[R]{
		Key:   key,
		Label: label,
		Get:   func(r *R) string { return strconv.FormatUint(uint64(*p(r)), 10) },
		Set: func(r *R, value string) error {
			n, err := parseUint(key, value, 16)
			if err != nil {
				return err
			}
			*p(r) = uint16(n)
			return nil
		},
	}
}

func uint8Field[R any](key, label string, p func(r *R) *uint8) Field[R] {
	return Field[R]{
		Key:   key,
		Label: label,
		Get:   func(r *R) string { return strconv.FormatUint(uint64(*p(r)), 10) },
		Set: func(r *R, value string) error {
			n, err := parseUint(key, value, 8)
			if err != nil {
				return err
			}
			*p(r) = uint8(n)
			return nil
		},
	}
}
