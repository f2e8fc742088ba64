package codec

import (
	"bytes"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Item names are stored as ISO-8859-1; shop names are 7-bit ASCII with
// anything else dropped on both read and write.
var (
	latin1       = charmap.ISO8859_1
	dropNonASCII = runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII }))
)

// cString returns b up to (not including) its first NUL byte.
func cString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func decodeLatin1(b []byte) string {
	// every byte maps to a rune in ISO-8859-1, so this cannot fail
	out, err := latin1.NewDecoder().Bytes(cString(b))
	if err != nil {
		return string(cString(b))
	}
	return string(out)
}

func encodeLatin1(s string) ([]byte, error) {
	out, err := latin1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, formatErrorf("name %q is not representable in ISO-8859-1", s)
	}
	return out, nil
}

func decodeASCII(b []byte) string {
	out, _, err := transform.Bytes(transform.Chain(latin1.NewDecoder(), dropNonASCII), cString(b))
	if err != nil {
		return ""
	}
	return string(out)
}

func encodeASCII(s string) []byte {
	out, _, err := transform.String(dropNonASCII, s)
	if err != nil {
		return nil
	}
	return []byte(out)
}

// putName zero-fills dst and copies name into it, truncated so that at
// least one NUL terminator remains.
func putName(dst, name []byte) {
	clear(dst)
	if len(name) > len(dst)-1 {
		name = name[:len(dst)-1]
	}
	copy(dst, name)
}
