package session

import (
	"fmt"
	"strings"
)

// Format names one of the supported table layouts.
type Format string

const (
	FormatItem   Format = "item"  // item table, 4-byte header + 236-byte records
	FormatShopV1 Format = "shop1" // shop file, 48-byte header + 108-byte records
	FormatShopV2 Format = "shop2" // shop file, headerless 256-byte records
)

// Formats lists every supported layout.
func Formats() []Format {
	return []Format{FormatItem, FormatShopV1, FormatShopV2}
}

// ParseFormat accepts a layout name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of item, shop1, shop2)", ErrUnknownFormat, s)
}

func (f Format) String() string {
	return string(f)
}
