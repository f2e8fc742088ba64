package codec

import (
	"encoding/binary"
	"strconv"
)

// Shop table (first variant): a 48-byte opaque header followed by 108-byte
// records. Only four regions of a record are understood; the rest of the
// block is kept and written back untouched.
const (
	ShopV1HeaderSize = 48
	ShopV1RecordSize = 0x6C

	shopV1NameOffset     = 0x00
	shopV1NameSize       = 32
	shopV1BuyableOffset  = 0x50
	shopV1CategoryOffset = 0x54
	shopV1IDOffset       = 0x5C
)

// New records added to a shop table start out with these values.
const (
	DefaultShopName     = "NewItem"
	DefaultShopCategory = 0
	DefaultShopBuyable  = 1
)

// ShopV1Record is one shop entry. Buyable is an opaque byte (observed
// values are 0 and 0x71), not a boolean.
type ShopV1Record struct {
	Offset   int // position of the block in the source file; not persisted
	ID       uint32
	Name     string
	Category uint32
	Buyable  uint8
	Raw      [ShopV1RecordSize]byte
}

// ShopV1Codec reads and writes the first shop table variant.
type ShopV1Codec struct{}

// NewShopV1Codec creates a new shop table codec
func NewShopV1Codec() *ShopV1Codec {
	return &ShopV1Codec{}
}

// Decode keeps the header verbatim and decodes every complete record.
func (c *ShopV1Codec) Decode(data []byte) ([]byte, []*ShopV1Record, error) {
	if len(data) < ShopV1HeaderSize {
		return nil, nil, formatErrorf("shop table needs a %d-byte header, got %d bytes", ShopV1HeaderSize, len(data))
	}

	header := append([]byte(nil), data[:ShopV1HeaderSize]...)
	blocks := splitBlocks(data[ShopV1HeaderSize:], ShopV1RecordSize)
	records := make([]*ShopV1Record, 0, len(blocks))
	for i, block := range blocks {
		r := c.DecodeRecord(block)
		r.Offset = ShopV1HeaderSize + i*ShopV1RecordSize
		records = append(records, r)
	}

	return header, records, nil
}

// DecodeRecord decodes a single 108-byte block.
func (c *ShopV1Codec) DecodeRecord(block []byte) *ShopV1Record {
	r := &ShopV1Record{
		ID:       binary.LittleEndian.Uint32(block[shopV1IDOffset:]),
		Name:     decodeASCII(block[shopV1NameOffset : shopV1NameOffset+shopV1NameSize]),
		Category: binary.LittleEndian.Uint32(block[shopV1CategoryOffset:]),
		Buyable:  block[shopV1BuyableOffset],
	}
	copy(r.Raw[:], block)
	return r
}

// Encode writes the header followed by every record in order.
func (c *ShopV1Codec) Encode(header []byte, records []*ShopV1Record) ([]byte, error) {
	if len(header) != ShopV1HeaderSize {
		return nil, formatErrorf("shop table header must be %d bytes, got %d", ShopV1HeaderSize, len(header))
	}

	out := make([]byte, 0, ShopV1HeaderSize+len(records)*ShopV1RecordSize)
	out = append(out, header...)
	for _, r := range records {
		out = append(out, c.EncodeRecord(r)...)
	}
	return out, nil
}

// EncodeRecord overlays the named fields onto a copy of the raw block.
// Names lose any non-ASCII characters and are cut to 31 bytes.
func (c *ShopV1Codec) EncodeRecord(r *ShopV1Record) []byte {
	block := r.Raw
	putName(block[shopV1NameOffset:shopV1NameOffset+shopV1NameSize], encodeASCII(r.Name))
	binary.LittleEndian.PutUint32(block[shopV1CategoryOffset:], r.Category)
	block[shopV1BuyableOffset] = r.Buyable
	binary.LittleEndian.PutUint32(block[shopV1IDOffset:], r.ID)
	return block[:]
}

// Next clones last as a template for a new entry.
func (c *ShopV1Codec) Next(last *ShopV1Record) (*ShopV1Record, error) {
	id, err := nextID(last.ID)
	if err != nil {
		return nil, err
	}
	r := *last
	r.Offset = last.Offset + ShopV1RecordSize
	r.ID = id
	r.Name = DefaultShopName
	r.Category = DefaultShopCategory
	r.Buyable = DefaultShopBuyable
	return &r, nil
}

// Describe returns the identifier and name used for listings.
func (c *ShopV1Codec) Describe(r *ShopV1Record) (uint32, string) {
	return r.ID, r.Name
}

// Fields returns the editable fields in form order.
func (c *ShopV1Codec) Fields() []Field[ShopV1Record] {
	return []Field[ShopV1Record]{
		uint32Field("id", "ID", func(r *ShopV1Record) *uint32 { return &r.ID }),
		shopNameField[ShopV1Record](func(r *ShopV1Record) *string { return &r.Name }),
		uint32Field("category", "Category", func(r *ShopV1Record) *uint32 { return &r.Category }),
		uint8Field("buyable", "Buyable", func(r *ShopV1Record) *uint8 { return &r.Buyable }),
		{
			Key:   "offset",
			Label: "Offset",
			Get:   func(r *ShopV1Record) string { return "0x" + strconv.FormatInt(int64(r.Offset), 16) },
		},
	}
}

// shopNameField accepts any string; characters that cannot be stored are
// dropped and the tail truncated when the record is encoded.
func shopNameField[R any](p func(r *R) *string) Field[R] {
	return Field[R]{
		Key:   "name",
		Label: "Name",
		Get:   func(r *R) string { return *p(r) },
		Set: func(r *R, value string) error {
			*p(r) = value
			return nil
		},
	}
}
