package codec

import "encoding/binary"

// Shop table (second variant): no header, 256-byte records made of two
// 128-byte halves. Named fields live in the first half only; the second
// half is carried through byte for byte.
const (
	ShopV2RecordSize = 256
	ShopV2HalfSize   = ShopV2RecordSize / 2

	shopV2CategoryOffset = 0x00
	shopV2BuyableOffset  = 0x2C
	shopV2IDOffset       = 0x30
	shopV2NameOffset     = 0x38
	shopV2NameSize       = 32 // 31 bytes plus terminator on write
)

// ShopV2Record is one shop entry of the second variant.
type ShopV2Record struct {
	ID       uint32
	Name     string
	Category uint16
	Buyable  uint8
	Head     [ShopV2HalfSize]byte
	Tail     [ShopV2HalfSize]byte
}

// ShopV2Codec reads and writes the second shop table variant.
type ShopV2Codec struct{}

// NewShopV2Codec creates a new shop table codec
func NewShopV2Codec() *ShopV2Codec {
	return &ShopV2Codec{}
}

// Decode decodes every complete record from offset 0. The returned header
// is always nil.
func (c *ShopV2Codec) Decode(data []byte) ([]byte, []*ShopV2Record, error) {
	blocks := splitBlocks(data, ShopV2RecordSize)
	records := make([]*ShopV2Record, 0, len(blocks))
	for _, block := range blocks {
		records = append(records, c.DecodeRecord(block))
	}
	return nil, records, nil
}

// DecodeRecord decodes a single 256-byte block.
func (c *ShopV2Codec) DecodeRecord(block []byte) *ShopV2Record {
	r := &ShopV2Record{}
	copy(r.Head[:], block[:ShopV2HalfSize])
	copy(r.Tail[:], block[ShopV2HalfSize:ShopV2RecordSize])

	r.Category = binary.LittleEndian.Uint16(r.Head[shopV2CategoryOffset:])
	r.Buyable = r.Head[shopV2BuyableOffset]
	r.ID = binary.LittleEndian.Uint32(r.Head[shopV2IDOffset:])
	r.Name = decodeASCII(r.Head[shopV2NameOffset:])
	return r
}

// Encode concatenates every record; there is no file header.
func (c *ShopV2Codec) Encode(_ []byte, records []*ShopV2Record) ([]byte, error) {
	out := make([]byte, 0, len(records)*ShopV2RecordSize)
	for _, r := range records {
		out = append(out, c.EncodeRecord(r)...)
	}
	return out, nil
}

// EncodeRecord overlays the named fields onto a copy of the first half and
// appends the second half unchanged.
func (c *ShopV2Codec) EncodeRecord(r *ShopV2Record) []byte {
	head := r.Head
	putName(head[shopV2NameOffset:shopV2NameOffset+shopV2NameSize], encodeASCII(r.Name))
	binary.LittleEndian.PutUint16(head[shopV2CategoryOffset:], r.Category)
	head[shopV2BuyableOffset] = r.Buyable
	binary.LittleEndian.PutUint32(head[shopV2IDOffset:], r.ID)

	block := make([]byte, 0, ShopV2RecordSize)
	block = append(block, head[:]...)
	return append(block, r.Tail[:]...)
}

// Next clones last as a template for a new entry.
func (c *ShopV2Codec) Next(last *ShopV2Record) (*ShopV2Record, error) {
	id, err := nextID(last.ID)
	if err != nil {
		return nil, err
	}
	r := *last
	r.ID = id
	r.Name = DefaultShopName
	r.Category = DefaultShopCategory
	r.Buyable = DefaultShopBuyable
	return &r, nil
}

// Describe returns the identifier and name used for listings.
func (c *ShopV2Codec) Describe(r *ShopV2Record) (uint32, string) {
	return r.ID, r.Name
}

// Fields returns the editable fields in form order.
func (c *ShopV2Codec) Fields() []Field[ShopV2Record] {
	return []Field[ShopV2Record]{
		uint32Field("id", "ID", func(r *ShopV2Record) *uint32 { return &r.ID }),
		shopNameField[ShopV2Record](func(r *ShopV2Record) *string { return &r.Name }),
		uint16Field("category", "Category", func(r *ShopV2Record) *uint16 { return &r.Category }),
		uint8Field("buyable", "Buyable", func(r *ShopV2Record) *uint8 { return &r.Buyable }),
	}
}
