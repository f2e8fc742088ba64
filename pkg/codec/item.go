package codec

import (
	"encoding/binary"
	"strconv"
)

// Item table layout: a 4-byte zero header followed by 236-byte records.
const (
	ItemHeaderSize = 4
	ItemRecordSize = 236
	ItemNameMax    = 30 // encoded bytes, excluding the terminator

	itemIDOffset    = 0
	itemNameOffset  = 4
	itemNameSize    = 31
	itemLevelOffset = 35
	itemBuyOffset   = 37
	itemCoinsOffset = 41
	itemSellOffset  = 45
	itemDaysOffset  = 56
	itemStatsOffset = 58

	// StatCount is the number of 32-bit values in a StatBlock.
	StatCount = 15

	// buyableDigit is the index, from the most significant digit, of the
	// decimal identifier digit that encodes shop availability for bot parts.
	buyableDigit = 6
)

// BotKind is the bot category encoded in the first two identifier digits.
type BotKind uint8

const (
	BotNone BotKind = iota
	Bot1
	Bot2
	Bot3
)

// Valid reports whether k names a real bot category.
func (k BotKind) Valid() bool {
	return k >= Bot1 && k <= Bot3
}

// StatBlock is the 15-value statistics section of an item record, stored
// back to back from offset 58 in the order the fields are declared.
type StatBlock struct {
	HPP         uint32
	AttMin      uint32
	AttMax      uint32
	AttTransMin uint32
	AttTransMax uint32
	TransGauge  uint32
	Crit        uint32
	Evade       uint32
	SpecTrans   uint32
	Speed       uint32
	TransBotDef uint32
	TransBotAtt uint32
	TransSpeed  uint32
	RangeAtt    uint32
	Luk         uint32
}

// statLayout lists the stats in file order.
var statLayout = [StatCount]struct {
	key   string
	field func(s *StatBlock) *uint32
}{
	{"hpp", func(s *StatBlock) *uint32 { return &s.HPP }},
	{"attmin", func(s *StatBlock) *uint32 { return &s.AttMin }},
	{"attmax", func(s *StatBlock) *uint32 { return &s.AttMax }},
	{"atttransmin", func(s *StatBlock) *uint32 { return &s.AttTransMin }},
	{"atttransmax", func(s *StatBlock) *uint32 { return &s.AttTransMax }},
	{"transgauge", func(s *StatBlock) *uint32 { return &s.TransGauge }},
	{"crit", func(s *StatBlock) *uint32 { return &s.Crit }},
	{"evade", func(s *StatBlock) *uint32 { return &s.Evade }},
	{"spectrans", func(s *StatBlock) *uint32 { return &s.SpecTrans }},
	{"speed", func(s *StatBlock) *uint32 { return &s.Speed }},
	{"transbotdef", func(s *StatBlock) *uint32 { return &s.TransBotDef }},
	{"transbotatt", func(s *StatBlock) *uint32 { return &s.TransBotAtt }},
	{"transspeed", func(s *StatBlock) *uint32 { return &s.TransSpeed }},
	{"rangeatt", func(s *StatBlock) *uint32 { return &s.RangeAtt }},
	{"luk", func(s *StatBlock) *uint32 { return &s.Luk }},
}

// StatKeys returns the stat names in file order.
func StatKeys() []string {
	keys := make([]string, 0, StatCount)
	for _, s := range statLayout {
		keys = append(keys, s.key)
	}
	return keys
}

// ItemRecord is one decoded item. Bot, Part and Buyable are derived from
// the decimal digits of ID; only Buyable (together with Bot) is written
// back, by SyncBuyableDigit.
type ItemRecord struct {
	ID    uint32
	Name  string
	Level uint8
	Buy   uint32
	Coins uint32 // shop-currency price
	Sell  uint32
	Days  uint16
	Stats StatBlock

	Bot     BotKind
	Part    uint8
	Buyable uint8
}

// ItemCodec reads and writes item tables.
type ItemCodec struct{}

// NewItemCodec creates a new item table codec
func NewItemCodec() *ItemCodec {
	return &ItemCodec{}
}

// Decode splits data into the header and the records that fit completely
// after it. A trailing partial record is ignored.
func (c *ItemCodec) Decode(data []byte) ([]byte, []*ItemRecord, error) {
	if len(data) < ItemHeaderSize {
		return nil, nil, formatErrorf("item table needs a %d-byte header, got %d bytes", ItemHeaderSize, len(data))
	}

	header := append([]byte(nil), data[:ItemHeaderSize]...)
	blocks := splitBlocks(data[ItemHeaderSize:], ItemRecordSize)
	records := make([]*ItemRecord, 0, len(blocks))
	for _, block := range blocks {
		records = append(records, c.DecodeRecord(block))
	}

	return header, records, nil
}

// DecodeRecord decodes a single 236-byte block.
func (c *ItemCodec) DecodeRecord(block []byte) *ItemRecord {
	r := &ItemRecord{
		ID:    binary.LittleEndian.Uint32(block[itemIDOffset:]),
		Name:  decodeLatin1(block[itemNameOffset : itemNameOffset+itemNameSize]),
		Level: block[itemLevelOffset],
		Buy:   binary.LittleEndian.Uint32(block[itemBuyOffset:]),
		Coins: binary.LittleEndian.Uint32(block[itemCoinsOffset:]),
		Sell:  binary.LittleEndian.Uint32(block[itemSellOffset:]),
		Days:  binary.LittleEndian.Uint16(block[itemDaysOffset:]),
	}
	for i, s := range statLayout {
		*s.field(&r.Stats) = binary.LittleEndian.Uint32(block[itemStatsOffset+4*i:])
	}
	r.Bot, r.Part, r.Buyable = DeriveBotFields(r.ID)

	return r
}

// Encode writes a zero header and every record in order. The header
// argument is accepted for symmetry with the other layouts and ignored.
func (c *ItemCodec) Encode(_ []byte, records []*ItemRecord) ([]byte, error) {
	out := make([]byte, ItemHeaderSize, ItemHeaderSize+len(records)*ItemRecordSize)
	for i, r := range records {
		block, err := c.EncodeRecord(r)
		if err != nil {
			return nil, fmtRecordErr(i, err)
		}
		out = append(out, block...)
	}
	return out, nil
}

// EncodeRecord encodes one record. Bytes outside the named fields are zero.
// A name that fills the whole 31-byte slot is written without terminator,
// so any name Decode produced encodes back unchanged; the name setter
// still holds new names to ItemNameMax.
func (c *ItemCodec) EncodeRecord(r *ItemRecord) ([]byte, error) {
	name, err := encodeLatin1(r.Name)
	if err != nil {
		return nil, err
	}
	if len(name) > itemNameSize {
		return nil, formatErrorf("name %q is %d bytes, slot holds %d", r.Name, len(name), itemNameSize)
	}

	block := make([]byte, ItemRecordSize)
	binary.LittleEndian.PutUint32(block[itemIDOffset:], r.ID)
	copy(block[itemNameOffset:itemNameOffset+itemNameSize], name)
	block[itemLevelOffset] = r.Level
	binary.LittleEndian.PutUint32(block[itemBuyOffset:], r.Buy)
	binary.LittleEndian.PutUint32(block[itemCoinsOffset:], r.Coins)
	binary.LittleEndian.PutUint32(block[itemSellOffset:], r.Sell)
	binary.LittleEndian.PutUint16(block[itemDaysOffset:], r.Days)
	for i, s := range statLayout {
		binary.LittleEndian.PutUint32(block[itemStatsOffset+4*i:], *s.field(&r.Stats))
	}

	return block, nil
}

// Next returns a blank record whose identifier follows last's.
func (c *ItemCodec) Next(last *ItemRecord) (*ItemRecord, error) {
	id, err := nextID(last.ID)
	if err != nil {
		return nil, err
	}
	r := &ItemRecord{ID: id}
	r.Bot, r.Part, r.Buyable = DeriveBotFields(r.ID)
	return r, nil
}

// Describe returns the identifier and name used for listings.
func (c *ItemCodec) Describe(r *ItemRecord) (uint32, string) {
	return r.ID, r.Name
}

// DeriveBotFields decodes the bot triad from an identifier. Identifiers
// whose decimal form starts with 11, 12 or 13 belong to bot 1, 2 or 3;
// the third digit is the part and a '0' at digit index 6 marks the item
// as buyable. Anything else yields zeros.
func DeriveBotFields(id uint32) (bot BotKind, part uint8, buyable uint8) {
	s := strconv.FormatUint(uint64(id), 10)
	if len(s) < 2 || s[0] != '1' || s[1] < '1' || s[1] > '3' {
		return BotNone, 0, 0
	}

	bot = BotKind(s[1] - '0')
	if len(s) > 2 {
		part = s[2] - '0'
	}
	if len(s) > buyableDigit && s[buyableDigit] == '0' {
		buyable = 1
	}
	return bot, part, buyable
}

// SyncBuyableDigit rewrites digit index 6 of r.ID from r.Buyable: '0'
// when buyable, '1' otherwise. It does nothing unless r.Bot is a real
// bot category and the identifier has at least seven digits. No other
// digit is touched.
func SyncBuyableDigit(r *ItemRecord) {
	if !r.Bot.Valid() {
		return
	}
	s := []byte(strconv.FormatUint(uint64(r.ID), 10))
	if len(s) <= buyableDigit {
		return
	}

	if r.Buyable != 0 {
		s[buyableDigit] = '0'
	} else {
		s[buyableDigit] = '1'
	}

	id, err := strconv.ParseUint(string(s), 10, 32)
	if err != nil {
		// swapping a single 0/1 digit cannot leave the 32-bit range for
		// a ten digit identifier, but keep the old value if it ever does
		return
	}
	r.ID = uint32(id)
}

// Fields returns the editable fields in form order. Setting Bot or
// Buyable re-syncs the identifier; Part is derived and read-only. Bot only
// decides whether the buyable digit is kept in sync: it is not stored, so
// the next Decode derives it from the identifier's leading digits again.
func (c *ItemCodec) Fields() []Field[ItemRecord] {
	fields := []Field[ItemRecord]{
		{
			Key:   "id",
			Label: "ID",
			Get:   func(r *ItemRecord) string { return strconv.FormatUint(uint64(r.ID), 10) },
			Set: func(r *ItemRecord, value string) error {
				n, err := parseUint("id", value, 32)
				if err != nil {
					return err
				}
				r.ID = uint32(n)
				r.Bot, r.Part, r.Buyable = DeriveBotFields(r.ID)
				return nil
			},
		},
		{
			Key:   "name",
			Label: "Name",
			Get:   func(r *ItemRecord) string { return r.Name },
			Set: func(r *ItemRecord, value string) error {
				encoded, err := encodeLatin1(value)
				if err != nil {
					return err
				}
				if len(encoded) > ItemNameMax {
					return formatErrorf("name %q is %d bytes, limit is %d", value, len(encoded), ItemNameMax)
				}
				r.Name = value
				return nil
			},
		},
		uint8Field("level", "Level", func(r *ItemRecord) *uint8 { return &r.Level }),
		uint32Field("buy", "Buy", func(r *ItemRecord) *uint32 { return &r.Buy }),
		uint32Field("sell", "Sell", func(r *ItemRecord) *uint32 { return &r.Sell }),
		uint32Field("coins", "Coins", func(r *ItemRecord) *uint32 { return &r.Coins }),
		uint16Field("days", "Days", func(r *ItemRecord) *uint16 { return &r.Days }),
		{
			Key:   "bot",
			Label: "Bot",
			Get:   func(r *ItemRecord) string { return strconv.Itoa(int(r.Bot)) },
			Set: func(r *ItemRecord, value string) error {
				n, err := parseUint("bot", value, 8)
				if err != nil {
					return err
				}
				if n > uint64(Bot3) {
					return formatErrorf("bot: %q must be 0 to 3", value)
				}
				r.Bot = BotKind(n)
				SyncBuyableDigit(r)
				return nil
			},
		},
		{
			Key:   "part",
			Label: "Part",
			Get:   func(r *ItemRecord) string { return strconv.Itoa(int(r.Part)) },
		},
		{
			Key:   "buyable",
			Label: "Buyable (0/1)",
			Get:   func(r *ItemRecord) string { return strconv.Itoa(int(r.Buyable)) },
			Set: func(r *ItemRecord, value string) error {
				n, err := parseUint("buyable", value, 8)
				if err != nil {
					return err
				}
				if n > 1 {
					return formatErrorf("buyable: %q must be 0 or 1", value)
				}
				r.Buyable = uint8(n)
				SyncBuyableDigit(r)
				return nil
			},
		},
	}

	for _, s := range statLayout {
		field := s.field
		fields = append(fields, uint32Field(s.key, s.key, func(r *ItemRecord) *uint32 { return field(&r.Stats) }))
	}

	return fields
}
