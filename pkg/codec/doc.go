// Package codec reads and writes the fixed-layout binary tables used by the
// game client: the item table and the two shop table variants.
//
// Every layout is a flat sequence of fixed-size records, optionally after a
// fixed-size header. All integers are little-endian and there is no
// version byte, checksum or record count in the file.
//
// # Item Table
//
//	[Header(4) = 0][Record(236)]...
//
// Record fields:
//   - ID: offset 0, 32-bit
//   - Name: offset 4, 31 bytes, ISO-8859-1, NUL padded (30 bytes for new
//     names; a 31-byte name read from a file is written back unterminated)
//   - Level: offset 35, 8-bit
//   - Buy, Coins, Sell: offsets 37, 41, 45, 32-bit
//   - Days: offset 56, 16-bit
//   - Stats: offset 58, 15 x 32-bit (see StatBlock)
//
// Bytes outside these fields are written as zero.
//
// Bot, Part and Buyable are not stored in their own slots; they are read
// from the decimal digits of ID. An identifier starting with 11, 12 or 13
// belongs to bot 1, 2 or 3, the third digit is the part, and digit index 6
// is '0' when the part can be bought in the shop and '1' when it cannot.
// SyncBuyableDigit writes the Buyable flag back into ID and must run after
// any change to Bot or Buyable; the setters returned by Fields do this.
//
// # Shop Table, First Variant
//
//	[Header(48)][Record(108)]...
//
// Record fields: Name at 0x00 (32 bytes, ASCII), Buyable byte at 0x50,
// Category at 0x54 (32-bit), ID at 0x5C (32-bit). The header and all other
// record bytes are preserved verbatim.
//
// # Shop Table, Second Variant
//
//	[Record(256) = Head(128) + Tail(128)]...
//
// Head fields: Category at 0x00 (16-bit), Buyable byte at 0x2C, ID at 0x30
// (32-bit), Name from 0x38 (ASCII, 31 usable bytes). Tail is opaque.
//
// # Usage
//
//	c := codec.NewShopV1Codec()
//	header, records, err := c.Decode(data)
//	if err != nil {
//	    return err
//	}
//	records[0].Name = "Cannon"
//	out, err := c.Encode(header, records)
//
// # Error Handling
//
// Decode fails with ErrFormat only when the input is shorter than the
// layout's header. A trailing partial record is silently dropped. Encode
// fails with ErrFormat when a value cannot be stored, for example an item
// name longer than 30 bytes. Use errors.Is to test the kind.
package codec
