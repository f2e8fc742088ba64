package codec_test

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/ssargent/botsedit/pkg/codec"
)

// ExampleItemCodec_basic decodes an item table and flips the buyable flag of
// a bot part.
func ExampleItemCodec_basic() {
	data := make([]byte, codec.ItemHeaderSize+codec.ItemRecordSize)
	binary.LittleEndian.PutUint32(data[4:], 1112340567)
	copy(data[8:], "Blade Arm")

	c := codec.NewItemCodec()
	header, records, err := c.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	r := records[0]
	fmt.Printf("%d %s bot=%d part=%d buyable=%d\n", r.ID, r.Name, r.Bot, r.Part, r.Buyable)

	r.Buyable = 0
	codec.SyncBuyableDigit(r)
	fmt.Printf("new id: %d\n", r.ID)

	out, err := c.Encode(header, records)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("encoded %d bytes\n", len(out))

	// Output:
	// 1112340567 Blade Arm bot=1 part=1 buyable=1
	// new id: 1112341567
	// encoded 240 bytes
}

// ExampleShopV1Codec_basic renames a shop entry while keeping every other
// byte of its block.
func ExampleShopV1Codec_basic() {
	data := make([]byte, codec.ShopV1HeaderSize+codec.ShopV1RecordSize)
	rec := data[codec.ShopV1HeaderSize:]
	copy(rec, "Cannon")
	rec[0x50] = 0x71
	binary.LittleEndian.PutUint32(rec[0x54:], 0x10000)
	binary.LittleEndian.PutUint32(rec[0x5C:], 17)
	rec[0x66] = 0x99

	c := codec.NewShopV1Codec()
	header, records, err := c.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d %s category=%#x buyable=%#x\n", records[0].ID, records[0].Name, records[0].Category, records[0].Buyable)

	records[0].Name = "Big Cannon"
	out, err := c.Encode(header, records)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("len=%d preserved=%#x\n", len(out), out[codec.ShopV1HeaderSize+0x66])

	// Output:
	// 17 Cannon category=0x10000 buyable=0x71
	// len=156 preserved=0x99
}
