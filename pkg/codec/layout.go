package codec

import (
	"fmt"
	"math"
)

// splitBlocks cuts data into consecutive size-byte blocks. Bytes left over
// after the last complete block are dropped; truncated or padded files
// are tolerated rather than rejected.
func splitBlocks(data []byte, size int) [][]byte {
	blocks := make([][]byte, 0, len(data)/size)
	for off := 0; off+size <= len(data); off += size {
		blocks = append(blocks, data[off:off+size])
	}
	return blocks
}

func fmtRecordErr(index int, err error) error {
	return fmt.Errorf("record %d: %w", index, err)
}

// nextID returns id+1, or ErrFormat when id is already the largest
// identifier a 32-bit slot can hold.
func nextID(id uint32) (uint32, error) {
	if id == math.MaxUint32 {
		return 0, formatErrorf("identifier %d has no successor in 32 bits", id)
	}
	return id + 1, nil
}
