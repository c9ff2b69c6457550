package store

import "github.com/ledgerforge/blocksim/internal/blockrec"

// BufferCapacity is the fixed size of the append buffer: the tail of the
// logical chain held in memory before it is bulk-written to the log. This
// is a correctness invariant, not a tunable.
const BufferCapacity = 16

// appendBuffer is the small ring of unpersisted records the reader treats
// as a transparent extension of the on-disk log.
type appendBuffer struct {
	records [BufferCapacity]blockrec.Record
	count   int
}

func (b *appendBuffer) push(r blockrec.Record) {
	b.records[b.count] = r
	b.count++
}

func (b *appendBuffer) full() bool {
	return b.count == BufferCapacity
}

func (b *appendBuffer) reset() {
	b.count = 0
}

// at returns the i-th buffered record (0-based, within [0, count)).
func (b *appendBuffer) at(i int) blockrec.Record {
	return b.records[i]
}
