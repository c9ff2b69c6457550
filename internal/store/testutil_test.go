package store

import (
	"testing"

	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/logging"
)

// openTestEngine opens a fresh Engine in a t.TempDir with metrics disabled
// and a discarding logger, closing it automatically at test end.
func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Open(t.TempDir(), Options{Logger: logging.Nop()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// plainRecord builds a record with a zero hash/prevHash, a single miner
// byte, and no transactions — for tests that only care about indices and
// aggregates, not mining validity (the engine never reverifies the
// difficulty predicate on read).
func plainRecord(number, nonce uint32, miner byte) blockrec.Record {
	var rec blockrec.Record
	rec.Number = number
	rec.Nonce = nonce
	rec.Payload[blockrec.MinerOffset] = miner
	return rec
}

// transferRecord builds a record whose payload carries exactly one
// transaction triple (from, to, value), followed by the implicit sentinel.
func transferRecord(number, nonce uint32, miner, from, to, value byte) blockrec.Record {
	rec := plainRecord(number, nonce, miner)
	rec.Payload[0], rec.Payload[1], rec.Payload[2] = from, to, value
	return rec
}
