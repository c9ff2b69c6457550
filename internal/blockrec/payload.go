package blockrec

import "strings"

// MaxTransactions is the most transaction triples a payload can hold:
// floor(180/3) = 60, plus one more at offset 180..182, giving 61 slots
// before the miner address byte at offset 183.
const MaxTransactions = 61

// MinerOffset is the payload byte that always carries the miner's address,
// for every block including the genesis block.
const MinerOffset = 183

// Transaction is a single (from, to, value) triple packed into a payload.
// It is active iff Value > 0.
type Transaction struct {
	From  byte
	To    byte
	Value byte
}

// MinerAddress returns the miner byte of a payload.
func MinerAddress(payload [PayloadSize]byte) byte {
	return payload[MinerOffset]
}

// Transactions parses the packed transaction list out of a non-genesis
// block's payload, stopping at the first (0,0,0) sentinel triple. Slots
// with value == 0 but (from, to) != (0, 0) are inactive and skipped, but
// scanning continues past them (§4.6) — this never occurs in data produced
// by the canonical generator but is handled the way the scan rule defines.
//
// Transactions does not touch balances; it only recovers the logical list
// from the bytes. Applying a transaction against current balances is the
// engine's job (store.applyBlock), since overspend depends on state this
// function does not have.
func Transactions(payload [PayloadSize]byte) []Transaction {
	out := make([]Transaction, 0, MaxTransactions)
	for i := 0; i+2 <= 182; i += 3 {
		from, to, value := payload[i], payload[i+1], payload[i+2]
		if value == 0 && from == 0 && to == 0 {
			break
		}
		if value > 0 {
			out = append(out, Transaction{From: from, To: to, Value: value})
		}
	}
	return out
}

// GenesisText recovers the null-padded UTF-8 genesis message from block 1's
// payload (bytes 0..182; byte 183 is still the miner address).
func GenesisText(payload [PayloadSize]byte) string {
	return strings.TrimRight(string(payload[:MinerOffset]), "\x00")
}
