// Package txgen implements the transaction-generator collaborator: given
// current balances and a seeded PRNG, it fills a block's 184-byte payload
// with up to 61 transactions plus a miner address byte. It is a pure
// function of its inputs plus a balance lookup against the engine — it
// never mutates engine state itself.
package txgen

import (
	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/rng"
)

// BalanceSource is the one piece of engine state the generator consults:
// get_balance(addr), so it can bias transaction values toward amounts the
// sender can plausibly afford.
type BalanceSource interface {
	GetBalance(addr byte) uint32
}

// Generate produces a payload for a non-genesis block: a pseudo-random
// number of transactions (0..61), each a (from, to, value) triple biased
// by the sender's current balance, followed by the (0,0,0) sentinel (left
// as the payload's zero value when fewer than 61 slots are used) and a
// pseudo-random miner byte at offset 183.
func Generate(balances BalanceSource, r *rng.MT19937) [blockrec.PayloadSize]byte {
	var payload [blockrec.PayloadSize]byte

	count := r.Intn(blockrec.MaxTransactions + 1)
	for i := 0; i < count; i++ {
		from := byte(r.Intn(256))
		to := byte(r.Intn(256))

		bal := balances.GetBalance(from)
		var value byte
		if bal > 0 {
			cap := int(bal)
			if cap > 255 {
				cap = 255
			}
			value = byte(1 + r.Intn(cap))
		} else {
			value = byte(1 + r.Intn(255))
		}

		payload[i*3] = from
		payload[i*3+1] = to
		payload[i*3+2] = value
	}

	payload[blockrec.MinerOffset] = byte(r.Intn(256))
	return payload
}
