package store

import (
	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/numeric"
)

// applyBlock is the single internal update path append and reconstruction
// both funnel through, so replaying the log from scratch produces bit-
// identical state to the live run it replays. It only reads the fields of
// rec plus the current aggregate state — never from disk — so it behaves
// identically whether rec just came off the miner or out of a
// reconstruction batch.
func applyBlock(
	rec blockrec.Record,
	agg *aggregates,
	nonceIdx *nonceIndex,
	minerIdx *minerIndex,
	txCounts *txCountCache,
	logger logging.Logger,
) {
	miner := blockrec.MinerAddress(rec.Payload)

	applied := 0
	if rec.Number > 1 {
		for _, tx := range blockrec.Transactions(rec.Payload) {
			if agg.balances[tx.From] >= uint32(tx.Value) {
				agg.balances[tx.From] -= uint32(tx.Value)
				agg.balances[tx.To] += uint32(tx.Value)
				if sum, overflowed := numeric.SafeAdd(agg.valueSum, uint64(tx.Value)); !overflowed {
					agg.valueSum = sum
				} else {
					logger.Warn("value_sum overflow ignored", "block", rec.Number)
				}
				applied++
			} else {
				logger.Warn("overspend transaction skipped",
					"block", rec.Number, "from", tx.From, "to", tx.To,
					"value", tx.Value, "balance", agg.balances[tx.From])
			}
		}
	}
	txCounts.set(rec.Number, applied)

	agg.balances[miner] += miningReward
	agg.minedCount[miner]++
	if agg.balances[miner] > agg.maxBalance {
		agg.maxBalance = agg.balances[miner]
	}
	if agg.minedCount[miner] > agg.maxMined {
		agg.maxMined = agg.minedCount[miner]
	}

	agg.maxTx.considerMax(rec.Number, applied)
	if rec.Number >= 2 {
		agg.minTx.considerMin(rec.Number, applied)
	}

	nonceIdx.insert(rec.Nonce, rec.Number)
	minerIdx.insert(miner, rec.Number)
}
