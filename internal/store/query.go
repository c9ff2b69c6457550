package store

import (
	"sort"

	"github.com/ledgerforge/blocksim/internal/blockrec"
)

// RichestAddresses answers Q-A: every address whose balance equals the
// current maximum balance, plus that maximum.
func (e *Engine) RichestAddresses() (max uint32, addrs []byte) {
	var result []byte
	e.metrics.ObserveQuery("richest", func() {
		max = 0
		for a := 0; a < 256; a++ {
			if e.agg.balances[a] > max {
				max = e.agg.balances[a]
			}
		}
		for a := 0; a < 256; a++ {
			if e.agg.balances[a] == max {
				result = append(result, byte(a))
			}
		}
	})
	return max, result
}

// TopMiners answers Q-B: every address whose mined-block count equals the
// current maximum, plus that maximum.
func (e *Engine) TopMiners() (max uint32, addrs []byte) {
	var result []byte
	e.metrics.ObserveQuery("top_miners", func() {
		max = 0
		for a := 0; a < 256; a++ {
			if e.agg.minedCount[a] > max {
				max = e.agg.minedCount[a]
			}
		}
		for a := 0; a < 256; a++ {
			if e.agg.minedCount[a] == max {
				result = append(result, byte(a))
			}
		}
	})
	return max, result
}

// MaxTxBlocks answers Q-C: every block currently holding the running
// maximum applied transaction count.
func (e *Engine) MaxTxBlocks() ([]blockrec.Record, error) {
	return e.resolveTieSet(&e.agg.maxTx)
}

// MinTxBlocks answers Q-D: every block (number >= 2) currently holding the
// running minimum applied transaction count.
func (e *Engine) MinTxBlocks() ([]blockrec.Record, error) {
	return e.resolveTieSet(&e.agg.minTx)
}

func (e *Engine) resolveTieSet(ts *tieSet) ([]blockrec.Record, error) {
	out := make([]blockrec.Record, 0, len(ts.blocks))
	for _, id := range ts.blocks {
		rec, err := e.Read(id)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// MeanValuePerBlock answers Q-E: the mean transferred value per block,
// global_value_sum / total_blocks.
func (e *Engine) MeanValuePerBlock() float64 {
	if e.totalBlocks == 0 {
		return 0
	}
	return float64(e.agg.valueSum) / float64(e.totalBlocks)
}

// BlockByNumber answers Q-F: read(n) for display.
func (e *Engine) BlockByNumber(n uint32) (blockrec.Record, error) {
	return e.Read(n)
}

// FirstBlocksByMiner answers Q-G: the first n blocks mined by addr, in
// chronological order.
func (e *Engine) FirstBlocksByMiner(addr byte, n int) ([]blockrec.Record, error) {
	var out []blockrec.Record
	var err error
	e.metrics.ObserveQuery("first_by_miner", func() {
		ids := e.minerIdx.firstN(addr, n)
		out = make([]blockrec.Record, 0, len(ids))
		for _, id := range ids {
			var rec blockrec.Record
			rec, err = e.Read(id)
			if err != nil {
				return
			}
			out = append(out, rec)
		}
	})
	return out, err
}

const txCountBuckets = blockrec.MaxTransactions + 1

// TopByTxCount answers Q-H: the first n blocks (1..n), bucket-sorted by
// applied transaction count using the tx-count cache, with stable
// in-bucket order preserved via a next-chain.
func (e *Engine) TopByTxCount(n int) ([]blockrec.Record, error) {
	if n < 0 {
		n = 0
	}
	if uint32(n) > e.totalBlocks {
		n = int(e.totalBlocks)
	}

	var out []blockrec.Record
	var err error
	e.metrics.ObserveQuery("top_by_tx_count", func() {
		head := make([]int, txCountBuckets)
		tail := make([]int, txCountBuckets)
		for i := range head {
			head[i] = -1
			tail[i] = -1
		}
		next := make([]int, n)

		for i := 0; i < n; i++ {
			next[i] = -1
			id := uint32(i + 1)
			c := e.txCounts.get(id)
			if head[c] == -1 {
				head[c] = i
			} else {
				next[tail[c]] = i
			}
			tail[c] = i
		}

		out = make([]blockrec.Record, 0, n)
		for b := 0; b < txCountBuckets; b++ {
			for node := head[b]; node != -1; node = next[node] {
				var rec blockrec.Record
				rec, err = e.Read(uint32(node + 1))
				if err != nil {
					return
				}
				out = append(out, rec)
			}
		}
	})
	return out, err
}

// FindByNonce answers Q-I: every persisted block whose nonce matches, via
// the nonce index.
func (e *Engine) FindByNonce(nonce uint32) ([]blockrec.Record, error) {
	var out []blockrec.Record
	var err error
	e.metrics.ObserveQuery("find_by_nonce", func() {
		ids := e.nonceIdx.lookup(nonce)
		if len(ids) == 0 {
			err = ErrNonceNotFound
			return
		}
		// The bucket chain is newest-first (insertion prepends); the
		// engine's public contract reports matches in ascending block-id
		// order.
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = make([]blockrec.Record, 0, len(ids))
		for _, id := range ids {
			var rec blockrec.Record
			rec, err = e.Read(id)
			if err != nil {
				return
			}
			out = append(out, rec)
		}
	})
	return out, err
}

// NonceIndexHistogram answers the CLI's bonus hash-table-distribution
// report: chain length per bucket of the nonce index.
func (e *Engine) NonceIndexHistogram() []int {
	return e.nonceIdx.bucketLengths()
}
