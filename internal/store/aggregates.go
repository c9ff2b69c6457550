package store

// miningReward is the fixed per-block reward credited to the miner's
// balance.
const miningReward = 50

// minTxSentinel seeds minTx above any possible tx count (max 61) so the
// first eligible block (number >= 2) always reseeds it.
const minTxSentinel = 1000

// tieSet tracks the running extremum of a per-block statistic and the set
// of block ids currently holding it. Cleared and reseeded whenever the
// extremum strictly changes, so the tie set never grows beyond the
// current run of ties — a plain growable slice is enough.
type tieSet struct {
	extremum int
	blocks   []uint32
}

func (t *tieSet) considerMax(blockID uint32, value int) {
	switch {
	case value > t.extremum:
		t.extremum = value
		t.blocks = append(t.blocks[:0], blockID)
	case value == t.extremum:
		t.blocks = append(t.blocks, blockID)
	}
}

func (t *tieSet) considerMin(blockID uint32, value int) {
	switch {
	case value < t.extremum:
		t.extremum = value
		t.blocks = append(t.blocks[:0], blockID)
	case value == t.extremum:
		t.blocks = append(t.blocks, blockID)
	}
}

// aggregates holds every running financial-state aggregate the query
// functions read in O(1)/O(256): per-address balance and mined count, the
// global transferred-value sum, cached maxima, and the max/min-tx
// tie-sets.
type aggregates struct {
	balances   [256]uint32
	minedCount [256]uint32
	valueSum   uint64
	maxBalance uint32
	maxMined   uint32

	// maxTx includes block 1 (0 applied transactions, seeds the running
	// max); minTx excludes block 1 and is only updated for blocks >= 2,
	// since genesis's always-zero count would otherwise permanently pin
	// the minimum. See DESIGN.md for the reasoning behind this asymmetry.
	maxTx tieSet
	minTx tieSet
}

func newAggregates() *aggregates {
	return &aggregates{
		maxTx: tieSet{extremum: -1},
		minTx: tieSet{extremum: minTxSentinel},
	}
}
