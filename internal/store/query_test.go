package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRichestAddressesAndTopMiners(t *testing.T) {
	e := openTestEngine(t)

	require.NoError(t, e.Append(plainRecord(1, 1, 4)))
	require.NoError(t, e.Append(plainRecord(2, 2, 4)))
	require.NoError(t, e.Append(plainRecord(3, 3, 9)))

	max, addrs := e.RichestAddresses()
	require.Equal(t, uint32(100), max)
	require.Equal(t, []byte{4}, addrs)

	maxMined, miners := e.TopMiners()
	require.Equal(t, uint32(2), maxMined)
	require.Equal(t, []byte{4}, miners)
}

func TestMeanValuePerBlockAndBlockByNumber(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))
	require.NoError(t, e.Append(transferRecord(2, 2, 2, 1, 3, 40)))

	require.InDelta(t, 20.0, e.MeanValuePerBlock(), 1e-9)

	rec, err := e.BlockByNumber(2)
	require.NoError(t, err)
	require.Equal(t, uint32(2), rec.Number)

	_, err = e.BlockByNumber(99)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFirstBlocksByMinerChronological(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 7)))
	require.NoError(t, e.Append(plainRecord(2, 2, 9)))
	require.NoError(t, e.Append(plainRecord(3, 3, 7)))
	require.NoError(t, e.Append(plainRecord(4, 4, 7)))

	recs, err := e.FirstBlocksByMiner(7, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, uint32(1), recs[0].Number)
	require.Equal(t, uint32(3), recs[1].Number)
}

func TestTopByTxCountOrdersByApplied(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))                  // genesis, 0 applied
	require.NoError(t, e.Append(transferRecord(2, 2, 1, 1, 2, 10)))     // 1 applied
	require.NoError(t, e.Append(plainRecord(3, 3, 1)))                  // 0 applied

	recs, err := e.TopByTxCount(3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	// Bucket 0 first (blocks 1 and 3, insertion order), then bucket 1
	// (block 2).
	require.Equal(t, []uint32{1, 3, 2}, []uint32{recs[0].Number, recs[1].Number, recs[2].Number})
}

func TestFindByNonceNotFound(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))

	_, err := e.FindByNonce(999)
	require.ErrorIs(t, err, ErrNonceNotFound)
}

func TestMaxMinTxBlocksResolveToRecords(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))
	require.NoError(t, e.Append(transferRecord(2, 2, 1, 1, 2, 5)))
	require.NoError(t, e.Append(plainRecord(3, 3, 1)))

	maxRecs, err := e.MaxTxBlocks()
	require.NoError(t, err)
	ids := make([]uint32, 0, len(maxRecs))
	for _, r := range maxRecs {
		ids = append(ids, r.Number)
	}
	require.ElementsMatch(t, []uint32{2}, ids)

	minRecs, err := e.MinTxBlocks()
	require.NoError(t, err)
	minIDs := make([]uint32, 0, len(minRecs))
	for _, r := range minRecs {
		minIDs = append(minIDs, r.Number)
	}
	require.ElementsMatch(t, []uint32{3}, minIDs)
}

func TestNonceIndexHistogramSumsToInsertCount(t *testing.T) {
	e := openTestEngine(t)
	for i := uint32(1); i <= 20; i++ {
		require.NoError(t, e.Append(plainRecord(i, i*7, byte(i))))
	}
	hist := e.NonceIndexHistogram()
	var sum int
	for _, n := range hist {
		sum += n
	}
	require.Equal(t, 20, sum)
	require.Len(t, hist, nonceBucketCount)
}
