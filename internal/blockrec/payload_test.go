package blockrec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionsStopsAtSentinel(t *testing.T) {
	var payload [PayloadSize]byte
	payload[0], payload[1], payload[2] = 7, 9, 20
	payload[3], payload[4], payload[5] = 1, 2, 5
	// rest already zero => sentinel at offset 6
	payload[MinerOffset] = 3

	txs := Transactions(payload)
	require.Equal(t, []Transaction{{From: 7, To: 9, Value: 20}, {From: 1, To: 2, Value: 5}}, txs)
}

func TestTransactionsSkipsInactiveSlotButContinuesScan(t *testing.T) {
	var payload [PayloadSize]byte
	payload[0], payload[1], payload[2] = 5, 6, 0 // inactive, not the (0,0,0) sentinel
	payload[3], payload[4], payload[5] = 1, 2, 9
	payload[MinerOffset] = 0

	txs := Transactions(payload)
	require.Equal(t, []Transaction{{From: 1, To: 2, Value: 9}}, txs)
}

func TestTransactionsAllZeroIsEmpty(t *testing.T) {
	var payload [PayloadSize]byte
	require.Empty(t, Transactions(payload))
}

func TestTransactionsFullSixtyOneSlots(t *testing.T) {
	var payload [PayloadSize]byte
	for i := 0; i < MaxTransactions; i++ {
		payload[i*3] = byte(i)
		payload[i*3+1] = byte(i + 1)
		payload[i*3+2] = 1
	}
	payload[MinerOffset] = 200

	txs := Transactions(payload)
	require.Len(t, txs, MaxTransactions)
	require.Equal(t, byte(0), txs[0].From)
	require.Equal(t, byte(60), txs[60].From)
}

func TestMinerAddress(t *testing.T) {
	var payload [PayloadSize]byte
	payload[MinerOffset] = 42
	require.Equal(t, byte(42), MinerAddress(payload))
}

func TestGenesisTextTrimsNulPadding(t *testing.T) {
	var payload [PayloadSize]byte
	copy(payload[:], "hello, chain\x00\x00\x00")
	require.Equal(t, "hello, chain", GenesisText(payload))
}
