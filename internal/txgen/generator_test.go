package txgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/rng"
)

type fakeBalances struct {
	balances [256]uint32
}

func (f *fakeBalances) GetBalance(addr byte) uint32 { return f.balances[addr] }

func TestGenerateNeverEmitsZeroValueActiveSlot(t *testing.T) {
	bal := &fakeBalances{}
	bal.balances[7] = 100
	r := rng.New(1234567)

	for i := 0; i < 200; i++ {
		payload := Generate(bal, r)
		for j := 0; j <= 180; j += 3 {
			if payload[j] == 0 && payload[j+1] == 0 && payload[j+2] == 0 {
				break // sentinel reached
			}
			require.Greater(t, int(payload[j+2]), 0, "active slot must have value > 0")
		}
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	bal := &fakeBalances{}
	a := Generate(bal, rng.New(99))
	b := Generate(bal, rng.New(99))
	require.Equal(t, a, b)
}

func TestGenerateSetsMinerByte(t *testing.T) {
	bal := &fakeBalances{}
	payload := Generate(bal, rng.New(7))

	// Replay the same draws: the count, one (from, to, value) triple per
	// transaction against all-zero balances, then the miner byte.
	r := rng.New(7)
	count := r.Intn(blockrec.MaxTransactions + 1)
	for i := 0; i < count; i++ {
		r.Intn(256)
		r.Intn(256)
		r.Intn(255)
	}
	require.Equal(t, byte(r.Intn(256)), blockrec.MinerAddress(payload))
}
