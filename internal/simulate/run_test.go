package simulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/store"
)

func TestRunProducesExactlyNBlocks(t *testing.T) {
	e, err := store.Open(t.TempDir(), store.Options{Logger: logging.Nop()})
	require.NoError(t, err)
	defer e.Close()

	var calls int
	err = Run(context.Background(), e, logging.Nop(), 1234567, 20, func(n, total uint32) {
		calls++
		require.LessOrEqual(t, n, total)
	})
	require.NoError(t, err)
	require.Equal(t, uint32(20), e.TotalBlocks())
	require.Equal(t, 20, calls)
}

func TestRunIsIdempotentAboveCurrentHeight(t *testing.T) {
	e, err := store.Open(t.TempDir(), store.Options{Logger: logging.Nop()})
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, Run(context.Background(), e, logging.Nop(), 1, 5, nil))
	require.NoError(t, Run(context.Background(), e, logging.Nop(), 1, 5, nil))
	require.Equal(t, uint32(5), e.TotalBlocks())
}

func TestRunRespectsContextCancellation(t *testing.T) {
	e, err := store.Open(t.TempDir(), store.Options{Logger: logging.Nop()})
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, e, logging.Nop(), 1, 5, nil)
	require.Error(t, err)
	require.Less(t, e.TotalBlocks(), uint32(5))
}
