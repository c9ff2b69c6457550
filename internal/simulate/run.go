// Package simulate drives the simulator's main job: seed the PRNG once,
// mine the genesis block, then repeatedly generate a transaction payload
// and mine the next block until the configured chain length is reached.
package simulate

import (
	"context"
	"fmt"

	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/mining"
	"github.com/ledgerforge/blocksim/internal/rng"
	"github.com/ledgerforge/blocksim/internal/store"
	"github.com/ledgerforge/blocksim/internal/txgen"
)

// GenesisMessage is the fixed text mined into block 1's payload for the
// canonical run.
const GenesisMessage = "blocksim genesis"

// Progress is invoked after every mined block so a caller can report
// progress without this package depending on any particular UI.
type Progress func(blockNumber, totalBlocks uint32)

// Run mines and appends blocks to e until e.TotalBlocks() reaches
// totalBlocks, seeding (or resuming) the PRNG from seed. It is safe to call
// against an Engine that was reopened mid-run: blocks already appended are
// skipped, and the PRNG is still seeded from the start, so a fresh process
// resuming a partially-built chain does not reproduce the exact same
// generated transactions past the resume point. Determinism is only
// guaranteed for a single unbroken run, not resume-after-restart.
func Run(ctx context.Context, e *store.Engine, logger logging.Logger, seed, totalBlocks uint32, progress Progress) error {
	if totalBlocks == 0 {
		return nil
	}

	r := rng.New(seed)

	if e.TotalBlocks() == 0 {
		genesis := mining.Genesis(GenesisMessage, byte(r.Intn(256)))
		if err := e.Append(genesis); err != nil {
			return fmt.Errorf("simulate: append genesis: %w", err)
		}
		logger.Info("genesis mined", "nonce", genesis.Nonce)
		if progress != nil {
			progress(1, totalBlocks)
		}
	}

	prevHash := func() [blockrec.HashSize]byte {
		last, err := e.Read(e.TotalBlocks())
		if err != nil {
			return [blockrec.HashSize]byte{}
		}
		return last.Hash
	}

	for e.TotalBlocks() < totalBlocks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		number := e.TotalBlocks() + 1
		payload := txgen.Generate(e, r)
		rec := mining.Mine(number, prevHash(), payload)
		if err := e.Append(rec); err != nil {
			return fmt.Errorf("simulate: append block %d: %w", number, err)
		}
		if progress != nil {
			progress(number, totalBlocks)
		}
	}
	return nil
}
