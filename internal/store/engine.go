// Package store implements the append-only block log, its secondary
// indices, the running financial-state aggregates, and the analytical
// queries that read them.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gofrs/flock"

	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/metrics"
)

// readCacheSize bounds the LRU cache sitting in front of disk reads for
// persisted (non-buffered) records, independent of the 16-slot append
// buffer that is never evicted.
const readCacheSize = 4096

// Engine is the single-node storage/index/analytics engine. All state is
// owned by the Engine instance — multiple Engines may coexist in one
// process as long as they point at different data directories.
type Engine struct {
	dir         string
	logFileName string

	log  *blockLog
	lock *flock.Flock

	buffer      appendBuffer
	totalBlocks uint32

	nonceIdx *nonceIndex
	minerIdx *minerIndex
	txCounts *txCountCache
	agg      *aggregates

	readCache *lru.Cache[uint32, blockrec.Record]

	logger  logging.Logger
	metrics *metrics.Collector
}

// Options configures Open.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Collector

	// LogFileName overrides the block log's file name within dir. Empty
	// means the default, "blockchain.bin".
	LogFileName string
}

const logFileName = "blockchain.bin"
const lockFileName = ".blocksim.lock"

// Open opens (creating if necessary) the block log under dir, locks the
// data directory against concurrent Engines, and — if the log is
// non-empty — reconstructs every index and aggregate by replaying it
// before returning.
func Open(dir string, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == (logging.Logger{}) {
		logger = logging.Nop()
	}

	name := opts.LogFileName
	if name == "" {
		name = logFileName
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blocksim: create data dir %s: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("blocksim: lock data dir %s: %w", dir, err)
	}
	if !locked {
		return nil, ErrLocked
	}

	l, err := openBlockLog(filepath.Join(dir, name))
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	start := time.Now()
	result, err := reconstruct(l, logger, opts.Metrics)
	if err != nil {
		_ = l.close()
		_ = lock.Unlock()
		return nil, err
	}
	opts.Metrics.ObserveReconstructSeconds(time.Since(start).Seconds())

	cache, err := lru.New[uint32, blockrec.Record](readCacheSize)
	if err != nil {
		_ = l.close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("blocksim: create read cache: %w", err)
	}

	logger.Info("engine opened", "dir", dir, "total_blocks", result.total)

	return &Engine{
		dir:         dir,
		logFileName: name,
		log:         l,
		lock:        lock,
		totalBlocks: result.total,
		nonceIdx:    result.nonceIdx,
		minerIdx:    result.minerIdx,
		txCounts:    result.txCounts,
		agg:         result.agg,
		readCache:   cache,
		logger:      logger,
		metrics:     opts.Metrics,
	}, nil
}

// TotalBlocks is the number of records in the log plus the buffer.
func (e *Engine) TotalBlocks() uint32 {
	return e.totalBlocks
}

// DataDir returns the directory this engine's log file lives in.
func (e *Engine) DataDir() string {
	return e.dir
}

// LogPath returns the path to this engine's block log file: the data
// directory as passed to Open joined with the log file name.
func (e *Engine) LogPath() string {
	return filepath.Join(e.dir, e.logFileName)
}

// GetBalance satisfies txgen.BalanceSource: it is the one piece of engine
// state the transaction generator consults.
func (e *Engine) GetBalance(addr byte) uint32 {
	return e.agg.balances[addr]
}

// Append adds a mined block to the chain. rec.Number must be exactly
// TotalBlocks()+1. All indices and aggregates are updated before Append
// returns; once every BufferCapacity-th block is appended, the buffer is
// bulk-written to the log in one call.
func (e *Engine) Append(rec blockrec.Record) error {
	if rec.Number != e.totalBlocks+1 {
		return fmt.Errorf("%w: expected %d, got %d", ErrSequenceMismatch, e.totalBlocks+1, rec.Number)
	}

	applyBlock(rec, e.agg, e.nonceIdx, e.minerIdx, e.txCounts, e.logger)
	e.buffer.push(rec)
	e.totalBlocks = rec.Number
	e.metrics.IncAppend()

	if e.buffer.full() {
		if err := e.flushBuffer(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) flushBuffer() error {
	if e.buffer.count == 0 {
		return nil
	}
	buf := make([]byte, 0, e.buffer.count*blockrec.RecordSize)
	for i := 0; i < e.buffer.count; i++ {
		enc := e.buffer.records[i].Encode()
		buf = append(buf, enc[:]...)
	}
	if err := e.log.appendBatch(buf); err != nil {
		e.logger.Error("buffer flush failed; in-memory state now diverges from disk until next Open", "err", err)
		return err
	}
	e.buffer.reset()
	return nil
}

// Read resolves a 1-based block id to its record, transparently serving it
// from the append buffer or the on-disk log. It is idempotent and has no
// side effects on the aggregates.
func (e *Engine) Read(id uint32) (blockrec.Record, error) {
	if id == 0 || id > e.totalBlocks {
		return blockrec.Record{}, ErrOutOfRange
	}

	persisted := e.totalBlocks - uint32(e.buffer.count)
	if id > persisted {
		return e.buffer.at(int(id - persisted - 1)), nil
	}

	if rec, ok := e.readCache.Get(id); ok {
		return rec, nil
	}

	var raw [blockrec.RecordSize]byte
	if err := e.log.readAt(int64(id-1)*blockrec.RecordSize, raw[:]); err != nil {
		return blockrec.Record{}, fmt.Errorf("blocksim: read block %d: %w", id, err)
	}
	rec, err := blockrec.Decode(raw[:])
	if err != nil {
		return blockrec.Record{}, err
	}
	e.readCache.Add(id, rec)
	return rec, nil
}

// Close flushes the buffer, closes the log file, releases the data
// directory lock, and frees every index and aggregate. A subsequent Open
// does not see any state left over from this Engine.
func (e *Engine) Close() error {
	flushErr := e.flushBuffer()

	closeErr := e.log.close()
	if e.lock != nil {
		_ = e.lock.Unlock()
	}

	e.nonceIdx = nil
	e.minerIdx = nil
	e.txCounts = nil
	e.agg = nil
	e.readCache.Purge()
	e.totalBlocks = 0

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
