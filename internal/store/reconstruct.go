package store

import (
	"fmt"

	"github.com/ledgerforge/blocksim/internal/blockrec"
	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/metrics"
)

// reconstructBatchRecords is the batch size used to amortise I/O while
// replaying the log on Open: 256 records = 64 KiB per read.
const reconstructBatchRecords = 256

// reconstructionResult bundles everything Open rebuilds by replaying
// blockchain.bin before the Engine is usable.
type reconstructionResult struct {
	total     uint32
	nonceIdx  *nonceIndex
	minerIdx  *minerIndex
	txCounts  *txCountCache
	agg       *aggregates
}

// reconstruct replays every whole record in l, in order, through
// applyBlock — the same path Append uses — so the result is bit-identical
// to what Append would have produced for the same sequence. A trailing
// partial record (file size not a multiple of RecordSize) is discarded
// rather than causing an error: it can only be the tail of a write that
// was interrupted before completion. It is cut from the file, so the next
// append lands right after the last whole record.
func reconstruct(l *blockLog, logger logging.Logger, mtr *metrics.Collector) (reconstructionResult, error) {
	size, err := l.size()
	if err != nil {
		return reconstructionResult{}, err
	}

	whole := wholeRecordCount(size)
	if rem := size % blockrec.RecordSize; rem != 0 {
		logger.Warn("trailing partial record on reconstruction ignored", "dangling_bytes", rem)
		if err := l.f.Truncate(whole * blockrec.RecordSize); err != nil {
			return reconstructionResult{}, fmt.Errorf("blocksim: reconstruct: drop trailing partial record: %w", err)
		}
	}

	result := reconstructionResult{
		nonceIdx: newNonceIndex(int(whole)),
		minerIdx: newMinerIndex(),
		txCounts: newTxCountCache(),
		agg:      newAggregates(),
	}

	buf := make([]byte, reconstructBatchRecords*blockrec.RecordSize)
	var offset int64
	remaining := whole
	for remaining > 0 {
		batch := int64(reconstructBatchRecords)
		if batch > remaining {
			batch = remaining
		}
		chunk := buf[:batch*blockrec.RecordSize]
		if err := l.readAt(offset, chunk); err != nil {
			return reconstructionResult{}, err
		}
		for i := int64(0); i < batch; i++ {
			raw := chunk[i*blockrec.RecordSize : (i+1)*blockrec.RecordSize]
			rec, err := blockrec.Decode(raw)
			if err != nil {
				return reconstructionResult{}, fmt.Errorf("blocksim: reconstruct: decode record at offset %d: %w", offset+i*blockrec.RecordSize, err)
			}
			applyBlock(rec, result.agg, result.nonceIdx, result.minerIdx, result.txCounts, logger)
			result.total++
		}
		offset += batch * blockrec.RecordSize
		remaining -= batch
	}

	mtr.AddReconstructed(int(result.total))
	return result, nil
}
