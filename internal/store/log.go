package store

import (
	"fmt"
	"io"
	"os"

	"github.com/ledgerforge/blocksim/internal/blockrec"
)

// blockLog is the on-disk block log: a raw concatenation of RecordSize-byte
// records, no header or framing. The i-th record starts at byte
// (i-1)*RecordSize.
type blockLog struct {
	f *os.File
}

func openBlockLog(path string) (*blockLog, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blocksim: open log %s: %w", path, err)
	}
	return &blockLog{f: f}, nil
}

// size returns the current byte length of the log file.
func (l *blockLog) size() (int64, error) {
	info, err := l.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("blocksim: stat log: %w", err)
	}
	return info.Size(), nil
}

// appendBatch seeks to the end of the file and writes buf (a whole number
// of records) in one call, then flushes to stable storage. A short write is
// reported to the caller: the engine continues operating from memory, but
// the next Open will truncate to the persisted prefix.
func (l *blockLog) appendBatch(buf []byte) error {
	if _, err := l.f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("blocksim: seek log: %w", err)
	}
	n, err := l.f.Write(buf)
	if err != nil {
		return fmt.Errorf("blocksim: write log: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("blocksim: short write to log: wrote %d of %d bytes", n, len(buf))
	}
	return l.f.Sync()
}

// readAt fills buf (which must be a whole number of RecordSize bytes) from
// the given byte offset.
func (l *blockLog) readAt(offset int64, buf []byte) error {
	_, err := l.f.ReadAt(buf, offset)
	if err != nil {
		return fmt.Errorf("blocksim: read log at %d: %w", offset, err)
	}
	return nil
}

func (l *blockLog) close() error {
	return l.f.Close()
}

// wholeRecordCount returns how many complete RecordSize-byte records are
// present, discarding any trailing partial record.
func wholeRecordCount(size int64) int64 {
	return size / blockrec.RecordSize
}
