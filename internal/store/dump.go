package store

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/ledgerforge/blocksim/internal/blockrec"
)

// FormatBlock renders a single block the way both the interactive menu
// and the text dump print it, so the two presentation paths share one
// formatter instead of drifting apart independently.
func FormatBlock(w io.Writer, rec blockrec.Record) {
	fmt.Fprintf(w, "--- BLOCO %d ---\n", rec.Number)
	fmt.Fprintf(w, "nonce: %d\n", rec.Nonce)
	fmt.Fprintf(w, "hash: %s\n", hex.EncodeToString(rec.Hash[:]))
	fmt.Fprintf(w, "hash anterior: %s\n", hex.EncodeToString(rec.PrevHash[:]))
	if rec.Number == 1 {
		fmt.Fprintf(w, "%s\n", blockrec.GenesisText(rec.Payload))
		return
	}
	for _, tx := range blockrec.Transactions(rec.Payload) {
		fmt.Fprintf(w, "%d -> %d (%d BTC)\n", tx.From, tx.To, tx.Value)
	}
}

// WriteTextDump renders every block in the chain to path as a
// human-readable debug artifact. The engine never reads this file back.
func (e *Engine) WriteTextDump(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("blocksim: create text dump %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for id := uint32(1); id <= e.totalBlocks; id++ {
		rec, err := e.Read(id)
		if err != nil {
			_ = f.Close()
			return err
		}
		FormatBlock(w, rec)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("blocksim: flush text dump %s: %w", path, err)
	}
	return f.Close()
}

// ExportSnapshot writes a gzip-compressed copy of the on-disk block log to
// dstPath, sized for a single growing file rather than a sharded segment
// set. The append buffer is flushed first so the snapshot reflects every
// block currently visible through Read.
func (e *Engine) ExportSnapshot(dstPath string) error {
	if err := e.flushBuffer(); err != nil {
		return err
	}

	src, err := os.Open(e.LogPath())
	if err != nil {
		return fmt.Errorf("blocksim: open log for snapshot: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("blocksim: create snapshot %s: %w", dstPath, err)
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		return fmt.Errorf("blocksim: write snapshot %s: %w", dstPath, err)
	}
	return gz.Close()
}
