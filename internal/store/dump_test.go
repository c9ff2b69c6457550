package store

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerforge/blocksim/internal/blockrec"
)

func TestFormatBlockGenesisAndTransfer(t *testing.T) {
	genesis := plainRecord(1, 0, 3)
	copy(genesis.Payload[:], "hello chain")

	var buf bytes.Buffer
	FormatBlock(&buf, genesis)
	require.Contains(t, buf.String(), "hello chain")
	require.Contains(t, buf.String(), "BLOCO 1")

	buf.Reset()
	FormatBlock(&buf, transferRecord(2, 1, 3, 7, 9, 11))
	require.Contains(t, buf.String(), "7 -> 9 (11 BTC)")
}

func TestWriteTextDumpCoversEveryBlock(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))
	require.NoError(t, e.Append(plainRecord(2, 2, 2)))

	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, e.WriteTextDump(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "BLOCO 1")
	require.Contains(t, string(data), "BLOCO 2")
}

func TestExportSnapshotRoundTripsThroughGzip(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Append(plainRecord(1, 1, 1)))
	require.NoError(t, e.Append(plainRecord(2, 2, 2)))

	dst := filepath.Join(t.TempDir(), "snapshot.gz")
	require.NoError(t, e.ExportSnapshot(dst))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(gr)
	require.NoError(t, err)
	require.Equal(t, 2*blockrec.RecordSize, out.Len())
}
