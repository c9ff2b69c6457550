package blockrec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	var r Record
	r.Number = 42
	r.Nonce = 0xdeadbeef
	r.Payload[0] = 7
	r.Payload[183] = 9
	r.PrevHash[0] = 0xaa
	r.Hash[31] = 0xbb

	enc := r.Encode()
	require.Len(t, enc, RecordSize)

	got, err := Decode(enc[:])
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, RecordSize-1))
	require.Error(t, err)
}

func TestRecordSizeIs256(t *testing.T) {
	require.Equal(t, 256, RecordSize)
}
