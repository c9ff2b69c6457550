// Package mining implements the proof-of-work miner collaborator: given a
// candidate block header, it finds a nonce such that SHA-256(header) begins
// with a zero byte. The storage engine never re-verifies this on read —
// mining happens entirely outside the engine.
package mining

import (
	"encoding/binary"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/ledgerforge/blocksim/internal/blockrec"
)

const headerSize = 4 + 4 + blockrec.PayloadSize + blockrec.HashSize

// Mine searches nonces starting at 0 until SHA-256 of the header
// (number | nonce | payload | prevHash) has a leading zero byte, and
// returns the resulting mined Record.
func Mine(number uint32, prevHash [blockrec.HashSize]byte, payload [blockrec.PayloadSize]byte) blockrec.Record {
	var header [headerSize]byte
	binary.LittleEndian.PutUint32(header[0:4], number)
	copy(header[8:8+blockrec.PayloadSize], payload[:])
	copy(header[8+blockrec.PayloadSize:], prevHash[:])

	var nonce uint32
	for {
		binary.LittleEndian.PutUint32(header[4:8], nonce)
		hash := sha256simd.Sum256(header[:])
		if hash[0] == 0 {
			return blockrec.Record{
				Number:   number,
				Nonce:    nonce,
				Payload:  payload,
				PrevHash: prevHash,
				Hash:     hash,
			}
		}
		nonce++
	}
}

// Genesis mines block 1 with an opaque text payload and the given miner
// byte at payload offset 183; no transactions are scanned for block 1.
func Genesis(message string, miner byte) blockrec.Record {
	var payload [blockrec.PayloadSize]byte
	copy(payload[:blockrec.MinerOffset], message)
	payload[blockrec.MinerOffset] = miner
	var zeroHash [blockrec.HashSize]byte
	return Mine(1, zeroHash, payload)
}
