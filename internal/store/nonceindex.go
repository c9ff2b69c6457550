package store

// nonceBucketBits/-Count size the chained hash table for tens of
// thousands of insertions with short chains: 2^19 = 524,288 buckets.
const (
	nonceBucketBits  = 19
	nonceBucketCount = 1 << nonceBucketBits

	// nonceHashMultiplier is Knuth's multiplicative-hashing constant, a
	// prime close to 2^32/phi (about 2654435769.5). Multiplying and keeping
	// the upper bits of the product is the best-distributed portion.
	nonceHashMultiplier = 2654435761
)

// nonceIndex maps nonce -> set of block ids via chaining, represented as a
// flat struct-of-arrays instead of hand-rolled linked-list nodes:
// cache-local, and grows with one append per insert instead of one
// allocation per insert.
type nonceIndex struct {
	heads    [nonceBucketCount]int32
	nonces   []uint32
	blockIDs []uint32
	next     []int32
}

func newNonceIndex(capacityHint int) *nonceIndex {
	idx := &nonceIndex{
		nonces:   make([]uint32, 0, capacityHint),
		blockIDs: make([]uint32, 0, capacityHint),
		next:     make([]int32, 0, capacityHint),
	}
	for i := range idx.heads {
		idx.heads[i] = -1
	}
	return idx
}

func nonceBucket(nonce uint32) uint32 {
	return (nonce * nonceHashMultiplier) >> (32 - nonceBucketBits)
}

// insert prepends a (nonce, blockID) node to its bucket — O(1).
func (idx *nonceIndex) insert(nonce, blockID uint32) {
	bucket := nonceBucket(nonce)
	node := int32(len(idx.nonces))
	idx.nonces = append(idx.nonces, nonce)
	idx.blockIDs = append(idx.blockIDs, blockID)
	idx.next = append(idx.next, idx.heads[bucket])
	idx.heads[bucket] = node
}

// lookup returns every block id that was mined with the given nonce, in
// reverse insertion order (most recent first) — callers that need
// ascending block-id order sort the result themselves.
func (idx *nonceIndex) lookup(nonce uint32) []uint32 {
	var out []uint32
	for n := idx.heads[nonceBucket(nonce)]; n != -1; n = idx.next[n] {
		if idx.nonces[n] == nonce {
			out = append(out, idx.blockIDs[n])
		}
	}
	return out
}

// bucketLengths reports the chain length of every bucket, for the CLI's
// hash-table histogram / collision report.
func (idx *nonceIndex) bucketLengths() []int {
	lengths := make([]int, nonceBucketCount)
	for _, nonce := range idx.nonces {
		lengths[nonceBucket(nonce)]++
	}
	return lengths
}
