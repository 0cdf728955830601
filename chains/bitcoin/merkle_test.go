package bitcoin

import (
	"testing"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// merkleStore builds the tree for n transactions the way block validation
// does and returns leaf ids with the flattened store
func merkleStore(t *testing.T, n int) ([]string, []string) {
	t.Helper()

	addr := testAddress(t, &chaincfg.MainNetParams)
	txs := make([]*btcutil.Tx, n)
	ids := make([]string, n)
	for i := range txs {
		txs[i] = btcutil.NewTx(testTx(t, addr, uint32(i)))
		ids[i] = txs[i].Hash().String()
	}

	store := blockchain.BuildMerkleTreeStore(txs, false)
	nodes := make([]string, len(store))
	for i, h := range store {
		if h != nil {
			nodes[i] = h.String()
		}
	}
	return ids, nodes
}

func TestVerifyMerkleProof(t *testing.T) {
	// four leaves: store is [l0 l1 l2 l3 n01 n23 root]
	ids, nodes := merkleStore(t, 4)
	root := nodes[6]

	tests := []struct {
		name   string
		pos    int
		merkle []string
	}{
		{name: "first", pos: 0, merkle: []string{nodes[1], nodes[5]}},
		{name: "second", pos: 1, merkle: []string{nodes[0], nodes[5]}},
		{name: "third", pos: 2, merkle: []string{nodes[3], nodes[4]}},
		{name: "last", pos: 3, merkle: []string{nodes[2], nodes[4]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, VerifyMerkleProof(ids[tt.pos], tt.merkle, tt.pos, root))
		})
	}
}

func TestVerifyMerkleProofOddLeaf(t *testing.T) {
	// three leaves: the last one is paired with itself
	ids, nodes := merkleStore(t, 3)
	require.Empty(t, nodes[3])

	err := VerifyMerkleProof(ids[2], []string{ids[2], nodes[4]}, 2, nodes[6])
	assert.NoError(t, err)
}

func TestVerifyMerkleProofSingleTx(t *testing.T) {
	ids, nodes := merkleStore(t, 1)
	assert.NoError(t, VerifyMerkleProof(ids[0], nil, 0, nodes[0]))
}

func TestVerifyMerkleProofRejects(t *testing.T) {
	ids, nodes := merkleStore(t, 4)
	root := nodes[6]

	err := VerifyMerkleProof(ids[2], []string{nodes[3], nodes[4]}, 3, root)
	assert.ErrorIs(t, err, ErrMerkleMismatch)

	err = VerifyMerkleProof(ids[1], []string{nodes[3], nodes[4]}, 2, root)
	assert.ErrorIs(t, err, ErrMerkleMismatch)

	err = VerifyMerkleProof(ids[2], []string{nodes[3], nodes[4]}, 9, root)
	assert.ErrorContains(t, err, "out of range")

	err = VerifyMerkleProof(ids[2], []string{"xyz"}, 0, root)
	assert.ErrorContains(t, err, "invalid merkle branch hash 0")

	err = VerifyMerkleProof(ids[2], nil, -1, root)
	assert.Error(t, err)
}
