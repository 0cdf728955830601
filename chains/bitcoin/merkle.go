package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var ErrMerkleMismatch = errors.New("merkle proof does not match block merkle root")

// VerifyMerkleProof checks an Electrum-style inclusion proof for txid
// against a block's merkle root. All hashes are in the usual byte-reversed
// hex form; merkle is ordered from the leaf level up.
func VerifyMerkleProof(txid string, merkle []string, pos int, root string) error {
	if pos < 0 {
		return fmt.Errorf("invalid merkle position %d", pos)
	}

	h, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return fmt.Errorf("invalid txid: %w", err)
	}
	want, err := chainhash.NewHashFromStr(root)
	if err != nil {
		return fmt.Errorf("invalid merkle root: %w", err)
	}

	var buf [chainhash.HashSize * 2]byte
	for i, s := range merkle {
		sibling, err := chainhash.NewHashFromStr(s)
		if err != nil {
			return fmt.Errorf("invalid merkle branch hash %d: %w", i, err)
		}
		if (pos>>i)&1 == 0 {
			copy(buf[:chainhash.HashSize], h[:])
			copy(buf[chainhash.HashSize:], sibling[:])
		} else {
			copy(buf[:chainhash.HashSize], sibling[:])
			copy(buf[chainhash.HashSize:], h[:])
		}
		next := chainhash.DoubleHashH(buf[:])
		h = &next
	}

	if pos>>len(merkle) != 0 {
		return fmt.Errorf("merkle position %d out of range for branch of length %d", pos, len(merkle))
	}
	if !h.IsEqual(want) {
		return ErrMerkleMismatch
	}
	return nil
}
