package api

import "context"

// GetTx fetches a transaction with its inputs, outputs and status
func (c *Client) GetTx(ctx context.Context, txid string) (*Transaction, error) {
	return execute(ctx, c, txRequest(txid))
}

// GetTxStatus fetches the confirmation status of a transaction
func (c *Client) GetTxStatus(ctx context.Context, txid string) (*TxStatus, error) {
	return execute(ctx, c, txStatusRequest(txid))
}

// GetTxRaw fetches the serialized transaction as bytes
func (c *Client) GetTxRaw(ctx context.Context, txid string) ([]byte, error) {
	return execute(ctx, c, txRawRequest(txid))
}

// GetTxHex fetches the same route as GetTxRaw and returns the body as text
func (c *Client) GetTxHex(ctx context.Context, txid string) (string, error) {
	return execute(ctx, c, txHexRequest(txid))
}

// GetTxMerkleBlockProof fetches a bitcoind merkleblock-format inclusion
// proof, hex encoded
func (c *Client) GetTxMerkleBlockProof(ctx context.Context, txid string) (string, error) {
	return execute(ctx, c, txMerkleBlockProofRequest(txid))
}

// GetTxMerkleProof fetches an Electrum-format inclusion proof
func (c *Client) GetTxMerkleProof(ctx context.Context, txid string) (*MerkleProof, error) {
	return execute(ctx, c, txMerkleProofRequest(txid))
}

// GetTxOutspend fetches the spend status of output vout
func (c *Client) GetTxOutspend(ctx context.Context, txid string, vout uint32) (*Outspent, error) {
	return execute(ctx, c, txOutspendRequest(txid, vout))
}

// GetTxOutspends fetches the spend status of every output, in output order
func (c *Client) GetTxOutspends(ctx context.Context, txid string) ([]Outspent, error) {
	return execute(ctx, c, txOutspendsRequest(txid))
}

// PostTx broadcasts a hex encoded signed transaction and returns its txid.
// Broadcasting is not idempotent in effect but is safe to repeat.
func (c *Client) PostTx(ctx context.Context, hexTx string) (string, error) {
	return execute(ctx, c, postTxRequest(hexTx))
}
