package api

import "context"

// GetAddress fetches chain and mempool stats for an address
func (c *Client) GetAddress(ctx context.Context, address string) (*AddressInfo, error) {
	return execute(ctx, c, addressInfoRequest("GetAddress", addressPrefix, address))
}

// GetScriptHash fetches chain and mempool stats for a scripthash
func (c *Client) GetScriptHash(ctx context.Context, hash string) (*AddressInfo, error) {
	return execute(ctx, c, addressInfoRequest("GetScriptHash", scriptHashPrefix, hash))
}

// GetAddressTxs fetches mempool transactions followed by the newest
// confirmed transactions of an address
func (c *Client) GetAddressTxs(ctx context.Context, address string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsRequest("GetAddressTxs", addressPrefix, address))
}

func (c *Client) GetScriptHashTxs(ctx context.Context, hash string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsRequest("GetScriptHashTxs", scriptHashPrefix, hash))
}

// GetAddressTxsChain fetches a page of confirmed transactions, newest first.
// Pass the last txid of the previous page as lastSeenTxID to continue; nil
// requests the first page.
func (c *Client) GetAddressTxsChain(ctx context.Context, address string, lastSeenTxID *string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsChainRequest("GetAddressTxsChain", addressPrefix, address, lastSeenTxID))
}

// GetScriptHashTxsChain is GetAddressTxsChain for a scripthash
func (c *Client) GetScriptHashTxsChain(ctx context.Context, hash string, lastSeenTxID *string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsChainRequest("GetScriptHashTxsChain", scriptHashPrefix, hash, lastSeenTxID))
}

func (c *Client) GetAddressTxsMempool(ctx context.Context, address string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsMempoolRequest("GetAddressTxsMempool", addressPrefix, address))
}

func (c *Client) GetScriptHashTxsMempool(ctx context.Context, hash string) ([]Transaction, error) {
	return execute(ctx, c, addressTxsMempoolRequest("GetScriptHashTxsMempool", scriptHashPrefix, hash))
}

// GetAddressUtxo fetches the unspent outputs of an address
func (c *Client) GetAddressUtxo(ctx context.Context, address string) ([]Utxo, error) {
	return execute(ctx, c, addressUtxoRequest("GetAddressUtxo", addressPrefix, address))
}

func (c *Client) GetScriptHashUtxo(ctx context.Context, hash string) ([]Utxo, error) {
	return execute(ctx, c, addressUtxoRequest("GetScriptHashUtxo", scriptHashPrefix, hash))
}

// GetAddressPrefix searches addresses starting with prefix. Servers may
// disable this route, which surfaces as an ordinary transport error.
func (c *Client) GetAddressPrefix(ctx context.Context, prefix string) ([]string, error) {
	return execute(ctx, c, addressPrefixRequest(prefix))
}
