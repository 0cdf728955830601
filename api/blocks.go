package api

import "context"

// GetBlock fetches block metadata by hash
func (c *Client) GetBlock(ctx context.Context, hash string) (*Block, error) {
	return execute(ctx, c, blockRequest(hash))
}

// GetBlockStatus fetches the chain membership status of a block
func (c *Client) GetBlockStatus(ctx context.Context, hash string) (*BlockStatus, error) {
	return execute(ctx, c, blockStatusRequest(hash))
}

// GetBlockTxs fetches up to 25 transactions of a block. The start index
// segment is omitted when startIndex is nil; an index of 0 is sent as is.
func (c *Client) GetBlockTxs(ctx context.Context, hash string, startIndex *uint32) ([]Transaction, error) {
	return execute(ctx, c, blockTxsRequest(hash, startIndex))
}

// GetBlockTxIDs fetches every txid in a block
func (c *Client) GetBlockTxIDs(ctx context.Context, hash string) ([]string, error) {
	return execute(ctx, c, blockTxIDsRequest(hash))
}

// GetBlockTxIDAtIndex fetches the txid at index within a block
func (c *Client) GetBlockTxIDAtIndex(ctx context.Context, hash string, index uint32) (string, error) {
	return execute(ctx, c, blockTxIDAtIndexRequest(hash, index))
}

// GetBlockRaw fetches the serialized block
func (c *Client) GetBlockRaw(ctx context.Context, hash string) ([]byte, error) {
	return execute(ctx, c, blockRawRequest(hash))
}

// GetBlockHeight returns the hash of the block at height
func (c *Client) GetBlockHeight(ctx context.Context, height int64) (string, error) {
	return execute(ctx, c, blockHeightRequest(height))
}

// GetBlocks fetches the 10 blocks ending at startHeight
func (c *Client) GetBlocks(ctx context.Context, startHeight int64) ([]Block, error) {
	return execute(ctx, c, blocksRequest(startHeight))
}

func (c *Client) GetBlocksTipHeight(ctx context.Context) (int64, error) {
	return execute(ctx, c, blocksTipHeightRequest())
}

func (c *Client) GetBlocksTipHash(ctx context.Context) (string, error) {
	return execute(ctx, c, blocksTipHashRequest())
}
