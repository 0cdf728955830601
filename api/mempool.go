package api

import "context"

// GetMempool fetches the mempool backlog summary
func (c *Client) GetMempool(ctx context.Context) (*MempoolSummary, error) {
	return execute(ctx, c, mempoolRequest())
}

// GetMempoolTxIDs fetches every txid in the mempool, in no particular order
func (c *Client) GetMempoolTxIDs(ctx context.Context) ([]string, error) {
	return execute(ctx, c, mempoolTxIDsRequest())
}

// GetMempoolRecent fetches at most the last 10 transactions to enter the
// mempool
func (c *Client) GetMempoolRecent(ctx context.Context) ([]MempoolTxSummary, error) {
	return execute(ctx, c, mempoolRecentRequest())
}

// GetFeeEstimates fetches feerates (sat/vB) keyed by confirmation target
func (c *Client) GetFeeEstimates(ctx context.Context) (FeeEstimates, error) {
	return execute(ctx, c, feeEstimatesRequest())
}
