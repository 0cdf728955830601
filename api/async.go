package api

import (
	"context"
)

// Future is the pending result of an AsyncClient call. The request runs in
// its own goroutine from the moment the call returns.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	op     string
	val    T
	err    error
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx is done. When ctx ends
// first the in-flight request is aborted and a transport error wrapping
// ctx.Err() is returned.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		f.cancel()
		var zero T
		return zero, transportError(f.op, "", ctx.Err())
	}
}

// Cancel aborts the in-flight request. Await then returns its error.
func (f *Future[T]) Cancel() {
	f.cancel()
}

func spawn[T any](ctx context.Context, c *Client, r request[T]) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
		op:     r.op,
	}
	go func() {
		defer close(f.done)
		defer cancel()
		f.val, f.err = execute(ctx, c, r)
	}()
	return f
}

// AsyncClient mirrors Client with non-blocking methods returning futures.
// Any number of calls may be in flight at once.
type AsyncClient struct {
	c *Client
}

// NewAsyncClient creates an async client for baseURL with a transport built
// from opts
func NewAsyncClient(baseURL string, opts *Options) (*AsyncClient, error) {
	c, err := NewClient(baseURL, opts)
	if err != nil {
		return nil, err
	}
	return c.Async(), nil
}

// NewAsyncClientFromHTTP pairs baseURL with a caller-configured transport
func NewAsyncClientFromHTTP(baseURL string, httpClient Doer) *AsyncClient {
	return NewClientFromHTTP(baseURL, httpClient).Async()
}

// Sync returns the blocking client sharing a's base URL and transport
func (a *AsyncClient) Sync() *Client {
	return a.c
}

func (a *AsyncClient) BaseURL() string {
	return a.c.baseURL
}

func (a *AsyncClient) GetBlock(ctx context.Context, hash string) *Future[*Block] {
	return spawn(ctx, a.c, blockRequest(hash))
}

func (a *AsyncClient) GetBlockStatus(ctx context.Context, hash string) *Future[*BlockStatus] {
	return spawn(ctx, a.c, blockStatusRequest(hash))
}

// GetBlockTxs omits the start index segment when startIndex is nil
func (a *AsyncClient) GetBlockTxs(ctx context.Context, hash string, startIndex *uint32) *Future[[]Transaction] {
	return spawn(ctx, a.c, blockTxsRequest(hash, startIndex))
}

func (a *AsyncClient) GetBlockTxIDs(ctx context.Context, hash string) *Future[[]string] {
	return spawn(ctx, a.c, blockTxIDsRequest(hash))
}

func (a *AsyncClient) GetBlockTxIDAtIndex(ctx context.Context, hash string, index uint32) *Future[string] {
	return spawn(ctx, a.c, blockTxIDAtIndexRequest(hash, index))
}

func (a *AsyncClient) GetBlockRaw(ctx context.Context, hash string) *Future[[]byte] {
	return spawn(ctx, a.c, blockRawRequest(hash))
}

func (a *AsyncClient) GetBlockHeight(ctx context.Context, height int64) *Future[string] {
	return spawn(ctx, a.c, blockHeightRequest(height))
}

func (a *AsyncClient) GetBlocks(ctx context.Context, startHeight int64) *Future[[]Block] {
	return spawn(ctx, a.c, blocksRequest(startHeight))
}

func (a *AsyncClient) GetBlocksTipHeight(ctx context.Context) *Future[int64] {
	return spawn(ctx, a.c, blocksTipHeightRequest())
}

func (a *AsyncClient) GetBlocksTipHash(ctx context.Context) *Future[string] {
	return spawn(ctx, a.c, blocksTipHashRequest())
}

func (a *AsyncClient) GetTx(ctx context.Context, txid string) *Future[*Transaction] {
	return spawn(ctx, a.c, txRequest(txid))
}

func (a *AsyncClient) GetTxStatus(ctx context.Context, txid string) *Future[*TxStatus] {
	return spawn(ctx, a.c, txStatusRequest(txid))
}

func (a *AsyncClient) GetTxRaw(ctx context.Context, txid string) *Future[[]byte] {
	return spawn(ctx, a.c, txRawRequest(txid))
}

func (a *AsyncClient) GetTxHex(ctx context.Context, txid string) *Future[string] {
	return spawn(ctx, a.c, txHexRequest(txid))
}

func (a *AsyncClient) GetTxMerkleBlockProof(ctx context.Context, txid string) *Future[string] {
	return spawn(ctx, a.c, txMerkleBlockProofRequest(txid))
}

func (a *AsyncClient) GetTxMerkleProof(ctx context.Context, txid string) *Future[*MerkleProof] {
	return spawn(ctx, a.c, txMerkleProofRequest(txid))
}

func (a *AsyncClient) GetTxOutspend(ctx context.Context, txid string, vout uint32) *Future[*Outspent] {
	return spawn(ctx, a.c, txOutspendRequest(txid, vout))
}

func (a *AsyncClient) GetTxOutspends(ctx context.Context, txid string) *Future[[]Outspent] {
	return spawn(ctx, a.c, txOutspendsRequest(txid))
}

func (a *AsyncClient) PostTx(ctx context.Context, hexTx string) *Future[string] {
	return spawn(ctx, a.c, postTxRequest(hexTx))
}

func (a *AsyncClient) GetAddress(ctx context.Context, address string) *Future[*AddressInfo] {
	return spawn(ctx, a.c, addressInfoRequest("GetAddress", addressPrefix, address))
}

func (a *AsyncClient) GetScriptHash(ctx context.Context, hash string) *Future[*AddressInfo] {
	return spawn(ctx, a.c, addressInfoRequest("GetScriptHash", scriptHashPrefix, hash))
}

func (a *AsyncClient) GetAddressTxs(ctx context.Context, address string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsRequest("GetAddressTxs", addressPrefix, address))
}

func (a *AsyncClient) GetScriptHashTxs(ctx context.Context, hash string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsRequest("GetScriptHashTxs", scriptHashPrefix, hash))
}

// GetAddressTxsChain omits the cursor segment when lastSeenTxID is nil
func (a *AsyncClient) GetAddressTxsChain(ctx context.Context, address string, lastSeenTxID *string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsChainRequest("GetAddressTxsChain", addressPrefix, address, lastSeenTxID))
}

func (a *AsyncClient) GetScriptHashTxsChain(ctx context.Context, hash string, lastSeenTxID *string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsChainRequest("GetScriptHashTxsChain", scriptHashPrefix, hash, lastSeenTxID))
}

func (a *AsyncClient) GetAddressTxsMempool(ctx context.Context, address string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsMempoolRequest("GetAddressTxsMempool", addressPrefix, address))
}

func (a *AsyncClient) GetScriptHashTxsMempool(ctx context.Context, hash string) *Future[[]Transaction] {
	return spawn(ctx, a.c, addressTxsMempoolRequest("GetScriptHashTxsMempool", scriptHashPrefix, hash))
}

func (a *AsyncClient) GetAddressUtxo(ctx context.Context, address string) *Future[[]Utxo] {
	return spawn(ctx, a.c, addressUtxoRequest("GetAddressUtxo", addressPrefix, address))
}

func (a *AsyncClient) GetScriptHashUtxo(ctx context.Context, hash string) *Future[[]Utxo] {
	return spawn(ctx, a.c, addressUtxoRequest("GetScriptHashUtxo", scriptHashPrefix, hash))
}

func (a *AsyncClient) GetAddressPrefix(ctx context.Context, prefix string) *Future[[]string] {
	return spawn(ctx, a.c, addressPrefixRequest(prefix))
}

func (a *AsyncClient) GetMempool(ctx context.Context) *Future[*MempoolSummary] {
	return spawn(ctx, a.c, mempoolRequest())
}

func (a *AsyncClient) GetMempoolTxIDs(ctx context.Context) *Future[[]string] {
	return spawn(ctx, a.c, mempoolTxIDsRequest())
}

func (a *AsyncClient) GetMempoolRecent(ctx context.Context) *Future[[]MempoolTxSummary] {
	return spawn(ctx, a.c, mempoolRecentRequest())
}

func (a *AsyncClient) GetFeeEstimates(ctx context.Context) *Future[FeeEstimates] {
	return spawn(ctx, a.c, feeEstimatesRequest())
}
