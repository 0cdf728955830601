package api

import (
	"net/http"
	"net/url"
	"strconv"
)

// request describes one endpoint call: route, method, body and how the
// response body is decoded. Client and AsyncClient both run these.
type request[T any] struct {
	op     string
	method string
	path   string
	body   *string
	decode decoder[T]
}

func get[T any](op string, decode func(data []byte) (T, error), segments ...string) request[T] {
	return request[T]{op: op, method: http.MethodGet, path: route(segments...), decode: decode}
}

// route joins escaped path segments into "/a/b/c"
func route(segments ...string) string {
	var p string
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

// withOptional appends opt as a final segment when it is set
func withOptional(segments []string, opt *string) []string {
	if opt == nil {
		return segments
	}
	return append(segments, *opt)
}

func optionalIndex(i *uint32) *string {
	if i == nil {
		return nil
	}
	s := strconv.FormatUint(uint64(*i), 10)
	return &s
}

func u32(n uint32) string { return strconv.FormatUint(uint64(n), 10) }
func i64(n int64) string  { return strconv.FormatInt(n, 10) }

// blocks

func blockRequest(hash string) request[*Block] {
	return get("GetBlock", decodeJSON[*Block], "block", hash)
}

func blockStatusRequest(hash string) request[*BlockStatus] {
	return get("GetBlockStatus", decodeJSON[*BlockStatus], "block", hash, "status")
}

func blockTxsRequest(hash string, startIndex *uint32) request[[]Transaction] {
	return get("GetBlockTxs", decodeJSON[[]Transaction],
		withOptional([]string{"block", hash, "txs"}, optionalIndex(startIndex))...)
}

func blockTxIDsRequest(hash string) request[[]string] {
	return get("GetBlockTxIDs", decodeJSON[[]string], "block", hash, "txids")
}

func blockTxIDAtIndexRequest(hash string, index uint32) request[string] {
	return get("GetBlockTxIDAtIndex", decodeText, "block", hash, "txid", u32(index))
}

func blockRawRequest(hash string) request[[]byte] {
	return get("GetBlockRaw", decodeBytes, "block", hash, "raw")
}

func blockHeightRequest(height int64) request[string] {
	return get("GetBlockHeight", decodeText, "block-height", i64(height))
}

func blocksRequest(startHeight int64) request[[]Block] {
	return get("GetBlocks", decodeJSON[[]Block], "blocks", i64(startHeight))
}

func blocksTipHeightRequest() request[int64] {
	return get("GetBlocksTipHeight", decodeInt, "blocks", "tip", "height")
}

func blocksTipHashRequest() request[string] {
	return get("GetBlocksTipHash", decodeText, "blocks", "tip", "hash")
}

// transactions

func txRequest(txid string) request[*Transaction] {
	return get("GetTx", decodeJSON[*Transaction], "tx", txid)
}

func txStatusRequest(txid string) request[*TxStatus] {
	return get("GetTxStatus", decodeJSON[*TxStatus], "tx", txid, "status")
}

func txRawRequest(txid string) request[[]byte] {
	return get("GetTxRaw", decodeBytes, "tx", txid, "raw")
}

// txHexRequest shares the raw route and decodes the body as text
func txHexRequest(txid string) request[string] {
	return get("GetTxHex", decodeText, "tx", txid, "raw")
}

func txMerkleBlockProofRequest(txid string) request[string] {
	return get("GetTxMerkleBlockProof", decodeText, "tx", txid, "merkleblock-proof")
}

func txMerkleProofRequest(txid string) request[*MerkleProof] {
	return get("GetTxMerkleProof", decodeJSON[*MerkleProof], "tx", txid, "merkle-proof")
}

func txOutspendRequest(txid string, vout uint32) request[*Outspent] {
	return get("GetTxOutspend", decodeJSON[*Outspent], "tx", txid, "outspend", u32(vout))
}

func txOutspendsRequest(txid string) request[[]Outspent] {
	return get("GetTxOutspends", decodeJSON[[]Outspent], "tx", txid, "outspends")
}

func postTxRequest(hexTx string) request[string] {
	return request[string]{
		op:     "PostTx",
		method: http.MethodPost,
		path:   route("tx"),
		body:   &hexTx,
		decode: decodeText,
	}
}

// addresses and scripthashes share route shapes under different prefixes

const (
	addressPrefix    = "address"
	scriptHashPrefix = "scripthash"
)

func addressInfoRequest(op, prefix, key string) request[*AddressInfo] {
	return get(op, decodeJSON[*AddressInfo], prefix, key)
}

func addressTxsRequest(op, prefix, key string) request[[]Transaction] {
	return get(op, decodeJSON[[]Transaction], prefix, key, "txs")
}

func addressTxsChainRequest(op, prefix, key string, lastSeenTxID *string) request[[]Transaction] {
	return get(op, decodeJSON[[]Transaction],
		withOptional([]string{prefix, key, "txs", "chain"}, lastSeenTxID)...)
}

func addressTxsMempoolRequest(op, prefix, key string) request[[]Transaction] {
	return get(op, decodeJSON[[]Transaction], prefix, key, "txs", "mempool")
}

func addressUtxoRequest(op, prefix, key string) request[[]Utxo] {
	return get(op, decodeJSON[[]Utxo], prefix, key, "utxo")
}

func addressPrefixRequest(prefix string) request[[]string] {
	return get("GetAddressPrefix", decodeJSON[[]string], "address-prefix", prefix)
}

// mempool and fees

func mempoolRequest() request[*MempoolSummary] {
	return get("GetMempool", decodeJSON[*MempoolSummary], "mempool")
}

func mempoolTxIDsRequest() request[[]string] {
	return get("GetMempoolTxIDs", decodeJSON[[]string], "mempool", "txids")
}

func mempoolRecentRequest() request[[]MempoolTxSummary] {
	return get("GetMempoolRecent", decodeJSON[[]MempoolTxSummary], "mempool", "recent")
}

func feeEstimatesRequest() request[FeeEstimates] {
	return get("GetFeeEstimates", decodeJSON[FeeEstimates], "fee-estimates")
}
