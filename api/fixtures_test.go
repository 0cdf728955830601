package api

import (
	"bytes"
	"net/http"
	"sync"
	"testing"

	"github.com/jarcoal/httpmock"
)

const (
	testURL = "https://esplora.test/api"

	testBlockHash = "000000000000003aaa3b99e31ed1cac4744b423f9e52ada4971461c81d4192f7"
	testTxID      = "bdbaa506c8903918b407fca86bd3498cd7794000b22cddeb1c87c2d9eb8fab62"
	testAddress   = "n1vgV8XmoggmRXzW3hGD8ZNTAgvhcwT4Gk"
	testLastSeen  = "bf1454b31bc132622d989a1497d8e7344007b8376443a95b2733fd04afd9f8a3"
	testScript    = "8b4a47a2641ec4e7e9362fb8d5a18bde4a1ea8d6407e69ba6775d2ba30aa3bfb"
)

const blockJSON = `{
	"id": "000000000000003aaa3b99e31ed1cac4744b423f9e52ada4971461c81d4192f7",
	"height": 1835522,
	"version": 536870912,
	"timestamp": 1600526295,
	"mediantime": 1600521855,
	"bits": 436469756,
	"nonce": 3467749547,
	"difficulty": 16777216,
	"merkle_root": "c1b1e3c0bb8b4e45bbbe30fa3d75a2b8a5c1a3d3d0bc35e0a0f3db1b3d6a2ed1",
	"tx_count": 53,
	"size": 14770,
	"weight": 44281,
	"previousblockhash": "0000000000000045fc0b5e0d4f5a1e5e4a2c3a6e7b1b7b7e4d2d2c0e1f1b1a1c"
}`

const blockMissingHeightJSON = `{
	"id": "000000000000003aaa3b99e31ed1cac4744b423f9e52ada4971461c81d4192f7",
	"version": 536870912,
	"timestamp": 1600526295,
	"bits": 436469756,
	"nonce": 3467749547,
	"difficulty": 16777216,
	"merkle_root": "c1b1e3c0bb8b4e45bbbe30fa3d75a2b8a5c1a3d3d0bc35e0a0f3db1b3d6a2ed1",
	"tx_count": 53,
	"size": 14770,
	"weight": 44281,
	"previousblockhash": "0000000000000045fc0b5e0d4f5a1e5e4a2c3a6e7b1b7b7e4d2d2c0e1f1b1a1c"
}`

const txJSON = `{
	"txid": "bdbaa506c8903918b407fca86bd3498cd7794000b22cddeb1c87c2d9eb8fab62",
	"version": 2,
	"locktime": 1835521,
	"size": 223,
	"weight": 565,
	"fee": 1000,
	"vin": [
		{
			"txid": "6f7cf9580f1c2dfb3c4d5d043cdbb128c640e3f20161245aa7372e9666168516",
			"vout": 1,
			"prevout": {
				"scriptpubkey": "0014d2b9f1a1c0f1e2d3c4b5a6978879695a4b3c2d1e",
				"scriptpubkey_asm": "OP_0 OP_PUSHBYTES_20 d2b9f1a1c0f1e2d3c4b5a6978879695a4b3c2d1e",
				"scriptpubkey_type": "v0_p2wpkh",
				"scriptpubkey_address": "tb1q62ulrgwq78ld839456ts37fd9d9ncch5qejp3z",
				"value": 150000
			},
			"scriptsig": "",
			"scriptsig_asm": "",
			"witness": [
				"3044022000d1f2a6e1d3bdc4dd2a8a3d4e6bbf2f3d3e4a5b6c7d8e9f0a1b2c3d4e5f6a7b0220",
				"02a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2"
			],
			"is_coinbase": false,
			"sequence": 4294967294
		}
	],
	"vout": [
		{
			"scriptpubkey": "76a914dfdf4d53296fac595dc33d8ac7216ba516b8dcc588ac",
			"scriptpubkey_asm": "OP_DUP OP_HASH160 OP_PUSHBYTES_20 dfdf4d53296fac595dc33d8ac7216ba516b8dcc5 OP_EQUALVERIFY OP_CHECKSIG",
			"scriptpubkey_type": "p2pkh",
			"scriptpubkey_address": "n1vgV8XmoggmRXzW3hGD8ZNTAgvhcwT4Gk",
			"value": 100000
		},
		{
			"scriptpubkey": "6a0b68656c6c6f20776f726c64",
			"scriptpubkey_asm": "OP_RETURN OP_PUSHBYTES_11 68656c6c6f20776f726c64",
			"scriptpubkey_type": "op_return",
			"value": 0
		},
		{
			"scriptpubkey": "0014bfcc245931cbad63d09f62df43bcab989991014e",
			"scriptpubkey_asm": "OP_0 OP_PUSHBYTES_20 bfcc245931cbad63d09f62df43bcab989991014e",
			"scriptpubkey_type": "v0_p2wpkh",
			"scriptpubkey_address": "tb1qhlxzgkf3ewkk85ylvt058j4tnzv3zq2wx3ecn",
			"value": 49000
		}
	],
	"status": {
		"confirmed": true,
		"block_height": 1835522,
		"block_hash": "000000000000003aaa3b99e31ed1cac4744b423f9e52ada4971461c81d4192f7",
		"block_time": 1600526295
	}
}`

const coinbaseTxJSON = `{
	"txid": "2f1b3d4e5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d",
	"version": 1,
	"locktime": 0,
	"size": 120,
	"weight": 480,
	"fee": 0,
	"vin": [
		{
			"txid": "0000000000000000000000000000000000000000000000000000000000000000",
			"vout": 4294967295,
			"prevout": null,
			"scriptsig": "03220d1c",
			"scriptsig_asm": "OP_PUSHBYTES_3 220d1c",
			"is_coinbase": true,
			"sequence": 4294967295
		}
	],
	"vout": [
		{
			"scriptpubkey": "76a914dfdf4d53296fac595dc33d8ac7216ba516b8dcc588ac",
			"scriptpubkey_asm": "OP_DUP OP_HASH160 OP_PUSHBYTES_20 dfdf4d53296fac595dc33d8ac7216ba516b8dcc5 OP_EQUALVERIFY OP_CHECKSIG",
			"scriptpubkey_type": "p2pkh",
			"scriptpubkey_address": "n1vgV8XmoggmRXzW3hGD8ZNTAgvhcwT4Gk",
			"value": 625000000
		}
	]
}`

const txStatusUnconfirmedJSON = `{"confirmed": false}`

const merkleProofJSON = `{
	"block_height": 1835522,
	"merkle": [
		"6f7cf9580f1c2dfb3c4d5d043cdbb128c640e3f20161245aa7372e9666168516",
		"a8b1baa3b3d9b0a9e8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5"
	],
	"pos": 2
}`

const outspendsJSON = `[
	{
		"spent": true,
		"txid": "fac9af7f793330af3cc0bce4790d98499c59d47a125af7260edd61d647003316",
		"vin": 0,
		"status": {
			"confirmed": true,
			"block_height": 1835600,
			"block_hash": "00000000000000287d4c3b6a8e0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a",
			"block_time": 1600570000
		}
	},
	{"spent": false}
]`

const addressInfoJSON = `{
	"address": "n1vgV8XmoggmRXzW3hGD8ZNTAgvhcwT4Gk",
	"chain_stats": {
		"funded_txo_count": 5,
		"funded_txo_sum": 750000,
		"spent_txo_count": 3,
		"spent_txo_sum": 400000,
		"tx_count": 7
	},
	"mempool_stats": {
		"funded_txo_count": 1,
		"funded_txo_sum": 10000,
		"spent_txo_count": 0,
		"spent_txo_sum": 0,
		"tx_count": 1
	}
}`

const scriptHashInfoJSON = `{
	"scripthash": "8b4a47a2641ec4e7e9362fb8d5a18bde4a1ea8d6407e69ba6775d2ba30aa3bfb",
	"chain_stats": {
		"funded_txo_count": 1,
		"funded_txo_sum": 5000,
		"spent_txo_count": 0,
		"spent_txo_sum": 0,
		"tx_count": 1
	},
	"mempool_stats": {
		"funded_txo_count": 0,
		"funded_txo_sum": 0,
		"spent_txo_count": 0,
		"spent_txo_sum": 0,
		"tx_count": 0
	}
}`

const utxoJSON = `[
	{
		"txid": "bdbaa506c8903918b407fca86bd3498cd7794000b22cddeb1c87c2d9eb8fab62",
		"vout": 0,
		"status": {
			"confirmed": true,
			"block_height": 1835522,
			"block_hash": "000000000000003aaa3b99e31ed1cac4744b423f9e52ada4971461c81d4192f7",
			"block_time": 1600526295
		},
		"value": 100000
	},
	{
		"txid": "fac9af7f793330af3cc0bce4790d98499c59d47a125af7260edd61d647003316",
		"vout": 3,
		"status": {"confirmed": false},
		"value": 10000
	}
]`

const mempoolJSON = `{
	"count": 8134,
	"vsize": 3444604,
	"total_fee": 29204625,
	"fee_histogram": [[53.01, 102131], [38.56, 110990], [34.12, 138976], [24.34, 112619], [3.16, 246346], [2.92, 239701], [1.1, 775272]]
}`

const mempoolRecentJSON = `[
	{"txid": "4b93c138293a7e3dfea6f0a63d944890b5ba571b03cc22d8c66995535e90dce8", "fee": 18277, "vsize": 2585, "value": 4972029},
	{"txid": "a1a2a3a4a5a6a7a8a9b0b1b2b3b4b5b6b7b8b9c0c1c2c3c4c5c6c7c8c9d0d1d2", "fee": 141, "vsize": 141, "value": 50000}
]`

const feeEstimatesJSON = `{"1": 87.88, "144": 1.03}`

// newMockClient returns a blocking client whose requests go to a fresh
// httpmock transport
func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	mt := httpmock.NewMockTransport()
	return NewClientFromHTTP(testURL, &http.Client{Transport: mt}), mt
}

func callCount(mt *httpmock.MockTransport, method, path string) int {
	return mt.GetCallCountInfo()[method+" "+testURL+path]
}

// syncBuffer is a bytes.Buffer safe for use as a log writer across goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}
