package api

import (
	"fmt"
	"sort"
	"strconv"
)

// Amounts are always in satoshis. Required fields missing from a response
// fail decoding; optional fields are pointers.

// Block represents a block header and its metadata
type Block struct {
	ID                string  `json:"id"`
	Height            int64   `json:"height"`
	Version           int32   `json:"version"`
	Timestamp         int64   `json:"timestamp"`
	MedianTime        *int64  `json:"mediantime,omitempty"`
	Bits              uint32  `json:"bits"`
	Nonce             uint32  `json:"nonce"`
	Difficulty        float64 `json:"difficulty"`
	MerkleRoot        string  `json:"merkle_root"`
	TxCount           int     `json:"tx_count"`
	Size              int     `json:"size"`
	Weight            int     `json:"weight"`
	PreviousBlockHash string  `json:"previousblockhash"` // empty for genesis
}

func (b *Block) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "block", "id", "height", "version", "timestamp",
		"bits", "nonce", "merkle_root", "tx_count", "size", "weight"); err != nil {
		return err
	}
	type alias Block
	return json.Unmarshal(data, (*alias)(b))
}

// BlockStatus is the chain membership of a block. NextBest is only set for
// blocks in the best chain that are not the tip.
type BlockStatus struct {
	InBestChain bool    `json:"in_best_chain"`
	Height      *int64  `json:"height,omitempty"`
	NextBest    *string `json:"next_best,omitempty"`
}

func (s *BlockStatus) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "block status", "in_best_chain"); err != nil {
		return err
	}
	type alias BlockStatus
	return json.Unmarshal(data, (*alias)(s))
}

// Transaction is one transaction with its ordered inputs and outputs.
// Status is absent in block transaction listings.
type Transaction struct {
	TxID     string    `json:"txid"`
	Version  int32     `json:"version"`
	Locktime uint32    `json:"locktime"`
	Size     int       `json:"size"`
	Weight   int       `json:"weight"`
	Fee      int64     `json:"fee"`
	Vin      []Vin     `json:"vin"`
	Vout     []Vout    `json:"vout"`
	Status   *TxStatus `json:"status,omitempty"`
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "transaction", "txid", "version", "locktime",
		"size", "weight", "fee", "vin", "vout"); err != nil {
		return err
	}
	type alias Transaction
	return json.Unmarshal(data, (*alias)(tx))
}

// VSize returns the virtual size in vbytes, rounded up
func (tx *Transaction) VSize() int {
	return (tx.Weight + 3) / 4
}

// Vin is a transaction input. Prevout is nil when the spent output cannot be
// resolved, e.g. for coinbase inputs.
type Vin struct {
	TxID                  string   `json:"txid"`
	Vout                  uint32   `json:"vout"`
	IsCoinbase            bool     `json:"is_coinbase"`
	ScriptSig             string   `json:"scriptsig"`
	ScriptSigAsm          string   `json:"scriptsig_asm"`
	InnerRedeemScriptAsm  *string  `json:"inner_redeemscript_asm,omitempty"`
	InnerWitnessScriptAsm *string  `json:"inner_witnessscript_asm,omitempty"`
	Witness               []string `json:"witness,omitempty"`
	Sequence              uint32   `json:"sequence"`
	Prevout               *Vout    `json:"prevout,omitempty"`
}

func (v *Vin) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "vin", "txid", "vout", "is_coinbase",
		"scriptsig", "scriptsig_asm", "sequence"); err != nil {
		return err
	}
	type alias Vin
	return json.Unmarshal(data, (*alias)(v))
}

// Vout is a transaction output. ScriptPubKeyAddress is nil for non-standard
// or unspendable scripts.
type Vout struct {
	ScriptPubKey        string  `json:"scriptpubkey"`
	ScriptPubKeyAsm     string  `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type"`
	ScriptPubKeyAddress *string `json:"scriptpubkey_address,omitempty"`
	Value               int64   `json:"value"`
}

func (v *Vout) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "vout", "scriptpubkey", "scriptpubkey_asm",
		"scriptpubkey_type", "value"); err != nil {
		return err
	}
	type alias Vout
	return json.Unmarshal(data, (*alias)(v))
}

// TxStatus is the confirmation status of a transaction. Block fields are
// only set when Confirmed.
type TxStatus struct {
	Confirmed   bool    `json:"confirmed"`
	BlockHeight *int64  `json:"block_height,omitempty"`
	BlockHash   *string `json:"block_hash,omitempty"`
	BlockTime   *int64  `json:"block_time,omitempty"`
}

func (s *TxStatus) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "tx status", "confirmed"); err != nil {
		return err
	}
	type alias TxStatus
	return json.Unmarshal(data, (*alias)(s))
}

// Utxo is an unspent output of an address or scripthash
type Utxo struct {
	TxID   string   `json:"txid"`
	Vout   uint32   `json:"vout"`
	Status TxStatus `json:"status"`
	Value  int64    `json:"value"`
}

func (u *Utxo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "utxo", "txid", "vout", "status", "value"); err != nil {
		return err
	}
	type alias Utxo
	return json.Unmarshal(data, (*alias)(u))
}

// MerkleProof is an Electrum-style inclusion proof. Merkle is ordered from
// the leaf level up.
type MerkleProof struct {
	BlockHeight int64    `json:"block_height"`
	Merkle      []string `json:"merkle"`
	Pos         int      `json:"pos"`
}

func (p *MerkleProof) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "merkle proof", "block_height", "merkle", "pos"); err != nil {
		return err
	}
	type alias MerkleProof
	return json.Unmarshal(data, (*alias)(p))
}

// Outspent is the spend status of one output. TxID, Vin and Status are only
// set when Spent.
type Outspent struct {
	Spent  bool      `json:"spent"`
	TxID   *string   `json:"txid,omitempty"`
	Vin    *uint32   `json:"vin,omitempty"`
	Status *TxStatus `json:"status,omitempty"`
}

func (o *Outspent) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "outspent", "spent"); err != nil {
		return err
	}
	type alias Outspent
	return json.Unmarshal(data, (*alias)(o))
}

// AddressInfo holds aggregate stats for an address or a scripthash. Exactly
// one of Address and ScriptHash is set, depending on the lookup used.
type AddressInfo struct {
	Address      *string           `json:"address,omitempty"`
	ScriptHash   *string           `json:"scripthash,omitempty"`
	ChainStats   ChainMempoolStats `json:"chain_stats"`
	MempoolStats ChainMempoolStats `json:"mempool_stats"`
}

func (a *AddressInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "address info", "chain_stats", "mempool_stats"); err != nil {
		return err
	}
	type alias AddressInfo
	return json.Unmarshal(data, (*alias)(a))
}

// Key returns the address or scripthash the info was looked up by
func (a *AddressInfo) Key() string {
	switch {
	case a.Address != nil:
		return *a.Address
	case a.ScriptHash != nil:
		return *a.ScriptHash
	}
	return ""
}

// Balance returns funded minus spent satoshis across chain and mempool
func (a *AddressInfo) Balance() int64 {
	return a.ChainStats.Balance() + a.MempoolStats.Balance()
}

// ChainMempoolStats are funding and spending counters
type ChainMempoolStats struct {
	FundedTxoCount int64 `json:"funded_txo_count"`
	FundedTxoSum   int64 `json:"funded_txo_sum"`
	SpentTxoCount  int64 `json:"spent_txo_count"`
	SpentTxoSum    int64 `json:"spent_txo_sum"`
	TxCount        int64 `json:"tx_count"`
}

func (s *ChainMempoolStats) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "stats", "funded_txo_count", "funded_txo_sum",
		"spent_txo_count", "spent_txo_sum", "tx_count"); err != nil {
		return err
	}
	type alias ChainMempoolStats
	return json.Unmarshal(data, (*alias)(s))
}

// Balance returns FundedTxoSum - SpentTxoSum
func (s ChainMempoolStats) Balance() int64 {
	return s.FundedTxoSum - s.SpentTxoSum
}

// MempoolSummary is a snapshot of the mempool backlog
type MempoolSummary struct {
	Count        int                 `json:"count"`
	VSize        int64               `json:"vsize"`
	TotalFee     int64               `json:"total_fee"`
	FeeHistogram []FeeHistogramEntry `json:"fee_histogram"`
}

func (m *MempoolSummary) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "mempool", "count", "vsize", "total_fee", "fee_histogram"); err != nil {
		return err
	}
	type alias MempoolSummary
	return json.Unmarshal(data, (*alias)(m))
}

// FeeHistogramEntry is one [feerate, vsize] band, ordered by descending
// feerate. VSize counts only transactions between this feerate and the
// previous entry's.
type FeeHistogramEntry struct {
	FeeRate float64
	VSize   int64
}

func (e *FeeHistogramEntry) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("fee histogram entry: expected [feerate, vsize], got %d values", len(pair))
	}
	e.FeeRate = pair[0]
	e.VSize = int64(pair[1])
	return nil
}

func (e FeeHistogramEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{e.FeeRate, float64(e.VSize)})
}

// MempoolTxSummary is a lightweight view of a recent mempool entry
type MempoolTxSummary struct {
	TxID  string `json:"txid"`
	Fee   int64  `json:"fee"`
	VSize int64  `json:"vsize"`
	Value int64  `json:"value"`
}

func (m *MempoolTxSummary) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "mempool tx", "txid", "fee", "vsize", "value"); err != nil {
		return err
	}
	type alias MempoolTxSummary
	return json.Unmarshal(data, (*alias)(m))
}

// FeeEstimates maps a confirmation target in blocks (as a string) to a
// feerate in sat/vB
type FeeEstimates map[string]float64

// Targets returns the confirmation targets in ascending order, skipping keys
// that are not integers
func (f FeeEstimates) Targets() []int {
	targets := make([]int, 0, len(f))
	for k := range f {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		targets = append(targets, n)
	}
	sort.Ints(targets)
	return targets
}

// Target returns the feerate for confirmation within blocks: the estimate for
// that exact target, or else for the largest target below it
func (f FeeEstimates) Target(blocks int) (float64, bool) {
	if rate, ok := f[strconv.Itoa(blocks)]; ok {
		return rate, true
	}
	best := -1
	for _, n := range f.Targets() {
		if n <= blocks {
			best = n
		}
	}
	if best < 0 {
		return 0, false
	}
	return f[strconv.Itoa(best)], true
}
