package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/esplora/api"
)

// NetworkParams returns the chain parameters for an Esplora network name
func NetworkParams(network string) (*chaincfg.Params, error) {
	switch network {
	case api.NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case api.NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	case api.NetworkSignet:
		return &chaincfg.SigNetParams, nil
	}
	return nil, fmt.Errorf("unknown network %q", network)
}

// DecodeTransaction parses a consensus-serialized transaction, as returned
// by GetTxRaw
func DecodeTransaction(raw []byte) (*wire.MsgTx, error) {
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	return tx, nil
}

// DecodeTransactionHex parses a hex transaction, as returned by GetTxHex
func DecodeTransactionHex(s string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hex: %w", err)
	}
	return DecodeTransaction(raw)
}

// DecodeBlock parses a consensus-serialized block, as returned by GetBlockRaw
func DecodeBlock(raw []byte) (*wire.MsgBlock, error) {
	var block wire.MsgBlock
	if err := block.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to decode block: %w", err)
	}
	return &block, nil
}

// Output is a decoded transaction output
type Output struct {
	Index     int
	Value     int64
	Class     string
	Addresses []string
}

// OutputAddresses classifies every output of tx and extracts the addresses
// it pays. Unspendable and non-standard outputs have no addresses.
func OutputAddresses(tx *wire.MsgTx, params *chaincfg.Params) []Output {
	outputs := make([]Output, 0, len(tx.TxOut))
	for i, out := range tx.TxOut {
		class, addrs, _, err := txscript.ExtractPkScriptAddrs(out.PkScript, params)
		o := Output{Index: i, Value: out.Value, Class: class.String()}
		if err == nil {
			for _, a := range addrs {
				o.Addresses = append(o.Addresses, a.EncodeAddress())
			}
		}
		outputs = append(outputs, o)
	}
	return outputs
}

// ParseAddress parses a Bitcoin address for the given network
func ParseAddress(address string, params *chaincfg.Params) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", address, err)
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %q is not valid on %s", address, params.Name)
	}
	return addr, nil
}

// ScriptHash returns the Electrum-style scripthash of an address: the
// byte-reversed SHA256 of its output script, as used by the scripthash
// endpoints
func ScriptHash(address string, params *chaincfg.Params) (string, error) {
	addr, err := ParseAddress(address, params)
	if err != nil {
		return "", err
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return "", fmt.Errorf("failed to create output script: %w", err)
	}
	return chainhash.HashH(script).String(), nil
}

// ScriptHashFromScript is ScriptHash for a hex output script, such as
// Vout.ScriptPubKey
func ScriptHashFromScript(script string) (string, error) {
	raw, err := hex.DecodeString(script)
	if err != nil {
		return "", fmt.Errorf("invalid script hex: %w", err)
	}
	return chainhash.HashH(raw).String(), nil
}

// FormatBTC formats satoshis as a BTC amount with all eight decimals
func FormatBTC(satoshis int64) string {
	return decimal.New(satoshis, -8).StringFixed(8) + " BTC"
}

// FeeRate returns fee / vsize in sat/vB, rounded to two decimals
func FeeRate(fee int64, vsize int) decimal.Decimal {
	if vsize <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(fee).DivRound(decimal.NewFromInt(int64(vsize)), 2)
}
