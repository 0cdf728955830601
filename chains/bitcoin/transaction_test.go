package bitcoin

import (
	"bytes"
	"encoding/hex"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/esplora/api"
)

func testAddress(t *testing.T, params *chaincfg.Params) btcutil.Address {
	t.Helper()

	addr, err := btcutil.NewAddressWitnessPubKeyHash(bytes.Repeat([]byte{0x42}, 20), params)
	require.NoError(t, err)
	return addr
}

// testTx builds a transaction paying addr and carrying an OP_RETURN output
func testTx(t *testing.T, addr btcutil.Address, lockTime uint32) *wire.MsgTx {
	t.Helper()

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x01}, 1), nil, nil))

	payTo, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	tx.AddTxOut(wire.NewTxOut(150000, payTo))

	nullData, err := txscript.NullDataScript([]byte("esplora"))
	require.NoError(t, err)
	tx.AddTxOut(wire.NewTxOut(0, nullData))

	tx.LockTime = lockTime
	return tx
}

func serialize(t *testing.T, tx *wire.MsgTx) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return buf.Bytes()
}

func TestNetworkParams(t *testing.T) {
	tests := []struct {
		network string
		want    *chaincfg.Params
	}{
		{api.NetworkMainnet, &chaincfg.MainNetParams},
		{api.NetworkTestnet, &chaincfg.TestNet3Params},
		{api.NetworkSignet, &chaincfg.SigNetParams},
	}
	for _, tt := range tests {
		params, err := NetworkParams(tt.network)
		require.NoError(t, err)
		assert.Equal(t, tt.want.Name, params.Name)
	}

	_, err := NetworkParams("regtest")
	assert.Error(t, err)
}

func TestDecodeTransaction(t *testing.T) {
	tx := testTx(t, testAddress(t, &chaincfg.TestNet3Params), 1835521)
	raw := serialize(t, tx)

	decoded, err := DecodeTransaction(raw)
	require.NoError(t, err)
	assert.Equal(t, tx.TxHash(), decoded.TxHash())
	assert.Equal(t, uint32(1835521), decoded.LockTime)
	require.Len(t, decoded.TxIn, 1)
	assert.Equal(t, uint32(1), decoded.TxIn[0].PreviousOutPoint.Index)

	fromHex, err := DecodeTransactionHex(hex.EncodeToString(raw) + "\n")
	require.NoError(t, err)
	assert.Equal(t, tx.TxHash(), fromHex.TxHash())
}

func TestDecodeTransactionErrors(t *testing.T) {
	_, err := DecodeTransaction([]byte{0x02, 0x00})
	assert.Error(t, err)

	_, err = DecodeTransactionHex("zz")
	assert.ErrorContains(t, err, "invalid transaction hex")
}

func TestDecodeBlock(t *testing.T) {
	addr := testAddress(t, &chaincfg.MainNetParams)
	block := wire.NewMsgBlock(wire.NewBlockHeader(1, &chainhash.Hash{0x0a}, &chainhash.Hash{0x0b}, 0x1d00ffff, 7))
	block.Header.Timestamp = time.Unix(1600526295, 0)
	require.NoError(t, block.AddTransaction(testTx(t, addr, 0)))
	require.NoError(t, block.AddTransaction(testTx(t, addr, 1)))

	var buf bytes.Buffer
	require.NoError(t, block.Serialize(&buf))

	decoded, err := DecodeBlock(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, block.Header.BlockHash(), decoded.Header.BlockHash())
	require.Len(t, decoded.Transactions, 2)
	assert.Equal(t, block.Transactions[1].TxHash(), decoded.Transactions[1].TxHash())

	_, err = DecodeBlock(buf.Bytes()[:40])
	assert.Error(t, err)
}

func TestOutputAddresses(t *testing.T) {
	addr := testAddress(t, &chaincfg.TestNet3Params)
	outputs := OutputAddresses(testTx(t, addr, 0), &chaincfg.TestNet3Params)

	require.Len(t, outputs, 2)
	assert.Equal(t, 0, outputs[0].Index)
	assert.Equal(t, int64(150000), outputs[0].Value)
	assert.Equal(t, txscript.WitnessV0PubKeyHashTy.String(), outputs[0].Class)
	assert.Equal(t, []string{addr.EncodeAddress()}, outputs[0].Addresses)

	assert.Equal(t, txscript.NullDataTy.String(), outputs[1].Class)
	assert.Empty(t, outputs[1].Addresses)
}

func TestParseAddress(t *testing.T) {
	mainnet := testAddress(t, &chaincfg.MainNetParams).EncodeAddress()

	_, err := ParseAddress(mainnet, &chaincfg.MainNetParams)
	require.NoError(t, err)

	_, err = ParseAddress(mainnet, &chaincfg.TestNet3Params)
	assert.Error(t, err)

	_, err = ParseAddress("not-an-address", &chaincfg.MainNetParams)
	assert.ErrorContains(t, err, "invalid address")
}

func TestScriptHash(t *testing.T) {
	// genesis coinbase address
	hash, err := ScriptHash("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.Equal(t, "8b01df4e368ea28f8dc0423bcf7a4923e3a12d307c875e47a0cfbf90b5c39161", hash)

	fromScript, err := ScriptHashFromScript("76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac")
	require.NoError(t, err)
	assert.Equal(t, hash, fromScript)

	_, err = ScriptHashFromScript("76a9zz")
	assert.ErrorContains(t, err, "invalid script hex")
}

func TestFormatBTC(t *testing.T) {
	tests := []struct {
		sats int64
		want string
	}{
		{0, "0.00000000 BTC"},
		{1, "0.00000001 BTC"},
		{150000, "0.00150000 BTC"},
		{2100000000000000, "21000000.00000000 BTC"},
		{-360000, "-0.00360000 BTC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBTC(tt.sats))
	}
}

func TestFeeRate(t *testing.T) {
	assert.Equal(t, "7.04", FeeRate(1000, 142).String())
	assert.Equal(t, "1", FeeRate(141, 141).String())
	assert.True(t, FeeRate(1000, 0).IsZero())
}
