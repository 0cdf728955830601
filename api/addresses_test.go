package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAddress(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address/"+testAddress, httpmock.NewStringResponder(http.StatusOK, addressInfoJSON))

	info, err := client.GetAddress(context.Background(), testAddress)
	require.NoError(t, err)

	require.NotNil(t, info.Address)
	assert.Nil(t, info.ScriptHash)
	assert.Equal(t, testAddress, info.Key())
	assert.Equal(t, int64(5), info.ChainStats.FundedTxoCount)
	assert.Equal(t, int64(750000), info.ChainStats.FundedTxoSum)
	assert.Equal(t, int64(7), info.ChainStats.TxCount)
	assert.Equal(t, int64(1), info.MempoolStats.TxCount)
	assert.Equal(t, int64(360000), info.Balance())
}

func TestGetScriptHash(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/scripthash/"+testScript, httpmock.NewStringResponder(http.StatusOK, scriptHashInfoJSON))

	info, err := client.GetScriptHash(context.Background(), testScript)
	require.NoError(t, err)

	assert.Nil(t, info.Address)
	require.NotNil(t, info.ScriptHash)
	assert.Equal(t, testScript, info.Key())
	assert.Equal(t, int64(5000), info.Balance())
}

func TestGetAddressStatsMissingField(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address/"+testAddress,
		httpmock.NewStringResponder(http.StatusOK, `{"address":"`+testAddress+`","chain_stats":{"tx_count":1},"mempool_stats":{}}`))

	_, err := client.GetAddress(context.Background(), testAddress)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGetAddressTxs(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address/"+testAddress+"/txs", httpmock.NewStringResponder(http.StatusOK, "["+txJSON+"]"))
	mt.RegisterResponder(http.MethodGet, testURL+"/scripthash/"+testScript+"/txs", httpmock.NewStringResponder(http.StatusOK, "[]"))

	txs, err := client.GetAddressTxs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, testTxID, txs[0].TxID)

	txs, err = client.GetScriptHashTxs(context.Background(), testScript)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestGetAddressTxsChainCursor(t *testing.T) {
	tests := []struct {
		name     string
		lastSeen *string
		path     string
	}{
		{name: "first page", lastSeen: nil, path: "/address/" + testAddress + "/txs/chain"},
		{name: "next page", lastSeen: Ptr(testLastSeen), path: "/address/" + testAddress + "/txs/chain/" + testLastSeen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mt := newMockClient(t)
			mt.RegisterResponder(http.MethodGet, testURL+tt.path, httpmock.NewStringResponder(http.StatusOK, "["+txJSON+"]"))

			txs, err := client.GetAddressTxsChain(context.Background(), testAddress, tt.lastSeen)
			require.NoError(t, err)
			assert.Len(t, txs, 1)
			assert.Equal(t, 1, callCount(mt, http.MethodGet, tt.path))
		})
	}
}

func TestGetScriptHashTxsChainCursor(t *testing.T) {
	client, mt := newMockClient(t)
	first := "/scripthash/" + testScript + "/txs/chain"
	next := first + "/" + testTxID
	mt.RegisterResponder(http.MethodGet, testURL+first, httpmock.NewStringResponder(http.StatusOK, "["+txJSON+"]"))
	mt.RegisterResponder(http.MethodGet, testURL+next, httpmock.NewStringResponder(http.StatusOK, "[]"))

	page, err := client.GetScriptHashTxsChain(context.Background(), testScript, nil)
	require.NoError(t, err)
	require.Len(t, page, 1)

	page, err = client.GetScriptHashTxsChain(context.Background(), testScript, &page[0].TxID)
	require.NoError(t, err)
	assert.Empty(t, page)

	assert.Equal(t, 1, callCount(mt, http.MethodGet, first))
	assert.Equal(t, 1, callCount(mt, http.MethodGet, next))
}

func TestGetAddressTxsMempool(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address/"+testAddress+"/txs/mempool", httpmock.NewStringResponder(http.StatusOK, "[]"))
	mt.RegisterResponder(http.MethodGet, testURL+"/scripthash/"+testScript+"/txs/mempool", httpmock.NewStringResponder(http.StatusOK, "["+txJSON+"]"))

	txs, err := client.GetAddressTxsMempool(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Empty(t, txs)

	txs, err = client.GetScriptHashTxsMempool(context.Background(), testScript)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestGetAddressUtxo(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address/"+testAddress+"/utxo", httpmock.NewStringResponder(http.StatusOK, utxoJSON))
	mt.RegisterResponder(http.MethodGet, testURL+"/scripthash/"+testScript+"/utxo", httpmock.NewStringResponder(http.StatusOK, utxoJSON))

	utxos, err := client.GetAddressUtxo(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	assert.Equal(t, testTxID, utxos[0].TxID)
	assert.Equal(t, uint32(0), utxos[0].Vout)
	assert.True(t, utxos[0].Status.Confirmed)
	assert.Equal(t, int64(100000), utxos[0].Value)
	assert.Equal(t, uint32(3), utxos[1].Vout)
	assert.False(t, utxos[1].Status.Confirmed)

	byScript, err := client.GetScriptHashUtxo(context.Background(), testScript)
	require.NoError(t, err)
	assert.Equal(t, utxos, byScript)
}

func TestGetAddressPrefix(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/address-prefix/n1vg", httpmock.NewStringResponder(http.StatusOK, `["`+testAddress+`"]`))

	addrs, err := client.GetAddressPrefix(context.Background(), "n1vg")
	require.NoError(t, err)
	assert.Equal(t, []string{testAddress}, addrs)
}
