package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMempool(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/mempool", httpmock.NewStringResponder(http.StatusOK, mempoolJSON))

	mempool, err := client.GetMempool(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8134, mempool.Count)
	assert.Equal(t, int64(3444604), mempool.VSize)
	assert.Equal(t, int64(29204625), mempool.TotalFee)
	require.Len(t, mempool.FeeHistogram, 7)
	assert.InDelta(t, 53.01, mempool.FeeHistogram[0].FeeRate, 1e-9)
	assert.Equal(t, int64(102131), mempool.FeeHistogram[0].VSize)
	assert.InDelta(t, 1.1, mempool.FeeHistogram[6].FeeRate, 1e-9)

	for i := 1; i < len(mempool.FeeHistogram); i++ {
		assert.Greater(t, mempool.FeeHistogram[i-1].FeeRate, mempool.FeeHistogram[i].FeeRate)
	}
}

func TestGetMempoolBadHistogram(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/mempool",
		httpmock.NewStringResponder(http.StatusOK, `{"count":1,"vsize":1,"total_fee":1,"fee_histogram":[[1.5]]}`))

	_, err := client.GetMempool(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGetMempoolTxIDs(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/mempool/txids", httpmock.NewStringResponder(http.StatusOK, `["`+testTxID+`","`+testLastSeen+`"]`))

	txids, err := client.GetMempoolTxIDs(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{testLastSeen, testTxID}, txids)
}

func TestGetMempoolRecent(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/mempool/recent", httpmock.NewStringResponder(http.StatusOK, mempoolRecentJSON))

	recent, err := client.GetMempoolRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, MempoolTxSummary{
		TxID:  "4b93c138293a7e3dfea6f0a63d944890b5ba571b03cc22d8c66995535e90dce8",
		Fee:   18277,
		VSize: 2585,
		Value: 4972029,
	}, recent[0])
}

func TestGetFeeEstimates(t *testing.T) {
	client, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, testURL+"/fee-estimates", httpmock.NewStringResponder(http.StatusOK, feeEstimatesJSON))

	fees, err := client.GetFeeEstimates(context.Background())
	require.NoError(t, err)

	require.Len(t, fees, 2)
	assert.InDelta(t, 87.88, fees["1"], 1e-9)
	assert.InDelta(t, 1.03, fees["144"], 1e-9)
}
