package cmd

import (
	"fmt"
	"strings"

	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var mempoolCmd = &cobra.Command{
	Use:   "mempool",
	Short: "Show mempool backlog",
	Long: `Show the mempool backlog and its fee histogram.

Examples:
  esplora mempool            # Backlog summary and fee histogram
  esplora mempool --recent   # Last 10 transactions to enter the mempool
  esplora mempool --txids    # Every txid in the mempool`,
	Args: cobra.NoArgs,
	RunE: runMempool,
}

var (
	mempoolRecentFlag bool
	mempoolTxIDsFlag  bool
)

func init() {
	mempoolCmd.Flags().BoolVar(&mempoolRecentFlag, "recent", false, "list the most recent mempool transactions")
	mempoolCmd.Flags().BoolVar(&mempoolTxIDsFlag, "txids", false, "list every txid in the mempool")
}

func runMempool(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient()
	if err != nil {
		return err
	}

	switch {
	case mempoolRecentFlag:
		recent, err := client.GetMempoolRecent(ctx)
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(recent)
		}
		for _, tx := range recent {
			fmt.Printf("%s  %s  fee %s  %s sat/vB\n",
				tx.TxID, bitcoin.FormatBTC(tx.Value), bitcoin.FormatBTC(tx.Fee), bitcoin.FeeRate(tx.Fee, int(tx.VSize)))
		}
		return nil

	case mempoolTxIDsFlag:
		txids, err := client.GetMempoolTxIDs(ctx)
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(txids)
		}
		for _, txid := range txids {
			fmt.Println(txid)
		}
		return nil
	}

	mempool, err := client.GetMempool(ctx)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(mempool)
	}

	vMB := decimal.NewFromInt(mempool.VSize).Div(decimal.NewFromInt(1_000_000))
	fmt.Printf("🌊 Mempool: %s transactions, %s vMB, fees %s\n",
		color.CyanString("%d", mempool.Count), vMB.StringFixed(2), bitcoin.FormatBTC(mempool.TotalFee))

	if len(mempool.FeeHistogram) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("   Fee rate (sat/vB)   vsize above rate")
	var cumulative int64
	for _, band := range mempool.FeeHistogram {
		cumulative += band.VSize
		width := 0
		if mempool.VSize > 0 {
			width = int(min(cumulative*40/mempool.VSize, 40))
		}
		fmt.Printf("   %16s   %12d  %s\n",
			decimal.NewFromFloat(band.FeeRate).StringFixed(2), cumulative, color.GreenString(strings.Repeat("█", width)))
	}
	return nil
}
