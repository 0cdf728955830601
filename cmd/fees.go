package cmd

import (
	"fmt"

	"github.com/chinmay1088/esplora/api"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Show fee estimates",
	Long: `Show feerate estimates by confirmation target.

With --target the feerate for confirming within that many blocks is shown,
using the nearest lower target when there is no exact estimate. --vsize
turns the feerate into a total fee.

Examples:
  esplora fees                      # Full estimate table
  esplora fees --target 6           # Feerate for 6 blocks
  esplora fees --target 6 --vsize 141`,
	Args: cobra.NoArgs,
	RunE: runFees,
}

var (
	feeTargetFlag int
	feeVSizeFlag  int64
)

func init() {
	feesCmd.Flags().IntVar(&feeTargetFlag, "target", 0, "confirmation target in blocks")
	feesCmd.Flags().Int64Var(&feeVSizeFlag, "vsize", 0, "transaction vsize to price, with --target")
}

func runFees(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	fees, err := client.GetFeeEstimates(cmd.Context())
	if err != nil {
		return describeError(err)
	}

	if feeTargetFlag > 0 {
		return showFeeTarget(fees, feeTargetFlag, feeVSizeFlag)
	}

	if jsonOutput {
		return printJSON(fees)
	}

	fmt.Println("⛽ Fee estimates")
	fmt.Println("   Blocks   sat/vB")
	for _, target := range fees.Targets() {
		rate, _ := fees.Target(target)
		fmt.Printf("   %6d   %s\n", target, decimal.NewFromFloat(rate).StringFixed(2))
	}
	return nil
}

func showFeeTarget(fees api.FeeEstimates, target int, vsize int64) error {
	rate, ok := fees.Target(target)
	if !ok {
		return fmt.Errorf("no fee estimate for a target of %d blocks", target)
	}

	feeRate := decimal.NewFromFloat(rate)
	var total decimal.Decimal
	if vsize > 0 {
		total = feeRate.Mul(decimal.NewFromInt(vsize)).Ceil()
	}

	if jsonOutput {
		out := map[string]interface{}{"target": target, "fee_rate": feeRate}
		if vsize > 0 {
			out["vsize"] = vsize
			out["fee"] = total.IntPart()
		}
		return printJSON(out)
	}

	fmt.Printf("⛽ Confirm within %d blocks: %s sat/vB\n", target, color.GreenString(feeRate.StringFixed(2)))
	if vsize > 0 {
		fmt.Printf("   Fee for %d vB: %s sat\n", vsize, total.String())
	}
	return nil
}
