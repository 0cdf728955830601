package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <hex|->",
	Short: "Broadcast a signed transaction",
	Long: `Broadcast a signed raw transaction. Pass "-" to read the hex from stdin.

The transaction is decoded locally before it is sent; use --no-check to skip that.

Examples:
  esplora broadcast 0200000001...
  cat signed.hex | esplora broadcast -`,
	Args: cobra.ExactArgs(1),
	RunE: runBroadcast,
}

var noCheckFlag bool

func init() {
	broadcastCmd.Flags().BoolVar(&noCheckFlag, "no-check", false, "send without decoding the transaction first")
}

func runBroadcast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	hexTx := args[0]
	if hexTx == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		hexTx = string(data)
	}
	hexTx = strings.TrimSpace(hexTx)

	if !noCheckFlag {
		tx, err := bitcoin.DecodeTransactionHex(hexTx)
		if err != nil {
			return err
		}
		fmt.Printf("📦 Broadcasting %s (%d inputs, %d outputs)\n", tx.TxHash(), len(tx.TxIn), len(tx.TxOut))
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	txid, err := client.PostTx(ctx, hexTx)
	if err != nil {
		return describeError(err)
	}

	fmt.Printf("✅ Transaction accepted: %s\n", color.GreenString(strings.TrimSpace(txid)))
	return nil
}
