package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/esplora/api"
	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address <address>",
	Short: "Show address balance and stats",
	Long: `Show the confirmed and mempool stats of an address.

Examples:
  esplora address bc1q...          # Balance and transaction counts
  esplora address bc1q... --json   # Raw stats`,
	Args: cobra.ExactArgs(1),
	RunE: runAddress,
}

var scriptHashCmd = &cobra.Command{
	Use:   "scripthash <scripthash|address>",
	Short: "Show scripthash balance and stats",
	Long: `Show the confirmed and mempool stats of an Electrum-style scripthash.

With --from-address the argument is an address and its scripthash is
computed locally first.

Examples:
  esplora scripthash 8b01df4e...
  esplora scripthash 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa --from-address`,
	Args: cobra.ExactArgs(1),
	RunE: runScriptHash,
}

var fromAddressFlag bool

func init() {
	scriptHashCmd.Flags().BoolVar(&fromAddressFlag, "from-address", false, "treat the argument as an address")
}

func runAddress(cmd *cobra.Command, args []string) error {
	return showAddressInfo(cmd.Context(), addressKind, args[0])
}

func runScriptHash(cmd *cobra.Command, args []string) error {
	hash := args[0]
	if fromAddressFlag {
		var err error
		if hash, err = addressScriptHash(hash); err != nil {
			return err
		}
	}
	return showAddressInfo(cmd.Context(), scriptHashKind, hash)
}

func addressScriptHash(address string) (string, error) {
	params, err := bitcoin.NetworkParams(getCurrentNetwork())
	if err != nil {
		return "", err
	}
	return bitcoin.ScriptHash(address, params)
}

// keyKind selects between the address and scripthash endpoint families
type keyKind int

const (
	addressKind keyKind = iota
	scriptHashKind
)

func (k keyKind) String() string {
	if k == scriptHashKind {
		return "Scripthash"
	}
	return "Address"
}

func getInfo(ctx context.Context, client *api.Client, kind keyKind, key string) (*api.AddressInfo, error) {
	if kind == scriptHashKind {
		return client.GetScriptHash(ctx, key)
	}
	return client.GetAddress(ctx, key)
}

func showAddressInfo(ctx context.Context, kind keyKind, key string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	info, err := getInfo(ctx, client, kind, key)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(info)
	}

	chain, mempool := info.ChainStats, info.MempoolStats
	fmt.Printf("🔑 %s: %s\n", kind, color.CyanString(info.Key()))
	fmt.Println()
	fmt.Printf("   Balance:      %s\n", color.GreenString(bitcoin.FormatBTC(info.Balance())))
	fmt.Printf("   Confirmed:    %s\n", bitcoin.FormatBTC(chain.Balance()))
	if mempool.TxCount > 0 {
		fmt.Printf("   Unconfirmed:  %s (%d txs)\n", bitcoin.FormatBTC(mempool.Balance()), mempool.TxCount)
	}
	fmt.Println()
	fmt.Printf("   Transactions: %d confirmed, %d in mempool\n", chain.TxCount, mempool.TxCount)
	fmt.Printf("   Received:     %s in %d outputs\n", bitcoin.FormatBTC(chain.FundedTxoSum+mempool.FundedTxoSum), chain.FundedTxoCount+mempool.FundedTxoCount)
	fmt.Printf("   Spent:        %s in %d outputs\n", bitcoin.FormatBTC(chain.SpentTxoSum+mempool.SpentTxoSum), chain.SpentTxoCount+mempool.SpentTxoCount)

	return nil
}
