package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/esplora/api"
	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <address|scripthash>",
	Short: "Show transaction history",
	Long: `Show the transaction history of an address or scripthash.

Without flags the first page is shown: up to 50 mempool transactions and the
newest 25 confirmed ones. Confirmed history is paged by the last seen txid.

Examples:
  esplora history bc1q...                   # First page
  esplora history bc1q... --chain           # Confirmed transactions only
  esplora history bc1q... --chain --after <txid>
  esplora history bc1q... --mempool         # Unconfirmed transactions only
  esplora history <scripthash> --scripthash`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

var (
	historyChainFlag   bool
	historyMempoolFlag bool
	historyAfterFlag   string
	scriptHashFlag     bool
)

var utxoCmd = &cobra.Command{
	Use:   "utxo <address|scripthash>",
	Short: "List unspent outputs",
	Args:  cobra.ExactArgs(1),
	RunE:  runUtxo,
}

var prefixCmd = &cobra.Command{
	Use:   "prefix <prefix>",
	Short: "Search addresses by prefix",
	Long: `List addresses starting with prefix (at most 10).

Example:
  esplora prefix 1A1zP1`,
	Args: cobra.ExactArgs(1),
	RunE: runPrefix,
}

func init() {
	historyCmd.Flags().BoolVar(&historyChainFlag, "chain", false, "confirmed transactions only")
	historyCmd.Flags().BoolVar(&historyMempoolFlag, "mempool", false, "unconfirmed transactions only")
	historyCmd.Flags().StringVar(&historyAfterFlag, "after", "", "last seen txid, for the next confirmed page")
	historyCmd.Flags().BoolVar(&scriptHashFlag, "scripthash", false, "treat the argument as a scripthash")
	utxoCmd.Flags().BoolVar(&scriptHashFlag, "scripthash", false, "treat the argument as a scripthash")
}

func argKind() keyKind {
	if scriptHashFlag {
		return scriptHashKind
	}
	return addressKind
}

// history fetches one history listing for either key family
func history(ctx context.Context, client *api.Client, kind keyKind, key string, chain, mempool bool, lastSeen *string) ([]api.Transaction, error) {
	switch {
	case chain && kind == scriptHashKind:
		return client.GetScriptHashTxsChain(ctx, key, lastSeen)
	case chain:
		return client.GetAddressTxsChain(ctx, key, lastSeen)
	case mempool && kind == scriptHashKind:
		return client.GetScriptHashTxsMempool(ctx, key)
	case mempool:
		return client.GetAddressTxsMempool(ctx, key)
	case kind == scriptHashKind:
		return client.GetScriptHashTxs(ctx, key)
	default:
		return client.GetAddressTxs(ctx, key)
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyChainFlag && historyMempoolFlag {
		return fmt.Errorf("--chain and --mempool are mutually exclusive")
	}
	if historyAfterFlag != "" && !historyChainFlag {
		return fmt.Errorf("--after requires --chain")
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	var lastSeen *string
	if historyAfterFlag != "" {
		lastSeen = &historyAfterFlag
	}

	txs, err := history(cmd.Context(), client, argKind(), args[0], historyChainFlag, historyMempoolFlag, lastSeen)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(txs)
	}

	if len(txs) == 0 {
		fmt.Println("No transactions")
		return nil
	}
	printTxList(txs)
	if historyChainFlag && len(txs) == chainPageSize {
		fmt.Printf("\n💡 Next page: --chain --after %s\n", txs[len(txs)-1].TxID)
	}
	return nil
}

func runUtxo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient()
	if err != nil {
		return err
	}

	var utxos []api.Utxo
	if argKind() == scriptHashKind {
		utxos, err = client.GetScriptHashUtxo(ctx, args[0])
	} else {
		utxos, err = client.GetAddressUtxo(ctx, args[0])
	}
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(utxos)
	}

	var total int64
	for _, u := range utxos {
		total += u.Value
		fmt.Printf("%s:%-4d  %s  %s\n", u.TxID, u.Vout, bitcoin.FormatBTC(u.Value), formatStatus(&u.Status))
	}
	fmt.Printf("\n💰 %d outputs, %s\n", len(utxos), color.GreenString(bitcoin.FormatBTC(total)))
	return nil
}

func runPrefix(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	addresses, err := client.GetAddressPrefix(cmd.Context(), args[0])
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(addresses)
	}
	for _, a := range addresses {
		fmt.Println(a)
	}
	return nil
}
