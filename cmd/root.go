package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
)

// persistent flags
var (
	urlFlag     string
	networkFlag string
	authFlag    bool
	verboseFlag bool
	jsonOutput  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "esplora",
	Short: "A command-line explorer for Esplora block explorer APIs",
	Long: `esplora queries an Esplora HTTP API (blockstream.info by default) for
blocks, transactions, addresses, the mempool and fee estimates.

Features:
  • Mainnet, Testnet and Signet endpoints, or any Esplora URL with --url
  • Raw transaction and block decoding
  • Merkle inclusion proof verification
  • Address and scripthash history export to CSV or JSON
  • Machine-readable output with --json

Examples:
  esplora tip                          # Show the chain tip
  esplora block 800000                 # Show a block by height
  esplora tx <txid> --proof            # Show a transaction and verify its merkle proof
  esplora address <address>            # Show address balance
  esplora history <address> --all      # Page through the full chain history
  esplora fees --target 6              # Feerate to confirm within 6 blocks
  esplora network testnet              # Switch to testnet`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Esplora API base URL (overrides the network default)")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network for this command: mainnet, testnet or signet")
	rootCmd.PersistentFlags().BoolVar(&authFlag, "auth", false, "prompt for an Authorization header value")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log every request")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print API responses as JSON")

	// Add subcommands
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(broadcastCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(scriptHashCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(utxoCmd)
	rootCmd.AddCommand(prefixCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mempoolCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("esplora v%s\n", version)
	},
}
