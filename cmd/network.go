package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/esplora/api"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|testnet|signet]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet, testnet and signet.

The network selects the default Blockstream Esplora endpoint. It is stored in
~/.esplora/network.txt and can be overridden per command with --network or --url.

Examples:
  esplora network            # Show current network
  esplora network mainnet    # Switch to mainnet
  esplora network signet     # Switch to signet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	// If no arguments provided, show current network
	if len(args) == 0 {
		return showCurrentNetwork()
	}

	network := strings.ToLower(args[0])
	if _, ok := api.EndpointFor(network); !ok {
		return fmt.Errorf("invalid network: %s. Use 'mainnet', 'testnet' or 'signet'", network)
	}

	return setNetwork(network)
}

func showCurrentNetwork() error {
	network := getCurrentNetwork()
	endpoint, _ := api.EndpointFor(network)

	fmt.Printf("🌐 Current network: %s\n", networkLabel(network))
	fmt.Printf("   Endpoint: %s\n", endpoint)
	if urlFlag != "" {
		fmt.Printf("   Overridden by --url: %s\n", urlFlag)
	}

	return nil
}

func networkLabel(network string) string {
	switch network {
	case api.NetworkTestnet:
		return color.YellowString("Testnet")
	case api.NetworkSignet:
		return color.CyanString("Signet")
	default:
		return color.GreenString("Mainnet")
	}
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".esplora"), nil
}

func setNetwork(network string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	networkPath := filepath.Join(dir, "network.txt")
	if err := os.WriteFile(networkPath, []byte(network), 0600); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}

	endpoint, _ := api.EndpointFor(network)
	fmt.Printf("🌐 Switched to %s network\n", strings.ToUpper(network))
	fmt.Printf("   Endpoint: %s\n", endpoint)

	return nil
}

// getCurrentNetwork returns the --network flag if set, else the stored
// network. Anything unreadable or unknown means mainnet.
func getCurrentNetwork() string {
	if networkFlag != "" {
		return strings.ToLower(networkFlag)
	}

	dir, err := configDir()
	if err != nil {
		return api.NetworkMainnet
	}

	data, err := os.ReadFile(filepath.Join(dir, "network.txt"))
	if err != nil {
		return api.NetworkMainnet
	}

	network := strings.TrimSpace(string(data))
	if _, ok := api.EndpointFor(network); !ok {
		return api.NetworkMainnet
	}

	return network
}
