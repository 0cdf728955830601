package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chinmay1088/esplora/crypto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Authorization header",
	Long: `Store an Authorization header value for authenticated Esplora endpoints.

The value is encrypted with a password (scrypt + AES-256-GCM) in
~/.esplora/auth.vault. Pass --auth to any command to unlock and send it.
Without a stored value --auth prompts for the header value itself, and
ESPLORA_AUTHORIZATION is used when --auth is not given.

Examples:
  esplora auth set           # Store a header value
  esplora auth status        # Show whether a value is stored
  esplora auth clear         # Delete the stored value
  esplora tip --auth         # Use the stored value`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Encrypt and store an Authorization header value",
	Args:  cobra.NoArgs,
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an Authorization header value is stored",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored Authorization header value",
	Args:  cobra.NoArgs,
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetCmd, authStatusCmd, authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func vaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth.vault"), nil
}

func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	value, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(value)), nil
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	auth, err := readSecret("Enter Authorization header value: ")
	if err != nil {
		return err
	}
	if auth == "" {
		return fmt.Errorf("authorization value cannot be empty")
	}

	password, err := readSecret("Enter a password to encrypt it: ")
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	vault, err := crypto.NewVault(auth, password)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	path, err := vaultPath()
	if err != nil {
		return err
	}
	if err := vault.Save(path); err != nil {
		return err
	}

	fmt.Printf("🔐 Authorization stored in %s\n", path)
	fmt.Println("💡 Use --auth on any command to send it")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	path, err := vaultPath()
	if err != nil {
		return err
	}

	if _, err := crypto.LoadVault(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("🔓 No stored Authorization value")
			return nil
		}
		return err
	}
	fmt.Printf("🔐 Authorization stored in %s\n", color.CyanString(path))
	if _, ok := os.LookupEnv(authEnv); ok {
		fmt.Printf("   %s is also set and is used when --auth is not given\n", authEnv)
	}
	return nil
}

func runAuthClear(cmd *cobra.Command, args []string) error {
	path, err := vaultPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("🔓 No stored Authorization value")
			return nil
		}
		return fmt.Errorf("failed to delete vault: %w", err)
	}
	fmt.Println("✅ Stored Authorization value deleted")
	return nil
}

// unlockAuthorization returns the stored value, or prompts for one when none
// is stored
func unlockAuthorization() (string, error) {
	path, err := vaultPath()
	if err != nil {
		return "", err
	}

	vault, err := crypto.LoadVault(path)
	if errors.Is(err, os.ErrNotExist) {
		return readSecret("Enter Authorization header value: ")
	}
	if err != nil {
		return "", err
	}

	password, err := readSecret("Enter your auth vault password: ")
	if err != nil {
		return "", err
	}
	return vault.Decrypt(password)
}
