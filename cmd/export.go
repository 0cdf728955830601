package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chinmay1088/esplora/api"
	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// chainPageSize is the number of confirmed transactions per history page
const chainPageSize = 25

var exportCmd = &cobra.Command{
	Use:   "export <address|scripthash>",
	Short: "Export transaction history",
	Long: `Export the full transaction history of an address or scripthash.

Confirmed history is paged 25 transactions at a time until it is exhausted,
then combined with the mempool transactions.

File formats:
  --csv        Export to CSV format (default)
  --json-file  Export to JSON format
  --txt        Export to txt format

Files are written to ~/.esplora/exports unless --out is given.

Examples:
  esplora export bc1q...                    # Export to CSV (default)
  esplora export bc1q... --json-file --limit 500 # Newest 500 transactions as JSON
  esplora export <scripthash> --scripthash --csv --json-file`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	csvFlag    bool
	jsonFlag   bool
	txtFlag    bool
	outDirFlag string
	limitFlag  int
)

func init() {
	exportCmd.Flags().BoolVar(&csvFlag, "csv", false, "Export to CSV format")
	exportCmd.Flags().BoolVar(&jsonFlag, "json-file", false, "Export to JSON format")
	exportCmd.Flags().BoolVar(&txtFlag, "txt", false, "Export to txt format")
	exportCmd.Flags().StringVar(&outDirFlag, "out", "", "directory to write export files to")
	exportCmd.Flags().IntVar(&limitFlag, "limit", 0, "maximum number of transactions (0 for all)")
	exportCmd.Flags().BoolVar(&scriptHashFlag, "scripthash", false, "treat the argument as a scripthash")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, log, err := newClient()
	if err != nil {
		return err
	}
	if !csvFlag && !jsonFlag && !txtFlag {
		csvFlag = true
	}

	kind, key := argKind(), args[0]
	info, err := getInfo(ctx, client, kind, key)
	if err != nil {
		return describeError(err)
	}

	total := int(info.ChainStats.TxCount + info.MempoolStats.TxCount)
	if limitFlag > 0 && limitFlag < total {
		total = limitFlag
	}
	if total == 0 {
		fmt.Println("No transactions to export")
		return nil
	}

	network := getCurrentNetwork()
	fmt.Printf("🌐 Endpoint: %s\n", client.BaseURL())
	fmt.Printf("📊 Exporting %d transactions for %s...\n", total, key)
	fmt.Println()

	bar := progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan][1/2][reset] Fetching history..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)

	txs, err := collectHistory(ctx, client, kind, key, limitFlag, func(n int) { _ = bar.Add(n) })
	if err != nil {
		return describeError(err)
	}
	log.Debug().Int("count", len(txs)).Msg("history collected")

	exportData := &ExportData{
		ExportDate: time.Now().Format("2006-01-02 15:04:05"),
		Network:    network,
		Endpoint:   client.BaseURL(),
		Key:        key,
		Kind:       strings.ToLower(kind.String()),
		Balance:    bitcoin.FormatBTC(info.Balance()),
	}
	for i := range txs {
		exportData.Transactions = append(exportData.Transactions, newTransactionData(&txs[i], kind, key))
	}
	exportData.TotalTransactions = len(exportData.Transactions)

	bar.Describe("[cyan][2/2][reset] Writing export files...")
	exportDir, err := prepareExportDirectory()
	if err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}
	files, err := writeExportFiles(exportData, exportDir)
	if err != nil {
		return fmt.Errorf("failed to write export files: %w", err)
	}

	_ = bar.Finish()
	fmt.Println()
	fmt.Println()

	fmt.Println("📁 Export completed successfully!")
	for _, f := range files {
		fmt.Printf("📍 %s\n", f)
	}
	fmt.Println()
	fmt.Println("📊 Export Summary:")
	fmt.Printf("   Network: %s\n", strings.ToUpper(network))
	fmt.Printf("   %s: %s\n", kind, key)
	fmt.Printf("   Balance: %s\n", exportData.Balance)
	fmt.Printf("   Transactions: %d\n", exportData.TotalTransactions)

	return nil
}

// collectHistory returns mempool transactions followed by confirmed ones,
// newest first, paging the confirmed history by last seen txid. limit <= 0
// means all. progress is called with the size of every page.
func collectHistory(ctx context.Context, client *api.Client, kind keyKind, key string, limit int, progress func(int)) ([]api.Transaction, error) {
	txs, err := history(ctx, client, kind, key, false, true, nil)
	if err != nil {
		return nil, err
	}
	progress(len(txs))

	var lastSeen *string
	for limit <= 0 || len(txs) < limit {
		page, err := history(ctx, client, kind, key, true, false, lastSeen)
		if err != nil {
			return nil, err
		}
		txs = append(txs, page...)
		progress(len(page))

		if len(page) < chainPageSize {
			break
		}
		lastSeen = &page[len(page)-1].TxID
	}

	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

// ExportData is the export file content
type ExportData struct {
	ExportDate        string            `json:"export_date"`
	Network           string            `json:"network"`
	Endpoint          string            `json:"endpoint"`
	Key               string            `json:"key"`
	Kind              string            `json:"kind"`
	Balance           string            `json:"balance"`
	TotalTransactions int               `json:"total_transactions"`
	Transactions      []TransactionData `json:"transactions"`
}

// TransactionData is one exported transaction
type TransactionData struct {
	TxID        string `json:"txid"`
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Direction   string `json:"direction"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
	FeeRate     string `json:"fee_rate"`
}

func newTransactionData(tx *api.Transaction, kind keyKind, key string) TransactionData {
	amount := netValue(tx, kind, key)
	direction := "IN"
	if amount < 0 {
		direction = "OUT"
	}

	data := TransactionData{
		TxID:      tx.TxID,
		Direction: direction,
		Amount:    amount,
		Fee:       tx.Fee,
		FeeRate:   bitcoin.FeeRate(tx.Fee, tx.VSize()).String(),
	}
	if s := tx.Status; s != nil && s.Confirmed {
		data.Confirmed = true
		if s.BlockHeight != nil {
			data.BlockHeight = *s.BlockHeight
		}
		if s.BlockTime != nil {
			data.Timestamp = formatTime(*s.BlockTime)
		}
	}
	return data
}

// netValue is what tx paid to key minus what it spent from key, in satoshis
func netValue(tx *api.Transaction, kind keyKind, key string) int64 {
	matches := func(out *api.Vout) bool {
		if kind == scriptHashKind {
			hash, err := bitcoin.ScriptHashFromScript(out.ScriptPubKey)
			return err == nil && hash == key
		}
		return out.ScriptPubKeyAddress != nil && *out.ScriptPubKeyAddress == key
	}

	var net int64
	for i := range tx.Vout {
		if matches(&tx.Vout[i]) {
			net += tx.Vout[i].Value
		}
	}
	for _, in := range tx.Vin {
		if in.Prevout != nil && matches(in.Prevout) {
			net -= in.Prevout.Value
		}
	}
	return net
}

func prepareExportDirectory() (string, error) {
	exportDir := outDirFlag
	if exportDir == "" {
		dir, err := configDir()
		if err != nil {
			return "", err
		}
		exportDir = filepath.Join(dir, "exports")
	}

	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "", err
	}

	return exportDir, nil
}

func writeExportFiles(exportData *ExportData, exportDir string) ([]string, error) {
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(exportDir, fmt.Sprintf("esplora_%s_%s_%s", exportData.Network, shortKey(exportData.Key), timestamp))

	var files []string
	if csvFlag {
		if err := writeCSVFile(base+".csv", exportData); err != nil {
			return nil, fmt.Errorf("failed to write CSV export: %w", err)
		}
		files = append(files, base+".csv")
	}

	if jsonFlag {
		if err := writeJSONFile(base+".json", exportData); err != nil {
			return nil, fmt.Errorf("failed to write JSON export: %w", err)
		}
		files = append(files, base+".json")
	}

	if txtFlag {
		if err := writeTXTFile(base+".txt", exportData); err != nil {
			return nil, fmt.Errorf("failed to write txt export: %w", err)
		}
		files = append(files, base+".txt")
	}

	return files, nil
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

func writeCSVFile(filename string, exportData *ExportData) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// write header
	if err := writer.Write([]string{"TxID", "Confirmed", "Block Height", "Timestamp", "Direction", "Amount (sat)", "Fee (sat)", "Fee Rate (sat/vB)"}); err != nil {
		return err
	}

	for _, tx := range exportData.Transactions {
		height := ""
		if tx.Confirmed {
			height = strconv.FormatInt(tx.BlockHeight, 10)
		}
		if err := writer.Write([]string{
			tx.TxID,
			strconv.FormatBool(tx.Confirmed),
			height,
			tx.Timestamp,
			tx.Direction,
			strconv.FormatInt(tx.Amount, 10),
			strconv.FormatInt(tx.Fee, 10),
			tx.FeeRate,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSONFile(filename string, exportData *ExportData) error {
	data, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0600)
}

func writeTXTFile(filename string, exportData *ExportData) error {
	var content strings.Builder
	content.WriteString("ESPLORA HISTORY EXPORT\n")
	content.WriteString("======================\n\n")
	content.WriteString(fmt.Sprintf("Export Date: %s\n", exportData.ExportDate))
	content.WriteString(fmt.Sprintf("Network: %s\n", strings.ToUpper(exportData.Network)))
	content.WriteString(fmt.Sprintf("Endpoint: %s\n", exportData.Endpoint))
	content.WriteString(fmt.Sprintf("Key (%s): %s\n", exportData.Kind, exportData.Key))
	content.WriteString(fmt.Sprintf("Balance: %s\n\n", exportData.Balance))

	content.WriteString(fmt.Sprintf("Transactions (%d):\n", exportData.TotalTransactions))
	for i, tx := range exportData.Transactions {
		status := "unconfirmed"
		if tx.Confirmed {
			status = fmt.Sprintf("block %d, %s", tx.BlockHeight, tx.Timestamp)
		}
		content.WriteString(fmt.Sprintf("  %d. %s | %s | %s\n", i+1, tx.TxID, tx.Direction, status))
		content.WriteString(fmt.Sprintf("     Amount: %s | Fee: %s (%s sat/vB)\n",
			bitcoin.FormatBTC(tx.Amount), bitcoin.FormatBTC(tx.Fee), tx.FeeRate))
	}

	return os.WriteFile(filename, []byte(content.String()), 0600)
}
