package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/esplora/api"
	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block <hash|height>",
	Short: "Show a block",
	Long: `Show a block header, its chain status and optionally its transactions.

Examples:
  esplora block 800000                 # Block at height 800000
  esplora block <hash> --txids         # List transaction ids
  esplora block <hash> --txs --from 25 # Transactions starting at index 25
  esplora block <hash> --txid-at 0     # Coinbase transaction id
  esplora block <hash> --raw           # Download and decode the raw block`,
	Args: cobra.ExactArgs(1),
	RunE: runBlock,
}

var (
	blockTxIDsFlag bool
	blockTxsFlag   bool
	blockFromFlag  int
	blockTxIDAt    int
	blockRawFlag   bool
)

func init() {
	blockCmd.Flags().BoolVar(&blockTxIDsFlag, "txids", false, "list all transaction ids")
	blockCmd.Flags().BoolVar(&blockTxsFlag, "txs", false, "list one page of transactions")
	blockCmd.Flags().IntVar(&blockFromFlag, "from", -1, "start index for --txs (multiple of 25)")
	blockCmd.Flags().IntVar(&blockTxIDAt, "txid-at", -1, "print the transaction id at this index")
	blockCmd.Flags().BoolVar(&blockRawFlag, "raw", false, "download and decode the raw block")
}

// resolveBlockHash accepts a hash or a height
func resolveBlockHash(ctx context.Context, client *api.Client, arg string) (string, error) {
	height, ok := isHeight(arg)
	if !ok {
		return arg, nil
	}
	return client.GetBlockHeight(ctx, height)
}

func runBlock(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient()
	if err != nil {
		return err
	}

	hash, err := resolveBlockHash(ctx, client, args[0])
	if err != nil {
		return describeError(err)
	}

	switch {
	case blockTxIDAt >= 0:
		txid, err := client.GetBlockTxIDAtIndex(ctx, hash, uint32(blockTxIDAt))
		if err != nil {
			return describeError(err)
		}
		fmt.Println(txid)
		return nil

	case blockTxIDsFlag:
		txids, err := client.GetBlockTxIDs(ctx, hash)
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

	case blockTxsFlag:
		var start *uint32
		if blockFromFlag >= 0 {
			start = api.Ptr(uint32(blockFromFlag))
		}
		txs, err := client.GetBlockTxs(ctx, hash, start)
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(txs)
		}
		printTxList(txs)
		return nil

	case blockRawFlag:
		return showRawBlock(ctx, client, hash)
	}

	// header and status are independent, fetch them together
	async := client.Async()
	blockF := async.GetBlock(ctx, hash)
	statusF := async.GetBlockStatus(ctx, hash)

	block, err := blockF.Await(ctx)
	if err != nil {
		statusF.Cancel()
		return describeError(err)
	}
	status, err := statusF.Await(ctx)
	if err != nil {
		return describeError(err)
	}

	if jsonOutput {
		return printJSON(struct {
			*api.Block
			Status *api.BlockStatus `json:"status"`
		}{block, status})
	}

	printBlock(block)
	if status.InBestChain {
		fmt.Printf("   Status:      %s\n", color.GreenString("in best chain"))
	} else {
		fmt.Printf("   Status:      %s\n", color.RedString("orphaned"))
	}
	if status.NextBest != nil {
		fmt.Printf("   Next block:  %s\n", *status.NextBest)
	}
	return nil
}

func printBlock(block *api.Block) {
	fmt.Printf("🧱 Block %s\n", color.CyanString("%d", block.Height))
	fmt.Printf("   Hash:        %s\n", block.ID)
	if block.PreviousBlockHash != "" {
		fmt.Printf("   Previous:    %s\n", block.PreviousBlockHash)
	}
	fmt.Printf("   Merkle root: %s\n", block.MerkleRoot)
	fmt.Printf("   Time:        %s\n", formatTime(block.Timestamp))
	if block.MedianTime != nil {
		fmt.Printf("   Median time: %s\n", formatTime(*block.MedianTime))
	}
	fmt.Printf("   Version:     0x%08x\n", uint32(block.Version))
	fmt.Printf("   Bits:        0x%08x  Nonce: %d\n", block.Bits, block.Nonce)
	if block.Difficulty > 0 {
		fmt.Printf("   Difficulty:  %.2f\n", block.Difficulty)
	}
	fmt.Printf("   Transactions: %d  Size: %d B  Weight: %d WU\n", block.TxCount, block.Size, block.Weight)
}

func showRawBlock(ctx context.Context, client *api.Client, hash string) error {
	raw, err := client.GetBlockRaw(ctx, hash)
	if err != nil {
		return describeError(err)
	}

	block, err := bitcoin.DecodeBlock(raw)
	if err != nil {
		return err
	}

	decodedHash := block.Header.BlockHash().String()
	fmt.Printf("🧱 Raw block: %d bytes\n", len(raw))
	fmt.Printf("   Hash:         %s\n", decodedHash)
	fmt.Printf("   Previous:     %s\n", block.Header.PrevBlock)
	fmt.Printf("   Merkle root:  %s\n", block.Header.MerkleRoot)
	fmt.Printf("   Time:         %s\n", block.Header.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Printf("   Transactions: %d\n", len(block.Transactions))
	if decodedHash != hash {
		fmt.Printf("⚠️  Decoded hash does not match requested block %s\n", hash)
	}
	return nil
}

var blocksCmd = &cobra.Command{
	Use:   "blocks [start-height]",
	Short: "List recent blocks",
	Long: `List the 10 blocks ending at start-height, or at the chain tip.

Examples:
  esplora blocks           # Latest 10 blocks
  esplora blocks 800000    # Blocks 799991 to 800000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient()
	if err != nil {
		return err
	}

	var start int64
	if len(args) == 1 {
		height, ok := isHeight(args[0])
		if !ok {
			return fmt.Errorf("invalid start height: %s", args[0])
		}
		start = height
	} else {
		start, err = client.GetBlocksTipHeight(ctx)
		if err != nil {
			return describeError(err)
		}
	}

	blocks, err := client.GetBlocks(ctx, start)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(blocks)
	}

	for _, b := range blocks {
		fmt.Printf("%s  %s  %s  %5d txs  %7d B\n",
			color.CyanString("%8d", b.Height), b.ID, formatTime(b.Timestamp), b.TxCount, b.Size)
	}
	return nil
}

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Show the chain tip",
	Args:  cobra.NoArgs,
	RunE:  runTip,
}

func runTip(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient()
	if err != nil {
		return err
	}

	async := client.Async()
	heightF := async.GetBlocksTipHeight(ctx)
	hashF := async.GetBlocksTipHash(ctx)

	height, err := heightF.Await(ctx)
	if err != nil {
		hashF.Cancel()
		return describeError(err)
	}
	hash, err := hashF.Await(ctx)
	if err != nil {
		return describeError(err)
	}

	if jsonOutput {
		return printJSON(map[string]interface{}{"height": height, "hash": hash})
	}
	fmt.Printf("⛓️  Tip: %s  %s\n", color.CyanString("%d", height), hash)
	return nil
}
