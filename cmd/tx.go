package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chinmay1088/esplora/api"
	"github.com/chinmay1088/esplora/chains/bitcoin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx <txid>",
	Short: "Show a transaction",
	Long: `Show a transaction with its inputs, outputs and spend status.

Examples:
  esplora tx <txid>                  # Inputs, outputs and which outputs are spent
  esplora tx <txid> --hex            # Raw transaction as hex
  esplora tx <txid> --raw            # Download and decode the raw transaction
  esplora tx <txid> --proof          # Verify the merkle inclusion proof
  esplora tx <txid> --merkleblock    # Print the merkleblock proof
  esplora tx <txid> --outspend 1     # Spend status of output 1`,
	Args: cobra.ExactArgs(1),
	RunE: runTx,
}

var (
	txHexFlag         bool
	txRawFlag         bool
	txProofFlag       bool
	txMerkleBlockFlag bool
	txOutspendFlag    int
)

func init() {
	txCmd.Flags().BoolVar(&txHexFlag, "hex", false, "print the raw transaction as hex")
	txCmd.Flags().BoolVar(&txRawFlag, "raw", false, "download and decode the raw transaction")
	txCmd.Flags().BoolVar(&txProofFlag, "proof", false, "verify the merkle inclusion proof against the block header")
	txCmd.Flags().BoolVar(&txMerkleBlockFlag, "merkleblock", false, "print the merkleblock proof")
	txCmd.Flags().IntVar(&txOutspendFlag, "outspend", -1, "show the spend status of a single output")
}

func runTx(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, log, err := newClient()
	if err != nil {
		return err
	}
	txid := args[0]

	switch {
	case txHexFlag:
		hexTx, err := client.GetTxHex(ctx, txid)
		if err != nil {
			return describeError(err)
		}
		fmt.Println(hexTx)
		return nil

	case txRawFlag:
		return showRawTx(ctx, client, txid)

	case txProofFlag:
		return verifyTxProof(ctx, client, txid)

	case txMerkleBlockFlag:
		proof, err := client.GetTxMerkleBlockProof(ctx, txid)
		if err != nil {
			return describeError(err)
		}
		fmt.Println(proof)
		return nil

	case txOutspendFlag >= 0:
		out, err := client.GetTxOutspend(ctx, txid, uint32(txOutspendFlag))
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(out)
		}
		fmt.Printf("Output %d: %s\n", txOutspendFlag, formatOutspend(out))
		return nil
	}

	async := client.Async()
	txF := async.GetTx(ctx, txid)
	outspendsF := async.GetTxOutspends(ctx, txid)

	tx, err := txF.Await(ctx)
	if err != nil {
		outspendsF.Cancel()
		return describeError(err)
	}
	outspends, err := outspendsF.Await(ctx)
	if err != nil {
		// spend status is supplementary
		log.Warn().Err(err).Msg("failed to fetch outspends")
		outspends = nil
	}

	if jsonOutput {
		return printJSON(struct {
			*api.Transaction
			Outspends []api.Outspent `json:"outspends,omitempty"`
		}{tx, outspends})
	}

	printTx(tx, outspends)
	return nil
}

func printTx(tx *api.Transaction, outspends []api.Outspent) {
	fmt.Printf("📜 Transaction %s\n", color.CyanString(tx.TxID))
	fmt.Printf("   Status:  %s\n", formatStatus(tx.Status))
	fmt.Printf("   Size:    %d B  vsize: %d vB  weight: %d WU\n", tx.Size, tx.VSize(), tx.Weight)
	fmt.Printf("   Fee:     %s (%s sat/vB)\n", bitcoin.FormatBTC(tx.Fee), bitcoin.FeeRate(tx.Fee, tx.VSize()))
	fmt.Printf("   Version: %d  Locktime: %d\n", tx.Version, tx.Locktime)

	fmt.Printf("\n   Inputs (%d):\n", len(tx.Vin))
	for i, in := range tx.Vin {
		if in.IsCoinbase {
			fmt.Printf("   %3d  %s\n", i, color.YellowString("coinbase"))
			continue
		}
		from := "unknown"
		value := ""
		if in.Prevout != nil {
			value = bitcoin.FormatBTC(in.Prevout.Value)
			if in.Prevout.ScriptPubKeyAddress != nil {
				from = *in.Prevout.ScriptPubKeyAddress
			} else {
				from = in.Prevout.ScriptPubKeyType
			}
		}
		fmt.Printf("   %3d  %s:%d  %s  %s\n", i, shortID(in.TxID), in.Vout, from, value)
	}

	fmt.Printf("\n   Outputs (%d):\n", len(tx.Vout))
	for i, out := range tx.Vout {
		to := out.ScriptPubKeyType
		if out.ScriptPubKeyAddress != nil {
			to = *out.ScriptPubKeyAddress
		}
		spent := ""
		if i < len(outspends) {
			spent = "  " + formatOutspend(&outspends[i])
		}
		fmt.Printf("   %3d  %s  %s%s\n", i, to, bitcoin.FormatBTC(out.Value), spent)
	}
}

func formatOutspend(o *api.Outspent) string {
	if !o.Spent {
		return color.GreenString("unspent")
	}
	s := color.RedString("spent")
	if o.TxID != nil && o.Vin != nil {
		s += fmt.Sprintf(" by %s:%d", shortID(*o.TxID), *o.Vin)
	}
	return s
}

func printTxList(txs []api.Transaction) {
	for _, tx := range txs {
		var total int64
		for _, out := range tx.Vout {
			total += out.Value
		}
		fmt.Printf("%s  %3d in  %3d out  %s  fee %s  %s\n",
			tx.TxID, len(tx.Vin), len(tx.Vout), bitcoin.FormatBTC(total), bitcoin.FormatBTC(tx.Fee), formatStatus(tx.Status))
	}
}

func showRawTx(ctx context.Context, client *api.Client, txid string) error {
	raw, err := client.GetTxRaw(ctx, txid)
	if err != nil {
		return describeError(err)
	}

	tx, err := bitcoin.DecodeTransaction(raw)
	if err != nil {
		return err
	}

	params, err := bitcoin.NetworkParams(getCurrentNetwork())
	if err != nil {
		return err
	}

	decodedID := tx.TxHash().String()
	fmt.Printf("📜 Raw transaction: %d bytes\n", len(raw))
	fmt.Printf("   TxID:     %s\n", decodedID)
	fmt.Printf("   Version:  %d  Locktime: %d  Witness: %t\n", tx.Version, tx.LockTime, tx.HasWitness())
	fmt.Printf("   Inputs:   %d\n", len(tx.TxIn))
	for i, in := range tx.TxIn {
		fmt.Printf("   %3d  %s  sequence %d\n", i, in.PreviousOutPoint, in.Sequence)
	}
	fmt.Printf("   Outputs:  %d\n", len(tx.TxOut))
	for _, out := range bitcoin.OutputAddresses(tx, params) {
		to := out.Class
		if len(out.Addresses) > 0 {
			to = strings.Join(out.Addresses, ",")
		}
		fmt.Printf("   %3d  %s  %s\n", out.Index, to, bitcoin.FormatBTC(out.Value))
	}
	if decodedID != txid {
		fmt.Printf("⚠️  Decoded txid does not match requested transaction %s\n", txid)
	}
	return nil
}

func verifyTxProof(ctx context.Context, client *api.Client, txid string) error {
	proof, err := client.GetTxMerkleProof(ctx, txid)
	if err != nil {
		return describeError(err)
	}

	hash, err := client.GetBlockHeight(ctx, proof.BlockHeight)
	if err != nil {
		return describeError(err)
	}
	block, err := client.GetBlock(ctx, hash)
	if err != nil {
		return describeError(err)
	}

	err = bitcoin.VerifyMerkleProof(txid, proof.Merkle, proof.Pos, block.MerkleRoot)
	if jsonOutput {
		return printJSON(map[string]interface{}{
			"proof":       proof,
			"block_hash":  hash,
			"merkle_root": block.MerkleRoot,
			"valid":       err == nil,
		})
	}

	fmt.Printf("🔎 Merkle proof for %s\n", txid)
	fmt.Printf("   Block:    %d (%s)\n", proof.BlockHeight, hash)
	fmt.Printf("   Position: %d  Depth: %d\n", proof.Pos, len(proof.Merkle))
	if errors.Is(err, bitcoin.ErrMerkleMismatch) {
		fmt.Printf("   Result:   %s\n", color.RedString("INVALID"))
		return err
	}
	if err != nil {
		return err
	}
	fmt.Printf("   Result:   %s\n", color.GreenString("valid"))
	return nil
}
