package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/tx"
)

var (
	storeCmd = &cobra.Command{
		Use:   "store <key> <value>",
		Short: "append a record to the ledger",
		Args:  cobra.ExactArgs(2),
		RunE:  runStore,
	}

	getCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "print the latest value for a key",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}

	finalizeCmd = &cobra.Command{
		Use:   "finalize",
		Short: "batch pending records into a new block",
		RunE:  runFinalize,
	}

	headCmd = &cobra.Command{
		Use:   "head",
		Short: "print the current head block",
		RunE:  runHead,
	}
)

func runStore(cmd *cobra.Command, args []string) error {
	typ, err := recordType(cmd)
	if err != nil {
		return err
	}

	h, err := openVault()
	if err != nil {
		return err
	}
	defer h.Close()

	ctx := context.Background()
	key, value := args[0], []byte(args[1])

	keyFile, _ := cmd.Flags().GetString("key-file")
	if keyFile == "" {
		return h.StoreRecord(ctx, key, value, typ)
	}

	kp, err := readKeyFile(keyFile)
	if err != nil {
		return err
	}

	return h.StoreSignedRecord(ctx, key, value, typ, kp)
}

func runGet(cmd *cobra.Command, args []string) error {
	typ, err := recordType(cmd)
	if err != nil {
		return err
	}

	h, err := openVault()
	if err != nil {
		return err
	}
	defer h.Close()

	v, err := h.RetrieveRecord(context.Background(), args[0], typ)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(v)
	return err
}

func runFinalize(cmd *cobra.Command, args []string) error {
	h, err := openVault()
	if err != nil {
		return err
	}
	defer h.Close()

	b, err := h.Finalize(context.Background())
	if err != nil {
		return err
	}

	bh, err := b.Hash()
	if err != nil {
		return err
	}

	fmt.Printf("finalized block %s height=%d txs=%d\n", bh, b.Header.Height, len(b.Txs))
	return nil
}

func runHead(cmd *cobra.Command, args []string) error {
	h, err := openVault()
	if err != nil {
		return err
	}
	defer h.Close()

	head := h.Head()
	if head.IsZero() {
		fmt.Println("no finalized blocks")
		return nil
	}

	b, err := h.GetBlock(context.Background(), head)
	if err != nil {
		return err
	}

	fmt.Printf("block %s\n", head)
	fmt.Printf("height:   %d\n", b.Header.Height)
	fmt.Printf("previous: %s\n", b.Header.PreviousHash)
	fmt.Printf("tx root:  %s\n", b.Header.TxRoot)
	fmt.Printf("txs:      %d\n", len(b.Txs))
	return nil
}

func recordType(cmd *cobra.Command) (tx.Type, error) {
	s, _ := cmd.Flags().GetString("type")
	return tx.ParseType(s)
}

func readKeyFile(path string) (*cryptography.Keypair, error) {
	mb, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading key file")
	}

	raw, err := cryptography.DecodeMultibase(strings.TrimSpace(string(mb)))
	if err != nil {
		return nil, errors.Wrap(err, "decoding key file")
	}

	return cryptography.KeypairFromPrivate(raw)
}
