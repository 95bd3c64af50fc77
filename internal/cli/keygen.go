package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/acrostic/chainstore/pkg/cryptography"
)

var (
	keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "generate a signing keypair",
		RunE:  runKeygen,
	}
)

func runKeygen(cmd *cobra.Command, args []string) error {
	kp, err := cryptography.GenerateKeypair()
	if err != nil {
		return err
	}

	priv, err := cryptography.EncodeMultibase(kp.Private)
	if err != nil {
		return errors.Wrap(err, "encoding private key")
	}

	pub, err := cryptography.EncodeMultibase(kp.Public)
	if err != nil {
		return errors.Wrap(err, "encoding public key")
	}

	out, _ := cmd.Flags().GetString("out")

	if err := os.WriteFile(out, []byte(priv+"\n"), 0o600); err != nil {
		return errors.Wrap(err, "writing key file")
	}

	fmt.Printf("public key: %s\n", pub)
	fmt.Printf("private key written to %s\n", out)
	return nil
}
