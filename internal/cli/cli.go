package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/acrostic/chainstore/internal/config"
	istorage "github.com/acrostic/chainstore/internal/storage"
	"github.com/acrostic/chainstore/pkg/vault"
)

var (
	rootCmd = &cobra.Command{
		Use:   "chainstore",
		Short: "append-only authenticated record ledger",
	}
)

func Execute() error {
	rootCmd.PersistentFlags().StringP("path", "P", "", "ledger storage path")
	viper.BindPFlag("storage_path", rootCmd.PersistentFlags().Lookup("path"))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	regCommands()

	return rootCmd.Execute()
}

func openVault(opts ...istorage.Option) (*vault.Handle, error) {
	c, err := config.GetConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	return vault.Open(c.StoragePath(), opts...)
}
