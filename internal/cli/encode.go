package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the query string a transaction is sent as",
		Args:  cobra.NoArgs,
	}
	tf := addTransactionFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		txn, err := tf.build(cfg.LicenseKey)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), minfraud.EncodeQuery(txn).Encode())
		return nil
	}
	return cmd
}
