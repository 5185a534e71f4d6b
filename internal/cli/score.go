package cli

import (
	"github.com/spf13/cobra"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Send a transaction to minFraud and print the decoded response",
		Args:  cobra.NoArgs,
	}
	tf := addTransactionFlags(cmd)
	path := cmd.Flags().String("path", "", "endpoint path (default /app/ccv2r)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), opts)
		cfg.Logger = logger

		txn, err := tf.build(cfg.LicenseKey)
		if err != nil {
			return err
		}

		client, err := minfraud.NewClient(cfg)
		if err != nil {
			return err
		}
		defer client.CloseIdleConnections()

		var sendOpts []minfraud.SendOption
		if *path != "" {
			sendOpts = append(sendOpts, minfraud.WithPath(*path))
		}

		resp, err := client.SendTransaction(cmd.Context(), txn, sendOpts...)
		if err != nil {
			return err
		}
		if warning, ok := resp.Warning(); ok {
			logger.Warn("minfraud returned a warning", "code", warning)
		}
		return writeDocument(cmd.OutOrStdout(), opts.output, responseDocument(resp))
	}
	return cmd
}
