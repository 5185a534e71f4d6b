package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode a raw minFraud response body",
		Long:  "Decode a raw key=value; response body read from a file or standard input.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			resp, err := minfraud.DecodeResponse(http.StatusOK, trimNewline(data), true, nil)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), opts.output, responseDocument(resp))
		},
	}
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
