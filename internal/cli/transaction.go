package cli

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

// transactionFlags holds one string flag per settable attribute.
type transactionFlags struct {
	values     map[minfraud.Attribute]*string
	cardNumber string
}

func flagName(attr minfraud.Attribute) string {
	return strings.ReplaceAll(string(attr), "_", "-")
}

func addTransactionFlags(cmd *cobra.Command) *transactionFlags {
	tf := &transactionFlags{values: make(map[minfraud.Attribute]*string)}
	for _, attr := range minfraud.Attributes() {
		if attr.Derived() {
			continue
		}
		usage := "transaction " + string(attr)
		switch attr {
		case minfraud.TxnID:
			usage += " (default: random UUID)"
		case minfraud.LicenseKey:
			usage += " (default: MINFRAUD_LICENSE_KEY or config file)"
		}
		tf.values[attr] = cmd.Flags().String(flagName(attr), "", usage)
	}
	cmd.Flags().StringVar(&tf.cardNumber, "card-number", "", "card number; only its BIN is sent")
	return tf
}

// build creates the transaction, filling the transaction id and license
// key from defaults when not given.
func (tf *transactionFlags) build(licenseKey string) (*minfraud.Transaction, error) {
	return minfraud.NewTransaction(func(b *minfraud.TransactionBuilder) {
		for attr, v := range tf.values {
			if *v != "" {
				b.Set(attr, *v)
			}
		}
		if _, ok := b.Get(minfraud.TxnID); !ok {
			b.Set(minfraud.TxnID, uuid.NewString())
		}
		if _, ok := b.Get(minfraud.LicenseKey); !ok && licenseKey != "" {
			b.Set(minfraud.LicenseKey, licenseKey)
		}
		if _, ok := b.Get(minfraud.BIN); !ok {
			if bin := minfraud.CardBIN(tf.cardNumber); bin != "" {
				b.Set(minfraud.BIN, bin)
			}
		}
	})
}
