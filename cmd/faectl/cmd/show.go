package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/therewillbecode/Fae-1/persist"
	"github.com/therewillbecode/Fae-1/types"
)

var showAuditLog string

var showCmd = &cobra.Command{
	Use:   "show <transaction-id>",
	Short: "look up a previously recorded transaction in the audit log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showEntry(args[0])
	},
}

func init() {
	showCmd.Flags().StringVar(&showAuditLog, "audit-log", "fae-audit.db", "path to the audit log to read from")
}

func showEntry(raw string) error {
	var txID types.TransactionID
	if err := txID.LoadString(raw); err != nil {
		return fmt.Errorf("show: %q is not a transaction id: %w", raw, err)
	}

	log, err := persist.OpenAuditLog(persist.Metadata{Header: "Fae Audit Log", Version: "1.0"}, showAuditLog)
	if err != nil {
		return fmt.Errorf("show: opening audit log: %w", err)
	}
	defer log.Close()

	rendered, ok, err := log.Lookup(txID)
	if err != nil {
		return fmt.Errorf("show: looking up %s: %w", txID, err)
	}
	if !ok {
		return fmt.Errorf("show: no audit entry for %s", txID)
	}
	fmt.Println(rendered)
	return nil
}
