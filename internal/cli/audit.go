package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"workflowai/internal/adapter/auditlog"
	"workflowai/internal/adapter/source"
	"workflowai/internal/domain"
)

var (
	auditListLimit int
	auditAddActor  string
	auditAddAction string
	auditAddType   string
	auditAddKey    string
	auditAddResult string
	auditAddTicket string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect or populate the workflow audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auditlog.Open(GetConfig().Sources.Audit.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.FetchRecent(auditListLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Audit trail is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Println(source.RenderAuditEntry(e))
		}
		return nil
	},
}

var auditAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an entry to the audit trail",
	Long: `Append an audit entry. In production this table is written by the
workflow engine; the command exists so a demo can populate the
dynamic source.

Example:
  workflowai audit add --action RetryWorkflow --item-type PO \
      --item-key PO12345 --result "Workflow retried successfully"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auditlog.Open(GetConfig().Sources.Audit.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entry := domain.AuditEntry{
			Actor:         auditAddActor,
			ActionType:    auditAddAction,
			ItemType:      auditAddType,
			ItemKey:       auditAddKey,
			ResultMessage: auditAddResult,
			TicketNumber:  auditAddTicket,
		}
		if err := store.Append(entry); err != nil {
			return err
		}
		fmt.Println("Audit entry recorded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditAddCmd)

	auditListCmd.Flags().IntVarP(&auditListLimit, "limit", "n", 20, "number of entries to show")

	auditAddCmd.Flags().StringVar(&auditAddActor, "actor", "cli_user", "acting user")
	auditAddCmd.Flags().StringVar(&auditAddAction, "action", "", "action type, e.g. RetryWorkflow (required)")
	auditAddCmd.Flags().StringVar(&auditAddType, "item-type", "", "item type, e.g. PO")
	auditAddCmd.Flags().StringVar(&auditAddKey, "item-key", "", "item key, e.g. PO12345")
	auditAddCmd.Flags().StringVar(&auditAddResult, "result", "", "result message")
	auditAddCmd.Flags().StringVar(&auditAddTicket, "ticket", "", "linked ticket number")
	auditAddCmd.MarkFlagRequired("action")
}
