package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	ticketsQuery string
	ticketsLimit int
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List tickets from the configured ticketing source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		query := ticketsQuery
		if query == "" {
			query = cfg.Sources.Ticketing.Query
		}

		client, err := newTicketClient(cfg)
		if err != nil {
			return err
		}

		tickets, err := client.Search(query, ticketsLimit)
		if err != nil {
			return fmt.Errorf("ticket search failed: %w", err)
		}
		if len(tickets) == 0 {
			fmt.Println("No tickets found.")
			return nil
		}
		for _, t := range tickets {
			fmt.Printf("%s  %-8s %s\n", t.Number, t.State, t.ShortDescription)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
	ticketsCmd.Flags().StringVarP(&ticketsQuery, "query", "q", "", "ticket query expression (default from config)")
	ticketsCmd.Flags().IntVarP(&ticketsLimit, "limit", "n", 10, "number of tickets to show")
}
