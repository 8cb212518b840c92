package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"workflowai/config"
)

var (
	cfgFile string
	cfg     *config.Config
	workDir string
)

var rootCmd = &cobra.Command{
	Use:   "workflowai",
	Short: "Workflow AI - ask questions about workflows, audit history and tickets",
	Long: `workflowai combines a static workflow reference document, the
operational audit trail and the ticketing system into one searchable
knowledge base, then answers natural-language questions grounded in
the retrieved passages.

Example usage:
  workflowai build                         # Build the combined knowledge base
  workflowai ask -q "recent actions for PO12345"
  workflowai audit add --action RetryWorkflow --item-key PO12345`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if workDir == "" {
			workDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		// API keys may live in a .env file next to the config.
		godotenv.Load()

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(workDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./workflowai.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", "", "working directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}
