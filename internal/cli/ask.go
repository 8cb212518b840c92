package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"workflowai/internal/adapter/auditlog"
	"workflowai/internal/domain"
	"workflowai/internal/usecase"
)

var (
	askQuery    string
	askTopK     int
	askLocation string
	askShowCtx  bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question against the knowledge base",
	Long: `Ask a natural-language question. The query is embedded, the top-k
most similar chunks are retrieved from the persisted index, and the
answer is generated from the retrieved context.

Examples:
  workflowai ask -q "recent actions for PO12345"
  workflowai ask -q "how do I retry a failed workflow" -k 5 --context`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to ask (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().StringVar(&askLocation, "location", "", "index location (default from config)")
	askCmd.Flags().BoolVar(&askShowCtx, "context", false, "also print the retrieved chunks")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	location := askLocation
	if location == "" {
		location = cfg.Index.Location
	}
	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	generator, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	answerer := usecase.NewAnswerer(embedder, generator)

	if askShowCtx {
		chunks, err := answerer.Retrieve(askQuery, location, topK)
		if err != nil {
			return renderAskError(err, location)
		}
		color.Cyan("Retrieved context:")
		for i, c := range chunks {
			fmt.Printf("%d. [%s] (score %.4f) %s\n", i+1, c.Chunk.Kind, c.Score, c.Chunk.Text)
		}
		fmt.Println()
	}

	answer, err := answerer.Answer(askQuery, location, topK)
	if err != nil {
		return renderAskError(err, location)
	}

	color.Green("Answer:")
	fmt.Println(answer)

	// Queries are themselves part of the operational history.
	if auditStore, err := auditlog.Open(cfg.Sources.Audit.DBPath); err == nil {
		auditStore.Append(domain.AuditEntry{
			Actor:         "workflowai",
			ActionType:    "RAGQuery",
			ResultMessage: fmt.Sprintf("Query: %s", askQuery),
		})
		auditStore.Close()
	}

	return nil
}

func renderAskError(err error, location string) error {
	switch {
	case errors.Is(err, domain.ErrIndexNotFound):
		return fmt.Errorf("no knowledge base at %s: run 'workflowai build' first", location)
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return fmt.Errorf("embedding provider unreachable: %w", err)
	case errors.Is(err, domain.ErrGenerationFailed):
		return fmt.Errorf("answer generation failed: %w", err)
	default:
		return err
	}
}
