package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"workflowai/internal/adapter/auditlog"
	"workflowai/internal/adapter/chunker"
	"workflowai/internal/adapter/source"
	"workflowai/internal/domain"
	"workflowai/internal/port"
	"workflowai/internal/usecase"
)

var (
	buildDocPath  string
	buildAudit    bool
	buildTickets  bool
	buildLocation string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the combined knowledge base",
	Long: `Build (or rebuild) the persisted vector index from the selected
sources: the workflow reference document, the audit trail and the
ticketing system. Rebuilding replaces the previous index atomically.

Examples:
  workflowai build                          # all sources, config defaults
  workflowai build --doc ./docs             # document tree + dynamic sources
  workflowai build --audit=false --tickets=false`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildDocPath, "doc", "", "path to the workflow document or document directory (default from config)")
	buildCmd.Flags().BoolVar(&buildAudit, "audit", true, "include recent audit-trail entries")
	buildCmd.Flags().BoolVar(&buildTickets, "tickets", true, "include tickets from the ticketing system")
	buildCmd.Flags().StringVar(&buildLocation, "location", "", "index location (default from config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	docPath := buildDocPath
	if docPath == "" {
		docPath = cfg.Sources.Document.Path
	}
	location := buildLocation
	if location == "" {
		location = cfg.Index.Location
	}

	// Assemble sources in fixed order: document, audit, tickets.
	sources := []port.RecordSource{
		source.NewDocumentSource(docPath, cfg.Sources.Document.Includes, cfg.Sources.Document.Excludes),
	}

	if buildAudit {
		auditStore, err := auditlog.Open(cfg.Sources.Audit.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		defer auditStore.Close()
		sources = append(sources, source.NewAuditSource(auditStore, cfg.Sources.Audit.Limit))
	}

	if buildTickets {
		client, err := newTicketClient(cfg)
		if err != nil {
			return err
		}
		sources = append(sources, source.NewTicketSource(client, cfg.Sources.Ticketing.Query, cfg.Sources.Ticketing.Limit))
	}

	chk, err := chunker.NewWindowChunker(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap)
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	builder := usecase.NewBuilder(sources, chk, embedder)
	builder.SetBatchSize(cfg.Embedding.BatchSize)

	var bar *progressbar.ProgressBar
	builder.SetProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Embedding"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	})

	fmt.Printf("Building knowledge base at %s...\n", location)

	report, err := builder.Build(location)
	if err != nil {
		if errors.Is(err, domain.ErrNoContent) {
			return fmt.Errorf("nothing to index: no document found at %s and no dynamic source returned entries", docPath)
		}
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return fmt.Errorf("embedding provider unreachable, index not built: %w", err)
		}
		return err
	}

	color.Green("Knowledge base built: %d records, %d chunks", report.TotalRecords, report.TotalChunks)
	for _, kind := range []domain.SourceKind{domain.SourceDocument, domain.SourceAudit, domain.SourceTicket} {
		if n, ok := report.RecordsBySource[kind]; ok {
			fmt.Printf("  %-10s %d records\n", kind, n)
		}
	}
	fmt.Printf("Index location: %s\n", filepath.Clean(location))
	return nil
}
