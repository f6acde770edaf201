package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pauljayakar30/Paninis-eye/internal/bootstrap"
	grammaradapter "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/adapter/out"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "paninis-eye",
		Short:         "Sanskrit manuscript reconstruction engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newServeCmd(&dataDir))
	root.AddCommand(newIngestCmd(&dataDir))
	root.AddCommand(newReconstructCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newSessionsCmd(&dataDir))
	root.AddCommand(newRulesCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newServeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reconstruction HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			errCh := make(chan error, 1)
			go func() { errCh <- app.Server.ListenAndServe() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-stop:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.Server.Shutdown(ctx)
		},
	}
}

func newIngestCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest a manuscript PDF or text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.IngestDocument(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d tokens, %d masks\n",
				out.SessionID, len(out.Tokens), len(out.Masks))
			return nil
		},
	}
}

func newReconstructCmd(dataDir *string) *cobra.Command {
	var maskIDs []string
	var mode string
	var count int

	cmd := &cobra.Command{
		Use:   "reconstruct <session-id>",
		Short: "Generate restoration candidates for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReconstructCLI.Reconstruct(context.Background(), args[0], maskIDs, mode, count)
			if err != nil {
				return err
			}
			if out.FallbackUsed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "backend degraded: serving exemplar candidates")
			}
			for _, candidate := range out.Candidates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %.3f  %s (%s)\n",
					candidate.CandidateID, candidate.Scores.Combined, candidate.Text, candidate.IAST)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %dms (model %dms, kg %dms)\n",
				out.Timings.TotalMS, out.Timings.ModelInferenceMS, out.Timings.KGLookupMS)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&maskIDs, "mask", nil, "mask ids to reconstruct (default: all)")
	cmd.Flags().StringVar(&mode, "mode", "hard", "constraint mode: hard or soft")
	cmd.Flags().IntVar(&count, "n", 5, "number of candidates")
	return cmd
}

func newExportCmd(dataDir *string) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a session as JSON or TEI XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Export(context.Background(), args[0], format)
			if err != nil {
				return err
			}
			path := outPath
			if path == "" {
				path = out.Filename
			}
			if err := os.WriteFile(path, out.Content, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "export format: json or tei")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: export filename)")
	return cmd
}

func newSessionsCmd(dataDir *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List known sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			summaries, err := app.SessionCLI.List(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(summaries)
			}
			for _, summary := range summaries {
				flag := ""
				if summary.FallbackUsed {
					flag = " [degraded]"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %d tokens, %d masks%s\n",
					summary.SessionID, summary.TokenCount, summary.MaskCount, flag)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func newRulesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the active grammar rule table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			table, err := grammaradapter.NewYAMLRuleSource(cfg.RulesPath).Load(cmd.Context())
			if err != nil {
				return err
			}
			source := "embedded"
			if cfg.RulesPath != "" {
				source = cfg.RulesPath
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rule table v%d (%s)\n", table.Version, source)
			categories := make([]string, 0, len(table.Endings))
			for category := range table.Endings {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			for _, category := range categories {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "endings %s: %d\n", category, len(table.Endings[category]))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vowel sandhi pairs: %d\n", len(table.VowelSandhi))
			mode := "permissive"
			if cfg.StrictGrammar {
				mode = "strict"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unknown forms: %s\n", mode)
			return nil
		},
	}
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Review candidates in the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}
