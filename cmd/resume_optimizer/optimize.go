package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/store"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Run the full resume optimization pipeline end-to-end",
	Long: `Orchestrates the entire optimization process: ingestion -> parsing -> keyword extraction -> matching -> enhancement -> persistence -> rendering.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath  string
	optResume      string
	optJob         string
	optOutput      string
	optAPIKey      string
	optDatabaseURL string
	optVerbose     bool
)

func init() {
	// Config file flag (processed first)
	optimizeCommand.Flags().StringVar(&optConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	optimizeCommand.Flags().StringVarP(&optResume, "resume", "r", "", "Path to resume file (txt, pdf, docx, or html)")
	optimizeCommand.Flags().StringVarP(&optJob, "job", "j", "", "Path to job posting text file")
	optimizeCommand.Flags().StringVarP(&optOutput, "output", "o", "", "Path to write the optimized resume (defaults to stdout)")
	optimizeCommand.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	optimizeCommand.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for job and resume persistence
	optimizeCommand.Flags().StringVar(&optDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimizeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if optConfigPath != "" {
		loadedCfg, err := config.LoadConfig(optConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if optVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", optConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = optResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = optJob
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = optOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = optAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = optDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = optVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; memory store without it)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	resumeText, err := readDocument(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobText, err := readDocument(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resume, err := parsing.ParseResume(ctx, client, resumeText)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		database, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		st = database
	} else {
		if cfg.Verbose {
			_, _ = fmt.Fprintln(os.Stderr, "Warning: no database configured, results are not persisted across runs")
		}
		st = store.NewMemory()
	}

	resumeID := uuid.New()
	if err := st.SaveResume(ctx, resumeID, resume); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	emb := embedding.NewClient(client, embedding.WithConcurrency(cfg.Concurrency))
	p := pipeline.New(client, emb, st, cfg, printer)

	result, err := p.Optimize(ctx, resumeID, jobText)
	if err != nil {
		return err
	}

	rendered, err := rendering.RenderText(result.Enhanced)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Optimized resume written to: %s\n", cfg.Output)
	} else {
		_, _ = fmt.Fprintln(os.Stdout, rendered)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Job %s completed (%d bullets rewritten, %d skills added)\n",
		result.Job.ID, rewriteCount(result), len(result.Match.Skills.Added))

	return nil
}

func rewriteCount(result *pipeline.Result) int {
	n := 0
	for _, mod := range result.Modifications {
		if !mod.FellBack {
			n++
		}
	}
	return n
}

// readDocument loads a resume or job file and extracts its plain text,
// inferring the content type from the file extension.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ingestion.ExtractText(data, mimeFromPath(path))
}

func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".html", ".htm":
		return "text/html"
	default:
		return "text/plain"
	}
}
