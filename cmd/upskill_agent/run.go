package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/upskill-agent/internal/config"
	"github.com/jonathan/upskill-agent/internal/extraction"
	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/logger"
	"github.com/jonathan/upskill-agent/internal/observability"
	"github.com/jonathan/upskill-agent/internal/pipeline"
	"github.com/jonathan/upskill-agent/internal/planning"
	"github.com/jonathan/upskill-agent/internal/research"
	"github.com/jonathan/upskill-agent/internal/search"
	"github.com/jonathan/upskill-agent/internal/store"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full roadmap pipeline end-to-end",
	Long: `Orchestrates the whole analysis: parsing -> research -> roadmap.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runJD           string
	runResume       string
	runUserID       string
	runAPIKey       string
	runSearchAPIKey string
	runSearchCX     string
	runDatabaseURL  string
	runTimeout      int
	runJSONLogs     bool
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJD, "jd", "j", "", "Path to job description text file")
	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume PDF (optional)")
	runCommand.Flags().StringVarP(&runUserID, "user-id", "u", "", "User identifier for persisted analyses")
	runCommand.Flags().IntVar(&runTimeout, "timeout", 0, "Per generation call timeout in seconds")
	runCommand.Flags().BoolVar(&runJSONLogs, "json-logs", false, "Emit logs as JSON")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage output")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Search is optional; without it research falls back to model knowledge
	runCommand.Flags().StringVar(&runSearchAPIKey, "search-api-key", "", "Google Programmable Search API key (optional, defaults to SEARCH_API_KEY env var)")
	runCommand.Flags().StringVar(&runSearchCX, "search-cx", "", "Programmable Search engine ID (optional, defaults to SEARCH_CX env var)")

	// Database URL for analysis persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("jd") {
		cfg.JD = runJD
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("user-id") {
		cfg.UserID = runUserID
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = runSearchAPIKey
	}
	if cmd.Flags().Changed("search-cx") {
		cfg.SearchCX = runSearchCX
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = runTimeout
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = runJSONLogs
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		TimeoutSeconds: int(llm.DefaultTimeout / time.Second),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.JD == "" {
		return fmt.Errorf("--jd must be provided (via flag or config)")
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Optional capabilities from env
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("SEARCH_API_KEY")
	}
	if cfg.SearchCX == "" {
		cfg.SearchCX = os.Getenv("SEARCH_CX")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	jdBytes, err := os.ReadFile(cfg.JD)
	if err != nil {
		return fmt.Errorf("failed to read job description file %s: %w", cfg.JD, err)
	}
	jdText := strings.TrimSpace(string(jdBytes))

	llmConfig := llm.DefaultConfig()
	if cfg.TimeoutSeconds > 0 {
		llmConfig.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var searchClient search.Client
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		googleClient, err := search.NewGoogleClient(ctx, cfg.SearchAPIKey, cfg.SearchCX, search.DefaultTimeout)
		if err != nil {
			return fmt.Errorf("failed to create search client: %w", err)
		}
		searchClient = googleClient
	} else {
		log.Info("search not configured, research will rely on model knowledge")
	}

	var analysisStore store.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPgStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pgStore.Close()
		analysisStore = pgStore
	} else if cfg.UserID != "" {
		analysisStore = store.NewMemoryStore()
	}

	opts := pipeline.Options{
		Store:  analysisStore,
		Logger: log,
		OnProgress: func(e pipeline.ProgressEvent) {
			log.Info("stage started", zap.String("stage", e.Stage), zap.String("message", e.Message))
		},
	}

	p := pipeline.New(
		extraction.NewExtractor(client),
		research.NewResearcher(client, searchClient, log),
		planning.NewPlanner(client),
		opts,
	)

	state, err := p.Run(ctx, pipeline.RunInput{
		UserID:     cfg.UserID,
		JDText:     jdText,
		ResumePath: cfg.Resume,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintCandidateProfile(state.CandidateProfile)
		printer.PrintJobRequirements(state.JobRequirements)
		printer.PrintSummary(state.ResearchSummary)
		printer.PrintGapAnalysis(state.GapAnalysis)
		printer.PrintRankedSkills(state.RankedSkills)
		printer.PrintRoadmaps(state.Roadmaps)
		printer.PrintProjects(state.Projects)
		return nil
	}

	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
