package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cvscreen/cv-screener/internal/dataset"
	"github.com/cvscreen/cv-screener/internal/document"
	"github.com/cvscreen/cv-screener/internal/embedding"
	"github.com/cvscreen/cv-screener/internal/extract"
	"github.com/cvscreen/cv-screener/internal/filtering"
	"github.com/cvscreen/cv-screener/internal/logger"
	"github.com/cvscreen/cv-screener/internal/ranking"
	"github.com/cvscreen/cv-screener/internal/report"
	"github.com/cvscreen/cv-screener/internal/screening"
	"github.com/cvscreen/cv-screener/internal/secrets"
	"github.com/cvscreen/cv-screener/internal/textnorm"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowMatches         = "Show matches"
	PromptReportByTitle       = "Report matches by title"
	PromptExportCSV           = "Export matches to a CSV file"
	PromptDumpJSON            = "Dump the full report to a JSON file"
	PromptAppendToExcludeFile = "Append matches to exclude file"
	PromptExit                = "Exit"

	// Extractions shorter than this are usually a scanned or corrupt document.
	minExtractedChars = 200

	previewLogLimit = 200
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptShowMatches,
		PromptReportByTitle,
		PromptExportCSV,
		PromptDumpJSON,
		PromptAppendToExcludeFile,
		PromptExit,
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job descriptions against one resume",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx, rtf or plain text)")
	matchCmd.Flags().String("jobs", "", "CSV file with job descriptions")
	addScreeningFlags(matchCmd)
}

func addScreeningFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("auto-approve", "y", false, "print the matches and exit without the action menu")
	cmd.Flags().IntP("top-k", "k", 0, "how many matches to keep (overrides the config)")
	cmd.Flags().StringP("output", "o", "matches.csv", "path for the CSV export")
	cmd.Flags().Bool("ignore-filters", false, "skip the experience and skill filters")
	cmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
}

// match is the resume-to-jobs command: one resume document ranked against a
// CSV of job descriptions.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalNoLogger(err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the cv-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		log.Fatal("config is required")
	}

	resumePath := flagOrConfig(cmd, "resume", func() string {
		if config.Match == nil {
			return ""
		}
		return config.Match.Resume
	})
	if resumePath == "" {
		log.Fatal("a resume file is required, set match.resume or the --resume flag")
	}

	jobsPath := flagOrConfig(cmd, "jobs", func() string {
		if config.Match == nil {
			return ""
		}
		return config.Match.Jobs
	})
	if jobsPath == "" {
		log.Fatal("a jobs CSV is required, set match.jobs or the --jobs flag")
	}

	resumeText := readDocument(resumePath, log)

	jobs, err := dataset.LoadJobs(jobsPath)
	if err != nil {
		log.Fatal("loading jobs", zap.Error(err))
	}

	log.Info("loading jobs", zap.Int("count", jobs.Len()))

	screen(ctx, cmd, config, log, resumeText, jobs)
}

// screen runs the shared part of both commands: filters, ranking and the
// action menu.
func screen(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger, query string, candidates *dataset.Candidates) {
	if candidates.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	// Both commands declare the flag; bind the one on the command that ran.
	viper.BindPFlag("exclude-file", cmd.Flags().Lookup("exclude-file"))

	normalizer := textnorm.NewDefault()
	if config.StopwordsFile != "" {
		normalizer = textnorm.New(textnorm.Config{
			Stopwords: textnorm.LoadStopwords(config.StopwordsFile),
		})
	}

	if query == "" || normalizer.Normalize(query) == "" {
		log.Fatal("the query text is empty after normalization, nothing to rank against")
	}

	lexicon := extract.LoadLexicon(config.LexiconFile)
	if len(lexicon) == 0 {
		log.Warn("the skill lexicon is empty, skill signals will be empty",
			zap.String("lexicon_file", config.LexiconFile),
		)
	}

	steps, filterCfg := prepareFilters(cmd, config)
	deps := filtering.Deps{Logger: log, Normalizer: normalizer}

	filtered, err := filtering.Run(ctx, filterCfg, deps, steps, candidates)
	if err != nil {
		log.Fatal("filtering failed", zap.Error(err))
	}
	candidates = filtered

	if candidates.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	provider, err := newEmbeddingProvider(ctx, config.Embedding, log)
	if err != nil {
		log.Fatal("building the embedding provider", zap.Error(err))
	}

	topK := config.TopK
	if flagged, _ := cmd.Flags().GetInt("top-k"); flagged > 0 {
		topK = flagged
	}

	screener := screening.New(ranking.New(provider, normalizer, log), lexicon, log)

	result, err := screener.Screen(ctx, query, candidates, topK)
	if err != nil {
		log.Fatal("screening failed", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")

	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		if err := handleAction(PromptShowMatches, log, config, result, output); err != nil {
			log.Fatal("exiting", zap.Error(err))
		}
		if err := handleAction(PromptExportCSV, log, config, result, output); err != nil {
			log.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, log, config, result, output); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, log *zap.Logger, config *Config, result *screening.Report, output string) error {
	switch action {
	case PromptShowMatches:
		pretty, _ := json.MarshalIndent(result, "", "  ")
		log.Info(string(pretty), zap.Int("matches", len(result.Matches)))
		return nil
	case PromptReportByTitle:
		grouped := matchedCandidates(result).ReportByGroup(dataset.CandidateTitleField)
		pretty, _ := json.MarshalIndent(grouped, "", "  ")
		log.Info(string(pretty), zap.Int("matches", len(result.Matches)))
		return nil
	case PromptExportCSV:
		if err := report.ExportCSV(output, result); err != nil {
			return fmt.Errorf("export matches to csv: %w", err)
		}
		log.Info("exported matches to csv", zap.String("filename", output))
		return nil
	case PromptDumpJSON:
		filename, err := report.DumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		log.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(log, config, result)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(log *zap.Logger, config *Config, result *screening.Report) error {
	excludeFile := strings.TrimSpace(viper.GetString("exclude-file"))
	if excludeFile == "" {
		excludeFile = strings.TrimSpace(config.ExcludeFile)
	}
	if excludeFile == "" {
		log.Warn("no exclude file configured, set exclude-file or the --exclude-file flag")
		return nil
	}

	excluded, err := dataset.GetExcludedFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(matchedCandidates(result).ToExcluded("matched in a previous run"))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	log.Info("appended to exclude file", zap.String("filename", excludeFile))
	return nil
}

func matchedCandidates(result *screening.Report) *dataset.Candidates {
	items := make([]*dataset.Candidate, 0, len(result.Matches))
	for _, m := range result.Matches {
		items = append(items, m.Candidate)
	}
	return &dataset.Candidates{Items: items}
}

// readDocument extracts text from a resume or job document and reports a
// suspiciously short extraction.
func readDocument(path string, log *zap.Logger) string {
	text := document.Read(path)

	log.Debug("extracted document text",
		zap.String("path", path),
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, previewLogLimit)),
	)

	if len(text) < minExtractedChars {
		log.Warn("extracted very little text, the document may be scanned or unsupported",
			zap.String("path", path),
			zap.Int("chars", len(text)),
		)
	}

	return text
}

func prepareFilters(cmd *cobra.Command, config *Config) ([]filtering.Filter, *filtering.Config) {
	steps := []filtering.Filter{
		filtering.NewEmptyText(),
		filtering.NewMinExperience(),
		filtering.NewRequiredSkills(),
		filtering.NewExcludeFile(),
	}

	filterCfg := &filtering.Config{
		ExcludeFile: strings.TrimSpace(viper.GetString("exclude-file")),
	}
	if filterCfg.ExcludeFile == "" {
		filterCfg.ExcludeFile = config.ExcludeFile
	}
	if config.Filters != nil {
		filterCfg.MinExperienceYears = config.Filters.MinExperienceYears
		filterCfg.RequiredSkills = config.Filters.RequiredSkills
	}

	if ignore, _ := cmd.Flags().GetBool("ignore-filters"); ignore {
		filtering.DisableByName(steps, "min_experience", "disabled by the ignore-filters flag")
		filtering.DisableByName(steps, "required_skills", "disabled by the ignore-filters flag")
	}

	return steps, filterCfg
}

func newEmbeddingProvider(ctx context.Context, cfg *EmbeddingConfig, log *zap.Logger) (embedding.Provider, error) {
	if cfg == nil {
		cfg = &EmbeddingConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	gemini := cfg.Gemini
	if gemini == nil {
		gemini = &GeminiConfig{}
	}

	keyFile := strings.TrimSpace(gemini.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("embedding.gemini.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	embLogger := logger.WithCommonFields(log, "gemini", gemini.Model)

	return embedding.NewGemini(ctx, apiKey, gemini.Model, embLogger)
}

func flagOrConfig(cmd *cobra.Command, name string, fallback func() string) string {
	if value, _ := cmd.Flags().GetString(name); value != "" {
		return value
	}
	return fallback()
}

func fatalNoLogger(err error) {
	log.Fatalf("creating a logger: %s", err)
}
