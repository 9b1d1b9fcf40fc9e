package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cvscreen/cv-screener/internal/dataset"
	"github.com/cvscreen/cv-screener/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Rank resumes against one job description",
	Run: func(cmd *cobra.Command, _ []string) {
		screenResumes(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("resumes", "", "CSV file with resumes")
	screenCmd.Flags().String("job", "", `job description file, or "-" to read it from stdin`)
	addScreeningFlags(screenCmd)
}

// screenResumes is the jobs-to-resumes command: one job description ranked
// against a CSV of resumes.
func screenResumes(cmd *cobra.Command) {
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

	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		log.Fatal("config is required")
	}

	jobPath := flagOrConfig(cmd, "job", func() string {
		if config.Screen == nil {
			return ""
		}
		return config.Screen.Job
	})
	if jobPath == "" {
		log.Fatal(`a job description is required, set screen.job or the --job flag ("-" reads stdin)`)
	}

	resumesPath := flagOrConfig(cmd, "resumes", func() string {
		if config.Screen == nil {
			return ""
		}
		return config.Screen.Resumes
	})
	if resumesPath == "" {
		log.Fatal("a resumes CSV is required, set screen.resumes or the --resumes flag")
	}

	jobText := readJobText(jobPath, log)

	resumes, err := dataset.LoadResumes(resumesPath)
	if err != nil {
		log.Fatal("loading resumes", zap.Error(err))
	}

	log.Info("loading resumes", zap.Int("count", resumes.Len()))

	screen(ctx, cmd, config, log, jobText, resumes)
}

func readJobText(path string, log *zap.Logger) string {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("reading the job description from stdin", zap.Error(err))
		}
		return string(data)
	}

	return readDocument(path, log)
}
