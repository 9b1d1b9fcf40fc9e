package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app         = "cv-screener"
	defaultTopK = 5
)

type Config struct {
	LexiconFile   string `mapstructure:"lexicon-file"`
	StopwordsFile string `mapstructure:"stopwords-file"`
	ExcludeFile   string `mapstructure:"exclude-file"`
	TopK          int    `mapstructure:"top-k"`

	Match  *MatchConfig  `mapstructure:"match"`
	Screen *ScreenConfig `mapstructure:"screen"`

	Filters   *FiltersConfig   `mapstructure:"filters"`
	Embedding *EmbeddingConfig `mapstructure:"embedding"`
}

type MatchConfig struct {
	Resume string `mapstructure:"resume"`
	Jobs   string `mapstructure:"jobs"`
}

type ScreenConfig struct {
	Resumes string `mapstructure:"resumes"`
	Job     string `mapstructure:"job"`
}

type FiltersConfig struct {
	MinExperienceYears int      `mapstructure:"min-experience-years"`
	RequiredSkills     []string `mapstructure:"required-skills"`
}

type EmbeddingConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	Model      string `mapstructure:"model"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-screener ranks resumes against job descriptions by embedding similarity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the screening commands. If there is no config, we can skip initialization
	if matchCmd.CalledAs() == "" && screenCmd.CalledAs() == "" {
		return
	}

	configureViper()

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

// configureViper points viper at the explicit --config file, or at
// cv-screener.yaml in the current directory.
func configureViper() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config != nil && config.TopK == 0 {
		config.TopK = defaultTopK
	}

	return config, nil
}
