package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// EnvPrefix is the prefix of every environment variable read by Load,
// e.g. DRILL_SESSION_ANSWER_SHEET or DRILL_LOG_LEVEL.
const EnvPrefix = "DRILL"

// ErrValidation is returned when the loaded configuration fails validation.
var ErrValidation = errors.New("validation failed")

// Flag names registered by RegisterFlags.
const (
	FlagAnswerSheet = "answer-sheet"
	FlagGradeSheet  = "grade-sheet"
	FlagIncludeNew  = "include-new"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	FlagAnswerSheet: "session.answer_sheet",
	FlagGradeSheet:  "session.grade_sheet",
	FlagIncludeNew:  "session.include_new",
	FlagLogLevel:    "log.level",
	FlagLogFormat:   "log.format",
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit YAML file. When empty, drill.yaml is searched
	// for in ./config and $HOME/.config/drill and its absence is not an error.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the environment before reading it.
	// Missing files are ignored. Defaults to ".env".
	EnvFile string
	// Flags are bound on top of every other source. May be nil.
	Flags *pflag.FlagSet
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagAnswerSheet, "a", "", "answer sheet to drill (csv or xlsx, rows of prompt,answer)")
	fs.StringP(FlagGradeSheet, "g", "", "grade sheet to load and save (csv, xlsx or sqlite); default starts fresh")
	fs.Bool(FlagIncludeNew, false, "add answer sheet prompts missing from the grade sheet")
	fs.String(FlagLogLevel, "warn", "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, "text", "log format (text, json)")
}

// Load configuration from flags, environment variables and optionally config files.
// Returns a populated Config struct or an error if loading/validation fails.
// A missing answer sheet is reported as domain.ErrMissingAnswerSheet.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
	}

	v := viper.New()

	// Set default values for configuration keys. Every key needs one so that
	// AutomaticEnv can resolve it during Unmarshal.
	v.SetDefault("session.answer_sheet", "")
	v.SetDefault("session.grade_sheet", "")
	v.SetDefault("session.output_prefix", "grades_of_")
	v.SetDefault("session.include_new", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	// Configure environment variable handling and key mapping.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("drill")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.config/drill")
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate runs struct validation and translates the failures callers need
// to tell apart.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.StructNamespace() == "Config.Session.AnswerSheet" {
				return fmt.Errorf("%w: provide one with --%s or %s_SESSION_ANSWER_SHEET",
					domain.ErrMissingAnswerSheet, FlagAnswerSheet, EnvPrefix)
			}
		}
	}

	return fmt.Errorf("%w: %v", ErrValidation, err)
}
