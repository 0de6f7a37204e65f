package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Log     LogConfig     `mapstructure:"log"     validate:"required"`
}

// SessionConfig contains the inputs and outputs of a drill session.
type SessionConfig struct {
	// AnswerSheet is the path of the prompt/answer table. Required.
	AnswerSheet string `mapstructure:"answer_sheet" validate:"required"`
	// GradeSheet is the path of a saved session. Empty means start fresh.
	GradeSheet string `mapstructure:"grade_sheet"`
	// OutputPrefix is prepended to the answer sheet's file name to derive the
	// save path when no grade sheet is configured.
	OutputPrefix string `mapstructure:"output_prefix" validate:"required,excludesall=/\\"`
	// IncludeNew seeds fresh records for answer sheet prompts missing from
	// the saved session.
	IncludeNew bool `mapstructure:"include_new"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}
