/*
Copyright © 2025 Matt Barker
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	Retention RetentionConfig `mapstructure:"retention" validate:"required"`
	Apt       AptConfig       `mapstructure:"apt" validate:"required"`
	History   HistoryConfig   `mapstructure:"history"`
}

// ProjectConfig holds where the tool keeps its own state.
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// RetentionConfig holds the keep/purge policy.
type RetentionConfig struct {
	// Keep is how many of the most recent distinct kernel releases to
	// retain in addition to the running kernel.
	Keep int `mapstructure:"keep" validate:"required,min=1,max=50"`
	// Allowlist holds package names (exact or glob) that are never purged.
	Allowlist []string `mapstructure:"allowlist"`
}

// AptConfig holds how the package manager is invoked.
type AptConfig struct {
	Binary string `mapstructure:"binary" validate:"required"`
	// TimeoutSeconds bounds a single apt-get invocation.
	TimeoutSeconds int `mapstructure:"timeoutSeconds" validate:"required,min=10,max=7200"`
}

// HistoryConfig controls the purge-run records.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Dir is relative to project.rootDir unless absolute.
	Dir string `mapstructure:"dir"`
}
