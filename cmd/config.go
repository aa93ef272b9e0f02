/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MBarkerUK/apt-kernel-manager/types"
)

const (
	configName = ".apt-kernel-manager"
	envPrefix  = "AKM"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present; it's okay if it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., AKM_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)       // $HOME/.apt-kernel-manager.yaml
		viper.AddConfigPath(".")        // ./.apt-kernel-manager.yaml
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
				os.Exit(1)
			}
			// Config file not found by search paths, which is fine.
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
			os.Exit(1)
		}
	}

	setConfigDefaults()

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// setConfigDefaults registers every default value before unmarshaling.
func setConfigDefaults() {
	viper.SetDefault("project.rootDir", defaultRootDir())

	viper.SetDefault("retention.keep", 2)
	viper.SetDefault("retention.allowlist", defaultAllowlist())

	viper.SetDefault("apt.binary", "apt-get")
	viper.SetDefault("apt.timeoutSeconds", 900)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dir", "history")
}

// defaultRootDir is where the tool keeps its own state. Root typically runs
// this, so the fallback of a relative directory only applies when the home
// directory cannot be resolved.
func defaultRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apt-kernel-manager"
	}
	return filepath.Join(home, ".apt-kernel-manager")
}

// defaultAllowlist protects the meta packages that pull in new kernels.
// Purging these would stop the system from receiving kernel updates.
func defaultAllowlist() []string {
	return []string{
		"linux-image-generic",
		"linux-headers-generic",
		"linux-image-virtual",
		"linux-image-amd64",
		"linux-image-arm64",
		"linux-image-*-hwe-*",
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// HistoryDir resolves the history directory against the project root.
func HistoryDir() string {
	cfg := GetConfig()
	dir := cfg.History.Dir
	if dir == "" {
		dir = "history"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.Project.RootDir, dir)
	}
	return dir
}
