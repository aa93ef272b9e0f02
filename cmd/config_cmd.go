/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		out, err := yaml.Marshal(map[string]any{
			"project":   cfg.Project,
			"retention": cfg.Retention,
			"apt":       cfg.Apt,
			"history":   cfg.History,
		})
		if err != nil {
			HandleError("Could not render configuration.", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("# config file: %s\n", used)
		} else {
			fmt.Println("# no config file found, showing defaults")
		}
		fmt.Print(string(out))
	},
}

var configInitForce bool

// configInitCmd writes a starter configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file to $HOME",
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			HandleError("Could not resolve home directory.", err)
		}
		path := filepath.Join(home, configName+".yaml")
		if _, err := os.Stat(path); err == nil && !configInitForce {
			HandleError(fmt.Sprintf("Config file already exists at %s (use --force to overwrite).", path), nil)
		}

		starter := map[string]any{
			"retention": map[string]any{
				"keep":      2,
				"allowlist": defaultAllowlist(),
			},
			"apt": map[string]any{
				"binary":         "apt-get",
				"timeoutSeconds": 900,
			},
			"history": map[string]any{
				"enabled": true,
				"dir":     "history",
			},
		}
		out, err := yaml.Marshal(starter)
		if err != nil {
			HandleError("Could not render starter configuration.", err)
		}
		header := "# apt-kernel-manager configuration\n# Values here can be overridden with AKM_* environment variables.\n"
		if err := os.WriteFile(path, append([]byte(header), out...), 0o644); err != nil {
			HandleError("Could not write configuration file.", err)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}
