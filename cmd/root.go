/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MBarkerUK/apt-kernel-manager/internal/system"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "1.2.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apt-kernel-manager",
	Short: "Inspect and purge old kernel packages on Debian-family systems",
	Long: `apt-kernel-manager inspects the installed kernel packages on a
Debian-family system and decides which to retain versus purge. It always
keeps the currently running kernel, an allow-list of protected packages,
and the N most recent distinct kernel releases; everything else can be
purged through apt-get.`,
	Run: func(cmd *cobra.Command, args []string) {
		// return help if no args are provided
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.apt-kernel-manager.yaml or ./.apt-kernel-manager.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// newDpkgClient wires the dpkg client onto the real runner and filesystem.
var newDpkgClient = func() *system.DpkgClient {
	return system.NewDpkgClient(system.NewRunner(), afero.NewOsFs())
}
