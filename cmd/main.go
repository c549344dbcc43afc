package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theblitlabs/venvctl/cmd/cli"
	"github.com/theblitlabs/venvctl/internal/config"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

var (
	logMode    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "venvctl",
	Short: "Venvctl",
	Long:  `Create, populate and run isolated Python interpreter environments`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flagSet := cmd.Root().PersistentFlags().Changed("log")
		logger.InitWithMode(resolveLogMode(flagSet, logMode, configPath))
	},
}

// resolveLogMode picks the log mode: an explicit --log flag wins, otherwise
// the config file's log.mode applies. Unknown modes fall back to pretty.
func resolveLogMode(flagSet bool, flagValue, configPath string) logger.LogMode {
	mode := flagValue
	if !flagSet {
		if cfg, err := config.LoadConfig(configPath); err == nil {
			mode = cfg.Log.Mode
		}
	}
	switch mode {
	case "debug", "pretty", "info", "prod", "test":
		return logger.LogMode(mode)
	}
	return logger.LogModePretty
}

func main() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var createCmd = &cobra.Command{
	Use:   "create <dir>",
	Short: "Create a managed environment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunCreate(configPath, args[0])
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy <dir>",
	Short: "Remove a managed environment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunDestroy(configPath, args[0])
	},
}

var installCmd = &cobra.Command{
	Use:   "install <dir> <package>...",
	Short: "Install packages into an environment",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunInstall(configPath, args[0], args[1:])
	},
}

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List packages installed in an environment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunList(configPath, args[0])
	},
}

var runCmd = &cobra.Command{
	Use:   "run <dir> <script> [args...]",
	Short: "Run a script inside an environment",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, _ := cmd.Flags().GetString("command")
		check, _ := cmd.Flags().GetBool("check")
		cli.RunScript(configPath, cli.ScriptRequest{
			Dir:       args[0],
			Source:    source,
			Args:      args[1:],
			CheckExit: check,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "pretty", "Log mode: debug, pretty, info, prod, test")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	runCmd.Flags().StringP("command", "c", "", "Run the given source text instead of a script file")
	runCmd.Flags().Bool("check", false, "Fail when the script exits non-zero")
}
