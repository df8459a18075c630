// internal/commands/root.go
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qiangzhongwork/xnmt/internal/appconfig"
	"github.com/qiangzhongwork/xnmt/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xnmt-report",
	Short: "xnmt-report — render inspection reports for sequence-generation output",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags win over the config file; unset flags leave the file values.
		if v := viper.GetString("reportPath"); v != "" {
			cfg.ReportPath = v
		}
		if v := viper.GetInt("matchSize"); v != 0 {
			cfg.MatchSize = v
		}
		if viper.GetBool("altNorm") {
			cfg.AltNorm = true
		}
		if viper.GetBool("debug") {
			cfg.Debug = true
		}
		if v := viper.GetString("logFile"); v != "" {
			cfg.LogFile = v
		}
		if v := viper.GetString("vocab"); v != "" {
			cfg.VocabPath = v
		}
		if v := viper.GetString("reporters"); v != "" {
			cfg.Reporters = splitReporterList(v)
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("reportPath", "", "path prefix for report artifacts")
	rootCmd.PersistentFlags().String("reporters", "", "comma-separated reporters (attention,segmenting,charcut)")
	rootCmd.PersistentFlags().Int("matchSize", 0, "charcut minimum match size in characters (0 = default)")
	rootCmd.PersistentFlags().Bool("altNorm", false, "normalize charcut cost by candidate length only")
	rootCmd.PersistentFlags().String("vocab", "", "path to the source vocabulary file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("reportPath", rootCmd.PersistentFlags().Lookup("reportPath"))
	_ = viper.BindPFlag("reporters", rootCmd.PersistentFlags().Lookup("reporters"))
	_ = viper.BindPFlag("matchSize", rootCmd.PersistentFlags().Lookup("matchSize"))
	_ = viper.BindPFlag("altNorm", rootCmd.PersistentFlags().Lookup("altNorm"))
	_ = viper.BindPFlag("vocab", rootCmd.PersistentFlags().Lookup("vocab"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// splitReporterList parses a comma-separated reporter list, dropping blanks.
func splitReporterList(v string) []string {
	var names []string
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
