// internal/commands/show_config.go
package commands

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/qiangzhongwork/xnmt/internal/appconfig"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		file := ""
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, cfg)
		if DebugEnabled() && cfg != nil {
			pp.Println(*cfg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
