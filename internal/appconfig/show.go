// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	resolved := Config{}
	if cfg != nil {
		resolved = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Report Path:  %s\n", resolved.ReportPrefix())
	fmt.Fprintf(out, "  Reporters:    %s\n", strings.Join(resolved.ReporterNames(), ", "))
	fmt.Fprintf(out, "  Match Size:   %d\n", resolved.CharCutMatchSize())
	fmt.Fprintf(out, "  Alt Norm:     %v\n", resolved.AltNorm)
	if resolved.VocabPath != "" {
		fmt.Fprintf(out, "  Vocab Path:   %s\n", resolved.VocabPath)
	}
	fmt.Fprintf(out, "  Debug:        %v\n", resolved.Debug)
	fmt.Fprintf(out, "  Log File:     %s\n", resolved.LogFilePath())
}
