// internal/commands/render.go
package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/qiangzhongwork/xnmt/internal/appconfig"
	"github.com/qiangzhongwork/xnmt/internal/charcut"
	"github.com/qiangzhongwork/xnmt/internal/decode"
	"github.com/qiangzhongwork/xnmt/internal/logging"
	"github.com/qiangzhongwork/xnmt/internal/report"
	"github.com/qiangzhongwork/xnmt/internal/util"
	"github.com/qiangzhongwork/xnmt/internal/vocab"
)

var renderInputPath string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render reports from a decode dump",
	Long: `Render reads a JSONL decode dump (one sentence per line) and runs it
through the configured reporters: attention heatmap pages, segmentation
overlays, and charcut character-diff pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		return runRender(*cfg, renderInputPath, cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderInputPath, "input", "i", "", "JSONL decode dump to render (required)")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cfg appconfig.Config, inputPath string, out io.Writer) error {
	records, err := decode.Load(inputPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "Nothing to render: decode dump is empty.")
		return nil
	}

	var voc report.Vocab
	if cfg.VocabPath != "" {
		v, err := vocab.Load(cfg.VocabPath)
		if err != nil {
			return err
		}
		voc = v
	}

	reporters, err := buildReporters(cfg)
	if err != nil {
		return err
	}

	// The dump's per-sentence field records flow through a collector just
	// like a live model's would, so count mismatches surface here.
	collector := report.NewCollector()
	for _, rec := range records {
		collector.Record(rec.Fields)
	}
	context, err := collector.Collect(nil)
	if err != nil {
		return err
	}

	proc := decode.JoinerProcessor{}
	for i, rec := range records {
		in, err := rec.Input(voc, proc)
		if err != nil {
			return err
		}
		in.Fields = context[i]
		if cfg.Debug {
			pp.Println(in.Fields)
		}
		for _, r := range reporters {
			if err := r.Report(in); err != nil {
				return err
			}
		}
		logging.LogEvent("rendered sentence %d: %s", in.Index, util.TruncateRunes(in.TargetString(), 60))
	}
	for _, r := range reporters {
		if err := r.Finish(); err != nil {
			return err
		}
	}

	printRenderSummary(out, cfg, len(records))
	return nil
}

// buildReporters instantiates the configured reporter set.
func buildReporters(cfg appconfig.Config) ([]report.Reporter, error) {
	var reporters []report.Reporter
	for _, name := range cfg.ReporterNames() {
		switch name {
		case "attention":
			reporters = append(reporters, report.NewAttentionReporter(cfg.ReportPrefix()))
		case "segmenting":
			reporters = append(reporters, report.NewSegmentingReporter(cfg.ReportPrefix()))
		case "charcut":
			reporters = append(reporters, charcut.New(cfg.ReportPrefix(), cfg.CharCutMatchSize(), cfg.AltNorm))
		default:
			return nil, fmt.Errorf("unknown reporter %q (known: attention, segmenting, charcut)", name)
		}
	}
	return reporters, nil
}

func printRenderSummary(out io.Writer, cfg appconfig.Config, sentences int) {
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	badge := badgeStyle.Render(fmt.Sprintf("%d sentences", sentences))
	fmt.Fprintf(out, "Report rendered%s\n", badge)
	fmt.Fprintln(out, pathStyle.Render("  prefix: "+cfg.ReportPrefix()))
	fmt.Fprintln(out, pathStyle.Render("  reporters: "+fmt.Sprint(cfg.ReporterNames())))
}
