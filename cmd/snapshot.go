package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/output"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inventory the taskbar, the desktop and the foreground application",
	Long: `Walk the accessibility tree of the taskbar, the desktop shell and the foreground
application and list every interactive, informative and scrollable element.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("app", "", "Only keep elements of these applications (comma-separated)")
	snapshotCmd.Flags().String("text", "", "Only keep elements whose name contains this text")
	snapshotCmd.Flags().Bool("flat", false, "Merge the three lists into one list of nodes")
	snapshotCmd.Flags().Bool("report", false, "Include the window selection and absorbed query failures")
}

// snapshotReport is the --report output.
type snapshotReport struct {
	output.SnapshotResult `yaml:",inline"`
	Windows               []model.Window `yaml:"windows"            json:"windows"`
	Errors                []string       `yaml:"errors,omitempty"   json:"errors,omitempty"`
	Visited               int            `yaml:"visited"            json:"visited"`
	Duration              string         `yaml:"duration"           json:"duration"`
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	apps, _ := cmd.Flags().GetString("app")
	text, _ := cmd.Flags().GetString("text")
	flat, _ := cmd.Flags().GetBool("flat")
	withReport, _ := cmd.Flags().GetBool("report")

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.tree.SnapshotWithReport()
	if err != nil {
		return err
	}

	state := model.FilterByApp(report.State, splitList(apps))
	state = model.FilterByText(state, text)
	result := output.NewSnapshotResult(state, report.Apps, len(report.Failures))

	switch {
	case withReport:
		errs := make([]string, len(report.Failures))
		for i, f := range report.Failures {
			errs[i] = f.Error()
		}
		return output.Print(snapshotReport{
			SnapshotResult: result,
			Windows:        report.Windows,
			Errors:         errs,
			Visited:        report.Visited,
			Duration:       report.Duration.String(),
		})
	case flat:
		return output.Print(result.Flat())
	default:
		return output.Print(result)
	}
}
