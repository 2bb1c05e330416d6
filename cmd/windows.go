package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-tree/internal/output"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List top-level windows and which ones a snapshot scans",
	Long:  "List every top-level window in enumeration order with its visibility and the reason it is or is not scanned.",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}

func runWindows(cmd *cobra.Command, args []string) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	windows, err := s.tree.Windows()
	if err != nil {
		return err
	}
	return output.Print(output.WindowsResult{TS: time.Now().Unix(), Windows: windows})
}
