package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/doriginvision/hanzi-tidy/internal/core"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// runPreview scans and prints the plan in the "original -> target" form.
func runPreview(cmd *cobra.Command, session *core.Session) error {
	result, err := session.Scan(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, session.PreviewText(result))
	fmt.Fprintf(out, "%d to rename, %d files visited\n", result.Len(), result.FilesVisited)
	return nil
}

// runInstant scans, renames every planned entry and prints the outcome.
func runInstant(cmd *cobra.Command, session *core.Session) error {
	result, err := session.Scan(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.Len() == 0 {
		fmt.Fprintf(out, "Nothing to rename under %s (%d files visited)\n", result.Root, result.FilesVisited)
		return nil
	}

	renderPlan(out, result)
	report, err := session.ConfirmRename(result)
	if err != nil {
		return err
	}
	renderReport(out, result.Root, report)

	if failed := len(report.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d renames failed", failed, report.Len())
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table
}

func renderPlan(w io.Writer, result *core.ScanResult) {
	table := newTable(w, "Image", "New name")
	for _, e := range result.Entries {
		table.Append([]string{relativeTo(result.Root, e.Original), filepath.Base(e.Target)})
	}
	table.SetFooter([]string{fmt.Sprintf("%d files visited", result.FilesVisited), fmt.Sprintf("%d to rename", result.Len())})
	table.Render()
	fmt.Fprintln(w)
}

func renderReport(w io.Writer, root string, report core.RenameReport) {
	table := newTable(w, "Image", "Status", "Error")
	for _, res := range report.Results {
		reason := ""
		if res.Err != nil {
			reason = res.Err.Error()
		}
		table.Append([]string{relativeTo(root, res.Entry.Original), res.Status.String(), reason})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d renamed", report.Succeeded()), fmt.Sprintf("%d failed", len(report.Failed()))})
	table.Render()
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
