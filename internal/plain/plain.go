// Package plain writes a scan report as text tables for non-interactive
// output, one table per target in the order of the viewer's rows.
package plain

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/trivytui/trivy-tui/internal/report"
	"github.com/trivytui/trivy-tui/internal/rows"
)

// PrintTable writes r to w followed by a severity summary.
func PrintTable(w io.Writer, r report.ScanReport) error {
	fmt.Fprintf(w, "Image: %s\n", r.ArtifactName)

	rs := rows.Flatten(r)
	if len(rs) == 0 {
		fmt.Fprintln(w, "No vulnerabilities found ✅")
		return nil
	}

	var table *tablewriter.Table
	for _, row := range rs {
		switch row.Kind {
		case rows.KindGroupHeader:
			if err := render(table); err != nil {
				return err
			}
			fmt.Fprintf(w, "\ntarget: %s\n", row.Target)
			table = tablewriter.NewWriter(w)
			table.Header("Severity", "Vulnerability ID", "Package", "Installed", "Fixed", "Title")
		case rows.KindFinding:
			f, ok := row.Resolve(r)
			if !ok || table == nil {
				continue
			}
			if err := table.Append([]string{
				string(f.Sev()),
				f.ID(),
				report.Str(f.PkgName),
				report.Str(f.InstalledVersion),
				report.Str(f.FixedVersion),
				report.Str(f.Title),
			}); err != nil {
				return fmt.Errorf("appending row: %w", err)
			}
		}
	}
	if err := render(table); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, report.Summary(r))
	return nil
}

func render(table *tablewriter.Table) error {
	if table == nil {
		return nil
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}
