package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type textProvider interface {
	Text() string
}

type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult writes data to stdout in the CLIContext output format.
// text uses Text() when available, table uses TableHeaders/TableRows.
func PrintResult(cmd *cobra.Command, data any) error {
	format := FormatJSON
	if cc, err := GetCLIContext(cmd); err == nil {
		format = cc.OutputFormat
	}

	switch format {
	case FormatJSON:
		return printJSON(cmd, data)
	case FormatTable:
		if tp, ok := data.(tableProvider); ok {
			fmt.Fprint(cmd.OutOrStdout(), RenderTable(tp.TableHeaders(), tp.TableRows()))
			return nil
		}
	}

	return printText(cmd, data)
}

func printJSON(cmd *cobra.Command, data any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data any) error {
	switch v := data.(type) {
	case textProvider:
		fmt.Fprint(cmd.OutOrStdout(), v.Text())
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}

	return nil
}

// PrintError writes "Error: ..." to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
}

// RenderTable renders headers and rows as a space-aligned table.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(cell + strings.Repeat(" ", widths[i]-len(cell)))
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}
