package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/plugin"
)

// maxMessageWidth caps the MESSAGE column of the plan table.
const maxMessageWidth = 60

// WritePlan writes a deprecation plan in the given format.
//
// The table format lists the rendered rules followed by the npm commands;
// csv has one row per step; json is the plan document itself.
//
// Parameters:
//   - w: Destination writer
//   - plan: Plan to write
//   - format: Output format
//
// Returns:
//   - error: Write or encoding error
func WritePlan(w io.Writer, plan *plugin.Plan, format Format) error {
	f := NewFormatter(format, w)
	switch format {
	case FormatJSON:
		return f.WriteJSON(plan)
	case FormatCSV:
		rows := make([][]string, 0, len(plan.Steps))
		for _, step := range plan.Steps {
			rows = append(rows, []string{step.Source, step.Rule.Version, step.Rule.Message, step.Command})
		}
		return f.WriteCSV([]string{"source", "version", "message", "command"}, rows)
	}
	return writePlanTable(w, plan)
}

func writePlanTable(w io.Writer, plan *plugin.Plan) error {
	if len(plan.Steps) == 0 {
		_, err := fmt.Fprintf(w, "%s No deprecations configured for %s\n", constants.IconInfo, plan.Package)
		return err
	}

	table := NewTable().
		AddColumn("#").
		AddColumn("STATUS").
		AddColumn("SOURCE").
		AddColumn("VERSION").
		AddColumn("MESSAGE")

	rows := make([][]string, 0, len(plan.Steps))
	for i, step := range plan.Steps {
		message := step.Rule.Message
		if message == "" {
			message = constants.PlaceholderEmpty
		}
		row := []string{
			strconv.Itoa(i + 1),
			constants.StatusIcon(constants.StatusPlanned) + " " + constants.StatusPlanned,
			step.Source,
			step.Rule.Version,
			Truncate(message, maxMessageWidth),
		}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	registry := plan.Registry
	if !plan.Auth {
		registry = "ambient npm config"
	}
	if _, err := fmt.Fprintf(w, "Package: %s\nRegistry: %s\n\n", plan.Package, registry); err != nil {
		return err
	}

	table.Fprint(w)
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, table.FormatRow(row...)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nCommands:"); err != nil {
		return err
	}
	for _, step := range plan.Steps {
		if _, err := fmt.Fprintf(w, "  %s\n", step.Command); err != nil {
			return err
		}
	}
	return nil
}
