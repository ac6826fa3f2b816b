package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"lazycloud/internal/config"
)

const profileColumnWidth = 60

var profileHeader = table.Row{"Name", "From", "To", "Mode", "Flags"}

// renderProfiles lays the profiles out in file order, showing "None" when a
// profile passes no extra rclone flags.
func renderProfiles(profiles []config.Profile) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(profileHeader)

	for _, p := range profiles {
		flags := "None"
		if p.HasFlags() {
			flags = p.Flags
		}
		tw.AppendRow(table.Row{p.Name, p.From, p.To, p.Mode, flags})
	}

	columns := make([]table.ColumnConfig, len(profileHeader))
	for i := range columns {
		columns[i] = table.ColumnConfig{
			Number:      i + 1,
			AlignHeader: text.AlignLeft,
			WidthMax:    profileColumnWidth,
		}
	}
	tw.SetColumnConfigs(columns)
	return tw.Render()
}
