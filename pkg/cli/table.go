package cli

import (
	"os"

	"github.com/olekukonko/tablewriter"
)

func Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)

	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.AppendBulk(rows)
	table.Render()
}
