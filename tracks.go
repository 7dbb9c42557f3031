package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexjean/devify/internal/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newTracksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List the portfolio's projects as a track list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderTracks(catalog.Default()))
			return nil
		},
	}
}

func renderTracks(cat *catalog.Catalog) string {
	headers := []string{"#", "Title", "Duration", "Stars", "Tech"}
	var rows [][]string
	for i, p := range cat.Projects() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Title,
			p.Duration,
			strconv.Itoa(p.Stars),
			strings.Join(p.Tech, ", "),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft})
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
