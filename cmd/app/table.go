package main

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/starford/dailyfiles/internal/ledger"
	"github.com/starford/dailyfiles/internal/models"
)

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
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
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

func renderRuns(runs []ledger.RunRow) string {
	if len(runs) == 0 {
		return "No runs recorded."
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format(time.DateTime),
			humanize.Time(r.StartedAt),
			strconv.Itoa(r.Candidates),
			strconv.Itoa(r.Moved),
			strconv.Itoa(r.Failed),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Age", "Found", "Moved", "Failed", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func renderMoves(moves []ledger.MoveRow) string {
	if len(moves) == 0 {
		return "No matching moves."
	}
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		size := "-"
		if m.Size > 0 {
			size = humanize.Bytes(uint64(m.Size))
		}
		detail := m.Error
		if m.Status == models.StatusMoved {
			detail = truncate(m.Checksum, 12)
		}
		rows = append(rows, []string{
			m.Name,
			m.Status,
			size,
			shortID(m.RunID),
			m.StartedAt.Local().Format(time.DateTime),
			detail,
		})
	}
	return renderTable(
		[]string{"File", "Status", "Size", "Run", "When", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func shortID(id string) string {
	return truncate(id, 8)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
