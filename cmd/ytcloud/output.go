package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const maxQueryWidth = 40

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printCloud(w io.Writer, out engine.CloudOutput) error {
	if a.jsonOut {
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "%s: %d videos", out.Query, out.VideoCount)
	if out.SampleID != 0 {
		fmt.Fprintf(w, " (sample %d)", out.SampleID)
	}
	fmt.Fprintln(w)
	if len(out.Words) == 0 {
		fmt.Fprintln(w, "no words found")
		return nil
	}

	rows := make([][]string, len(out.Words))
	for i, wc := range out.Words {
		rows[i] = []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)}
	}
	table := newTable(w)
	table.Header([]string{"RANK", "WORD", "COUNT"})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}

func (a *app) printSamples(w io.Writer, out engine.SampleListOutput) error {
	if a.jsonOut {
		return writeJSON(w, out)
	}
	if len(out.Samples) == 0 {
		fmt.Fprintln(w, "no saved samples")
		return nil
	}

	rows := make([][]string, len(out.Samples))
	for i, s := range out.Samples {
		rows[i] = []string{
			strconv.FormatInt(s.ID, 10),
			s.Kind,
			engine.TruncateRunes(s.Query, maxQueryWidth, "…"),
			strconv.Itoa(s.VideoCount),
			s.CreatedAt,
		}
	}
	table := newTable(w)
	table.Header([]string{"ID", "KIND", "QUERY", "VIDEOS", "CREATED"})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}
