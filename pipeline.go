package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/account_analyzer/analysis"
	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/account_analyzer/plot"
	"github.com/pivolan/account_analyzer/table"
	uuid "github.com/satori/go.uuid"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// report is everything a run produces before it touches the disk.
type report struct {
	stem       string
	table      *models.Table
	stats      *models.StatsResult
	statsTable string
	artifacts  []artifact
}

// charts returns the PNG artifacts.
func (r *report) charts() []artifact {
	var out []artifact
	for _, a := range r.artifacts {
		if strings.HasSuffix(a.name, ".png") {
			out = append(out, a)
		}
	}
	return out
}

// run executes the whole pipeline: analyze in memory, write, then publish.
func run(o *options) error {
	runID := uuid.NewV4().String()[:8]
	log.Printf("[%s] analyzing %s", runID, o.Src)

	r, err := analyze(o, runID)
	if err != nil {
		return err
	}
	fmt.Println(r.statsTable)

	dir, err := newOutputDir(o.Dest, r.stem)
	if err != nil {
		return err
	}
	paths, err := dir.writeAll(r.artifacts)
	for _, path := range paths {
		log.Printf("[%s] saved %s", runID, path)
	}
	if err != nil {
		return err
	}

	return publish(o, r, runID)
}

// analyze runs every in-memory stage and renders all artifacts. Nothing is
// written here.
func analyze(o *options, runID string) (*report, error) {
	r := &report{stem: sourceStem(o.Src)}

	tbl, err := table.Read(o.Src)
	if err != nil {
		return nil, err
	}
	if err := table.SetIndex(tbl, o.Index, o.IsIndexDT); err != nil {
		return nil, err
	}
	log.Printf("[%s] loaded %d rows, %d columns", runID, tbl.Len(), len(tbl.Columns))

	if tbl, err = table.Shorten(tbl, o.Shorten, o.IsIndexDT); err != nil {
		return nil, err
	}
	if len(o.Shorten) > 0 {
		log.Printf("[%s] %d rows left after --shorten %s", runID, tbl.Len(), strings.Join(o.Shorten, " "))
	}
	if err := table.Rename(tbl, o.Rename); err != nil {
		return nil, err
	}
	r.table = tbl

	cols := analysis.SelectColumns(tbl, o.ColsToPlot)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no numeric columns to analyze in %s", o.Src)
	}
	axes, err := broadcast("--plot_cols_by", o.PlotColsBy, len(cols))
	if err != nil {
		return nil, err
	}
	colorNames, err := broadcast("--colors", o.Colors, len(cols))
	if err != nil {
		return nil, err
	}
	colors, err := plot.ParseColors(colorNames)
	if err != nil {
		return nil, models.NewConfigurationError("--colors: %v", err)
	}

	if r.stats, err = analysis.ComputeStats(o.Stats, tbl, cols); err != nil {
		return nil, err
	}
	r.statsTable = GenerateTable(r.stats)

	if o.SaveModified {
		a, err := renderArtifact(r.stem+"_modified."+o.SaveAs, func(w io.Writer) error {
			if o.SaveAs == "xlsx" {
				return table.WriteXLSX(w, tbl)
			}
			return table.WriteCSV(w, tbl)
		})
		if err != nil {
			return nil, err
		}
		r.artifacts = append(r.artifacts, a)
	}

	if !o.NoSummary {
		summary, err := analysis.Describe(tbl, cols)
		if err != nil {
			return nil, err
		}
		log.Printf("[%s] summary\n%s", runID, GenerateSummaryTable(summary))
		a, err := renderArtifact(r.stem+"."+o.SaveAs, func(w io.Writer) error {
			if o.SaveAs == "xlsx" {
				return table.WriteSummaryXLSX(w, summary)
			}
			return table.WriteSummaryCSV(w, summary)
		})
		if err != nil {
			return nil, err
		}
		r.artifacts = append(r.artifacts, a)
	}

	if !o.NoFigs {
		figures, err := buildFigures(r, tbl, cols, axes, colors, o.PlotInOne)
		if err != nil {
			return nil, err
		}
		for _, fig := range figures {
			data, err := fig.Bytes()
			if err != nil {
				return nil, err
			}
			log.Printf("[%s] rendered %s, panels: %d", runID, fig.Name, fig.Panels())
			r.artifacts = append(r.artifacts, artifact{name: fig.Name, data: data})
		}

		if o.ShowFigs {
			a, err := renderArtifact(r.stem+"_charts.html", func(w io.Writer) error {
				return plot.HTMLReport(w, r.stem, r.stats, tbl, cols, axes)
			})
			if err != nil {
				return nil, err
			}
			r.artifacts = append(r.artifacts, a)
		}
	}
	return r, nil
}

// buildFigures returns the aggregate figure and the series figures, each
// renamed to its output file name.
func buildFigures(r *report, tbl *models.Table, cols, axes []string, colors []drawing.Color, combine bool) ([]*plot.Figure, error) {
	agg, err := plot.Aggregate(r.stem+"_cumulative_stats.png", r.stats, cols)
	if err != nil {
		return nil, err
	}
	series, err := plot.Series(tbl, cols, axes, colors, combine)
	if err != nil {
		return nil, err
	}
	for _, fig := range series {
		fig.Name += "_over_index.png"
	}
	return append([]*plot.Figure{agg}, series...), nil
}

func renderArtifact(name string, render func(w io.Writer) error) (artifact, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := render(buffer); err != nil {
		return artifact{}, fmt.Errorf("error rendering %s: %w", name, err)
	}
	return artifact{name: name, data: buffer.Bytes()}, nil
}

// publish pushes the results to the optional ClickHouse and Telegram targets.
func publish(o *options, r *report, runID string) error {
	if o.DbExport {
		db, err := openClickHouse(o.DbDsn)
		if err != nil {
			return err
		}
		if _, err := exportToClickHouse(db, r.table, o.Src, runID); err != nil {
			return err
		}
	}
	if o.TgChat != 0 {
		bot, err := tgbotapi.NewBotAPI(o.TgToken)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		if err := publishTelegram(bot, o.TgChat, runID, r.stem, r.statsTable, r.charts()); err != nil {
			return err
		}
	}
	return nil
}
