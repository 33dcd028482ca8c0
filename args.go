package main

import (
	"os"
	"strings"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/account_analyzer/plot"
	"github.com/pivolan/account_analyzer/table"
	"github.com/pivolan/go_utils"
)

var saveFormats = []string{"csv", "xlsx"}

// listFlags take one or more space separated values on the command line.
var listFlags = []string{"shorten", "stats", "cols_to_plot", "plot_cols_by", "colors", "rename"}

type options struct {
	Src          string
	Dest         string
	SaveAs       string
	Index        string
	IsIndexDT    bool
	Shorten      []string
	Stats        []string
	ColsToPlot   []string
	PlotColsBy   []string
	Colors       []string
	Rename       []string
	PlotInOne    bool
	NoSummary    bool
	NoFigs       bool
	ShowFigs     bool
	SaveModified bool

	DbExport bool
	DbDsn    string
	TgChat   int64
	TgToken  string
	EnvFile  string
}

// normalizeArgs rewrites "--stats mean min max" into repeated
// "--stats=mean --stats=min --stats=max" so pflag can collect every value.
// A list flag given without values is dropped.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimPrefix(arg, "--")
		if !strings.HasPrefix(arg, "--") || strings.Contains(name, "=") || !go_utils.InArray(name, listFlags) {
			out = append(out, arg)
			continue
		}
		for i+1 < len(args) && !isFlag(args[i+1]) {
			i++
			out = append(out, "--"+name+"="+args[i])
		}
	}
	return out
}

func isFlag(arg string) bool {
	if strings.HasPrefix(arg, "--") {
		return true
	}
	return len(arg) == 2 && arg[0] == '-' && (arg[1] < '0' || arg[1] > '9')
}

// validateOptions checks flag combinations before anything is read or written.
func validateOptions(o *options) error {
	if o.Src == "" {
		return models.NewConfigurationError("--src is required")
	}
	if o.Index == "" {
		return models.NewConfigurationError("--index is required")
	}
	if len(o.ColsToPlot) == 0 {
		return models.NewConfigurationError("--cols_to_plot needs at least one column")
	}
	if len(o.Stats) == 0 {
		return models.NewConfigurationError("--stats needs at least one statistic")
	}
	if len(o.PlotColsBy) == 0 || len(o.Colors) == 0 {
		return models.NewConfigurationError("--plot_cols_by and --colors need at least one value")
	}
	if len(o.ColsToPlot) != 1 && len(o.PlotColsBy) != 1 && len(o.ColsToPlot) != len(o.PlotColsBy) {
		return models.NewConfigurationError("supplied number of target columns (%d) doesn't match the number of x axes (%d)", len(o.ColsToPlot), len(o.PlotColsBy))
	}
	if len(o.ColsToPlot) != 1 && len(o.Colors) != 1 && len(o.ColsToPlot) != len(o.Colors) {
		return models.NewConfigurationError("supplied number of target columns (%d) doesn't match the number of plot colors (%d)", len(o.ColsToPlot), len(o.Colors))
	}
	if len(o.Rename)%2 != 0 {
		return models.NewConfigurationError("--rename takes old/new name pairs, got %d values", len(o.Rename))
	}
	if len(o.Shorten) > 2 {
		return models.NewConfigurationError("--shorten takes at most two values, got %d", len(o.Shorten))
	}
	if !go_utils.InArray(o.SaveAs, saveFormats) {
		return models.NewConfigurationError("--save_as must be one of %s, got %q", strings.Join(saveFormats, ", "), o.SaveAs)
	}
	if _, err := plot.ParseColors(o.Colors); err != nil {
		return models.NewConfigurationError("--colors: %v", err)
	}
	if o.DbExport && o.DbDsn == "" {
		return models.NewConfigurationError("--db_export needs --db_dsn or DB_DSN")
	}
	if o.TgChat != 0 && o.TgToken == "" {
		return models.NewConfigurationError("--tg_chat needs TG_TOKEN")
	}

	info, err := os.Stat(o.Src)
	if err != nil || info.IsDir() {
		return models.NewConfigurationError("--src %s does not exist or is not a file", o.Src)
	}
	if !table.SupportedSource(o.Src) {
		return &models.UnsupportedFormatError{Path: o.Src}
	}
	return nil
}

// broadcast repeats a single value n times or checks that a list already has n values.
func broadcast(flag string, values []string, n int) ([]string, error) {
	switch len(values) {
	case n:
		return append([]string(nil), values...), nil
	case 1:
		out := make([]string, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	}
	return nil, models.NewConfigurationError("%s has %d values for %d selected columns", flag, len(values), n)
}
