package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pivolan/account_analyzer/config"
	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	os.Exit(exitCode(cmd, cmd.Execute()))
}

// exitCode prints the error and maps it to the process status: 2 for a bad
// command line, 1 for any other failure.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *models.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprint(os.Stderr, cmd.UsageString())
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "account_analyzer --src FILE --index COLUMN [flags]",
		Short:         "Descriptive statistics and charts for a bank account export",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfig(cmd.Flags(), o)
			if err := validateOptions(o); err != nil {
				return err
			}
			return run(o)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return models.NewConfigurationError("%v", err)
	})

	f := cmd.Flags()
	f.StringVar(&o.Src, "src", "", "source table (.csv, .xlsx, .xls, optionally .gz, .lz4 or .zip)")
	f.StringVar(&o.Dest, "dest", config.DefaultDestDir, "output directory")
	f.StringVar(&o.SaveAs, "save_as", config.DefaultSaveAs, "format of the written tables: csv or xlsx")
	f.StringVar(&o.Index, "index", "", "column used as row index")
	f.BoolVar(&o.IsIndexDT, "is_index_dt", false, "parse the index as timestamps")
	f.StringArrayVar(&o.Shorten, "shorten", nil, "restrict rows to an index range (one or two values)")
	f.StringArrayVar(&o.Stats, "stats", models.DefaultStatistics, "statistics to compute: mean, med, min, max")
	f.StringArrayVar(&o.ColsToPlot, "cols_to_plot", []string{"all"}, "columns to analyze, or all numeric columns")
	f.StringArrayVar(&o.PlotColsBy, "plot_cols_by", []string{"index"}, "x axis per column: index or a column name")
	f.StringArrayVar(&o.Colors, "colors", []string{"red"}, "line color per column")
	f.StringArrayVar(&o.Rename, "rename", nil, "old/new column name pairs")
	f.BoolVar(&o.PlotInOne, "plot_in_one", false, "draw all series charts side by side in one image")
	f.BoolVar(&o.NoSummary, "no_summary", false, "do not write the summary table")
	f.BoolVar(&o.NoFigs, "no_figs", false, "do not render charts")
	f.BoolVar(&o.ShowFigs, "show_figs", false, "also write an interactive HTML page with the charts")
	f.BoolVar(&o.SaveModified, "save_modified", false, "write the filtered and renamed table")
	f.BoolVar(&o.DbExport, "db_export", false, "export the table into ClickHouse")
	f.StringVar(&o.DbDsn, "db_dsn", "", "ClickHouse DSN (MySQL protocol), defaults to DB_DSN")
	f.Int64Var(&o.TgChat, "tg_chat", 0, "Telegram chat to send the results to, defaults to TG_CHAT_ID")
	f.StringVar(&o.EnvFile, "env", config.EnvFile, "path of the .env file")
	f.SortFlags = false

	return cmd
}

// applyConfig fills flags the user did not set from the .env file and the environment.
func applyConfig(flags *pflag.FlagSet, o *options) {
	config.EnvFile = o.EnvFile
	cfg := config.GetConfig()

	if !flags.Changed("dest") {
		o.Dest = cfg.DestDir
	}
	if !flags.Changed("save_as") {
		o.SaveAs = cfg.SaveAs
	}
	if !flags.Changed("db_dsn") {
		o.DbDsn = cfg.DbDsn
	}
	if !flags.Changed("tg_chat") {
		o.TgChat = cfg.TgChatID
	}
	o.TgToken = cfg.TgToken
}
