package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/cnf"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/dataimport"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/eval"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

const (
	errColor = color.FgHiRed

	inputPrefixSQLite = "sqlite:"
	inputPrefixMySQL  = "mysql:"
)

type analyzeArgs struct {
	inputs    []string
	threshold float64
	outPath   string
	quiet     bool
}

// exitCode maps an error kind to a process exit code
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, stats.ErrMalformedInput):
		return exitErrorMalformedInput
	case errors.Is(err, stats.ErrConfiguration):
		return exitErrorConfiguration
	case errors.Is(err, stats.ErrEmptyDataset):
		return exitErrorEmptyDataset
	case errors.Is(err, stats.ErrDivisionByZero):
		return exitErrorDivisionByZero
	default:
		return exitErrorGeneralFailure
	}
}

// parseInput creates a row source from a command line argument
// (plain path = CSV file).
func parseInput(input string) (dataimport.RowSource, error) {
	switch {
	case strings.HasPrefix(input, inputPrefixSQLite):
		path := strings.TrimPrefix(input, inputPrefixSQLite)
		if path == "" {
			return nil, fmt.Errorf("%w: missing SQLite database path", stats.ErrConfiguration)
		}
		return dataimport.NewSQLiteSource(path), nil
	case strings.HasPrefix(input, inputPrefixMySQL):
		dbConf, err := dataimport.ParseMySQLDSN(strings.TrimPrefix(input, inputPrefixMySQL))
		if err != nil {
			return nil, err
		}
		return dataimport.NewMySQLSource(dbConf), nil
	default:
		return &dataimport.CSVSource{Path: input}, nil
	}
}

// outputPathFor derives a report path for the idx-th of total results.
// With more than one result, the index is appended to the file name.
func outputPathFor(base string, idx, total int) string {
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, ext), idx+1, ext)
}

func preparePipelines(conf *cnf.Conf, args analyzeArgs) ([]eval.Pipeline, error) {
	scales, err := conf.ScaleMap()
	if err != nil {
		return nil, err
	}
	threshold := conf.Cutoff
	if args.threshold != 0 {
		threshold = eval.Threshold{TimePerItemUs: args.threshold}
	}
	if err := threshold.Validate(); err != nil {
		return nil, err
	}
	var sources []dataimport.RowSource
	if len(args.inputs) == 0 {
		src, err := conf.RowSource()
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)

	} else {
		for _, input := range args.inputs {
			src, err := parseInput(input)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
	}
	ans := make([]eval.Pipeline, len(sources))
	for i, src := range sources {
		ans[i] = eval.Pipeline{Source: src, Scales: scales, Threshold: threshold}
	}
	return ans, nil
}

func runAnalyze(ctx context.Context, conf *cnf.Conf, args analyzeArgs) int {
	pipelines, err := preparePipelines(conf, args)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	var onDone func(eval.Result)
	if len(pipelines) > 1 && !args.quiet {
		bar := progressbar.Default(int64(len(pipelines)), "analyzing datasets")
		onDone = func(eval.Result) {
			bar.Add(1)
		}
	}
	results, err := eval.RunAll(ctx, pipelines, onDone)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	outPath := conf.OutputPath
	if args.outPath != "" {
		outPath = args.outPath
	}
	for i, res := range results {
		reporter, err := eval.NewReporter(res)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			return exitCode(err)
		}
		if !args.quiet {
			if err := reporter.PrintTable(os.Stdout); err != nil {
				color.New(errColor).Fprintln(os.Stderr, err)
				return exitErrorGeneralFailure
			}
			fmt.Println()
		}
		dst := outputPathFor(outPath, i, len(results))
		if err := reporter.Save(dst); err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			return exitErrorFailedToSaveReport
		}
		log.Info().
			Str("source", res.Source).
			Str("path", dst).
			Str("cutoff", reporter.Report().Cutoff.String()).
			Msg("saved enriched table")
	}
	return 0
}

func runScales(conf *cnf.Conf, w io.Writer) error {
	scales, err := conf.ScaleMap()
	if err != nil {
		return err
	}
	for _, label := range scales.Labels() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", label, scales[label], eval.FormatItemCount(scales[label]))
	}
	return nil
}
