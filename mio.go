// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
// Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/cnf"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/fatih/color"
)

const (
	actionAnalyze = "analyze"
	actionScales  = "scales"
	actionVersion = "version"
	actionHelp    = "help"
)

const (
	exitErrorGeneralFailure = iota + 1
	exitErrorMalformedInput
	exitErrorConfiguration
	exitErrorEmptyDataset
	exitErrorDivisionByZero
	exitErrorFailedToSaveReport
)

var (
	version   string
	buildDate string
	gitCommit string
)

// VersionInfo provides a detailed information about the actual build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

func topLevelUsage() {
	fmt.Fprintf(os.Stderr, "MIO-CUTOFF - distributed processing cutoff analysis\n")
	fmt.Fprintf(os.Stderr, "-----------------------------\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tshow version info\n", actionVersion)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tcompute metrics and classify scale tiers\n", actionAnalyze)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tshow the effective scale mapping\n", actionScales)
	fmt.Fprintf(os.Stderr, "\nUse `%s help ACTION` for information about a specific action\n\n", filepath.Base(os.Args[0]))
}

func setup(confPath string) *cnf.Conf {
	conf := cnf.LoadConfig(confPath)
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	if err := cnf.ValidateAndDefaults(conf); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	return conf
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func runActionVersion(ver VersionInfo) {
	fmt.Fprintln(os.Stderr, "mio-cutoff version: ", ver)
}

func main() {
	version := VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	cmdAnalyze := flag.NewFlagSet(actionAnalyze, flag.ExitOnError)
	threshold := cmdAnalyze.Float64(
		"threshold", 0, "time per item threshold in μs (overrides the configured value)")
	outPath := cmdAnalyze.String(
		"out", "", "output file (.tsv, .json, .msgpack); overrides the configured outputPath")
	quiet := cmdAnalyze.Bool("quiet", false, "do not print the result table")
	cmdAnalyze.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json [input ...]\n\t",
			filepath.Base(os.Args[0]), actionAnalyze)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdAnalyze.PrintDefaults()
		fmt.Fprintf(
			os.Stderr,
			"\nInput is a CSV file, sqlite:PATH or mysql:DSN. "+
				"Without inputs, the source from the config is used.\n",
		)
	}

	cmdScales := flag.NewFlagSet(actionScales, flag.ExitOnError)
	cmdScales.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s config.json\n",
			filepath.Base(os.Args[0]), actionScales)
	}

	cmdVersion := flag.NewFlagSet(actionVersion, flag.ExitOnError)
	cmdVersion.Usage = func() {
		cmdVersion.PrintDefaults()
	}

	cmdHelp := flag.NewFlagSet(actionHelp, flag.ExitOnError)
	cmdHelp.Usage = func() {
		topLevelUsage()
	}

	action := actionHelp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case actionHelp:
		var subj string
		if len(os.Args) > 2 {
			cmdHelp.Parse(os.Args[2:])
			subj = cmdHelp.Arg(0)
		}
		switch subj {
		case actionAnalyze:
			cmdAnalyze.Usage()
		case actionScales:
			cmdScales.Usage()
		default:
			topLevelUsage()
		}
	case actionVersion:
		cmdVersion.Parse(os.Args[2:])
		runActionVersion(version)
	case actionAnalyze:
		cmdAnalyze.Parse(os.Args[2:])
		conf := setup(cmdAnalyze.Arg(0))
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		code := runAnalyze(ctx, conf, analyzeArgs{
			inputs:    cmdAnalyze.Args()[min(1, cmdAnalyze.NArg()):],
			threshold: *threshold,
			outPath:   *outPath,
			quiet:     *quiet,
		})
		if code != 0 {
			stop()
			os.Exit(code)
		}
	case actionScales:
		cmdScales.Parse(os.Args[2:])
		conf := setup(cmdScales.Arg(0))
		if err := runScales(conf, os.Stdout); err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitCode(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown action, please use 'help' to get more information\n")
		os.Exit(exitErrorGeneralFailure)
	}
}
