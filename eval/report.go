// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
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

package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
)

var tsvHeader = []string{
	"scale", "itemCount", "processingTimeMs", "throughputItemsPerSec", "workerCount",
	"batchCount", "processingTimeMin", "efficiency", "timePerItemUs",
	"theoreticalSpeedup", "actualSpeedup", "overheadPercent", "classification",
}

// Report is the document handed over to an external report assembler
// (charts, narrative texts).
type Report struct {
	Result
	Cutoff  CutoffPoint `json:"cutoff"`
	Summary Summary     `json:"summary"`
}

// ------------------------

type Reporter struct {
	report Report
}

func (reporter *Reporter) Report() Report {
	return reporter.report
}

func (reporter *Reporter) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, strings.Join(tsvHeader, "\t")); err != nil {
		return fmt.Errorf("failed to write TSV report: %w", err)
	}
	for _, rec := range reporter.report.Records {
		_, err := fmt.Fprintf(
			w,
			"%s\t%d\t%g\t%g\t%d\t%d\t%g\t%g\t%g\t%g\t%g\t%g\t%s\n",
			rec.ScaleLabel, rec.ItemCount, rec.ProcessingTimeMs, rec.ThroughputItemsPerSec,
			rec.WorkerCount, rec.BatchCount, rec.ProcessingTimeMin, rec.Efficiency,
			rec.TimePerItemUs, rec.TheoreticalSpeedup, rec.ActualSpeedup,
			rec.OverheadPercent, rec.Classification,
		)
		if err != nil {
			return fmt.Errorf("failed to write TSV report: %w", err)
		}
	}
	return nil
}

func (reporter *Reporter) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reporter.report); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// WriteMsgpack encodes the same document as WriteJSON, with the same
// key names.
func (reporter *Reporter) WriteMsgpack(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(reporter.report); err != nil {
		return fmt.Errorf("failed to write msgpack report: %w", err)
	}
	return nil
}

// Save writes the report into a file with format determined
// by the file's extension (.tsv, .json, .msgpack/.mp).
func (reporter *Reporter) Save(path string) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		write = reporter.WriteTSV
	case ".json":
		write = reporter.WriteJSON
	case ".msgpack", ".mp":
		write = reporter.WriteMsgpack
	default:
		return fmt.Errorf("unsupported report format for file %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

// PrintTable writes a human readable table. Classification is colored
// in case the output supports it (see color.NoColor).
func (reporter *Reporter) PrintTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "source: %s\n", reporter.report.Source)
	fmt.Fprintf(tw, "threshold: %.2f μs/item\n\n", reporter.report.Threshold.TimePerItemUs)
	fmt.Fprintln(tw, "scale\titems\ttime (min)\tthroughput\tbatches\tefficiency\tμs/item\tspeedup\toverhead %\tclassification")
	for _, rec := range reporter.report.Records {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%.2f\t%.2f\t%d\t%.2f\t%.2f\t%.2f/%.0f\t%.1f\t%s\n",
			rec.ScaleLabel, FormatItemCount(rec.ItemCount), rec.ProcessingTimeMin,
			rec.ThroughputItemsPerSec, rec.BatchCount, rec.Efficiency, rec.TimePerItemUs,
			rec.ActualSpeedup, rec.TheoreticalSpeedup, rec.OverheadPercent,
			colorClassification(rec.Classification),
		)
	}
	fmt.Fprintln(tw)
	sm := reporter.report.Summary
	fmt.Fprintf(tw, "workers:\t%d\n", sm.Workers)
	fmt.Fprintf(tw, "max. throughput:\t%.2f items/s (%s)\n", sm.MaxThroughput, sm.MaxThroughputScale)
	fmt.Fprintf(tw, "mean efficiency:\t%.2f items/s/worker\n", sm.MeanEfficiency)
	fmt.Fprintf(tw, "best efficiency:\t%.2f items/s/worker (%s)\n", sm.MaxEfficiency, sm.MaxEfficiencyScale)
	fmt.Fprintf(tw, "cutoff:\t%s\n", reporter.report.Cutoff)
	return tw.Flush()
}

func colorClassification(c stats.Classification) string {
	switch c {
	case stats.Efficient:
		return color.New(color.FgHiGreen).Sprint(c)
	case stats.Distribute:
		return color.New(color.FgHiRed).Sprint(c)
	default:
		return "-"
	}
}

func NewReporter(res Result) (*Reporter, error) {
	summary, err := Summarize(res.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &Reporter{
		report: Report{
			Result:  res,
			Cutoff:  FindCutoff(res.Records),
			Summary: summary,
		},
	}, nil
}
