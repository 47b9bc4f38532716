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

package stats

import (
	"fmt"
	"math"
)

const (
	msPerMinute    = 60000.0
	usPerMs        = 1000.0
	metricBaseline = "baselineUnitThroughput"
)

// BaselineUnitThroughput returns per-worker throughput of the first
// (smallest scale) record which normalizes speedup of the whole table.
func BaselineUnitThroughput(records []ExperimentRecord) (float64, error) {
	if len(records) == 0 {
		return 0, ErrEmptyDataset
	}
	first := records[0]
	if first.WorkerCount == 0 || first.ThroughputItemsPerSec == 0 {
		return 0, &MetricError{
			Row:    0,
			Scale:  first.ScaleLabel,
			Metric: metricBaseline,
			Err:    ErrDivisionByZero,
		}
	}
	return first.ThroughputItemsPerSec / float64(first.WorkerCount), nil
}

func validateBase(i int, rec ExperimentRecord) error {
	if rec.ItemCount < 0 || rec.WorkerCount < 0 {
		return &MetricError{Row: i, Scale: rec.ScaleLabel, Metric: "base values", Err: ErrMalformedInput}
	}
	// a zero throughput of the first record is reported by the baseline
	if rec.ProcessingTimeMs <= 0 || rec.BatchCount <= 0 ||
		rec.ThroughputItemsPerSec < 0 || (rec.ThroughputItemsPerSec == 0 && i > 0) {
		return &MetricError{Row: i, Scale: rec.ScaleLabel, Metric: "base values", Err: ErrMalformedInput}
	}
	if rec.WorkerCount == 0 {
		return &MetricError{Row: i, Scale: rec.ScaleLabel, Metric: "efficiency", Err: ErrDivisionByZero}
	}
	if rec.ItemCount == 0 {
		return &MetricError{Row: i, Scale: rec.ScaleLabel, Metric: "timePerItemUs", Err: ErrDivisionByZero}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Compute derives all the metrics for the provided records. The input
// slice is not modified, the function returns a new one. Any previously
// derived values (including classification) are ignored and recomputed
// from the base fields.
//
// The first record serves as the baseline for speedup normalization
// so the order of records matters (smallest scale first, item counts
// must be strictly increasing).
func Compute(records []ExperimentRecord) ([]ExperimentRecord, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	for i, rec := range records {
		if err := validateBase(i, rec); err != nil {
			return nil, err
		}
		if i > 0 && rec.ItemCount <= records[i-1].ItemCount {
			return nil, fmt.Errorf(
				"%w: item count of %s (%d) does not exceed the one of %s (%d)",
				ErrMalformedInput, rec.ScaleLabel, rec.ItemCount,
				records[i-1].ScaleLabel, records[i-1].ItemCount,
			)
		}
	}
	baseline, err := BaselineUnitThroughput(records)
	if err != nil {
		return nil, err
	}
	ans := make([]ExperimentRecord, len(records))
	for i, rec := range records {
		ans[i] = derive(rec.BaseFields(), baseline)
		if metric := nonFiniteMetric(ans[i]); metric != "" {
			return nil, &MetricError{Row: i, Scale: rec.ScaleLabel, Metric: metric, Err: ErrMalformedInput}
		}
	}
	return ans, nil
}

// derive expects already validated base values
func derive(rec ExperimentRecord, baseline float64) ExperimentRecord {
	workers := float64(rec.WorkerCount)
	rec.ProcessingTimeMin = rec.ProcessingTimeMs / msPerMinute
	rec.Efficiency = rec.ThroughputItemsPerSec / workers
	rec.TimePerItemUs = (rec.ProcessingTimeMs * usPerMs) / float64(rec.ItemCount)
	rec.TheoreticalSpeedup = workers
	rec.ActualSpeedup = rec.ThroughputItemsPerSec / baseline
	rec.OverheadPercent = (rec.TheoreticalSpeedup - rec.ActualSpeedup) / rec.TheoreticalSpeedup * 100
	return rec
}

// nonFiniteMetric returns the name of the first derived value
// which overflowed (or is NaN), empty string otherwise
func nonFiniteMetric(rec ExperimentRecord) string {
	switch {
	case !isFinite(rec.ProcessingTimeMin):
		return "processingTimeMin"
	case !isFinite(rec.Efficiency):
		return "efficiency"
	case !isFinite(rec.TimePerItemUs):
		return "timePerItemUs"
	case !isFinite(rec.ActualSpeedup):
		return "actualSpeedup"
	case !isFinite(rec.OverheadPercent):
		return "overheadPercent"
	}
	return ""
}
