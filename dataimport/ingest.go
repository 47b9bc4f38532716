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

package dataimport

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
)

func malformed(row int, col, msg string) error {
	return fmt.Errorf("%w: row %d, column '%s': %s", stats.ErrMalformedInput, row, col, msg)
}

func floatValue(row Row, idx int, col string) (float64, error) {
	raw, ok := row[col]
	if !ok {
		return 0, malformed(idx, col, "missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, malformed(idx, col, fmt.Sprintf("'%s' is not a number", raw))
	}
	return v, nil
}

// intValue accepts also integral floats (e.g. "8.0") as produced
// by some spreadsheet exports
func intValue(row Row, idx int, col string) (int, error) {
	raw, ok := row[col]
	if !ok {
		return 0, malformed(idx, col, "missing value")
	}
	v, err := strconv.Atoi(raw)
	if err == nil {
		return v, nil
	}
	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil || fv != math.Trunc(fv) || math.Abs(fv) > math.MaxInt32 {
		return 0, malformed(idx, col, fmt.Sprintf("'%s' is not an integer", raw))
	}
	return int(fv), nil
}

// ParseRows converts raw rows into experiment records, keeping
// their order. Only the presence and the numeric format of values
// is checked here, the ranges are up to the metrics engine.
func ParseRows(rows []Row, scales ScaleMap) ([]stats.ExperimentRecord, error) {
	ans := make([]stats.ExperimentRecord, len(rows))
	for i, row := range rows {
		label, ok := row[ColScale]
		if !ok {
			return nil, malformed(i, ColScale, "missing value")
		}
		procTime, err := floatValue(row, i, ColProcessingTimeMs)
		if err != nil {
			return nil, err
		}
		throughput, err := floatValue(row, i, ColThroughputDPS)
		if err != nil {
			return nil, err
		}
		workers, err := intValue(row, i, ColWorkers)
		if err != nil {
			return nil, err
		}
		batches, err := intValue(row, i, ColBatches)
		if err != nil {
			return nil, err
		}
		itemCount, err := scales.Resolve(label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ans[i] = stats.ExperimentRecord{
			ScaleLabel:            label,
			ItemCount:             itemCount,
			ProcessingTimeMs:      procTime,
			ThroughputItemsPerSec: throughput,
			WorkerCount:           workers,
			BatchCount:            batches,
		}
	}
	return ans, nil
}

// Ingest reads the whole source and converts it into experiment
// records. In case of an error, no records are returned.
func Ingest(ctx context.Context, src RowSource, scales ScaleMap) ([]stats.ExperimentRecord, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ParseRows(rows, scales)
}
