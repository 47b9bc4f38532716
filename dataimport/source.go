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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/rs/zerolog/log"
)

const (
	ColScale            = "scale"
	ColProcessingTimeMs = "processing_time_ms"
	ColThroughputDPS    = "throughput_dps"
	ColWorkers          = "workers"
	ColBatches          = "batches"
)

// RequiredColumns lists the columns each tabular source must provide
var RequiredColumns = []string{
	ColScale, ColProcessingTimeMs, ColThroughputDPS, ColWorkers, ColBatches,
}

// Row is a raw table row with values keyed by column names.
// A missing key means a missing (or NULL) value.
type Row map[string]string

// RowSource provides raw rows of a benchmark table in their
// original order. A source is expected to acquire all the resources
// it needs inside Rows and release them before returning.
type RowSource interface {
	Rows(ctx context.Context) ([]Row, error)
	String() string
}

// ------

// CSVSource reads a CSV file with a header row. Lines starting
// with '#' are treated as comments, blank lines are ignored
// and so are unknown columns.
type CSVSource struct {
	Path string
}

func (src *CSVSource) String() string {
	return src.Path
}

func (src *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	fr, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %s", stats.ErrMalformedInput, src.Path, err)
	}
	defer fr.Close()
	rows, err := ReadCSV(ctx, fr)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
	}
	log.Debug().Str("path", src.Path).Int("numRows", len(rows)).Msg("read CSV source")
	return rows, nil
}

// ReadCSV reads all the rows from a CSV stream. The header must
// contain all the RequiredColumns.
func ReadCSV(ctx context.Context, r io.Reader) ([]Row, error) {
	rdr := csv.NewReader(r)
	rdr.Comment = '#'
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true
	header, err := rdr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", stats.ErrMalformedInput)

	} else if err != nil {
		return nil, fmt.Errorf("%w: %s", stats.ErrMalformedInput, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}
	ans := make([]Row, 0, 8)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break

		} else if err != nil {
			return nil, fmt.Errorf("%w: %s", stats.ErrMalformedInput, err)
		}
		row := make(Row, len(header))
		for i, v := range fields {
			if i >= len(header) {
				break
			}
			v = strings.TrimSpace(v)
			if v != "" {
				row[header[i]] = v
			}
		}
		ans = append(ans, row)
	}
	return ans, nil
}

func checkColumns(header []string) error {
	for _, req := range RequiredColumns {
		var found bool
		for _, h := range header {
			if h == req {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: missing column '%s'", stats.ErrMalformedInput, req)
		}
	}
	return nil
}
