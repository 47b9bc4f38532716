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
	"context"
	"fmt"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/dataimport"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result is an enriched (metrics + classification) table
// ready to be handed over to a report assembler.
type Result struct {
	Source    string                   `json:"source"`
	Threshold Threshold                `json:"threshold"`
	Records   []stats.ExperimentRecord `json:"records"`
}

// Pipeline runs ingestion, metrics engine and cutoff classifier
// over a single dataset.
type Pipeline struct {
	Source    dataimport.RowSource
	Scales    dataimport.ScaleMap
	Threshold Threshold
}

func (p Pipeline) Run(ctx context.Context) (Result, error) {
	if err := p.Threshold.Validate(); err != nil {
		return Result{}, err
	}
	recs, err := dataimport.Ingest(ctx, p.Source, p.Scales)
	if err != nil {
		return Result{}, fmt.Errorf("failed to ingest %s: %w", p.Source, err)
	}
	log.Debug().Str("source", p.Source.String()).Int("numRecords", len(recs)).Msg("ingested records")
	recs, err = stats.Compute(recs)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute metrics for %s: %w", p.Source, err)
	}
	recs, err = Classify(recs, p.Threshold)
	if err != nil {
		return Result{}, fmt.Errorf("failed to classify %s: %w", p.Source, err)
	}
	log.Debug().
		Str("source", p.Source.String()).
		Float64("threshold", p.Threshold.TimePerItemUs).
		Msg("classified records")
	return Result{
		Source:    p.Source.String(),
		Threshold: p.Threshold,
		Records:   recs,
	}, nil
}

// RunAll runs independent pipelines concurrently. The results are
// in the same order as the pipelines. The first failure cancels
// the remaining runs and it is the only error returned.
// The onDone callback (if not nil) may be called concurrently.
func RunAll(ctx context.Context, pipelines []Pipeline, onDone func(Result)) ([]Result, error) {
	ans := make([]Result, len(pipelines))
	grp, gctx := errgroup.WithContext(ctx)
	for i, p := range pipelines {
		i, p := i, p
		grp.Go(func() error {
			res, err := p.Run(gctx)
			if err != nil {
				return err
			}
			ans[i] = res
			if onDone != nil {
				onDone(res)
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return ans, nil
}
