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
	"fmt"
	"math"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
)

// DefaultTimePerItemUsThreshold is the processing cost per item
// (in microseconds) from which a tier is considered inefficient
// for centralized processing.
const DefaultTimePerItemUsThreshold = 100.0

type Threshold struct {
	TimePerItemUs float64 `json:"timePerItemUsThreshold"`
}

func (th Threshold) Validate() error {
	if math.IsNaN(th.TimePerItemUs) || math.IsInf(th.TimePerItemUs, 0) || th.TimePerItemUs <= 0 {
		return fmt.Errorf(
			"%w: time per item threshold must be a positive number, got %v",
			stats.ErrConfiguration, th.TimePerItemUs,
		)
	}
	return nil
}

func DefaultThreshold() Threshold {
	return Threshold{TimePerItemUs: DefaultTimePerItemUsThreshold}
}

// ClassifyTier applies the cutoff rule to a single value.
// A value equal to the threshold already requires distribution.
func ClassifyTier(timePerItemUs float64, th Threshold) stats.Classification {
	if timePerItemUs < th.TimePerItemUs {
		return stats.Efficient
	}
	return stats.Distribute
}

// Classify returns a copy of metrics-enriched records with
// the classification set. No other field is changed.
func Classify(records []stats.ExperimentRecord, th Threshold) ([]stats.ExperimentRecord, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	ans := make([]stats.ExperimentRecord, len(records))
	for i, rec := range records {
		rec.Classification = ClassifyTier(rec.TimePerItemUs, th)
		ans[i] = rec
	}
	return ans, nil
}

// CutoffPoint describes where the per item cost crosses the threshold
// for the first time.
type CutoffPoint struct {
	Found bool `json:"found"`

	// FirstDistributeIdx is an index of the first record classified
	// as Distribute (-1 if none).
	FirstDistributeIdx  int    `json:"firstDistributeIdx"`
	DistributeFrom      string `json:"distributeFrom,omitempty"`
	DistributeFromItems int64  `json:"distributeFromItems,omitempty"`

	// LastEfficientIdx is an index of the last Efficient record
	// preceding the cutoff (-1 if none). In case no cutoff is found,
	// it points to the last record.
	LastEfficientIdx   int    `json:"lastEfficientIdx"`
	EfficientUpTo      string `json:"efficientUpTo,omitempty"`
	EfficientUpToItems int64  `json:"efficientUpToItems,omitempty"`
}

func (cp CutoffPoint) String() string {
	if !cp.Found {
		return "no cutoff - all the tiers are efficient"
	}
	if cp.LastEfficientIdx < 0 {
		return fmt.Sprintf("distribution recommended for all tiers (from %s)", cp.DistributeFrom)
	}
	return fmt.Sprintf(
		"cutoff between %s (%d items) and %s (%d items)",
		cp.EfficientUpTo, cp.EfficientUpToItems, cp.DistributeFrom, cp.DistributeFromItems,
	)
}

// FindCutoff expects classified records
func FindCutoff(records []stats.ExperimentRecord) CutoffPoint {
	ans := CutoffPoint{FirstDistributeIdx: -1, LastEfficientIdx: -1}
	for i, rec := range records {
		if rec.Classification == stats.Distribute {
			ans.Found = true
			ans.FirstDistributeIdx = i
			ans.DistributeFrom = rec.ScaleLabel
			ans.DistributeFromItems = rec.ItemCount
			break
		}
		if rec.Classification == stats.Efficient {
			ans.LastEfficientIdx = i
			ans.EfficientUpTo = rec.ScaleLabel
			ans.EfficientUpToItems = rec.ItemCount
		}
	}
	return ans
}
