package eval

import (
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
)

// ScalabilityPoint compares throughput growth with processing
// time growth of a tier, both normalized to the first tier.
type ScalabilityPoint struct {
	Scale                string  `json:"scale"`
	NormalizedThroughput float64 `json:"normalizedThroughput"`
	NormalizedTime       float64 `json:"normalizedTime"`
}

// Summary contains table-wide aggregates of enriched records.
type Summary struct {
	Workers            int                `json:"workers"`
	MaxThroughput      float64            `json:"maxThroughput"`
	MaxThroughputScale string             `json:"maxThroughputScale"`
	MeanEfficiency     float64            `json:"meanEfficiency"`
	MaxEfficiency      float64            `json:"maxEfficiency"`
	MaxEfficiencyScale string             `json:"maxEfficiencyScale"`
	NumEfficient       int                `json:"numEfficient"`
	NumDistribute      int                `json:"numDistribute"`
	Scalability        []ScalabilityPoint `json:"scalability"`
}

// Summarize expects records processed by stats.Compute
// (and optionally by Classify).
func Summarize(records []stats.ExperimentRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, stats.ErrEmptyDataset
	}
	first := records[0]
	if first.ThroughputItemsPerSec == 0 || first.ProcessingTimeMs == 0 {
		return Summary{}, &stats.MetricError{
			Row:    0,
			Scale:  first.ScaleLabel,
			Metric: "scalability",
			Err:    stats.ErrDivisionByZero,
		}
	}
	ans := Summary{
		Workers:     first.WorkerCount,
		Scalability: make([]ScalabilityPoint, len(records)),
	}
	var sumEff float64
	for i, rec := range records {
		if i == 0 || rec.ThroughputItemsPerSec > ans.MaxThroughput {
			ans.MaxThroughput = rec.ThroughputItemsPerSec
			ans.MaxThroughputScale = rec.ScaleLabel
		}
		if i == 0 || rec.Efficiency > ans.MaxEfficiency {
			ans.MaxEfficiency = rec.Efficiency
			ans.MaxEfficiencyScale = rec.ScaleLabel
		}
		sumEff += rec.Efficiency
		switch rec.Classification {
		case stats.Efficient:
			ans.NumEfficient++
		case stats.Distribute:
			ans.NumDistribute++
		}
		ans.Scalability[i] = ScalabilityPoint{
			Scale:                rec.ScaleLabel,
			NormalizedThroughput: rec.ThroughputItemsPerSec / first.ThroughputItemsPerSec,
			NormalizedTime:       rec.ProcessingTimeMs / first.ProcessingTimeMs,
		}
	}
	ans.MeanEfficiency = sumEff / float64(len(records))
	return ans, nil
}
