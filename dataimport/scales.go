package dataimport

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
)

const (
	ScaleLabelsDefault = "default"
	ScaleLabelsLegacy  = "legacy"
)

// ScaleMap translates symbolic scale labels into item counts.
type ScaleMap map[string]int64

// DefaultScaleMap returns the five scale tiers of the experiment
// (one thousand up to ten million items).
func DefaultScaleMap() ScaleMap {
	return ScaleMap{
		"1 thousand":   1_000,
		"10 thousand":  10_000,
		"100 thousand": 100_000,
		"1 million":    1_000_000,
		"10 million":   10_000_000,
	}
}

// LegacyScaleMap contains the same tiers with labels produced
// by the original experiment runner (results/cutoff_analysis.csv).
func LegacyScaleMap() ScaleMap {
	return ScaleMap{
		"1_MIL":       1_000,
		"10_MIL":      10_000,
		"100_MIL":     100_000,
		"1_MILLON":    1_000_000,
		"10_MILLONES": 10_000_000,
	}
}

// ScaleMapByName returns one of the predefined mappings.
// An empty name means the default one.
func ScaleMapByName(name string) (ScaleMap, error) {
	switch name {
	case ScaleLabelsDefault, "":
		return DefaultScaleMap(), nil
	case ScaleLabelsLegacy:
		return LegacyScaleMap(), nil
	default:
		return nil, fmt.Errorf("%w: unknown scale labels set '%s'", stats.ErrConfiguration, name)
	}
}

func (sm ScaleMap) Resolve(label string) (int64, error) {
	v, ok := sm[strings.TrimSpace(label)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown scale '%s'", stats.ErrConfiguration, label)
	}
	return v, nil
}

func (sm ScaleMap) Validate() error {
	if len(sm) == 0 {
		return fmt.Errorf("%w: empty scale mapping", stats.ErrConfiguration)
	}
	for k, v := range sm {
		if v <= 0 {
			return fmt.Errorf(
				"%w: scale '%s' must map to a positive item count", stats.ErrConfiguration, k)
		}
	}
	return nil
}

// Labels returns all the labels ordered by their item counts
func (sm ScaleMap) Labels() []string {
	ans := make([]string, 0, len(sm))
	for k := range sm {
		ans = append(ans, k)
	}
	slices.SortFunc(ans, func(a, b string) int {
		if sm[a] != sm[b] {
			if sm[a] < sm[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return ans
}
