package dataimport

import (
	"context"
	"testing"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() Row {
	return Row{
		ColScale:            "1 thousand",
		ColProcessingTimeMs: "1000",
		ColThroughputDPS:    "500",
		ColWorkers:          "1",
		ColBatches:          "2",
	}
}

func TestIngestCSV(t *testing.T) {
	recs, err := Ingest(context.Background(), &CSVSource{Path: "./cutoff_analysis.csv"}, DefaultScaleMap())
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, stats.ExperimentRecord{
		ScaleLabel:            "100 thousand",
		ItemCount:             100000,
		ProcessingTimeMs:      23640,
		ThroughputItemsPerSec: 423.01,
		WorkerCount:           8,
		BatchCount:            100,
	}, recs[2])
	for i := 1; i < len(recs); i++ {
		assert.Greater(t, recs[i].ItemCount, recs[i-1].ItemCount)
	}
}

func TestIngestLegacyLabels(t *testing.T) {
	recs, err := Ingest(context.Background(), &CSVSource{Path: "./cutoff_analysis_legacy.csv"}, LegacyScaleMap())
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "10_MILLONES", recs[4].ScaleLabel)
	assert.Equal(t, int64(10_000_000), recs[4].ItemCount)
}

func TestIngestUnknownScaleWithDefaultMap(t *testing.T) {
	_, err := Ingest(context.Background(), &CSVSource{Path: "./cutoff_analysis_legacy.csv"}, DefaultScaleMap())
	assert.ErrorIs(t, err, stats.ErrConfiguration)
}

func TestIngestNonNumericValue(t *testing.T) {
	recs, err := Ingest(context.Background(), &CSVSource{Path: "./cutoff_analysis_broken.csv"}, DefaultScaleMap())
	assert.ErrorIs(t, err, stats.ErrMalformedInput)
	assert.Nil(t, recs)
}

func TestParseRowsMissingValues(t *testing.T) {
	for _, col := range RequiredColumns {
		row := validRow()
		delete(row, col)
		_, err := ParseRows([]Row{row}, DefaultScaleMap())
		assert.ErrorIs(t, err, stats.ErrMalformedInput, col)
		assert.Contains(t, err.Error(), col)
	}
}

func TestParseRowsIntegralFloats(t *testing.T) {
	row := validRow()
	row[ColWorkers] = "8.0"
	recs, err := ParseRows([]Row{row}, DefaultScaleMap())
	require.NoError(t, err)
	assert.Equal(t, 8, recs[0].WorkerCount)

	row[ColWorkers] = "8.5"
	_, err = ParseRows([]Row{row}, DefaultScaleMap())
	assert.ErrorIs(t, err, stats.ErrMalformedInput)
}

func TestParseRowsRejectsNaN(t *testing.T) {
	row := validRow()
	row[ColThroughputDPS] = "NaN"
	_, err := ParseRows([]Row{row}, DefaultScaleMap())
	assert.ErrorIs(t, err, stats.ErrMalformedInput)
}

func TestParseRowsKeepsNegativeValues(t *testing.T) {
	// range checks are up to the metrics engine
	row := validRow()
	row[ColProcessingTimeMs] = "-5"
	recs, err := ParseRows([]Row{row}, DefaultScaleMap())
	require.NoError(t, err)
	assert.Equal(t, -5.0, recs[0].ProcessingTimeMs)
}

func TestParseRowsEmpty(t *testing.T) {
	recs, err := ParseRows([]Row{}, DefaultScaleMap())
	assert.NoError(t, err)
	assert.Len(t, recs, 0)
}
