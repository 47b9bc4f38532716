package eval

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func testReporter(t *testing.T) *Reporter {
	classified, err := Classify(enrichedTable(t), DefaultThreshold())
	require.NoError(t, err)
	reporter, err := NewReporter(Result{Source: "test", Threshold: DefaultThreshold(), Records: classified})
	require.NoError(t, err)
	return reporter
}

func TestReporterTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testReporter(t).WriteTSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, strings.Join(tsvHeader, "\t"), lines[0])
	cols := strings.Split(lines[2], "\t")
	require.Len(t, cols, len(tsvHeader))
	assert.Equal(t, "10 thousand", cols[0])
	assert.Equal(t, "10000", cols[1])
	assert.Equal(t, "80", cols[8])
	assert.Equal(t, "EFFICIENT", cols[12])
}

func TestReporterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testReporter(t).WriteJSON(&buf))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test", doc["source"])
	assert.Equal(t, 100.0, doc["threshold"].(map[string]any)["timePerItemUsThreshold"])
	records := doc["records"].([]any)
	require.Len(t, records, 5)
	assert.Equal(t, "DISTRIBUTE", records[2].(map[string]any)["classification"])
	assert.Equal(t, "100 thousand", doc["cutoff"].(map[string]any)["distributeFrom"])
	assert.Equal(t, 8.0, doc["summary"].(map[string]any)["workers"])
}

func TestReporterMsgpack(t *testing.T) {
	reporter := testReporter(t)
	var buf bytes.Buffer
	require.NoError(t, reporter.WriteMsgpack(&buf))
	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	var doc Report
	require.NoError(t, dec.Decode(&doc))
	assert.Equal(t, reporter.Report(), doc)
}

func TestReporterSave(t *testing.T) {
	reporter := testReporter(t)
	dir := t.TempDir()
	for _, name := range []string{"out.tsv", "out.json", "out.msgpack"} {
		path := filepath.Join(dir, name)
		require.NoError(t, reporter.Save(path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Error(t, reporter.Save(filepath.Join(dir, "out.png")))
}

func TestReporterPrintTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, testReporter(t).PrintTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "threshold: 100.00 μs/item")
	assert.Contains(t, out, "DISTRIBUTE")
	assert.Contains(t, out, "EFFICIENT")
	assert.Contains(t, out, "cutoff between 10 thousand (10000 items) and 100 thousand (100000 items)")
}

func TestNewReporterEmpty(t *testing.T) {
	_, err := NewReporter(Result{})
	assert.ErrorIs(t, err, stats.ErrEmptyDataset)
}
