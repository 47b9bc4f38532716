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
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCutoffDB(t *testing.T, rows [][]any) string {
	path := filepath.Join(t.TempDir(), "results.sqlite")
	db, err := sql.Open(DriverSQLite, "file:"+path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(
		"CREATE TABLE cutoff_analysis (" +
			"scale TEXT NOT NULL, " +
			"workers INTEGER, " +
			"batches INTEGER, " +
			"processing_time_ms INTEGER, " +
			"throughput_dps FLOAT, " +
			"timestamp TEXT" +
			")",
	)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(
			"INSERT INTO cutoff_analysis (scale, workers, batches, processing_time_ms, throughput_dps) "+
				"VALUES (?, ?, ?, ?, ?)",
			r...,
		)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSourceMatchesCSV(t *testing.T) {
	path := createCutoffDB(t, [][]any{
		{"1 thousand", 8, 1, 50, 147.06},
		{"10 thousand", 8, 10, 800, 327.87},
		{"100 thousand", 8, 100, 23640, 423.01},
		{"1 million", 8, 1000, 250100, 399.84},
		{"10 million", 8, 10000, 2589000, 386.25},
	})
	fromDB, err := Ingest(context.Background(), NewSQLiteSource(path), DefaultScaleMap())
	require.NoError(t, err)
	fromCSV, err := Ingest(context.Background(), &CSVSource{Path: "./cutoff_analysis.csv"}, DefaultScaleMap())
	require.NoError(t, err)
	assert.Equal(t, fromCSV, fromDB)
}

func TestSQLiteSourceNullValue(t *testing.T) {
	path := createCutoffDB(t, [][]any{
		{"1 thousand", 8, nil, 50, 147.06},
	})
	rows, err := NewSQLiteSource(path).Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, ok := rows[0][ColBatches]
	assert.False(t, ok)

	_, err = ParseRows(rows, DefaultScaleMap())
	assert.ErrorIs(t, err, stats.ErrMalformedInput)
}

func TestSQLiteSourceMissingDatabase(t *testing.T) {
	src := NewSQLiteSource(filepath.Join(t.TempDir(), "nothing.sqlite"))
	_, err := src.Rows(context.Background())
	assert.ErrorIs(t, err, stats.ErrMalformedInput)
}

func TestSQLSourceString(t *testing.T) {
	assert.Equal(t, "sqlite3:/tmp/x.sqlite", NewSQLiteSource("/tmp/x.sqlite").String())
	src := NewMySQLSource(DBConf{Host: "localhost:3306", User: "mio", Passwd: "secret", Name: "sitm"})
	assert.Equal(t, "mysql:localhost:3306/sitm", src.String())
	assert.True(t, strings.Contains(src.dsn, "tcp(localhost:3306)/sitm"))
	assert.Equal(t, "id", src.orderBy)
}

func TestParseMySQLDSN(t *testing.T) {
	conf, err := ParseMySQLDSN("mio:secret@tcp(db.local:3306)/sitm")
	assert.NoError(t, err)
	assert.Equal(t, DBConf{Host: "db.local:3306", User: "mio", Passwd: "secret", Name: "sitm"}, conf)

	_, err = ParseMySQLDSN("mio:secret@tcp(db.local:3306)")
	assert.ErrorIs(t, err, stats.ErrConfiguration)
}

func TestSQLiteSourceSpecialCharsInPath(t *testing.T) {
	tmpPath := createCutoffDB(t, [][]any{
		{"1 thousand", 8, 1, 50, 147.06},
		{"10 thousand", 8, 10, 800, 327.87},
	})
	path := filepath.Join(filepath.Dir(tmpPath), "run?1#50%.sqlite")
	require.NoError(t, os.Rename(tmpPath, path))
	src := NewSQLiteSource(path)
	assert.Equal(t, "sqlite3:"+path, src.String())
	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10 thousand", rows[1][ColScale])
}
