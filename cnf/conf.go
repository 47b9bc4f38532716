// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Department of Linguistics,
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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/dataimport"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/eval"
	"github.com/Francisc0Lozan0/ProyectoFINAL-IngSoftIV-MIO/stats"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	SourceTypeCSV    = "csv"
	SourceTypeSQLite = "sqlite"
	SourceTypeMySQL  = "mysql"

	dfltOutputPath = "cutoff_analysis_enriched.json"
)

type SourceConf struct {
	Type  string            `json:"type"`
	Path  string            `json:"path"`
	MySQL dataimport.DBConf `json:"mysql"`
}

type Conf struct {
	srcPath     string
	Logging     logging.LoggingConf `json:"logging"`
	Cutoff      eval.Threshold      `json:"cutoff"`
	ScaleLabels string              `json:"scaleLabels"`

	// Scales, if set, replaces the predefined mapping selected
	// via ScaleLabels.
	Scales     dataimport.ScaleMap `json:"scales"`
	Source     SourceConf          `json:"source"`
	OutputPath string              `json:"outputPath"`
}

func (conf *Conf) SrcPath() string {
	return conf.srcPath
}

// ScaleMap returns the effective scale mapping
func (conf *Conf) ScaleMap() (dataimport.ScaleMap, error) {
	if len(conf.Scales) > 0 {
		if err := conf.Scales.Validate(); err != nil {
			return nil, err
		}
		return conf.Scales, nil
	}
	return dataimport.ScaleMapByName(conf.ScaleLabels)
}

// RowSource creates a benchmark table source as configured
// in the `source` section.
func (conf *Conf) RowSource() (dataimport.RowSource, error) {
	switch conf.Source.Type {
	case SourceTypeCSV:
		return &dataimport.CSVSource{Path: conf.Source.Path}, nil
	case SourceTypeSQLite:
		return dataimport.NewSQLiteSource(conf.Source.Path), nil
	case SourceTypeMySQL:
		return dataimport.NewMySQLSource(conf.Source.MySQL), nil
	case "":
		return nil, fmt.Errorf("%w: no data source configured", stats.ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown source type '%s'", stats.ErrConfiguration, conf.Source.Type)
	}
}

func (conf *Conf) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(conf.srcPath), p)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

// ValidateAndDefaults fills in missing values and checks the rest.
// Relative paths are resolved against the directory of the config file.
func ValidateAndDefaults(conf *Conf) error {
	if conf.Cutoff.TimePerItemUs == 0 {
		conf.Cutoff = eval.DefaultThreshold()
		log.Warn().
			Float64("value", conf.Cutoff.TimePerItemUs).
			Msg("cutoff.timePerItemUsThreshold not specified, using default")
	}
	if err := conf.Cutoff.Validate(); err != nil {
		return err
	}

	if len(conf.Scales) == 0 && conf.ScaleLabels == "" {
		conf.ScaleLabels = dataimport.ScaleLabelsDefault
		log.Warn().Msg("scaleLabels not specified, using default")
	}
	if _, err := conf.ScaleMap(); err != nil {
		return err
	}

	switch conf.Source.Type {
	case SourceTypeCSV, SourceTypeSQLite:
		if conf.Source.Path == "" {
			return fmt.Errorf("%w: source.path not specified", stats.ErrConfiguration)
		}
		conf.Source.Path = conf.resolvePath(conf.Source.Path)
	case SourceTypeMySQL:
		if conf.Source.MySQL.Host == "" || conf.Source.MySQL.Name == "" {
			return fmt.Errorf("%w: incomplete source.mysql configuration", stats.ErrConfiguration)
		}
	case "":
		log.Warn().Msg("no data source configured, inputs must be passed explicitly")
	default:
		return fmt.Errorf("%w: unknown source type '%s'", stats.ErrConfiguration, conf.Source.Type)
	}

	if conf.OutputPath == "" {
		conf.OutputPath = dfltOutputPath
		log.Warn().Str("path", conf.OutputPath).Msg("outputPath not specified, using default")
	}
	conf.OutputPath = conf.resolvePath(conf.OutputPath)
	return nil
}
