package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case keys and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		Version       string `json:"version"`
		KDFIterations int    `json:"kdf_iterations"`
		LogPath       string `json:"log_path"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Session struct {
		ShortTTL      Duration `json:"short_ttl"`
		LongTTL       Duration `json:"long_ttl"`
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"session,omitempty"`

	Export struct {
		Dir      string `json:"dir"`
		SkipCard bool   `json:"skip_card"`
	} `json:"export,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Version:       jsonCfg.App.Version,
			KDFIterations: jsonCfg.App.KDFIterations,
			LogPath:       jsonCfg.App.LogPath,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Session: Session{
			ShortTTL:      time.Duration(jsonCfg.Session.ShortTTL),
			LongTTL:       time.Duration(jsonCfg.Session.LongTTL),
			SweepInterval: time.Duration(jsonCfg.Session.SweepInterval),
		},
		Export: Export{
			Dir:      jsonCfg.Export.Dir,
			SkipCard: jsonCfg.Export.SkipCard,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
