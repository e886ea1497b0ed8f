package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML files. Durations
// are written as strings such as "60s" or "168h".
type fileConfig struct {
	App struct {
		PasswordHashKey string   `json:"password_hash_key" yaml:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration   Duration `json:"token_duration" yaml:"token_duration"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		BodyLimit      int64    `json:"body_limit" yaml:"body_limit"`
	} `json:"server" yaml:"server"`

	Admission struct {
		Window         Duration `json:"window" yaml:"window"`
		Limit          int      `json:"limit" yaml:"limit"`
		DelayAfter     int      `json:"delay_after" yaml:"delay_after"`
		DelayStep      Duration `json:"delay_step" yaml:"delay_step"`
		MaxDelay       Duration `json:"max_delay" yaml:"max_delay"`
		TrustedProxies []string `json:"trusted_proxies" yaml:"trusted_proxies"`
	} `json:"admission" yaml:"admission"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a configuration file. The format is chosen by extension:
// ".json" for JSON, ".yaml" or ".yml" for YAML.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return fileCfg.toStructured(), nil
}

func (f *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashKey: f.App.PasswordHashKey,
			TokenSignKey:    f.App.TokenSignKey,
			TokenIssuer:     f.App.TokenIssuer,
			TokenDuration:   time.Duration(f.App.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: f.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
			BodyLimit:      f.Server.BodyLimit,
		},
		Admission: Admission{
			Window:         time.Duration(f.Admission.Window),
			Limit:          f.Admission.Limit,
			DelayAfter:     f.Admission.DelayAfter,
			DelayStep:      time.Duration(f.Admission.DelayStep),
			MaxDelay:       time.Duration(f.Admission.MaxDelay),
			TrustedProxies: f.Admission.TrustedProxies,
		},
		Workers: Workers{
			SweepInterval: time.Duration(f.Workers.SweepInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s" in both JSON and YAML. Plain numbers are taken as
// nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var nanos int64
	if err := node.Decode(&nanos); err == nil {
		*d = Duration(time.Duration(nanos))
		return nil
	}

	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}

	return d.parse(value)
}

func (d *Duration) parse(value string) error {
	tmp, err := time.ParseDuration(value)
	if err != nil {
		return err
	}

	*d = Duration(tmp)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
