package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where and how journal data is stored.
type Config interface {
	BasePath() string
	Backend() Backend
	UserID() string
}

// LoadConfig reads .daylog.yaml from $DAYLOG_CONFIG_PATH or the working
// directory, with DAYLOG_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.daylog.db")
	viper.SetDefault("backend", string(BackendDiskv))
	viper.SetDefault("user", defaultUser())
	viper.SetConfigName(".daylog") // .yaml is implicit
	viper.SetEnvPrefix("DAYLOG")
	viper.AutomaticEnv()

	if override := os.Getenv("DAYLOG_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	backend, err := ParseBackend(viper.GetString("backend"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path: path,
		Kind: backend,
		User: viper.GetString("user"),
	}, nil
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "me"
}

// NewConfig builds a Config without consulting viper.
func NewConfig(path string, backend Backend, user string) Config {
	return &fileConfig{Path: path, Kind: backend, User: user}
}

type fileConfig struct {
	Path string  `json:"path"`
	Kind Backend `json:"backend"`
	User string  `json:"user"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() Backend {
	return f.Kind
}

func (f *fileConfig) UserID() string {
	return f.User
}
