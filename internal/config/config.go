package config

import (
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/VitorNoe/MovieSearchApp/pkg/omdb"
	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

const EnvPrefix = "MOVIESEARCH_"

const (
	DefaultBaseURL       = omdb.DefaultBaseURL
	DefaultTimeout       = omdb.DefaultTimeout
	DefaultServerAddress = ":8080"
)

type Config struct {
	API    API    `yaml:"api" envPrefix:"API_"`
	Server Server `yaml:"server" envPrefix:"SERVER_"`
}

type API struct {
	// Key is never compiled in, it must come from the environment or a file.
	Key     string        `yaml:"key" env:"KEY"`
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type Server struct {
	Address string `yaml:"address" env:"ADDRESS"`
}

func Default() *Config {
	return &Config{
		API: API{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Server: Server{
			Address: DefaultServerAddress,
		},
	}
}

// Load resolves the configuration from defaults, the optional YAML file at
// path, the given dotenv files and finally the process environment.
// Missing dotenv files are ignored, variables already set in the environment
// are never overwritten by them.
func Load(path string, dotEnvFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config file '%s'", path)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "could not parse config file '%s'", path)
		}
	}

	for _, filename := range dotEnvFiles {
		if filename == "" {
			continue
		}

		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, errors.Wrapf(err, "could not load env file '%s'", filename)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "could not parse environment")
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.API.Key) == "" {
		err = multierror.Append(err, errors.Errorf("missing api key, set %sAPI_KEY or api.key", EnvPrefix))
	}

	if baseURL, parseErr := url.Parse(c.API.BaseURL); parseErr != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		err = multierror.Append(err, errors.Errorf("invalid api base url '%s'", c.API.BaseURL))
	}

	if c.API.Timeout <= 0 {
		err = multierror.Append(err, errors.Errorf("api timeout must be positive, got '%s'", c.API.Timeout))
	}

	if strings.TrimSpace(c.Server.Address) == "" {
		err = multierror.Append(err, errors.New("missing server address"))
	}

	return err
}
