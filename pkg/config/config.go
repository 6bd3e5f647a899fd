package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"twitchlink/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Epoch2023 is the host set observed by the original tool.
const Epoch2023 = "2023"

var defaultHosts = map[string][]string{
	Epoch2023: {
		"https://d1m7jfoe9zdc1j.cloudfront.net",
		"https://d1mhjrowxxagfy.cloudfront.net",
		"https://d1ymi26ma8va5x.cloudfront.net",
		"https://d2aba1wr3818hz.cloudfront.net",
		"https://d2e2de1etea730.cloudfront.net",
		"https://d2nvs31859zcd8.cloudfront.net",
		"https://d2vjef5jvl6bfs.cloudfront.net",
		"https://d3aqoihi2n8ty8.cloudfront.net",
		"https://d3c27h4odz752x.cloudfront.net",
		"https://d3vd9lfkzbru3h.cloudfront.net",
		"https://ddacn6pr5v0tl.cloudfront.net",
		"https://dgeft87wbj63p.cloudfront.net",
		"https://dqrpb9wgowsf5.cloudfront.net",
		"https://ds0h3roq6wcgc.cloudfront.net",
	},
}

type Config struct {
	Log struct {
		Level    string `yaml:"level" validate:"oneof=debug info warn error"`
		Telegram struct {
			Token  string `yaml:"token"`
			ChatID string `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"log"`

	Sentry struct {
		DSN              string  `yaml:"dsn"`
		Environment      string  `yaml:"environment"`
		TracesSampleRate float64 `yaml:"traces_sample_rate"`
	} `yaml:"sentry"`

	Twitch struct {
		CredentialsPath string        `yaml:"credentials_path" validate:"required"`
		HelixURL        string        `yaml:"helix_url" validate:"required,url"`
		OAuthURL        string        `yaml:"oauth_url" validate:"required,url"`
		GQLURL          string        `yaml:"gql_url" validate:"required,url"`
		UsherURL        string        `yaml:"usher_url" validate:"required,url"`
		GQLClientID     string        `yaml:"gql_client_id" validate:"required"`
		PlaybackHash    string        `yaml:"playback_hash" validate:"required,len=64,hexadecimal"`
		PlayerType      string        `yaml:"player_type" validate:"required"`
		Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"twitch"`

	CDN struct {
		Epoch string              `yaml:"epoch" validate:"required"`
		Hosts map[string][]string `yaml:"hosts" validate:"required,dive,min=1,dive,url"`
	} `yaml:"cdn"`

	Probe struct {
		Method      string        `yaml:"method" validate:"oneof=HEAD GET"`
		Concurrency int           `yaml:"concurrency" validate:"gte=0"`
		Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"probe"`
}

// CandidateHosts returns the host set selected by cdn.epoch, in probe order.
func (c *Config) CandidateHosts() []string {
	hosts := c.CDN.Hosts[c.CDN.Epoch]
	result := make([]string, len(hosts))
	for i, host := range hosts {
		result[i] = strings.TrimRight(host, "/")
	}
	return result
}

// Path returns the config file location. A .env file in the working
// directory may set TWITCHLINK_CONFIG.
func Path() string {
	_ = godotenv.Load()

	if p := os.Getenv("TWITCHLINK_CONFIG"); p != "" {
		return expandHome(p)
	}
	return expandHome("~/.TwitchLink/config.yaml")
}

// Load reads the YAML config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errs.Config("config.load", fmt.Errorf("failed to read config file: %w", err))
	default:
		if err := yaml.Unmarshal(data, &result); err != nil {
			return nil, errs.Config("config.load", fmt.Errorf("failed to parse YAML config: %w", err))
		}
	}

	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, errs.Config("config.load", fmt.Errorf("failed to validate config: %w", err))
	}

	if _, ok := result.CDN.Hosts[result.CDN.Epoch]; !ok {
		return nil, errs.Config("config.load", fmt.Errorf("cdn epoch %q has no host set", result.CDN.Epoch))
	}

	return &result, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}

	if c.Sentry.TracesSampleRate == 0 {
		c.Sentry.TracesSampleRate = 1.0
	}
	if c.Sentry.Environment == "" {
		c.Sentry.Environment = "production"
	}

	if c.Twitch.CredentialsPath == "" {
		c.Twitch.CredentialsPath = "~/.TwitchLink/secrets.json"
	}
	c.Twitch.CredentialsPath = expandHome(c.Twitch.CredentialsPath)
	if c.Twitch.HelixURL == "" {
		c.Twitch.HelixURL = "https://api.twitch.tv/helix"
	}
	if c.Twitch.OAuthURL == "" {
		c.Twitch.OAuthURL = "https://id.twitch.tv/oauth2/token"
	}
	if c.Twitch.GQLURL == "" {
		c.Twitch.GQLURL = "https://gql.twitch.tv/gql"
	}
	if c.Twitch.UsherURL == "" {
		c.Twitch.UsherURL = "https://usher.ttvnw.net"
	}
	if c.Twitch.GQLClientID == "" {
		c.Twitch.GQLClientID = "kimne78kx3ncx6brgo4mv6wki5h1ko"
	}
	if c.Twitch.PlaybackHash == "" {
		c.Twitch.PlaybackHash = "0828119ded1c13477966434e15800ff57ddacf13ba1911c129dc2200705b0712"
	}
	if c.Twitch.PlayerType == "" {
		c.Twitch.PlayerType = "channel_home_live"
	}
	if c.Twitch.Timeout == 0 {
		c.Twitch.Timeout = 30 * time.Second
	}

	if c.CDN.Epoch == "" {
		c.CDN.Epoch = Epoch2023
	}
	hosts := make(map[string][]string, len(defaultHosts)+len(c.CDN.Hosts))
	for epoch, set := range defaultHosts {
		hosts[epoch] = append([]string(nil), set...)
	}
	for epoch, set := range c.CDN.Hosts {
		hosts[epoch] = set
	}
	c.CDN.Hosts = hosts

	if c.Probe.Method == "" {
		c.Probe.Method = "HEAD"
	}
	c.Probe.Method = strings.ToUpper(c.Probe.Method)
	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = 10 * time.Second
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
