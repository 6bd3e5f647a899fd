package config

import (
	"encoding/json"
	"fmt"
	"os"
	"twitchlink/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
)

// Credentials are the user's Helix app credentials. They are passed through
// as request headers and never inspected. When OAuthToken is empty an app
// access token is minted from ClientID and ClientSecret.
type Credentials struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	OAuthToken   string `json:"oauth_token"`
}

func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Config("config.credentials", fmt.Errorf("failed to read credentials file: %w", err))
	}

	var result Credentials
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errs.Config("config.credentials", fmt.Errorf("failed to parse credentials file %s: %w", path, err))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, errs.Config("config.credentials", fmt.Errorf("failed to validate credentials: %w", err))
	}

	return &result, nil
}

// NewCredentials loads the credentials file named by the config. It is
// registered lazily so that only the VOD pipeline needs the file.
func NewCredentials(di *do.Injector) (*Credentials, error) {
	cfg := do.MustInvoke[*Config](di)
	return LoadCredentials(cfg.Twitch.CredentialsPath)
}
