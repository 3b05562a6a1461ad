package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file merged over the
// defaults, with NORDNOTAT_* environment variables taking precedence
// (NORDNOTAT_STRIPE_SECRET_KEY overrides stripe.secret_key, and so
// on). An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NORDNOTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.currency", d.Stripe.Currency)
	v.SetDefault("fees.platform_bps", d.Fees.PlatformBps)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", d.OpenAI.Model)
	v.SetDefault("auth.secret", "")
	v.SetDefault("storage.dir", d.Storage.Dir)
}

// Validate checks the settings a running server cannot do without.
func (c *Config) Validate() error {
	switch {
	case c.Database.URL == "":
		return fmt.Errorf("database.url is required")
	case c.Stripe.SecretKey == "":
		return fmt.Errorf("stripe.secret_key is required")
	case c.Stripe.WebhookSecret == "":
		return fmt.Errorf("stripe.webhook_secret is required")
	case c.Auth.Secret == "":
		return fmt.Errorf("auth.secret is required")
	}
	return nil
}
