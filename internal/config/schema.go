package config

// Config is the full nordnotat configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Stripe   StripeConfig   `yaml:"stripe" mapstructure:"stripe"`
	Fees     FeesConfig     `yaml:"fees" mapstructure:"fees"`
	OpenAI   OpenAIConfig   `yaml:"openai" mapstructure:"openai"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr    string `yaml:"addr" mapstructure:"addr"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// StripeConfig configures the payment processor integration.
type StripeConfig struct {
	SecretKey     string `yaml:"secret_key" mapstructure:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret" mapstructure:"webhook_secret"`
	Currency      string `yaml:"currency" mapstructure:"currency"`
}

// FeesConfig configures the platform's cut.
type FeesConfig struct {
	PlatformBps int `yaml:"platform_bps" mapstructure:"platform_bps"`
}

// OpenAIConfig configures metadata generation. An empty APIKey selects
// the deterministic fallback generator.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	Secret string `yaml:"secret" mapstructure:"secret"`
}

// StorageConfig configures the document file store.
type StorageConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}
