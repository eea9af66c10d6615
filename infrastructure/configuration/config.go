package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"leadbridge/domain/model"
	"leadbridge/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:"app"`
	Salesforce  Salesforce  `mapstructure:"salesforce"`
	Lead        Lead        `mapstructure:"lead"`
	Batch       Batch       `mapstructure:"batch"`
	RedisClient RedisClient `mapstructure:"redisClient"`
	Logger      Logger      `mapstructure:"logger"`
}

type App struct {
	Port           int      `mapstructure:"port"`
	SecretKey      string   `mapstructure:"secretKey"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// Salesforce holds the password-grant credentials. All fields are required.
type Salesforce struct {
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	TokenURL     string `mapstructure:"tokenUrl"`
}

// Lead lists the values offered to operators when submitting.
type Lead struct {
	Campaigns []string `mapstructure:"campaigns"`
	Platforms []string `mapstructure:"platforms"`
}

type Batch struct {
	MaxRows        int           `mapstructure:"maxRows"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	ReportTTL      time.Duration `mapstructure:"reportTtl"`
}

type RedisClient struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisClient) Enabled() bool {
	return r.Host != ""
}

func (r RedisClient) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

type Logger struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

var defaultConfigPaths = []string{".", "../", "../../"}

// envBindings maps configuration keys to the environment variables that override them,
// highest precedence first.
var envBindings = map[string][]string{
	"salesforce.clientId":     {"CLIENT_ID"},
	"salesforce.clientSecret": {"CLIENT_SECRET"},
	"salesforce.username":     {"SALESFORCE_USERNAME", "USERNAME"},
	"salesforce.password":     {"SALESFORCE_PASSWORD", "PASSWORD"},
	"salesforce.tokenUrl":     {"TOKEN_URL"},
	"app.port":                {"APP_PORT", "PORT"},
	"app.secretKey":           {"SECRET_KEY"},
	"app.allowedOrigins":      {"ALLOWED_ORIGINS"},
	"lead.campaigns":          {"LEAD_CAMPAIGNS"},
	"lead.platforms":          {"LEAD_PLATFORMS"},
	"batch.maxRows":           {"BATCH_MAX_ROWS"},
	"batch.requestTimeout":    {"BATCH_REQUEST_TIMEOUT"},
	"batch.reportTtl":         {"BATCH_REPORT_TTL"},
	"redisClient.host":        {"REDIS_HOST"},
	"redisClient.port":        {"REDIS_PORT"},
	"redisClient.username":    {"REDIS_USERNAME"},
	"redisClient.password":    {"REDIS_PASSWORD"},
	"redisClient.db":          {"REDIS_DB"},
	"logger.format":           {"LOG_FORMAT"},
	"logger.level":            {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 10001)
	v.SetDefault("app.allowedOrigins", []string{"*"})
	v.SetDefault("lead.campaigns", []string{"PET-Q2-2025", "PET-Summer-2025", "PET-Offers-2025"})
	v.SetDefault("lead.platforms", []string{"TikTok", "Snapchat"})
	v.SetDefault("batch.maxRows", 5000)
	v.SetDefault("batch.requestTimeout", 30*time.Second)
	v.SetDefault("batch.reportTtl", 24*time.Hour)
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.level", "debug")
}

// Load reads config.json (or config-<ENV>.json) from the given directories, applies
// environment overrides and validates the credentials. It returns *model.ConfigError
// when any credential is missing.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = defaultConfigPaths
	}
	name := getConfig()

	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		logger.GetLogger().WithField("config", name).Info("Config file not found, using environment only")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	normalize(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"config":    name,
		"port":      c.App.Port,
		"platforms": c.Lead.Platforms,
		"redis":     c.RedisClient.Enabled(),
	}).Info("Config set up successfully")
	return &c, nil
}

// Validate reports every missing credential at once, named by its environment variable.
func (c *Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"CLIENT_ID", c.Salesforce.ClientID},
		{"CLIENT_SECRET", c.Salesforce.ClientSecret},
		{"USERNAME", c.Salesforce.Username},
		{"PASSWORD", c.Salesforce.Password},
		{"TOKEN_URL", c.Salesforce.TokenURL},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return &model.ConfigError{Missing: missing}
	}
	return nil
}

func normalize(c *Config) {
	c.Lead.Campaigns = trimAll(c.Lead.Campaigns)
	c.Lead.Platforms = trimAll(c.Lead.Platforms)
	c.App.AllowedOrigins = trimAll(c.App.AllowedOrigins)
	if c.App.Port == 0 {
		c.App.Port = 10001
	}
	if c.Batch.MaxRows <= 0 {
		c.Batch.MaxRows = 5000
	}
	if c.Batch.RequestTimeout <= 0 {
		c.Batch.RequestTimeout = 30 * time.Second
	}
	if c.Batch.ReportTTL <= 0 {
		c.Batch.ReportTTL = 24 * time.Hour
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}
