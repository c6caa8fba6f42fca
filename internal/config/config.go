package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/monsTa-b0y/exp-dashboard/internal/logger"
)

// Config represents the application configuration
type Config struct {
	DefaultCategory  string         `mapstructure:"default_category"`
	MoneyReceivedTag string         `mapstructure:"money_received_tag"`
	DateLayout       string         `mapstructure:"date_layout"`
	TopN             int            `mapstructure:"top_n"`
	LogLevel         string         `mapstructure:"log_level"`
	LogFormat        string         `mapstructure:"log_format"`
	Server           ServerConfig   `mapstructure:"server"`
	Categories       []CategoryRule `mapstructure:"categories"`
}

// ServerConfig defines the HTTP host settings
type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// CategoryRule maps a category to the keywords that select it. Rules are
// evaluated in file order and the first matching keyword wins, so the table
// is an array of tables rather than a map.
type CategoryRule struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

const (
	DefaultDateLayout = "2/1/2006"
	DefaultTopN       = 10
)

// LoadConfig loads configuration from file and environment variables. An
// empty path yields the built-in defaults plus any environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("default_category", "Other")
	v.SetDefault("money_received_tag", "Money Received")
	v.SetDefault("date_layout", DefaultDateLayout)
	v.SetDefault("top_n", DefaultTopN)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logger.FormatConsole)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_size", 10<<20)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Categories) == 0 {
		config.Categories = DefaultCategories()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the built-in configuration without touching the filesystem
// or environment.
func Default() *Config {
	return &Config{
		DefaultCategory:  "Other",
		MoneyReceivedTag: "Money Received",
		DateLayout:       DefaultDateLayout,
		TopN:             DefaultTopN,
		LogLevel:         "info",
		LogFormat:        logger.FormatConsole,
		Server:           ServerConfig{Addr: ":8080", MaxUploadSize: 10 << 20},
		Categories:       DefaultCategories(),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DefaultCategory) == "" {
		problems = append(problems, "default_category cannot be empty")
	}
	if c.TopN < 1 {
		problems = append(problems, fmt.Sprintf("invalid top_n %d: must be at least 1", c.TopN))
	}
	if !logger.ValidFormat(c.LogFormat) {
		problems = append(problems, fmt.Sprintf("invalid log_format %q: must be %q or %q", c.LogFormat, logger.FormatConsole, logger.FormatJSON))
	}
	if c.Server.MaxUploadSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid server.max_upload_size %d: must be positive", c.Server.MaxUploadSize))
	}

	seen := make(map[string]bool)
	for i, rule := range c.Categories {
		name := strings.TrimSpace(rule.Name)
		switch {
		case name == "":
			problems = append(problems, fmt.Sprintf("categories[%d]: name cannot be empty", i))
		case name == c.DefaultCategory:
			problems = append(problems, fmt.Sprintf("categories[%d]: %q is reserved for uncategorized rows", i, name))
		case seen[name]:
			problems = append(problems, fmt.Sprintf("categories[%d]: duplicate category %q", i, name))
		}
		seen[name] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// DefaultCategories returns the stock keyword table.
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Name: "Food and Dining", Keywords: []string{
			"swiggy", "zomato", "ubereats", "heisetasse", "restaurant", "hotel", "food", "dining",
			"taco bell", "domi", "bakers", "coffee", "leons", "hang out", "third wave", "churrolto",
			"ushodaya", "tibbs", "koi", "ding dong", "cara cara",
		}},
		{Name: "Groceries", Keywords: []string{
			"grocery", "bigbasket", "grofers", "supermarket", "milk", "vegetables", "blinkit",
			"zepto", "kpn", "ushodaya",
		}},
		{Name: "Transfers", Keywords: []string{"money sent"}},
		{Name: "Shopping", Keywords: []string{
			"amazon", "flipkart", "myntra", "shopping", "clothing", "electronics",
			"diverse retails", "westside", "techmash",
		}},
		{Name: "Travel & Stay", Keywords: []string{"uber", "ola", "rapido", "hyderabad metro", "brevistay"}},
		{Name: "Entertainment", Keywords: []string{
			"netflix", "prime", "hotstar", "movie", "cinema", "subscription", "apple media", "spotify",
		}},
		{Name: "Fuel", Keywords: []string{"fuel", "petrol"}},
		{Name: "Loan", Keywords: []string{"vatturi paritosh"}},
		{Name: "Investments/ Savings", Keywords: []string{"icclgroww"}},
		{Name: "Money Received", Keywords: []string{"received from"}},
	}
}
