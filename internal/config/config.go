package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/access-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Map    MapConfig    `yaml:"map" mapstructure:"map"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the input datasets and names their attributes.
type DataConfig struct {
	Catchment   string          `yaml:"catchment" mapstructure:"catchment" validate:"required"`
	Underserved string          `yaml:"underserved" mapstructure:"underserved" validate:"required"`
	Summary     string          `yaml:"summary" mapstructure:"summary" validate:"required"`
	TopN        int             `yaml:"top_n" mapstructure:"top_n" validate:"min=1"`
	Fields      model.FieldMap  `yaml:"fields" mapstructure:"fields"`
	Columns     model.ColumnMap `yaml:"columns" mapstructure:"columns"`
}

// MapConfig holds the initial map viewport handed to the front-end.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat" validate:"gte=-90,lte=90"`
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon" validate:"gte=-180,lte=180"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom" validate:"gte=0,lte=22"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"` // requests/sec, 0 disables
	Burst       int      `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ACCESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	fields := model.DefaultFieldMap()
	columns := model.DefaultColumnMap()
	v.SetDefault("data.catchment", "data/access_industry_catchment.geojson")
	v.SetDefault("data.underserved", "data/access_industry_underserved.geojson")
	v.SetDefault("data.summary", "data/lga_access_metrics.csv")
	v.SetDefault("data.top_n", 10)
	v.SetDefault("data.fields.region", fields.Region)
	v.SetDefault("data.fields.land_use", fields.LandUse)
	v.SetDefault("data.fields.meshblock", fields.Meshblock)
	v.SetDefault("data.fields.stop_count", fields.StopCount)
	v.SetDefault("data.fields.route_count", fields.RouteCount)
	v.SetDefault("data.fields.nearest_distance", fields.NearestDistance)
	v.SetDefault("data.columns.region", columns.Region)
	v.SetDefault("data.columns.total_area", columns.TotalArea)
	v.SetDefault("data.columns.underserved_area", columns.UnderservedArea)
	v.SetDefault("data.columns.served_pct", columns.ServedPct)
	v.SetDefault("map.center_lat", -37.8136)
	v.SetDefault("map.center_lon", 144.9631)
	v.SetDefault("map.zoom", 9)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given command mode. Every mode
// needs the data section; "serve" also needs a usable port.
func (c *Config) Validate(mode string) error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return eris.Wrap(err, "config: validate")
	}

	var problems []string
	if mode == "serve" && (c.Server.Port < 1 || c.Server.Port > 65535) {
		problems = append(problems, "server.port must be between 1 and 65535")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
