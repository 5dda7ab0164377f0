package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "place_player_starts.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. PLAYERSTART_HOST_URL.
const EnvPrefix = "PLAYERSTART"

// PlacementConfig holds the marker layout settings
type PlacementConfig struct {
	Offsets             [][]float64 `json:"offsets" mapstructure:"offsets"`
	BaseHeight          float64     `json:"baseHeight" mapstructure:"baseHeight"`
	AddIfAlreadyPresent bool        `json:"addIfAlreadyPresent" mapstructure:"addIfAlreadyPresent"`
	MarkerClass         string      `json:"markerClass" mapstructure:"markerClass"`
}

// MemoryHostConfig seeds the in-memory editor used for dry runs
type MemoryHostConfig struct {
	SceneName   string `json:"sceneName" mapstructure:"sceneName"`
	Existing    int    `json:"existing" mapstructure:"existing"`
	NoSubsystem bool   `json:"noSubsystem" mapstructure:"noSubsystem"`
	NoScene     bool   `json:"noScene" mapstructure:"noScene"`
	FailSpawns  []int  `json:"failSpawns" mapstructure:"failSpawns"`
}

// HostConfig selects and configures the editor connection
type HostConfig struct {
	Type    string
	URL     string
	Timeout time.Duration
	Memory  MemoryHostConfig
}

// JournalConfig holds run journal settings
type JournalConfig struct {
	Enabled    bool
	Driver     string
	SQLitePath string
}

// InfluxConfig holds InfluxDB connection settings
type InfluxConfig struct {
	Enabled  bool
	Protocol string
	Host     string
	Port     string
	Token    string
	Org      string
	Bucket   string
}

// URL returns the InfluxDB server address.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./placementlogs")

	viper.SetDefault("placement.offsets", [][]float64{{0, -200, 0}, {0, 200, 0}})
	viper.SetDefault("placement.baseHeight", 100.0)
	viper.SetDefault("placement.addIfAlreadyPresent", false)
	viper.SetDefault("placement.markerClass", "/Script/Engine.PlayerStart")

	viper.SetDefault("host.type", "remote")
	viper.SetDefault("host.url", "http://localhost:30010")
	viper.SetDefault("host.timeout", "10s")
	viper.SetDefault("host.memory.sceneName", "")
	viper.SetDefault("host.memory.existing", 0)
	viper.SetDefault("host.memory.noSubsystem", false)
	viper.SetDefault("host.memory.noScene", false)
	viper.SetDefault("host.memory.failSpawns", []int{})

	viper.SetDefault("journal.enabled", true)
	viper.SetDefault("journal.driver", "sqlite")
	viper.SetDefault("journal.sqlitePath", "./placementlogs/journal.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "playerstart")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "editor-metrics")
	viper.SetDefault("influx.bucket", "editor_tools")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "place-player-starts")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetPlacementConfig returns the marker layout settings.
func GetPlacementConfig() (PlacementConfig, error) {
	var offsets [][]float64
	if err := viper.UnmarshalKey("placement.offsets", &offsets); err != nil {
		return PlacementConfig{}, fmt.Errorf("invalid placement.offsets: %w", err)
	}
	return PlacementConfig{
		Offsets:             offsets,
		BaseHeight:          viper.GetFloat64("placement.baseHeight"),
		AddIfAlreadyPresent: viper.GetBool("placement.addIfAlreadyPresent"),
		MarkerClass:         viper.GetString("placement.markerClass"),
	}, nil
}

// GetHostConfig returns the editor connection settings.
func GetHostConfig() HostConfig {
	return HostConfig{
		Type:    viper.GetString("host.type"),
		URL:     viper.GetString("host.url"),
		Timeout: viper.GetDuration("host.timeout"),
		Memory: MemoryHostConfig{
			SceneName:   viper.GetString("host.memory.sceneName"),
			Existing:    viper.GetInt("host.memory.existing"),
			NoSubsystem: viper.GetBool("host.memory.noSubsystem"),
			NoScene:     viper.GetBool("host.memory.noScene"),
			FailSpawns:  viper.GetIntSlice("host.memory.failSpawns"),
		},
	}
}

// GetJournalConfig returns the run journal settings.
func GetJournalConfig() JournalConfig {
	return JournalConfig{
		Enabled:    viper.GetBool("journal.enabled"),
		Driver:     viper.GetString("journal.driver"),
		SQLitePath: viper.GetString("journal.sqlitePath"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Protocol: viper.GetString("influx.protocol"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// PostgresDSN builds the Postgres connection string from the db section.
func PostgresDSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)
}
