package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	OSM        DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Provider   ProviderConfig
	Safety     SafetyConfig
	Navigation NavigationConfig
	Announcer  AnnouncerConfig
	GPS        GPSConfig
	Auth       AuthConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	FeatureTTL time.Duration
}

type LogConfig struct {
	Level string
}

// ProviderConfig - источник объектов карты: overpass или postgis (planet_osm)
type ProviderConfig struct {
	Kind                string
	OverpassURL         string
	OverpassTimeout     time.Duration
	OverpassMaxParallel int
}

type SafetyConfig struct {
	SearchRadius    float64
	ProviderTimeout time.Duration
	RouteSegments   int
	Timezone        string
}

type NavigationConfig struct {
	DistanceThreshold  float64
	AnnounceInterval   time.Duration
	ArrivalThreshold   float64
	SessionIdleTimeout time.Duration
	SweepSchedule      string
}

type AnnouncerConfig struct {
	QueueSize     int
	StreamEnabled bool
}

type GPSConfig struct {
	DefaultLatitude  float64
	DefaultLongitude float64
	BLERetention     time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	ConsumerName      string
	StreamReadTimeout time.Duration
	BatchSize         int
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен, переменные окружения читаются через AutomaticEnv
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: loadDatabase("DB"),
		OSM:      loadDatabase("OSM_DB"),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			FeatureTTL: time.Duration(viper.GetInt("FEATURE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Provider: ProviderConfig{
			Kind:                strings.ToLower(viper.GetString("FEATURE_PROVIDER")),
			OverpassURL:         viper.GetString("OVERPASS_URL"),
			OverpassTimeout:     time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			OverpassMaxParallel: viper.GetInt("OVERPASS_MAX_PARALLEL"),
		},
		Safety: SafetyConfig{
			SearchRadius:    viper.GetFloat64("SAFETY_SEARCH_RADIUS"),
			ProviderTimeout: time.Duration(viper.GetInt("SAFETY_PROVIDER_TIMEOUT")) * time.Second,
			RouteSegments:   viper.GetInt("SAFETY_ROUTE_SEGMENTS"),
			Timezone:        viper.GetString("SAFETY_TIMEZONE"),
		},
		Navigation: NavigationConfig{
			DistanceThreshold:  viper.GetFloat64("NAV_DISTANCE_THRESHOLD"),
			AnnounceInterval:   time.Duration(viper.GetInt("NAV_ANNOUNCE_INTERVAL")) * time.Second,
			ArrivalThreshold:   viper.GetFloat64("NAV_ARRIVAL_THRESHOLD"),
			SessionIdleTimeout: time.Duration(viper.GetInt("NAV_SESSION_IDLE_TIMEOUT")) * time.Second,
			SweepSchedule:      viper.GetString("NAV_SWEEP_SCHEDULE"),
		},
		Announcer: AnnouncerConfig{
			QueueSize:     viper.GetInt("ANNOUNCER_QUEUE_SIZE"),
			StreamEnabled: viper.GetBool("ANNOUNCER_STREAM_ENABLED"),
		},
		GPS: GPSConfig{
			DefaultLatitude:  viper.GetFloat64("DEFAULT_LATITUDE"),
			DefaultLongitude: viper.GetFloat64("DEFAULT_LONGITUDE"),
			BLERetention:     time.Duration(viper.GetInt("GPS_BLE_RETENTION")) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			ConsumerName:      viper.GetString("WORKER_CONSUMER_NAME"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         viper.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

func loadDatabase(prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:            viper.GetString(prefix + "_HOST"),
		Port:            viper.GetInt(prefix + "_PORT"),
		User:            viper.GetString(prefix + "_USER"),
		Password:        viper.GetString(prefix + "_PASSWORD"),
		DBName:          viper.GetString(prefix + "_NAME"),
		SSLMode:         viper.GetString(prefix + "_SSLMODE"),
		MaxConns:        viper.GetInt(prefix + "_MAX_CONNS"),
		MaxIdleConns:    viper.GetInt(prefix + "_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_LIFETIME")) * time.Second,
		ConnMaxIdleTime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_IDLE_TIME")) * time.Second,
	}
}

// Set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Database.applyDefaults()
	c.OSM.applyDefaults()
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cache.FeatureTTL == 0 {
		c.Cache.FeatureTTL = 10 * time.Minute
	}

	if c.Provider.Kind == "" {
		c.Provider.Kind = "overpass"
	}
	if c.Provider.OverpassURL == "" {
		c.Provider.OverpassURL = "https://overpass-api.de/api/interpreter"
	}
	if c.Provider.OverpassTimeout == 0 {
		c.Provider.OverpassTimeout = 20 * time.Second
	}
	if c.Provider.OverpassMaxParallel == 0 {
		c.Provider.OverpassMaxParallel = 2
	}

	if c.Safety.SearchRadius == 0 {
		c.Safety.SearchRadius = 200
	}
	if c.Safety.ProviderTimeout == 0 {
		c.Safety.ProviderTimeout = 20 * time.Second
	}
	if c.Safety.RouteSegments == 0 {
		c.Safety.RouteSegments = 5
	}

	if c.Navigation.DistanceThreshold == 0 {
		c.Navigation.DistanceThreshold = 10
	}
	if c.Navigation.AnnounceInterval == 0 {
		c.Navigation.AnnounceInterval = 30 * time.Second
	}
	if c.Navigation.ArrivalThreshold == 0 {
		c.Navigation.ArrivalThreshold = 20
	}
	if c.Navigation.SessionIdleTimeout == 0 {
		c.Navigation.SessionIdleTimeout = 2 * time.Hour
	}
	if c.Navigation.SweepSchedule == "" {
		c.Navigation.SweepSchedule = "*/5 * * * *"
	}

	if c.Announcer.QueueSize == 0 {
		c.Announcer.QueueSize = 256
	}

	if c.GPS.DefaultLatitude == 0 && c.GPS.DefaultLongitude == 0 {
		c.GPS.DefaultLatitude = 37.7749
		c.GPS.DefaultLongitude = -122.4194
	}
	if c.GPS.BLERetention == 0 {
		c.GPS.BLERetention = time.Minute
	}

	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "safety-check-workers"
	}
	if c.Worker.ConsumerName == "" {
		c.Worker.ConsumerName = "safety-check-worker-1"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
}

func (d *DatabaseConfig) applyDefaults() {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.MaxConns == 0 {
		d.MaxConns = 10
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 5
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 30 * time.Minute
	}
	if d.ConnMaxIdleTime == 0 {
		d.ConnMaxIdleTime = 5 * time.Minute
	}
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

// Location возвращает часовой пояс для оценки времени суток
func (c *Config) Location() (*time.Location, error) {
	if c.Safety.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Safety.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SAFETY_TIMEZONE %q: %w", c.Safety.Timezone, err)
	}
	return loc, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetOSMDatabaseDSN() string {
	return c.OSM.DSN()
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
