package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fuentes de datos soportadas.
const (
	DataSourceMock     = "mock"
	DataSourcePostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Session   SessionConfig
	Table     TableConfig
	Cache     CacheConfig
	AI        AIConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	DataSource  string        // mock | postgres
	MockLatency time.Duration // latencia artificial del origen mock
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig almacén de sesiones, preferencias y notificaciones. Addr vacío = almacenes en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// SessionConfig duración de la sesión persistida.
type SessionConfig struct {
	TTL time.Duration
}

// TableConfig parámetros de las tablas de datos.
type TableConfig struct {
	Locale            string
	DefaultPerPage    int
	AdvisoryThreshold int
	RenderBudget      time.Duration // tiempo máximo de espera de datos antes de mostrar el estado de carga
}

// CacheConfig caché de métricas del dashboard.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AIConfig proveedor de insights. APIKey vacío = insights estáticos.
type AIConfig struct {
	AnthropicAPIKey string
	Model           string
}

// TelemetryConfig trazas OTLP. Endpoint vacío = trazas desactivadas.
type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	// .env se precarga en el entorno del proceso; las variables ya definidas no se sobrescriben
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "palletpro"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			DataSource:  strings.ToLower(getString(v, "DATA_SOURCE", DataSourceMock)),
			MockLatency: getDuration(v, "MOCK_LATENCY", 300*time.Millisecond),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "palletpro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "palletpro"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Session: SessionConfig{
			TTL: getDuration(v, "SESSION_TTL", 24*time.Hour),
		},
		Table: TableConfig{
			Locale:            getString(v, "TABLE_LOCALE", "en"),
			DefaultPerPage:    getInt(v, "TABLE_PER_PAGE", 10),
			AdvisoryThreshold: getInt(v, "TABLE_ADVISORY_THRESHOLD", 1000),
			RenderBudget:      getDuration(v, "TABLE_RENDER_BUDGET", 2*time.Second),
		},
		Cache: CacheConfig{
			Size: getInt(v, "METRICS_CACHE_SIZE", 128),
			TTL:  getDuration(v, "METRICS_CACHE_TTL", time.Minute),
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			Model:           getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getBool(v, "OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.DataSource {
	case DataSourceMock, DataSourcePostgres:
	default:
		return fmt.Errorf("config: DATA_SOURCE inválido %q (mock|postgres)", c.App.DataSource)
	}
	if c.Table.DefaultPerPage < 1 {
		return fmt.Errorf("config: TABLE_PER_PAGE debe ser mayor que cero")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getDuration acepta "300ms", "2s", "24h" o un entero en milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}
