package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Mailgun  MailgunConfig  `mapstructure:"mailgun"`
	Chuanx   ChuanxConfig   `mapstructure:"chuanx"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Pod      PodConfig      `mapstructure:"pod"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// AuthConfig points at the Keycloak realm issuer this deployment trusts
// for bearer-token tenant resolution. Empty KeycloakBaseURL disables
// verification, for deployments where auth is enforced upstream.
type AuthConfig struct {
	KeycloakBaseURL string `mapstructure:"keycloak_base_url"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Name          string `mapstructure:"name"`
	MaxConnection int    `mapstructure:"max_connection"`
	MinConnection int    `mapstructure:"min_connection"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" dbname=" + d.Name +
		" user=" + d.User +
		" password=" + d.Password +
		" sslmode=disable"
}

type RedisConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Auth              string `mapstructure:"auth"`
	Database          int    `mapstructure:"database"`
	MaxSize           int    `mapstructure:"max_size"`
	MinIdle           int    `mapstructure:"min_idle"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"` // seconds
}

// Addr returns the host:port pair go-redis expects.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RabbitMQConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	MaxConnection     int    `mapstructure:"max_connection"`
	MinConnection     int    `mapstructure:"min_connection"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"` // seconds
}

// URL returns the amqp091 dial URL.
func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}

type MailgunConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type ChuanxConfig struct {
	AppKey    string `mapstructure:"app_key"`
	AppSecret string `mapstructure:"app_secret"`
	AppCode   string `mapstructure:"app_code"`
}

// UpstreamConfig addresses the identity-profile and tenant-mapping RPC
// services this module consumes as external collaborators.
type UpstreamConfig struct {
	UserServerHost  string `mapstructure:"user_server_host"`
	UserServerPort  int    `mapstructure:"user_server_port"`
	OAuthServerHost string `mapstructure:"oauth_server_host"`
	OAuthServerPort int    `mapstructure:"oauth_server_port"`
}

func (u UpstreamConfig) UserServerAddr() string {
	return fmt.Sprintf("%s:%d", u.UserServerHost, u.UserServerPort)
}

func (u UpstreamConfig) OAuthServerAddr() string {
	return fmt.Sprintf("%s:%d", u.OAuthServerHost, u.OAuthServerPort)
}

// PodConfig identifies this process within its deployment, used by the
// cache directory's stored address and by pod fan-out to exclude itself.
type PodConfig struct {
	IP             string `mapstructure:"ip"`
	Namespace      string `mapstructure:"namespace"`
	DeploymentName string `mapstructure:"deployment_name"`
}

// WorkerConfig sizes the fixed worker pool seeded at startup (spec §5:
// "number is configurable, not load-derived").
type WorkerConfig struct {
	SingleNotifyCount int `mapstructure:"single_notify_count"`
	BatchNotifyCount  int `mapstructure:"batch_notify_count"`
	Retries           int `mapstructure:"retries"` // -1 = infinite
}

type TelemetryConfig struct {
	LokiURL string `mapstructure:"loki_url"`
	OTLPURL string `mapstructure:"otlp_url"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables override file values.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "9090")
	v.SetDefault("server.name", "notify-core")
	v.SetDefault("server.env", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "notify")
	v.SetDefault("database.max_connection", 100)
	v.SetDefault("database.min_connection", 5)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_size", 100)
	v.SetDefault("redis.min_idle", 5)
	v.SetDefault("redis.connection_timeout", 600)

	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "user")
	v.SetDefault("rabbitmq.password", "password")
	v.SetDefault("rabbitmq.max_connection", 100)
	v.SetDefault("rabbitmq.min_connection", 5)
	v.SetDefault("rabbitmq.connection_timeout", 600)

	v.SetDefault("upstream.user_server_host", "localhost")
	v.SetDefault("upstream.user_server_port", 9091)
	v.SetDefault("upstream.oauth_server_host", "localhost")
	v.SetDefault("upstream.oauth_server_port", 9092)

	v.SetDefault("auth.keycloak_base_url", "")

	v.SetDefault("pod.ip", "127.0.0.1")

	v.SetDefault("worker.single_notify_count", 10)
	v.SetDefault("worker.batch_notify_count", 2)
	v.SetDefault("worker.retries", 5)

	// Environment variables, bound with the exact names spec §6 enumerates.
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.host", "SERVICE_HOST")
	v.BindEnv("server.port", "SERVICE_PORT")
	v.BindEnv("server.name", "SERVICE_NAME", "HOSTNAME")

	v.BindEnv("telemetry.loki_url", "LOKI_URL")
	v.BindEnv("telemetry.otlp_url", "OTLP_URL")

	v.BindEnv("database.host", "NOTIFY_DB_HOST")
	v.BindEnv("database.port", "NOTIFY_DB_PORT")
	v.BindEnv("database.user", "NOTIFY_DB_USER")
	v.BindEnv("database.password", "NOTIFY_DB_PASSWORD")
	v.BindEnv("database.name", "NOTIFY_DB_NAME")
	v.BindEnv("database.max_connection", "NOTIFY_DB_MAX_CONNECTION")
	v.BindEnv("database.min_connection", "NOTIFY_DB_MIN_CONNECTION")

	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.auth", "REDIS_AUTH")
	v.BindEnv("redis.database", "REDIS_DATABASE")
	v.BindEnv("redis.max_size", "REDIS_MAX_SIZE")
	v.BindEnv("redis.min_idle", "REDIS_MIN_IDLE")
	v.BindEnv("redis.connection_timeout", "REDIS_CONNECTION_TIMEOUT")

	v.BindEnv("rabbitmq.host", "RABBITMQ_HOST")
	v.BindEnv("rabbitmq.port", "RABBITMQ_PORT")
	v.BindEnv("rabbitmq.user", "RABBITMQ_USER")
	v.BindEnv("rabbitmq.password", "RABBITMQ_PASSWORD")
	v.BindEnv("rabbitmq.max_connection", "RABBITMQ_MAX_CONNECTION")
	v.BindEnv("rabbitmq.min_connection", "RABBITMQ_MIN_CONNECTION")
	v.BindEnv("rabbitmq.connection_timeout", "RABBITMQ_CONNECTION_TIMEOUT")

	v.BindEnv("mailgun.api_key", "MAILGUN_API_KEY")

	v.BindEnv("chuanx.app_key", "CHUANX_APPKEY")
	v.BindEnv("chuanx.app_secret", "CHUANX_APPSECRET")
	v.BindEnv("chuanx.app_code", "CHUANX_APPCODE")

	v.BindEnv("upstream.user_server_host", "USER_SERVER_HOST")
	v.BindEnv("upstream.user_server_port", "USER_SERVER_PORT")
	v.BindEnv("upstream.oauth_server_host", "OAUTH_SERVER_HOST")
	v.BindEnv("upstream.oauth_server_port", "OAUTH_SERVER_PORT")

	v.BindEnv("pod.ip", "POD_IP")
	v.BindEnv("pod.namespace", "POD_NAMESPACE")
	v.BindEnv("pod.deployment_name", "DEPLOYMENT_NAME")

	// Optional config file, never required.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
