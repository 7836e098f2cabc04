package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init loads .env (if any), then config.yml, then TUBE_* environment overrides.
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("tube")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and environment: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.MaxBodySize = viper.GetInt("server.max_body_size")
	ConfigInfo.Server.CorsOrigins = viper.GetStringSlice("server.cors_origins")
	ConfigInfo.Server.SecureCookies = viper.GetBool("server.secure_cookies")
	ConfigInfo.Server.TLSCert = viper.GetString("server.tls_cert")
	ConfigInfo.Server.TLSKey = viper.GetString("server.tls_key")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Params = viper.GetString("mysql.params")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.PublicURL = viper.GetString("minio.public_url")
	ConfigInfo.Minio.ImageBucket = viper.GetString("minio.image_bucket")
	ConfigInfo.Minio.VideoBucket = viper.GetString("minio.video_bucket")

	ConfigInfo.Elastic.Addr = viper.GetString("elastic.addr")
	ConfigInfo.Elastic.Index = viper.GetString("elastic.index")

	ConfigInfo.Jwt.AccessSecret = viper.GetString("jwt.access_secret")
	ConfigInfo.Jwt.AccessExpiry = viper.GetString("jwt.access_expiry")
	ConfigInfo.Jwt.RefreshSecret = viper.GetString("jwt.refresh_secret")
	ConfigInfo.Jwt.RefreshExpiry = viper.GetString("jwt.refresh_expiry")

	ConfigInfo.Pagination.MaxLimit = viper.GetInt("pagination.max_limit")

	ConfigInfo.Outbox.Interval = viper.GetString("outbox.interval")
	ConfigInfo.Outbox.MaxRetries = viper.GetInt("outbox.max_retries")
	ConfigInfo.Outbox.BatchSize = viper.GetInt("outbox.batch_size")

	ConfigInfo.Jaeger.Agent = viper.GetString("jaeger.agent")
	ConfigInfo.Jaeger.ServiceName = viper.GetString("jaeger.service_name")

	ConfigInfo.Sentinel.QPS = viper.GetFloat64("sentinel.qps")

	ConfigInfo.RateLimit.Window = viper.GetString("rate_limit.window")
	ConfigInfo.RateLimit.MaxRequests = viper.GetInt64("rate_limit.max_requests")

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.RabbitMq.Addr == "" {
		logrus.Warn("No rabbitmq address configured, media cleanup runs in-process")
	}
	if ConfigInfo.Elastic.Addr == "" {
		logrus.Warn("No elastic address configured, video search falls back to SQL")
	}
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8000")
	viper.SetDefault("server.max_body_size", 512*1024*1024)
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("server.secure_cookies", true)
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.database", "tube-and-fuss")
	viper.SetDefault("minio.image_bucket", "picture")
	viper.SetDefault("minio.video_bucket", "video")
	viper.SetDefault("elastic.index", "videos")
	viper.SetDefault("jwt.access_expiry", "24h")
	viper.SetDefault("jwt.refresh_expiry", "240h")
	viper.SetDefault("pagination.max_limit", 100)
	viper.SetDefault("outbox.interval", "10s")
	viper.SetDefault("outbox.max_retries", 5)
	viper.SetDefault("outbox.batch_size", 50)
	viper.SetDefault("jaeger.service_name", "tube-api")
	viper.SetDefault("sentinel.qps", 500)
	viper.SetDefault("rate_limit.window", "1m")
	viper.SetDefault("rate_limit.max_requests", 300)
}

// Duration parses a configured duration, falling back when empty or malformed.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// MysqlDSN builds the gorm/mysql DSN from ConfigInfo.
func MysqlDSN() string {
	params := ConfigInfo.Mysql.Params
	if params == "" {
		params = "parseTime=True&loc=Local"
	}
	return ConfigInfo.Mysql.Username + ":" + ConfigInfo.Mysql.Password +
		"@tcp(" + ConfigInfo.Mysql.Addr + ")/" + ConfigInfo.Mysql.Database +
		"?charset=" + ConfigInfo.Mysql.Charset + "&" + params
}

// RabbitURL builds the amqp URL, or "" when no broker is configured.
func RabbitURL() string {
	mq := ConfigInfo.RabbitMq
	if mq.Addr == "" {
		return ""
	}
	return "amqp://" + mq.Username + ":" + mq.Password + "@" + mq.Addr + "/"
}
