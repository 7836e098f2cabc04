package config

type config struct {
	Server     server     `yaml:"server" mapstructure:"server"`
	Mysql      mysql      `yaml:"mysql" mapstructure:"mysql"`
	Redis      redis      `yaml:"redis" mapstructure:"redis"`
	RabbitMq   rabbitmq   `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio      minio      `yaml:"minio" mapstructure:"minio"`
	Elastic    elastic    `yaml:"elastic" mapstructure:"elastic"`
	Jwt        jwt        `yaml:"jwt" mapstructure:"jwt"`
	Pagination pagination `yaml:"pagination" mapstructure:"pagination"`
	Outbox     outbox     `yaml:"outbox" mapstructure:"outbox"`
	Jaeger     jaeger     `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel   sentinel   `yaml:"sentinel" mapstructure:"sentinel"`
	RateLimit  rateLimit  `yaml:"rate_limit" mapstructure:"rate_limit"`
}

type server struct {
	Addr          string   `yaml:"addr"`
	MaxBodySize   int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	CorsOrigins   []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	SecureCookies bool     `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	TLSCert       string   `yaml:"tls_cert" mapstructure:"tls_cert"`
	TLSKey        string   `yaml:"tls_key" mapstructure:"tls_key"`
	PprofAddr     string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint    string `yaml:"endpoint"`
	AccessKey   string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey   string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL      bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	PublicURL   string `yaml:"public_url" mapstructure:"public_url"`
	ImageBucket string `yaml:"image_bucket" mapstructure:"image_bucket"`
	VideoBucket string `yaml:"video_bucket" mapstructure:"video_bucket"`
}

type elastic struct {
	Addr  string `yaml:"addr"`
	Index string `yaml:"index"`
}

type jwt struct {
	AccessSecret  string `yaml:"access_secret" mapstructure:"access_secret"`
	AccessExpiry  string `yaml:"access_expiry" mapstructure:"access_expiry"`
	RefreshSecret string `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	RefreshExpiry string `yaml:"refresh_expiry" mapstructure:"refresh_expiry"`
}

type pagination struct {
	MaxLimit int `yaml:"max_limit" mapstructure:"max_limit"`
}

type outbox struct {
	Interval   string `yaml:"interval"`
	MaxRetries int    `yaml:"max_retries" mapstructure:"max_retries"`
	BatchSize  int    `yaml:"batch_size" mapstructure:"batch_size"`
}

type jaeger struct {
	Agent       string `yaml:"agent"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

type sentinel struct {
	QPS float64 `yaml:"qps"`
}

type rateLimit struct {
	Window      string `yaml:"window"`
	MaxRequests int64  `yaml:"max_requests" mapstructure:"max_requests"`
}
