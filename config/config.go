package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	UserService   UserServiceConfig
	HttpClient    HttpClientConfig
	VNPay         VNPayConfig
	Booking       BookingConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"http_server_port" default:"8081"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"db_host" default:"localhost"`
	Port     string `envconfig:"db_port" default:"5432"`
	Username string `envconfig:"db_username" default:"postgres"`
	Password string `envconfig:"db_password" default:"postgres"`
	Name     string `envconfig:"db_name" default:"appointment"`
	SSLMode  string `envconfig:"db_ssl_mode" default:"disable"`
	MaxConns int    `envconfig:"db_max_conns" default:"20"`
	MaxIdle  int    `envconfig:"db_max_idle" default:"5"`
}

type RedisConfig struct {
	Host     string `envconfig:"redis_host" default:"localhost"`
	Port     string `envconfig:"redis_port" default:"6379"`
	Password string `envconfig:"redis_password" default:""`
	DB       int    `envconfig:"redis_db" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"amqp_host" default:"localhost"`
	Port     string `envconfig:"amqp_port" default:"5672"`
	Username string `envconfig:"amqp_username" default:"guest"`
	Password string `envconfig:"amqp_password" default:"guest"`
}

type UserServiceConfig struct {
	Host string `envconfig:"user_service_host" default:"localhost"`
	Port string `envconfig:"user_service_port" default:"8080"`
}

type HttpClientConfig struct {
	Type                string  `envconfig:"http_client_type" default:"consecutive"`
	Timeout             int     `envconfig:"http_client_timeout" default:"10"`
	ConsecutiveFailures int64   `envconfig:"http_client_consecutive_failures" default:"5"`
	ErrorRate           float64 `envconfig:"http_client_error_rate" default:"0.1"`
	MinSamples          int64   `envconfig:"http_client_min_samples" default:"10"`
}

type VNPayConfig struct {
	Version    string `envconfig:"vnpay_version" default:"2.1.0"`
	TmnCode    string `envconfig:"vnpay_tmn_code"`
	SecretKey  string `envconfig:"vnpay_secret_key"`
	PaymentURL string `envconfig:"vnpay_payment_url" default:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	ReturnURL  string `envconfig:"vnpay_return_url"`
}

type BookingConfig struct {
	CancellationLeadHours int `envconfig:"booking_cancellation_lead_hours" default:"2"`
	PaymentExpiryMinutes  int `envconfig:"booking_payment_expiry_minutes" default:"30"`
}

func InitConfig() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("error process config: %v", err)
	}
	return &cfg
}
