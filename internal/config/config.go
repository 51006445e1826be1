package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Saga     SagaConfig     `yaml:"saga"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type PostgresConfig struct {
	Host    string `yaml:"host" env:"POSTGRES_HOST"`
	Port    string `yaml:"port" env:"POSTGRES_PORT"`
	DbName  string `yaml:"db_name" env:"POSTGRES_DB"`
	User    string `yaml:"user" env:"POSTGRES_USER"`
	Pwd     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	SslMode string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
}

type KafkaConfig struct {
	BrokerList    []string `yaml:"broker_list" env:"KAFKA_BROKERS"`
	ConsumerGroup string   `yaml:"consumer_group" env-default:"order-service"`

	// Topics the order service publishes to.
	OrderEventTopic       string `yaml:"order_event_topic" env-default:"order-events"`
	PaymentRequestTopic   string `yaml:"payment_request_topic" env-default:"payment-requests"`
	ApprovalRequestTopic  string `yaml:"approval_request_topic" env-default:"restaurant-approval-requests"`
	RefundRequestTopic    string `yaml:"refund_request_topic" env-default:"refund-requests"`
	PaymentResponseTopic  string `yaml:"payment_response_topic" env-default:"payment-responses"`
	ApprovalResponseTopic string `yaml:"approval_response_topic" env-default:"restaurant-approval-responses"`
	RefundResponseTopic   string `yaml:"refund_response_topic" env-default:"refund-responses"`
}

type SagaConfig struct {
	// PaymentTimeout is how long an order may stay PENDING before the
	// payment leg fails closed.
	PaymentTimeout time.Duration `yaml:"payment_timeout" env-default:"5m"`
	ReaperInterval time.Duration `yaml:"reaper_interval" env-default:"30s"`
	RelayInterval  time.Duration `yaml:"relay_interval" env-default:"1s"`
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return cfg
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
