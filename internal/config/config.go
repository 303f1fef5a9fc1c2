package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	OrderDB    `yaml:"order_db"`
	LogConfig  `yaml:"log_config"`
	Budpay     `yaml:"budpay"`
	SMMPanel   `yaml:"smm_panel"`
	Kafka      `yaml:"kafka"`
	Matcher    `yaml:"matcher"`
	Pricing    `yaml:"pricing"`
	Reconcile  `yaml:"reconcile"`
	Notifier   `yaml:"notifier"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type OrderDB struct {
	Dsn           string `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationPath string `yaml:"migration_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type Budpay struct {
	BaseURL   string        `yaml:"base_url" env-default:"https://api.budpay.com/api/v2"`
	SecretKey string        `yaml:"secret_key" env:"BUDPAY_SECRET_KEY"`
	Timeout   time.Duration `yaml:"timeout" env-default:"30s"`
}

type SMMPanel struct {
	APIUrl  string        `yaml:"api_url" env:"SMM_PANEL_API_URL"`
	APIKey  string        `yaml:"api_key" env:"SMM_PANEL_API_KEY"`
	Slug    string        `yaml:"slug" env-default:"smmstone"`
	Name    string        `yaml:"name" env-default:"SMMStone"`
	Timeout time.Duration `yaml:"timeout" env-default:"30s"`
}

type Kafka struct {
	Host       string `yaml:"host" env:"KAFKA_HOST"`
	Port       string `yaml:"port" env:"KAFKA_PORT"`
	OrderTopic string `yaml:"order_topic" env-default:"order-events"`
}

// Matcher carries every tunable of the payment matching tiers. It is
// passed to the matcher at construction time; nothing reads rates or
// fees from globals at call sites.
type Matcher struct {
	AmountTolerance float64 `yaml:"amount_tolerance" env-default:"1"`
	TransferFee     float64 `yaml:"transfer_fee" env-default:"50"`
}

type Pricing struct {
	MarkupPercentage float64 `yaml:"markup_percentage" env-default:"30"`
	UsdtNgnRate      float64 `yaml:"usdt_ngn_rate" env-default:"1612"`
	PriceTolerance   float64 `yaml:"price_tolerance" env-default:"0.05"`
}

type Reconcile struct {
	Interval   time.Duration `yaml:"interval" env-default:"5m"`
	BatchSize  int           `yaml:"batch_size" env-default:"100"`
	BatchDelay time.Duration `yaml:"batch_delay" env-default:"2s"`
	OrderTTL   time.Duration `yaml:"order_ttl" env-default:"72h"`
}

type Notifier struct {
	PushURL string        `yaml:"push_url" env:"PUSH_GATEWAY_URL"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

func MustLoad() *OrderConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg OrderConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
