package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("foodops_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = AppConfig{
			General: GeneralConfig{
				LogLevel: viper.GetString("general.log_level"),
			},
			HTTPServer: HTTPServerConfig{
				Address: viper.GetString("http_server.address"),
			},
			MQTTClient: MQTTClientConfig{
				Broker:   viper.GetString("mqtt_client.broker"),
				ClientID: viper.GetString("mqtt_client.client_id"),
				Username: viper.GetString("mqtt_client.username"),
				Password: viper.GetString("mqtt_client.password"),
			},
			Postgresql: PostgresqlConfig{
				URL: viper.GetString("database.url"),
				DSN: viper.GetString("database.dsn"),
			},
			Kafka: KafkaConfig{
				Brokers:        viper.GetStringSlice("kafka.brokers"),
				Group:          viper.GetString("kafka.group"),
				SchemaRegistry: viper.GetString("kafka.schema_registry"),
			},
			Redis: RedisConfig{
				Addr:     viper.GetString("redis.addr"),
				Password: viper.GetString("redis.password"),
				DB:       viper.GetInt("redis.db"),
			},
			MailerSend: MailerSendConfig{
				APIKey:    viper.GetString("mailersend.api_key"),
				FromEmail: viper.GetString("mailersend.from_email"),
				FromName:  viper.GetString("mailersend.from_name"),
			},
			FCM: FCMConfig{
				ProjectID:          viper.GetString("fcm.project_id"),
				ServiceAccountPath: viper.GetString("fcm.service_account_path"),
			},
			Notification: NotificationConfig{
				Recipient:            viper.GetString("notification.recipient"),
				RegistrationTemplate: viper.GetString("notification.registration_template"),
			},
			Stats: StatsConfig{
				RefreshSchedule: viper.GetString("stats.refresh_schedule"),
			},
		}
	})

	return configInstance
}

type AppConfig struct {
	General      GeneralConfig
	HTTPServer   HTTPServerConfig
	MQTTClient   MQTTClientConfig
	Kafka        KafkaConfig
	Postgresql   PostgresqlConfig
	Redis        RedisConfig
	MailerSend   MailerSendConfig
	FCM          FCMConfig
	Notification NotificationConfig
	Stats        StatsConfig
}

type GeneralConfig struct {
	LogLevel string
}

type HTTPServerConfig struct {
	Address string
}

type MQTTClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

type KafkaConfig struct {
	Brokers        []string
	Group          string
	SchemaRegistry string
}

type PostgresqlConfig struct {
	URL string
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MailerSendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type FCMConfig struct {
	ProjectID          string
	ServiceAccountPath string
}

type NotificationConfig struct {
	Recipient            string
	RegistrationTemplate string
}

type StatsConfig struct {
	RefreshSchedule string
}
