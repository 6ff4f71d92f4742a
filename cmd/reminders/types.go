package main

import "time"

type Config struct {
	PostgresConnectionString string        `env:"POSTGRES_CONNECTION_STRING"`
	PostgresSchema           string        `env:"POSTGRES_SCHEMA" envDefault:"public"`
	WhatsAppAccessToken      string        `env:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID    string        `env:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppAPIVersion       string        `env:"WHATSAPP_API_VERSION" envDefault:"v21.0"`
	WhatsAppGraphURL         string        `env:"WHATSAPP_GRAPH_URL" envDefault:"https://graph.facebook.com"`
	ChannelTimeout           time.Duration `env:"CHANNEL_TIMEOUT" envDefault:"10s"`
	RegistrationURL          string        `env:"REGISTRATION_URL"`
	MetricsNamespace         string        `env:"METRICS_NAMESPACE" envDefault:"finance_assistant"`
	LogLevel                 string        `env:"LOG_LEVEL" envDefault:"info"`
	ReminderSchedule         string        `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
	Timezone                 string        `env:"TIMEZONE" envDefault:"America/Sao_Paulo"`
}
