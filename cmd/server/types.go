package main

import "time"

type Config struct {
	PostgresConnectionString string        `env:"POSTGRES_CONNECTION_STRING"`
	PostgresSchema           string        `env:"POSTGRES_SCHEMA" envDefault:"public"`
	WhatsAppAccessToken      string        `env:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID    string        `env:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppVerifyToken      string        `env:"WHATSAPP_VERIFY_TOKEN"`
	WhatsAppAPIVersion       string        `env:"WHATSAPP_API_VERSION" envDefault:"v21.0"`
	WhatsAppGraphURL         string        `env:"WHATSAPP_GRAPH_URL" envDefault:"https://graph.facebook.com"`
	OpenAIAPIKey             string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL            string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIChatModel          string        `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIVisionModel        string        `env:"OPENAI_VISION_MODEL" envDefault:"gpt-4o"`
	OpenAITranscriptionModel string        `env:"OPENAI_TRANSCRIPTION_MODEL" envDefault:"whisper-1"`
	TranscriptionLanguage    string        `env:"TRANSCRIPTION_LANGUAGE" envDefault:"pt"`
	ChannelTimeout           time.Duration `env:"CHANNEL_TIMEOUT" envDefault:"10s"`
	AITimeout                time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	RegistrationURL          string        `env:"REGISTRATION_URL"`
	DefaultClientID          string        `env:"DEFAULT_CLIENT_ID"`
	RedisAddr                string        `env:"REDIS_ADDR"`
	RedisPassword            string        `env:"REDIS_PASSWORD"`
	RedisDB                  int           `env:"REDIS_DB" envDefault:"0"`
	RedisTLS                 bool          `env:"REDIS_TLS" envDefault:"false"`
	IdempotencyTTL           time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	ImageWorkers             int           `env:"IMAGE_WORKERS" envDefault:"4"`
	ImageQueueSize           int           `env:"IMAGE_QUEUE_SIZE" envDefault:"100"`
	SendAPIKey               string        `env:"SEND_API_KEY"`
	MetricsNamespace         string        `env:"METRICS_NAMESPACE" envDefault:"finance_assistant"`
	LogLevel                 string        `env:"LOG_LEVEL" envDefault:"info"`
	Port                     string        `env:"FUNCTIONS_CUSTOMHANDLER_PORT" envDefault:"8080"`
	Timezone                 string        `env:"TIMEZONE" envDefault:"America/Sao_Paulo"`
}

// WriteTimeout covers one slow audio message: media download and reply send on the
// channel, transcription and dispatch on the model, plus headroom for the datastore.
func (c Config) WriteTimeout() time.Duration {
	return 2*c.ChannelTimeout + 2*c.AITimeout + 10*time.Second
}

type Webhook struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Contacts         []Contact `json:"contacts"`
	Messages         []Message `json:"messages"`
}

type Contact struct {
	WaID    string  `json:"wa_id"`
	Profile Profile `json:"profile"`
}

type Profile struct {
	Name string `json:"name"`
}

type Message struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text"`
	Audio     *Media `json:"audio"`
	Image     *Media `json:"image"`
}

type Text struct {
	Body string `json:"body"`
}

type Media struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption"`
}

type SendRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Result  any  `json:"result,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
