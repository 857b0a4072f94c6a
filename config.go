package resilienceplanner

import "time"

type ModelConfig struct {
	Backend        string  `env:"MODEL_BACKEND,default=gemini"`
	GeminiAPIKey   string  `env:"GEMINI_API_KEY,default="`
	GeminiModelID  string  `env:"GEMINI_MODEL_ID,default=gemini-2.5-flash"`
	OllamaEndpoint string  `env:"OLLAMA_ENDPOINT,default=http://localhost:11434"`
	OllamaModelID  string  `env:"OLLAMA_MODEL_ID,default=llama3.1"`
	BedrockModelID string  `env:"BEDROCK_MODEL_ID,default=us.anthropic.claude-3-7-sonnet-20250219-v1:0"`
	MaxTokens      int32   `env:"MAX_TOKENS,default=2048"`
	Temperature    float32 `env:"TEMPERATURE,default=0.4"`
	TopP           float32 `env:"TOP_P,default=0.9"`
}

type PlannerConfig struct {
	WeatherEndpoint string        `env:"WEATHER_ENDPOINT,default=https://api.open-meteo.com/v1/forecast"`
	WeatherTimeout  time.Duration `env:"WEATHER_TIMEOUT,default=8s"`
	MaxPlanChars    int           `env:"MAX_PLAN_CHARS_FOR_CHAT,default=12000"`
	ActionLogPath   string        `env:"ACTION_LOG_PATH,default="`
}

type ServerConfig struct {
	ListenAddr      string `env:"LISTEN_ADDR,default=:8080"`
	ArchiveDir      string `env:"PLAN_ARCHIVE_DIR,default="`
	ArchiveS3Bucket string `env:"PLAN_ARCHIVE_S3_BUCKET,default="`
	ArchiveS3Prefix string `env:"PLAN_ARCHIVE_S3_PREFIX,default=plans/"`
	ShareWebhookURL string `env:"SHARE_WEBHOOK_URL,default="`
	ShareChannel    string `env:"SHARE_CHANNEL,default=#farm-plans"`
}
