package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Media     MediaConfig     `mapstructure:"media"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Mention   MentionConfig   `mapstructure:"mention"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	TempBucket       string `mapstructure:"temp_bucket"`
}

type LLMConfig struct {
	URL         string  `mapstructure:"url"`
	Model       string  `mapstructure:"model"`
	ApiKey      string  `mapstructure:"api_key"`
	PromptPath  string  `mapstructure:"prompt_path"`
	Temperature float64 `mapstructure:"temperature"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	MediaSecret string `mapstructure:"media_secret"`
}

// MediaConfig 媒体签名与预取配置
type MediaConfig struct {
	// DefaultTTLSeconds 签名URL默认有效期，秒
	DefaultTTLSeconds int `mapstructure:"default_ttl_seconds"`
	// PrefetchTTLFactor 预取时TTL放大倍数，容忍切换时的缓冲延迟
	PrefetchTTLFactor int `mapstructure:"prefetch_ttl_factor"`
	// PrefetchThreshold 播放进度达到该百分比后触发预取
	PrefetchThreshold float64 `mapstructure:"prefetch_threshold"`
	// Regions CDN区域偏好列表，有序
	Regions []string `mapstructure:"regions"`
	// FallbackBaseURL 后端存储不可用时合成资源的基础URL
	FallbackBaseURL string `mapstructure:"fallback_base_url"`
}

// MessagingConfig 消息投递阶段延迟配置（毫秒）
type MessagingConfig struct {
	SentDelayMs      int `mapstructure:"sent_delay_ms"`
	DeliveredDelayMs int `mapstructure:"delivered_delay_ms"`
	ReadDelayMs      int `mapstructure:"read_delay_ms"`
}

// MentionConfig @提及解析配置
type MentionConfig struct {
	// AmbiguityPolicy 多个花名册成员命中同一token时的策略: first / skip
	AmbiguityPolicy string `mapstructure:"ambiguity_policy"`
	// SnippetLength 通知中携带的上下文片段长度（rune）
	SnippetLength int `mapstructure:"snippet_length"`
}
