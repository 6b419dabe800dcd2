package config

// Config 配置主体
type Config struct {
	Server                    ServerConfig           `mapstructure:"server"`
	Mongo                     MongoConfig            `mapstructure:"mongo"`
	Redis                     RedisConfig            `mapstructure:"redis"`
	Kafka                     KafkaConfig            `mapstructure:"kafka"`
	KafkaInteractionsConsumer KafkaConsumerBinding   `mapstructure:"kafka_interactions_consumer"`
	KafkaPreferencesConsumer  KafkaConsumerBinding   `mapstructure:"kafka_preferences_consumer"`
	Sentiment                 SentimentConfig        `mapstructure:"sentiment"`
	Recommend                 RecommendConfig        `mapstructure:"recommend"`
	Worker                    WorkerConfig           `mapstructure:"worker"`
	Jobs                      JobsConfig             `mapstructure:"jobs"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaConsumerBinding 单个消费者的主题与消费组绑定
type KafkaConsumerBinding struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// SentimentConfig 外部情感分析服务配置
type SentimentConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

// RecommendConfig 推荐引擎配置
type RecommendConfig struct {
	TopN     int `mapstructure:"top_n"`
	CacheTTL int `mapstructure:"cache_ttl"`
}

// WorkerConfig 后台任务池配置
type WorkerConfig struct {
	MaxConcurrent int64 `mapstructure:"max_concurrent"`
}

// JobsConfig 定时任务配置
type JobsConfig struct {
	TrendingSpec string `mapstructure:"trending_spec"`
}
