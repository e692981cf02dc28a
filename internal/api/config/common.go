package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	DocStore DocStoreConfig `mapstructure:"docstore"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Elastic  ElasticConfig  `mapstructure:"elastic"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档库连接配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// DocStoreConfig 表与二级索引声明
// 声明必须与后端实际建立的索引一致，不一致属于部署期配置错误
type DocStoreConfig struct {
	Tables []TableConfig `mapstructure:"tables"`
}

type TableConfig struct {
	Name    string        `mapstructure:"name"`
	Indexes []IndexConfig `mapstructure:"indexes"`
}

type IndexConfig struct {
	Name         string `mapstructure:"name"`
	PartitionKey string `mapstructure:"partition_key"`
	SortKey      string `mapstructure:"sort_key"`
}

// WorkflowConfig 外部工作流配置
// Targets 将逻辑工作流名映射到后端执行地址
type WorkflowConfig struct {
	Targets          map[string]string `mapstructure:"targets"`
	PollIntervalMs   int               `mapstructure:"poll_interval_ms"`
	TimeoutMs        int               `mapstructure:"timeout_ms"`
	RequestTimeoutMs int               `mapstructure:"request_timeout_ms"`
}

type KafkaConfig struct {
	Enable  bool       `mapstructure:"enable"`
	Brokers []string   `mapstructure:"brokers"`
	Sasl    SaslConfig `mapstructure:"sasl"`
	Topic   string     `mapstructure:"topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Address  string `mapstructure:"address"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Index    string `mapstructure:"index"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Enable         bool   `mapstructure:"enable"`
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	MediaBucket    string `mapstructure:"media_bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}
