package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// ThemeBucket is one comment-topic bucket used for theme ranking.
// Declaration order matters: it breaks count ties.
type ThemeBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type SentimentConfig struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

type FeedbackConfig struct {
	StatsInterval time.Duration   `yaml:"statsInterval" validate:"required|min:1"`
	Sentiment     SentimentConfig `yaml:"sentiment"`
	Themes        []ThemeBucket   `yaml:"themes"`
}

type AdminConfig struct {
	Username   string        `yaml:"username" validate:"required"`
	Password   string        `yaml:"password" validate:"required"`
	JWTSecret  string        `yaml:"jwtSecret" validate:"required|minLen:16"`
	SessionTTL time.Duration `yaml:"sessionTTL" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Feedback    FeedbackConfig `yaml:"feedback"`
	Admin       AdminConfig    `yaml:"admin"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
