package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	LLM        LLMConfig
	Auth       AuthConfig
	Logger     LoggerConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LLMConfig struct {
	ServerURL   string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

type AuthConfig struct {
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// ValidationConfig carries every numeric limit the validator enforces.
// Limits are injected at construction so the validator stays pure and
// testable with varied bounds.
type ValidationConfig struct {
	MinTitleLength        int
	MaxTitleLength        int
	MaxDescriptionLength  int
	MinQuestionsPerQuiz   int
	MaxQuestionsPerQuiz   int
	MaxQuestionLength     int
	MaxExplanationLength  int
	MinOptionsPerQuestion int
	MaxOptionsPerQuestion int
	MaxOptionLength       int
	MinPoints             int
	MaxPoints             int
	MaxTimeLimitMinutes   int
	MaxTags               int
	MaxTagLength          int
	DefaultLocale         string
}

// DefaultValidation returns the limits used when the config file leaves the
// validation section out.
func DefaultValidation() ValidationConfig {
	return ValidationConfig{
		MinTitleLength:        3,
		MaxTitleLength:        255,
		MaxDescriptionLength:  1000,
		MinQuestionsPerQuiz:   1,
		MaxQuestionsPerQuiz:   100,
		MaxQuestionLength:     1000,
		MaxExplanationLength:  500,
		MinOptionsPerQuestion: 2,
		MaxOptionsPerQuestion: 6,
		MaxOptionLength:       200,
		MinPoints:             1,
		MaxPoints:             10,
		MaxTimeLimitMinutes:   480,
		MaxTags:               10,
		MaxTagLength:          50,
		DefaultLocale:         "th",
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, env and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			ServerURL:   viper.GetString("llm.server_url"),
			Model:       viper.GetString("llm.model"),
			Timeout:     viper.GetDuration("llm.timeout") * time.Second,
			Temperature: viper.GetFloat64("llm.temperature"),
		},
		Auth: AuthConfig{
			JWTSecret:          viper.GetString("auth.jwt_secret"),
			AccessTokenTTL:     viper.GetDuration("auth.access_token_ttl") * time.Minute,
			RefreshTokenTTL:    viper.GetDuration("auth.refresh_token_ttl") * time.Minute,
			GoogleClientID:     viper.GetString("auth.google.client_id"),
			GoogleClientSecret: viper.GetString("auth.google.client_secret"),
			GoogleRedirectURL:  viper.GetString("auth.google.redirect_url"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Validation: ValidationConfig{
			MinTitleLength:        viper.GetInt("validation.min_title_length"),
			MaxTitleLength:        viper.GetInt("validation.max_title_length"),
			MaxDescriptionLength:  viper.GetInt("validation.max_description_length"),
			MinQuestionsPerQuiz:   viper.GetInt("validation.min_questions_per_quiz"),
			MaxQuestionsPerQuiz:   viper.GetInt("validation.max_questions_per_quiz"),
			MaxQuestionLength:     viper.GetInt("validation.max_question_length"),
			MaxExplanationLength:  viper.GetInt("validation.max_explanation_length"),
			MinOptionsPerQuestion: viper.GetInt("validation.min_options_per_question"),
			MaxOptionsPerQuestion: viper.GetInt("validation.max_options_per_question"),
			MaxOptionLength:       viper.GetInt("validation.max_option_length"),
			MinPoints:             viper.GetInt("validation.min_points"),
			MaxPoints:             viper.GetInt("validation.max_points"),
			MaxTimeLimitMinutes:   viper.GetInt("validation.max_time_limit_minutes"),
			MaxTags:               viper.GetInt("validation.max_tags"),
			MaxTagLength:          viper.GetInt("validation.max_tag_length"),
			DefaultLocale:         viper.GetString("validation.default_locale"),
		},
	}

	// Secrets come from the environment in deployed setups
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if dsn := os.Getenv("LLM_SERVER"); dsn != "" {
		config.LLM.ServerURL = dsn
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("llm.server_url", "http://localhost:11434")
	viper.SetDefault("llm.model", "llama3")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("auth.access_token_ttl", 15)
	viper.SetDefault("auth.refresh_token_ttl", 10080)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	def := DefaultValidation()
	viper.SetDefault("validation.min_title_length", def.MinTitleLength)
	viper.SetDefault("validation.max_title_length", def.MaxTitleLength)
	viper.SetDefault("validation.max_description_length", def.MaxDescriptionLength)
	viper.SetDefault("validation.min_questions_per_quiz", def.MinQuestionsPerQuiz)
	viper.SetDefault("validation.max_questions_per_quiz", def.MaxQuestionsPerQuiz)
	viper.SetDefault("validation.max_question_length", def.MaxQuestionLength)
	viper.SetDefault("validation.max_explanation_length", def.MaxExplanationLength)
	viper.SetDefault("validation.min_options_per_question", def.MinOptionsPerQuestion)
	viper.SetDefault("validation.max_options_per_question", def.MaxOptionsPerQuestion)
	viper.SetDefault("validation.max_option_length", def.MaxOptionLength)
	viper.SetDefault("validation.min_points", def.MinPoints)
	viper.SetDefault("validation.max_points", def.MaxPoints)
	viper.SetDefault("validation.max_time_limit_minutes", def.MaxTimeLimitMinutes)
	viper.SetDefault("validation.max_tags", def.MaxTags)
	viper.SetDefault("validation.max_tag_length", def.MaxTagLength)
	viper.SetDefault("validation.default_locale", def.DefaultLocale)
}

// GetDSN renders the Oracle connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
