package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	AccountSync AccountSync `mapstructure:",squash"`
	SyncRetry   SyncRetry   `mapstructure:",squash"`
	Meta        Platform    `mapstructure:"-"`
	GoogleAds   Platform    `mapstructure:"-"`
	TikTok      Platform    `mapstructure:"-"`
	LinkedIn    Platform    `mapstructure:"-"`
	Pinterest   Platform    `mapstructure:"-"`
	Snapchat    Platform    `mapstructure:"-"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	SecretKey string `mapstructure:"secret_key"`
}

// Platform agrupa a configuração de acesso de uma plataforma de anúncios.
// Com UseFakeData ligado o adapter serve páginas determinísticas locais em
// vez de chamar a API real.
type Platform struct {
	BaseURL     string
	Version     string
	UseFakeData bool
}

// AccountSync controla o ciclo agendado de sincronização de contas
type AccountSync struct {
	CronSchedule      string `mapstructure:"account_sync_cron"`
	LookbackDays      int    `mapstructure:"account_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"account_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"account_sync_enabled"`
	RetentionDays     int    `mapstructure:"account_sync_metrics_retention_days"`
}

// SyncRetry controla a retentativa sob rate limit das chamadas de plataforma
type SyncRetry struct {
	MaxAttempts         int `mapstructure:"sync_retry_max_attempts"`
	InitialDelaySeconds int `mapstructure:"sync_retry_initial_delay_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_USE_FAKE_DATA", false)

	viper.SetDefault("GOOGLEADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLEADS_VERSION", "v17")
	viper.SetDefault("GOOGLEADS_USE_FAKE_DATA", false)

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com")
	viper.SetDefault("TIKTOK_VERSION", "v1.3")
	viper.SetDefault("TIKTOK_USE_FAKE_DATA", false)

	viper.SetDefault("LINKEDIN_BASE_URL", "https://api.linkedin.com")
	viper.SetDefault("LINKEDIN_VERSION", "v2")
	viper.SetDefault("LINKEDIN_USE_FAKE_DATA", false)

	viper.SetDefault("PINTEREST_BASE_URL", "https://api.pinterest.com")
	viper.SetDefault("PINTEREST_VERSION", "v5")
	viper.SetDefault("PINTEREST_USE_FAKE_DATA", false)

	viper.SetDefault("SNAPCHAT_BASE_URL", "https://adsapi.snapchat.com")
	viper.SetDefault("SNAPCHAT_VERSION", "v1")
	viper.SetDefault("SNAPCHAT_USE_FAKE_DATA", false)

	// Defaults para o ciclo de sincronização de contas: todos os dias às 3h,
	// 7 dias de métricas para trás, 3 contas em paralelo, 1 ano de retenção
	viper.SetDefault("ACCOUNT_SYNC_CRON", "0 3 * * *")
	viper.SetDefault("ACCOUNT_SYNC_LOOKBACK_DAYS", 7)
	viper.SetDefault("ACCOUNT_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("ACCOUNT_SYNC_ENABLED", false)
	viper.SetDefault("ACCOUNT_SYNC_METRICS_RETENTION_DAYS", 365)

	viper.SetDefault("SYNC_RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("SYNC_RETRY_INITIAL_DELAY_SECONDS", 1)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// As seções por plataforma compartilham o mesmo formato mas chaves de
	// ambiente próprias; o unmarshal com squash só cobre a primeira
	config.Meta = platformFromEnv("META")
	config.GoogleAds = platformFromEnv("GOOGLEADS")
	config.TikTok = platformFromEnv("TIKTOK")
	config.LinkedIn = platformFromEnv("LINKEDIN")
	config.Pinterest = platformFromEnv("PINTEREST")
	config.Snapchat = platformFromEnv("SNAPCHAT")

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func platformFromEnv(prefix string) Platform {
	return Platform{
		BaseURL:     viper.GetString(prefix + "_BASE_URL"),
		Version:     viper.GetString(prefix + "_VERSION"),
		UseFakeData: viper.GetBool(prefix + "_USE_FAKE_DATA"),
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
