package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DataSourceMock     = "mock"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	DataSource DataSource `mapstructure:",squash"`
	Mock       Mock       `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Dashboard  Dashboard  `mapstructure:",squash"`
	Cache      Cache      `mapstructure:",squash"`
	Refresh    Refresh    `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type DataSource struct {
	Kind string `mapstructure:"data_source"`
}

// Mock configura o gerador de registros sintéticos
type Mock struct {
	Seed           int64         `mapstructure:"mock_seed"`
	Delay          time.Duration `mapstructure:"mock_delay"`
	FailureRate    float64       `mapstructure:"mock_failure_rate"`
	Campaigns      int           `mapstructure:"mock_campaigns"`
	BiggestChanges int           `mapstructure:"mock_biggest_changes"`
	TrendDays      int           `mapstructure:"mock_trend_days"`
	TrendStartRaw  string        `mapstructure:"mock_trend_start"`
	TrendStart     time.Time     `mapstructure:"-"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

// Dashboard define o estado inicial dos filtros e os limites das listas derivadas
type Dashboard struct {
	DefaultStartRaw     string    `mapstructure:"dashboard_default_start"`
	DefaultEndRaw       string    `mapstructure:"dashboard_default_end"`
	DefaultLabel        string    `mapstructure:"dashboard_default_label"`
	DefaultStart        time.Time `mapstructure:"-"`
	DefaultEnd          time.Time `mapstructure:"-"`
	PageSize            int       `mapstructure:"dashboard_page_size"`
	TopN                int       `mapstructure:"dashboard_top_n"`
	BiggestChangesLimit int       `mapstructure:"dashboard_biggest_changes_limit"`
}

type Cache struct {
	NumCounters int64         `mapstructure:"cache_num_counters"`
	MaxCost     int64         `mapstructure:"cache_max_cost"`
	BufferItems int64         `mapstructure:"cache_buffer_items"`
	TTL         time.Duration `mapstructure:"cache_ttl"`
}

type Refresh struct {
	CronSchedule string `mapstructure:"dashboard_refresh_cron"`
	Enabled      bool   `mapstructure:"dashboard_refresh_enabled"`
	OnStartup    bool   `mapstructure:"dashboard_refresh_on_startup"`
}

type Auth struct {
	Enabled           bool          `mapstructure:"auth_enabled"`
	Secret            string        `mapstructure:"auth_secret"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
	AdminEmail        string        `mapstructure:"auth_admin_email"`
	AdminPasswordHash string        `mapstructure:"auth_admin_password_hash"`
	ViewerEmail       string        `mapstructure:"auth_viewer_email"`
	ViewerPassHash    string        `mapstructure:"auth_viewer_password_hash"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATA_SOURCE", DataSourceMock)

	viper.SetDefault("MOCK_SEED", 0) // 0 usa o horário atual como semente
	viper.SetDefault("MOCK_DELAY", "1s")
	viper.SetDefault("MOCK_FAILURE_RATE", 0.0)
	viper.SetDefault("MOCK_CAMPAIGNS", 200)
	viper.SetDefault("MOCK_BIGGEST_CHANGES", 100)
	viper.SetDefault("MOCK_TREND_DAYS", 90)
	viper.SetDefault("MOCK_TREND_START", "2025-06-27")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic_dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE", true)

	viper.SetDefault("DASHBOARD_DEFAULT_START", "2025-07-05")
	viper.SetDefault("DASHBOARD_DEFAULT_END", "2025-07-11")
	viper.SetDefault("DASHBOARD_DEFAULT_LABEL", "Last 7 Days")
	viper.SetDefault("DASHBOARD_PAGE_SIZE", 10)
	viper.SetDefault("DASHBOARD_TOP_N", 5)
	viper.SetDefault("DASHBOARD_BIGGEST_CHANGES_LIMIT", 10)

	viper.SetDefault("CACHE_NUM_COUNTERS", 10000)
	viper.SetDefault("CACHE_MAX_COST", 1000)
	viper.SetDefault("CACHE_BUFFER_ITEMS", 64)
	viper.SetDefault("CACHE_TTL", "10m")

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", false)
	viper.SetDefault("DASHBOARD_REFRESH_ON_STARTUP", true)

	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")
	viper.SetDefault("AUTH_ADMIN_EMAIL", "")
	viper.SetDefault("AUTH_ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_VIEWER_EMAIL", "")
	viper.SetDefault("AUTH_VIEWER_PASSWORD_HASH", "")

	viper.SetDefault("APP_ENV", "development")
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

	if err := config.resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// resolve preenche os campos derivados e valida combinações inválidas
func (c *Config) resolve() error {
	var err error

	if c.Mock.TrendStart, err = time.Parse(time.DateOnly, c.Mock.TrendStartRaw); err != nil {
		return fmt.Errorf("MOCK_TREND_START inválido: %w", err)
	}
	if c.Dashboard.DefaultStart, err = time.Parse(time.DateOnly, c.Dashboard.DefaultStartRaw); err != nil {
		return fmt.Errorf("DASHBOARD_DEFAULT_START inválido: %w", err)
	}
	if c.Dashboard.DefaultEnd, err = time.Parse(time.DateOnly, c.Dashboard.DefaultEndRaw); err != nil {
		return fmt.Errorf("DASHBOARD_DEFAULT_END inválido: %w", err)
	}

	switch c.DataSource.Kind {
	case DataSourceMock, DataSourcePostgres:
	default:
		return fmt.Errorf("DATA_SOURCE inválido: %q (use %q ou %q)", c.DataSource.Kind, DataSourceMock, DataSourcePostgres)
	}

	if c.Mock.FailureRate < 0 || c.Mock.FailureRate > 1 {
		return fmt.Errorf("MOCK_FAILURE_RATE deve estar entre 0 e 1: %v", c.Mock.FailureRate)
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
