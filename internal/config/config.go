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
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Thresholds     Thresholds     `mapstructure:",squash"`
	Aggregation    Aggregation    `mapstructure:",squash"`
	CRMSync        CRMSync        `mapstructure:",squash"`
	RetentionSweep RetentionSweep `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
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

// Thresholds concentra os cortes de negócio do motor de alertas. É a única
// fonte desses valores: o motor e a camada de apresentação leem daqui, nunca
// de literais espalhados. Alterar um corte muda o comportamento do produto.
type Thresholds struct {
	NoShowRateP1      float64 `mapstructure:"alert_no_show_rate_p1"`
	NoShowRateP2      float64 `mapstructure:"alert_no_show_rate_p2"`
	IdleRateP2        float64 `mapstructure:"alert_idle_rate_p2"`
	CACRevPASMultiple float64 `mapstructure:"alert_cac_revpas_multiple"`
	MarginPercentP1   float64 `mapstructure:"alert_margin_percent_p1"`
	MarginPercentP2   float64 `mapstructure:"alert_margin_percent_p2"`
	RevPASDropP3      float64 `mapstructure:"alert_revpas_drop_p3"`
	RCADueDays        int     `mapstructure:"alert_rca_due_days"`
}

// Aggregation parametriza o agregador de snapshot.
type Aggregation struct {
	FixedCostRate float64 `mapstructure:"aggregation_fixed_cost_rate"`
}

type CRMSync struct {
	BaseURL             string `mapstructure:"crm_base_url"`
	AccessToken         string `mapstructure:"crm_access_token"`
	CronSchedule        string `mapstructure:"crm_sync_cron"`
	LookbackDays        int    `mapstructure:"crm_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"crm_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"crm_sync_enabled"`
}

type RetentionSweep struct {
	CronSchedule  string `mapstructure:"retention_sweep_cron"`
	RetentionDays int    `mapstructure:"retention_days"`
	Enabled       bool   `mapstructure:"retention_sweep_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/clinsight")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Cortes de alerta herdados das regras de negócio do produto. São
	// configuração versionada, não constantes derivadas.
	viper.SetDefault("ALERT_NO_SHOW_RATE_P1", 25.0)
	viper.SetDefault("ALERT_NO_SHOW_RATE_P2", 15.0)
	viper.SetDefault("ALERT_IDLE_RATE_P2", 28.0)
	viper.SetDefault("ALERT_CAC_REVPAS_MULTIPLE", 6.0)
	viper.SetDefault("ALERT_MARGIN_PERCENT_P1", 10.0)
	viper.SetDefault("ALERT_MARGIN_PERCENT_P2", 20.0)
	viper.SetDefault("ALERT_REVPAS_DROP_P3", 20.0)
	viper.SetDefault("ALERT_RCA_DUE_DAYS", 7)

	viper.SetDefault("AGGREGATION_FIXED_COST_RATE", 0.30)

	viper.SetDefault("CRM_BASE_URL", "https://api.crm.example.com/v1")
	viper.SetDefault("CRM_ACCESS_TOKEN", "")
	viper.SetDefault("CRM_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("CRM_SYNC_LOOKBACK_DAYS", 7)
	viper.SetDefault("CRM_SYNC_REQUEST_DELAY_SECONDS", 2)
	viper.SetDefault("CRM_SYNC_ENABLED", false)

	viper.SetDefault("RETENTION_SWEEP_CRON", "0 4 * * 0") // Domingos às 4h da manhã
	viper.SetDefault("RETENTION_DAYS", 730)
	viper.SetDefault("RETENTION_SWEEP_ENABLED", false)

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

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
