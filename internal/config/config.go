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

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Period          Period          `mapstructure:",squash"`
	Taxonomy        Taxonomy        `mapstructure:",squash"`
	RankingSnapshot RankingSnapshot `mapstructure:",squash"`
	CORS            CORS            `mapstructure:",squash"`
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
	Env      string `mapstructure:"app_env"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Period define o fuso e o primeiro dia da semana usados para resolver os períodos do dashboard
type Period struct {
	Timezone  string `mapstructure:"period_timezone"`
	WeekStart string `mapstructure:"period_week_start"`
}

// Location carrega o fuso configurado
func (p Period) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.UTC, nil
	}

	location, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido %q: %w", p.Timezone, err)
	}
	return location, nil
}

// Taxonomy lista os marcadores de status; listas vazias usam os valores padrão do classificador
type Taxonomy struct {
	SaleMarkers      []string `mapstructure:"taxonomy_sale_markers"`
	RefundMarkers    []string `mapstructure:"taxonomy_refund_markers"`
	NoShowMarkers    []string `mapstructure:"taxonomy_no_show_markers"`
	PaymentScheduled []string `mapstructure:"taxonomy_payment_scheduled"`
	Negotiating      []string `mapstructure:"taxonomy_negotiating"`
	LostSoft         []string `mapstructure:"taxonomy_lost_soft"`
	PipelineWon      []string `mapstructure:"taxonomy_pipeline_won"`
	PipelineLost     []string `mapstructure:"taxonomy_pipeline_lost"`
}

type RankingSnapshot struct {
	CronSchedule string   `mapstructure:"ranking_snapshot_cron"`
	SyncEnabled  bool     `mapstructure:"ranking_snapshot_sync_enabled"`
	GroupBy      []string `mapstructure:"ranking_snapshot_group_by"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_ops?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL

	viper.SetDefault("PERIOD_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("PERIOD_WEEK_START", "sunday")

	// Vazio = marcadores padrão do classificador
	viper.SetDefault("TAXONOMY_SALE_MARKERS", "")
	viper.SetDefault("TAXONOMY_REFUND_MARKERS", "")
	viper.SetDefault("TAXONOMY_NO_SHOW_MARKERS", "")
	viper.SetDefault("TAXONOMY_PAYMENT_SCHEDULED", "")
	viper.SetDefault("TAXONOMY_NEGOTIATING", "")
	viper.SetDefault("TAXONOMY_LOST_SOFT", "")
	viper.SetDefault("TAXONOMY_PIPELINE_WON", "")
	viper.SetDefault("TAXONOMY_PIPELINE_LOST", "")

	viper.SetDefault("RANKING_SNAPSHOT_CRON", "0 6 * * *")       // Todos os dias às 6h da manhã
	viper.SetDefault("RANKING_SNAPSHOT_SYNC_ENABLED", false)      // Habilitar snapshot mensal do ranking
	viper.SetDefault("RANKING_SNAPSHOT_GROUP_BY", "closer,team") // Agrupamentos persistidos

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

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
		logrus.Info("config: usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("config: arquivo .env lido pelo Viper com sucesso")
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

	config.Taxonomy = config.Taxonomy.trimmed()
	config.RankingSnapshot.GroupBy = trimAll(config.RankingSnapshot.GroupBy)
	config.CORS.AllowedOrigins = trimAll(config.CORS.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (t Taxonomy) trimmed() Taxonomy {
	return Taxonomy{
		SaleMarkers:      trimAll(t.SaleMarkers),
		RefundMarkers:    trimAll(t.RefundMarkers),
		NoShowMarkers:    trimAll(t.NoShowMarkers),
		PaymentScheduled: trimAll(t.PaymentScheduled),
		Negotiating:      trimAll(t.Negotiating),
		LostSoft:         trimAll(t.LostSoft),
		PipelineWon:      trimAll(t.PipelineWon),
		PipelineLost:     trimAll(t.PipelineLost),
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: não foi possível obter o diretório atual: ", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("config: tentando carregar .env de: ", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("config: arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Warn("config: não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
