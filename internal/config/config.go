package config

import (
	"errors"
	"fmt"
	"strings"

	"ecadmin/internal/domain/orderview"

	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error
	FEURL    string // フロントURL（CORSで使う）

	Sanity SanityConfig

	AdminEmail      string // 管理者として扱うメールアドレス（空なら誰も管理者にならない）
	JWTSecret       string // セッションJWTの検証（HS256）
	JWTPublicKeyPEM string // セッションJWTの検証（RS256）。シークレットより優先
	AuthRedirectURL string // 未ログイン・非管理者のリダイレクト先

	DatabaseURL string // 監査ログ用。空なら監査ログは保存しない

	CustomerCountMode       orderview.CustomerCountMode
	DeleteCustomerWithOrder bool
}

type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	BaseURL    string
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// Loadは config.yaml（任意）と環境変数から設定を読む。環境変数が優先。
// .env は呼び出し側（main）で先に読み込んでおく。
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ecadmin")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	countMode, err := orderview.ParseCustomerCountMode(v.GetString("CUSTOMER_COUNT_MODE"))
	if err != nil {
		return Config{}, fmt.Errorf("CUSTOMER_COUNT_MODE: %w", err)
	}

	cfg := Config{
		Port:     v.GetString("PORT"),
		GoEnv:    v.GetString("GO_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		FEURL:    v.GetString("FE_URL"),

		Sanity: SanityConfig{
			ProjectID:  v.GetString("SANITY_PROJECT_ID"),
			Dataset:    v.GetString("SANITY_DATASET"),
			APIVersion: v.GetString("SANITY_API_VERSION"),
			Token:      v.GetString("SANITY_TOKEN"),
			UseCDN:     v.GetBool("SANITY_USE_CDN"),
			BaseURL:    v.GetString("SANITY_BASE_URL"),
		},

		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		JWTSecret:       v.GetString("AUTH_JWT_SECRET"),
		JWTPublicKeyPEM: v.GetString("AUTH_JWT_PUBLIC_KEY"),
		AuthRedirectURL: v.GetString("AUTH_REDIRECT_URL"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		CustomerCountMode:       countMode,
		DeleteCustomerWithOrder: v.GetBool("DELETE_CUSTOMER_WITH_ORDER"),
	}

	//必須チェック
	if cfg.Sanity.ProjectID == "" && cfg.Sanity.BaseURL == "" {
		return Config{}, fmt.Errorf("SANITY_PROJECT_ID is required")
	}
	if cfg.Sanity.Dataset == "" {
		return Config{}, fmt.Errorf("SANITY_DATASET is required")
	}
	if cfg.Sanity.Token == "" {
		return Config{}, fmt.Errorf("SANITY_TOKEN is required")
	}
	if cfg.JWTSecret == "" && cfg.JWTPublicKeyPEM == "" {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required")
	}
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod: %q", cfg.GoEnv)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FE_URL", "http://localhost:3000")
	v.SetDefault("SANITY_DATASET", "production")
	v.SetDefault("SANITY_API_VERSION", "2023-01-01")
	v.SetDefault("SANITY_USE_CDN", false)
	v.SetDefault("AUTH_REDIRECT_URL", "/")
	v.SetDefault("CUSTOMER_COUNT_MODE", string(orderview.CountByCustomer))
	v.SetDefault("DELETE_CUSTOMER_WITH_ORDER", true)
}
