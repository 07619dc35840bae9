package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/ventaroai/ventaro-server/config.Version=..."
var Version = "v1.0.0"

// SysConfig system level configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	SiteURL string `yaml:"site_url" json:"site_url"`
}

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

// StripeConfig payment gateway configuration.
// Currency is used by the primary checkout-session path, FallbackCurrency
// by the direct fallback call. The two are intentionally distinct settings;
// see the order checkout flow before unifying them.
type StripeConfig struct {
	SecretKey        string `yaml:"secret_key" json:"secret_key"`
	PublishableKey   string `yaml:"publishable_key" json:"publishable_key"`
	Currency         string `yaml:"currency" json:"currency"`
	FallbackCurrency string `yaml:"fallback_currency" json:"fallback_currency"`
}

// SmtpConfig a single SMTP provider
type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

// MailConfig transactional mail configuration with a primary and a
// secondary provider forming a fallback chain
type MailConfig struct {
	Primary   SmtpConfig `yaml:"primary" json:"primary"`
	Secondary SmtpConfig `yaml:"secondary" json:"secondary"`
	AdminAddr string     `yaml:"admin_addr" json:"admin_addr"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Stripe   StripeConfig `yaml:"stripe" json:"stripe"`
	Mail     MailConfig   `yaml:"mail" json:"mail"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ventaro",
		Location: "Australia/Sydney",
		Workdir:  "/var/ventaro",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    1816,
		Secret:  "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
		SiteURL: "http://localhost:3000",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "ventaro_v1",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Stripe: StripeConfig{
		Currency:         "usd",
		FallbackCurrency: "aud",
	},
	Mail: MailConfig{
		Primary:   SmtpConfig{Host: "smtp.gmail.com", Port: 587, From: "noreply@ventaroai.com"},
		Secondary: SmtpConfig{Port: 587, From: "noreply@ventaroai.com"},
		AdminAddr: "chase@ventaroai.com",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/ventaro/ventaro.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvIntValue(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		p, err := strconv.ParseInt(evalue, 10, 64)
		if err == nil {
			f(p)
		}
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("VENTARO_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("VENTARO_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("VENTARO_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("VENTARO_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("VENTARO_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("NEXT_PUBLIC_SITE_URL", func(v string) { cfg.Web.SiteURL = v })

	setEnvValue("VENTARO_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("VENTARO_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("VENTARO_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("VENTARO_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("VENTARO_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("VENTARO_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	setEnvValue("STRIPE_SECRET_KEY", func(v string) { cfg.Stripe.SecretKey = v })
	setEnvValue("NEXT_PUBLIC_STRIPE_PUBLISHABLE_KEY", func(v string) { cfg.Stripe.PublishableKey = v })
	setEnvValue("VENTARO_STRIPE_CURRENCY", func(v string) { cfg.Stripe.Currency = v })
	setEnvValue("VENTARO_STRIPE_FALLBACK_CURRENCY", func(v string) { cfg.Stripe.FallbackCurrency = v })

	setEnvValue("VENTARO_SMTP_HOST", func(v string) { cfg.Mail.Primary.Host = v })
	setEnvIntValue("VENTARO_SMTP_PORT", func(v int64) { cfg.Mail.Primary.Port = int(v) })
	setEnvValue("VENTARO_SMTP_USER", func(v string) { cfg.Mail.Primary.Username = v })
	setEnvValue("VENTARO_SMTP_PWD", func(v string) { cfg.Mail.Primary.Password = v })
	setEnvValue("VENTARO_SMTP2_HOST", func(v string) { cfg.Mail.Secondary.Host = v })
	setEnvIntValue("VENTARO_SMTP2_PORT", func(v int64) { cfg.Mail.Secondary.Port = int(v) })
	setEnvValue("VENTARO_SMTP2_USER", func(v string) { cfg.Mail.Secondary.Username = v })
	setEnvValue("VENTARO_SMTP2_PWD", func(v string) { cfg.Mail.Secondary.Password = v })
	setEnvValue("VENTARO_ADMIN_EMAIL", func(v string) { cfg.Mail.AdminAddr = v })

	return cfg
}
