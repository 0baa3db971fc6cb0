package mailrelay

import (
	"github.com/dmitrymomot/mailrelay/core/server"
)

// Mail drivers.
const (
	DriverSMTP = "smtp"
	DriverDev  = "dev"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Server server.Config
	Relay  RelayConfig

	AppName   string `env:"APP_NAME" envDefault:"mailrelay"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`  // empty: level implied by APP_ENV
	LogFormat string `env:"LOG_FORMAT"` // text or json; empty: implied by APP_ENV
}

// RelayConfig locates the mail settings file and tunes the relay endpoint.
type RelayConfig struct {
	EnvFile      string `env:"RELAY_ENV_FILE" envDefault:".env"`
	Path         string `env:"RELAY_PATH" envDefault:"/"`
	MaxBodyBytes int64  `env:"RELAY_MAX_BODY_BYTES" envDefault:"1048576"`
	MailDriver   string `env:"MAIL_DRIVER" envDefault:"smtp"`
	DevDir       string `env:"MAIL_DEV_DIR" envDefault:"tmp/mail"`
}
