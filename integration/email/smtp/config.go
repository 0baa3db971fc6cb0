package smtp

import "time"

// DefaultTimeout bounds the dial and the SMTP conversation.
const DefaultTimeout = 10 * time.Second

// Config holds SMTP server configuration.
// The env tags match the keys of the relay settings file.
type Config struct {
	Host        string `env:"MAIL_HOST,required"`
	Port        int    `env:"MAIL_PORT" envDefault:"587"`
	Username    string `env:"MAIL_USERNAME,required"`
	Password    string `env:"MAIL_PASSWORD,required"`
	SenderEmail string `env:"MAIL_FROM_ADDRESS,required"`
	SenderName  string `env:"MAIL_FROM_NAME"`

	// Timeout is not read from the environment. Zero means DefaultTimeout.
	Timeout time.Duration
}
