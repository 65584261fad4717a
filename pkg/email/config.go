package email

// Config holds delivery settings. With no Postmark tokens the application
// falls back to DevSender writing into DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@storefront.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@storefront.local"`
	DevDir               string `env:"DEV_DIR"`

	// ResetURL is the page that accepts the reset token as ?token=.
	ResetURL string `env:"RESET_URL" envDefault:"http://localhost:8080/reset-password"`
}

// UsesPostmark reports whether both Postmark tokens are set.
func (c Config) UsesPostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
