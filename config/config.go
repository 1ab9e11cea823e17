package config

import "os"

// Config carries the process-wide settings read once at startup.
// It is never mutated after Load.
type Config struct {
	Port         string
	MongoURI     string
	TokenSecret  string
	MailUsername string
	MailPassword string
	SMTPHost     string
	SMTPPort     string
	StripeKey    string
	Origin       string
}

func Load() *Config {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		MongoURI:     getenv("MONGODB_URI", "mongodb://localhost:27017"),
		TokenSecret:  os.Getenv("TOKEN_SECRET"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		StripeKey:    os.Getenv("STRIPE_KEY"),
		Origin:       getenv("ORIGIN", "http://localhost:5173"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
