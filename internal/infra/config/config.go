// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// DefaultAdminEmails is the fallback administrator allow-list.
// ADMIN_EMAILS で上書き可能（カンマ区切り）。
const DefaultAdminEmails = "admin@example.com,admin@luxe.com"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	// GCP / Firebase
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
	FirebaseWebAPIKey        string
	GCPCreds                 string

	// Product images (GCS backend)
	ProductImageBucket string

	// Product images (external image host backend)
	// 例) https://api.imgbb.com/1/upload のような multipart エンドポイント
	ImageHostBaseURL      string
	ImageHostAPIKey       string
	ImageHostAPIKeySecret string // Secret Manager secret name (optional)

	// Admin allow-list (comma separated emails)
	AdminEmails string

	// Checkout handoff
	WhatsAppNumber string

	// Optional SendGrid handoff channel
	SendGridAPIKey       string
	SendGridAPIKeySecret string // Secret Manager secret name (optional)
	OrderMailFrom        string
	OrderMailTo          string

	// Optional Postgres catalog mirror
	PostgresDSN string

	// CORS
	AllowedOrigin string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "shop-aacdf")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		FirebaseWebAPIKey:        os.Getenv("FIREBASE_WEB_API_KEY"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		ProductImageBucket: getenvDefault("PRODUCT_IMAGE_BUCKET", defaultProject+".appspot.com"),

		ImageHostBaseURL:      os.Getenv("IMAGE_HOST_BASE_URL"),
		ImageHostAPIKey:       os.Getenv("IMAGE_HOST_API_KEY"),
		ImageHostAPIKeySecret: os.Getenv("IMAGE_HOST_API_KEY_SECRET"),

		AdminEmails: getenvDefault("ADMIN_EMAILS", DefaultAdminEmails),

		WhatsAppNumber: getenvDefault("WHATSAPP_NUMBER", "96176565298"),

		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		OrderMailFrom:        os.Getenv("ORDER_MAIL_FROM"),
		OrderMailTo:          os.Getenv("ORDER_MAIL_TO"),

		PostgresDSN: os.Getenv("CATALOG_POSTGRES_DSN"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}

	return cfg
}

// AdminEmailList returns the parsed allow-list (trimmed, empties dropped).
// Matching against the identity email is exact and case-sensitive.
func (c *Config) AdminEmailList() []string {
	parts := strings.Split(c.AdminEmails, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
