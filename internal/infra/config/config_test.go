// internal/infra/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("WHATSAPP_NUMBER", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "shop-aacdf", cfg.FirestoreProjectID)
	assert.Equal(t, "96176565298", cfg.WhatsAppNumber)
	assert.Equal(t, []string{"admin@example.com", "admin@luxe.com"}, cfg.AdminEmailList())
}

func TestAdminEmailList(t *testing.T) {
	cfg := &Config{AdminEmails: " a@x.com , ,b@y.com,"}
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, cfg.AdminEmailList())
}
