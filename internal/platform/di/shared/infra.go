// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "luxe/internal/infra/config"
	"luxe/internal/infra/database"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager/Postgres)
// - owns env/config-resolved runtime settings (bucket names, API keys)
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Postgres      *database.DB

	// Runtime settings (resolved once)
	ProductImageBucket string
	ImageHostAPIKey    string
	SendGridAPIKey     string
}

// NewInfra initializes shared infra.
// Firestore is strict (return error).
// GCS, Firebase/Auth, SecretManager and Postgres are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := resolveProjectID(cfg)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Firestore (strict)
	{
		fsClient, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		log.Printf("[shared.infra] Firestore connected project=%s", inf.ProjectID)
	}

	// 2) Optional: Secret Manager client (API key resolution)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (secret-backed keys disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 3) Optional: GCS (product image uploads fall back to the external host)
	{
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (GCS image uploads disabled)", err)
			gcsClient = nil
		}
		inf.GCS = gcsClient
	}

	// 4) Optional: Firebase App/Auth (token verification + revocation)
	{
		fbCfg := &firebase.Config{ProjectID: inf.ProjectID}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 5) Optional: Postgres catalog mirror
	if dsn := strings.TrimSpace(cfg.PostgresDSN); dsn != "" {
		db, err := database.NewConnection(dsn)
		if err != nil {
			log.Printf("[shared.infra] WARN: postgres init failed: %v (using Firestore catalog)", err)
		} else {
			inf.Postgres = db
		}
	}

	// 6) Runtime settings (resolve once)
	inf.ProductImageBucket = strings.TrimSpace(cfg.ProductImageBucket)
	if inf.ProductImageBucket == "" {
		log.Printf("[shared.infra] WARN: PRODUCT_IMAGE_BUCKET is empty (GCS image uploads may fail)")
	}
	inf.ImageHostAPIKey = inf.resolveAPIKey(ctx, cfg.ImageHostAPIKey, cfg.ImageHostAPIKeySecret, "image host")
	inf.SendGridAPIKey = inf.resolveAPIKey(ctx, cfg.SendGridAPIKey, cfg.SendGridAPIKeySecret, "sendgrid")

	if inf.Firestore == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.Postgres != nil {
		_ = i.Postgres.Close()
	}
	return nil
}

// resolveAPIKey prefers the env value and falls back to Secret Manager
// when a secret name is configured.
func (i *Infra) resolveAPIKey(ctx context.Context, envValue, secretName, label string) string {
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	secretName = strings.TrimSpace(secretName)
	if secretName == "" {
		return ""
	}
	if i.SecretManager == nil {
		log.Printf("[shared.infra] WARN: %s key secret configured but secret manager unavailable", label)
		return ""
	}

	name := "projects/" + i.ProjectID + "/secrets/" + secretName + "/versions/latest"
	resp, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[shared.infra] WARN: AccessSecretVersion failed (%s): %v", name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[shared.infra] WARN: empty secret payload (%s)", name)
		return ""
	}

	log.Printf("[shared.infra] %s key resolved from Secret Manager", label)
	return strings.TrimSpace(string(resp.Payload.Data))
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	// 5) FIREBASE_PROJECT_ID (fallback)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	if len(parts) == 0 {
		return "***"
	}
	return ".../" + parts[len(parts)-1]
}
