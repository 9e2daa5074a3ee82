package firebase

import (
	"context"
	"fmt"
	"os"

	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"localmarket/pkg/config"
	"localmarket/pkg/logger"
)

// ClientOptions returns the credentials shared by the Firebase, Firestore and
// Cloud Storage clients. Inline JSON wins over a file path; with neither set
// the clients fall back to application default credentials.
func ClientOptions(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}, nil
	}

	if path := cfg.FirebaseServiceAccountPath; path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", path, err)
		}
		logger.Info("Using Firebase service account from file: %s", path)
		return []option.ClientOption{option.WithCredentialsFile(path)}, nil
	}

	logger.Info("Using application default credentials")
	return nil, nil
}

func NewApp(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*fbapp.App, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}
	return app, nil
}
