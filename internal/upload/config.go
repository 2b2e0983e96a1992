package upload

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables that override the client_config section, so the
// secret can live in .env instead of the settings file
const (
	ClientIDEnvVar     = "GDRIVE_CLIENT_ID"
	ClientSecretEnvVar = "GDRIVE_CLIENT_SECRET"
)

const defaultCredentialsFile = "credentials.json"

// ClientConfig is the OAuth client registered for the app in Google Cloud
type ClientConfig struct {
	ClientID     string
	ClientSecret string
}

// DriveConfig represents the Google Drive settings file
type DriveConfig struct {
	DestinationFolderID string
	ClientConfig        ClientConfig
	SaveCredentials     bool
	CredentialsFile     string // Where the OAuth token is kept between runs
}

// LoadDriveConfig reads the drive settings file. envFile is loaded first when
// it exists; variables already set in the environment are not overridden.
func LoadDriveConfig(configPath, envFile string) (*DriveConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read drive config: %w", err)
	}

	if err := v.BindEnv("client_config.client_id", ClientIDEnvVar); err != nil {
		return nil, err
	}
	if err := v.BindEnv("client_config.client_secret", ClientSecretEnvVar); err != nil {
		return nil, err
	}

	return ExtractDriveConfig(v)
}

// ExtractDriveConfig pulls the drive settings out of an already read config
func ExtractDriveConfig(v *viper.Viper) (*DriveConfig, error) {
	v.SetDefault("save_credentials", true)
	v.SetDefault("save_credentials_file", defaultCredentialsFile)

	cfg := &DriveConfig{
		DestinationFolderID: v.GetString("app.destination_folder_id"),
		ClientConfig: ClientConfig{
			ClientID:     v.GetString("client_config.client_id"),
			ClientSecret: v.GetString("client_config.client_secret"),
		},
		SaveCredentials: v.GetBool("save_credentials"),
		CredentialsFile: v.GetString("save_credentials_file"),
	}

	if cfg.DestinationFolderID == "" {
		return nil, fmt.Errorf("app.destination_folder_id is required")
	}
	if cfg.ClientConfig.ClientID == "" || cfg.ClientConfig.ClientSecret == "" {
		return nil, fmt.Errorf("client_config.client_id and client_config.client_secret are required")
	}

	return cfg, nil
}
