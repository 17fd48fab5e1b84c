package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// GlobalConfig represents the credentials stored in config.json after login
type GlobalConfig struct {
	Token    string `json:"token"`
	APIURL   string `json:"api_url"`
	Username string `json:"username,omitempty"`
}

var (
	getConfigDirFunc  = defaultGetConfigDir
	getConfigPathFunc = defaultGetConfigPath
)

func defaultGetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "bizhub"), nil
}

func defaultGetConfigPath() (string, error) {
	configDir, err := getConfigDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetConfigDir returns the platform-specific configuration directory
func GetConfigDir() (string, error) {
	return getConfigDirFunc()
}

// GetConfigPath returns the full path to the config.json file
func GetConfigPath() (string, error) {
	return getConfigPathFunc()
}

// LoadGlobalConfig reads and parses the global config.json file.
// Returns nil config (not error) if file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GlobalConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveGlobalConfig writes the config to config.json with 0600 permissions
func SaveGlobalConfig(config *GlobalConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DeleteGlobalConfig removes the config.json file
func DeleteGlobalConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.Remove(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete config file: %w", err)
	}

	return nil
}

// CredentialSource represents where credentials came from
type CredentialSource string

const (
	SourceFlag         CredentialSource = "flag"
	SourceEnv          CredentialSource = "env"
	SourceGlobalConfig CredentialSource = "global_config"
	SourceNone         CredentialSource = "none"
)

// GetCredentialSource returns where the token comes from and the resolved token and URL.
// Checks in order: flag -> env -> global_config -> none
func GetCredentialSource(flagToken, flagURL string) (CredentialSource, string, string) {
	if flagToken != "" {
		return SourceFlag, flagToken, firstNonEmpty(flagURL, os.Getenv(envAPIURL), configURL(), defaultAPIURL)
	}

	if token := os.Getenv(envToken); token != "" {
		return SourceEnv, token, firstNonEmpty(flagURL, os.Getenv(envAPIURL), configURL(), defaultAPIURL)
	}

	config, err := LoadGlobalConfig()
	if err == nil && config != nil && config.Token != "" {
		return SourceGlobalConfig, config.Token, firstNonEmpty(flagURL, os.Getenv(envAPIURL), config.APIURL, defaultAPIURL)
	}

	return SourceNone, "", ""
}

func configURL() string {
	config, err := LoadGlobalConfig()
	if err != nil || config == nil {
		return ""
	}
	return config.APIURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
