package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultTriggersPath = "triggers.yml"

func Load() (*Config, error) {
	historyPath := os.Getenv("COURIER_HISTORY")
	if historyPath == "" {
		historyPath = "courier.db"
	}

	historyMax := 50
	if v := os.Getenv("COURIER_HISTORY_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad COURIER_HISTORY_MAX: %w", err)
		}
		historyMax = n
	}

	triggerCfg, err := loadTriggers(os.Getenv("COURIER_TRIGGERS"))
	if err != nil {
		return nil, err
	}

	backendCfg, err := loadBackendConfig()
	if err != nil {
		return nil, err
	}

	botCfg, err := loadBotConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		HistoryPath: historyPath,
		HistoryMax:  historyMax,
		Trigger:     triggerCfg,
		Backend:     backendCfg,
		Bot:         botCfg,
		Archive:     loadArchiveConfig(),
		Report:      ReportConfig{Schedule: os.Getenv("REPORT_SCHEDULE")},
	}, nil
}

// loadTriggers reads the aliases and command prefixes that trigger the bot.
// A missing file at the default path falls back to compiled-in defaults; an
// explicitly configured path must exist.
func loadTriggers(path string) (TriggerConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultTriggersPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return TriggerConfig{
				NameAliases:     []string{"courier"},
				CommandPrefixes: []string{"/bot"},
			}, nil
		}
		return TriggerConfig{}, fmt.Errorf("read triggers file %s: %w", path, err)
	}

	var cfg TriggerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TriggerConfig{}, fmt.Errorf("parse triggers file %s: %w", path, err)
	}

	return cfg, nil
}

// DetectProvider picks a backend provider from which API key is present.
func DetectProvider() string {
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "claude"
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	return ""
}

func loadBackendConfig() (BackendConfig, error) {
	provider := os.Getenv("BACKEND_PROVIDER")
	if provider == "" {
		provider = DetectProvider()
	}
	if provider == "" {
		return BackendConfig{}, fmt.Errorf("no backend configured: set BACKEND_PROVIDER or an API key")
	}

	apiKey := os.Getenv("BACKEND_API_KEY")
	if apiKey == "" {
		switch provider {
		case "claude":
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	timeout := 30
	if v := os.Getenv("BACKEND_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return BackendConfig{}, fmt.Errorf("bad BACKEND_TIMEOUT_SECONDS: %s", v)
		}
		timeout = n
	}

	return BackendConfig{
		Provider:       provider,
		APIKey:         apiKey,
		Model:          os.Getenv("BACKEND_MODEL"),
		BaseURL:        os.Getenv("BACKEND_BASE_URL"),
		Prompt:         os.Getenv("COURIER_PROMPT"),
		GroupPrompt:    os.Getenv("COURIER_GROUP_PROMPT"),
		TimeoutSeconds: timeout,
	}, nil
}

func loadBotConfig() (BotConfig, error) {
	provider := os.Getenv("BOT_PROVIDER")
	if provider == "" {
		provider = "telegram"
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return BotConfig{}, fmt.Errorf("BOT_TOKEN is required")
	}

	return BotConfig{
		Provider:          provider,
		Token:             token,
		OwnerConversation: os.Getenv("OWNER_CONVERSATION"),
	}, nil
}

func loadArchiveConfig() ArchiveConfig {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	return ArchiveConfig{
		Enabled:   accessKey != "" && secretKey != "",
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}
