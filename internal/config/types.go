package config

type Config struct {
	HistoryPath string
	HistoryMax  int
	Trigger     TriggerConfig
	Backend     BackendConfig
	Bot         BotConfig
	Archive     ArchiveConfig
	Report      ReportConfig
}

// TriggerConfig is loaded from the triggers yaml file.
type TriggerConfig struct {
	NameAliases     []string `yaml:"name_aliases"`
	IDAliases       []string `yaml:"id_aliases"`
	CommandPrefixes []string `yaml:"command_prefixes"`
}

type BackendConfig struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	Prompt         string
	GroupPrompt    string
	TimeoutSeconds int
}

type BotConfig struct {
	Provider          string
	Token             string
	OwnerConversation string
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type ReportConfig struct {
	Schedule string
}
