package configs

import (
	"codeassist/codeassist/utils/logging"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// AgentConfig is the assistant's persona, loaded from a properties file so
// prompt tuning never needs a rebuild.
type AgentConfig struct {
	AgentName    string
	AgentRole    string
	Instructions string
	FilePreamble string
}

const configPath = "codeassist/agents/configs/codeassist.properties"

func LoadConfig() *AgentConfig {
	props, err := properties.LoadFile(configPath, properties.UTF8)
	if err != nil {
		logging.AppLogger.Warn("Agent config load error, using defaults", zap.Error(err))
		props = properties.NewProperties()
	}

	return &AgentConfig{
		AgentName: props.GetString("agent_name", "CodeAssist"),
		AgentRole: props.GetString("agent_role",
			"a coding assistant that answers questions about the user's code and uploaded files"),
		Instructions: props.GetString("instructions",
			"Answer concisely. Prefer code examples over prose. Never invent file contents."),
		FilePreamble: props.GetString("file_preamble",
			"The user has uploaded the following files to this session:"),
	}
}
