package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// AgentConfig is the parsed openclaw.json. Only the workspace field is
// interpreted; everything else is carried opaquely so a rewrite never drops
// keys this tool does not know about.
type AgentConfig struct {
	raw map[string]json.RawMessage
}

// ParseAgentConfig decodes openclaw.json content.
func ParseAgentConfig(data []byte) (*AgentConfig, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigAgentInvalidJSONFmt, err)
	}
	return &AgentConfig{raw: raw}, nil
}

// Workspace returns the configured workspace path, or "" when unset.
func (a *AgentConfig) Workspace() string {
	value, ok := a.raw["workspace"]
	if !ok {
		return ""
	}
	var path string
	if err := json.Unmarshal(value, &path); err != nil {
		return ""
	}
	return strings.TrimSpace(path)
}

// SetWorkspace rewrites the workspace field.
func (a *AgentConfig) SetWorkspace(path string) error {
	encoded, err := json.Marshal(path)
	if err != nil {
		return err
	}
	a.raw["workspace"] = encoded
	return nil
}

// Encode renders the config back to indented JSON with a trailing newline,
// matching how the agent itself writes the file.
func (a *AgentConfig) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(a.raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseAgentEnv decodes a dotenv file kept next to openclaw.json.
func ParseAgentEnv(data []byte) (map[string]string, error) {
	env, err := godotenv.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigAgentInvalidEnvFmt, err)
	}
	return env, nil
}
