package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Config names under which the chat settings are stored.
const (
	SettingsConfigName   = "chatbot.settings"
	ServerListConfigName = "chatbot.server_list"
)

// Settings is the administrator-managed chat configuration.
// Only Hosts[0] is ever contacted.
type Settings struct {
	EmailAddress       string    `json:"email_address" yaml:"email_address"`
	BotDisplayName     string    `json:"bot_display_name" yaml:"bot_display_name"`
	ConversationHeader string    `json:"conversation_header" yaml:"conversation_header"`
	Hosts              HostList  `json:"hosts" yaml:"-"`
	UpdatedAt          time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// SelfCheck reports whether enough is configured to accept chat input.
func (s *Settings) SelfCheck() bool {
	if s == nil {
		return false
	}
	return strings.TrimSpace(s.EmailAddress) != "" &&
		strings.TrimSpace(s.BotDisplayName) != "" &&
		s.PrimaryHost() != ""
}

// PrimaryHost returns the first configured host, or "" when there is none.
func (s *Settings) PrimaryHost() string {
	if s == nil || len(s.Hosts) == 0 {
		return ""
	}
	return strings.TrimSpace(s.Hosts[0])
}

// GeneralSettings is the stored shape of SettingsConfigName.
type GeneralSettings struct {
	EmailAddress       string `json:"email_address"`
	BotDisplayName     string `json:"bot_display_name"`
	ConversationHeader string `json:"conversation_header"`
}

// ServerList is the stored shape of ServerListConfigName.
type ServerList struct {
	Hosts HostList `json:"hosts"`
}

// HostList is an ordered list of bot hosts. It decodes either from a JSON
// array or from newline-delimited text, the way the admin textarea sends it.
type HostList []string

func (h *HostList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*h = ParseHostList(text)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("hosts must be a string or a list of strings")
	}
	*h = HostList(list)
	return nil
}

// ParseHostList splits newline-delimited host text, dropping blank lines.
func ParseHostList(text string) HostList {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	hosts := HostList{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			hosts = append(hosts, line)
		}
	}
	return hosts
}

// Text joins the hosts back into textarea form.
func (h HostList) Text() string {
	return strings.Join(h, "\r\n")
}

// UpdateSettingsRequest is the admin payload for PUT /admin/settings.
type UpdateSettingsRequest struct {
	EmailAddress       string   `json:"email_address"`
	BotDisplayName     string   `json:"bot_display_name"`
	ConversationHeader string   `json:"conversation_header"`
	Hosts              HostList `json:"hosts"`
}

// SettingsResponse is returned by the admin settings endpoints.
type SettingsResponse struct {
	Settings *Settings `json:"settings"`
	Warnings []string  `json:"warnings,omitempty"`
}

// SettingsSeed mirrors the YAML layout of SETTINGS_SEED_FILE.
type SettingsSeed struct {
	Settings struct {
		EmailAddress       string `yaml:"email_address"`
		BotDisplayName     string `yaml:"bot_display_name"`
		ConversationHeader string `yaml:"conversation_header"`
	} `yaml:"settings"`
	ServerList struct {
		Hosts []string `yaml:"hosts"`
	} `yaml:"server_list"`
}
