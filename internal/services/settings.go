package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"supportchat-backend/internal/database"
	"supportchat-backend/internal/models"
	"supportchat-backend/internal/repository"
)

const (
	settingsCacheKey = "config:" + models.SettingsConfigName
	settingsCacheTTL = 10 * time.Minute
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type configRepository interface {
	Get(ctx context.Context, name string, dst any) (time.Time, error)
	SetMany(ctx context.Context, docs map[string]any) error
	Exists(ctx context.Context, name string) (bool, error)
}

// SettingsService reads and writes the chat settings.
type SettingsService struct {
	repo   configRepository
	cache  Cache
	logger zerolog.Logger
}

func NewSettingsService(repo configRepository, cache Cache, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		cache:  cacheOrNoop(cache),
		logger: logger.With().Str("component", "settings").Logger(),
	}
}

// Current returns the stored settings. Missing documents yield empty fields,
// so an untouched install simply fails SelfCheck.
func (s *SettingsService) Current(ctx context.Context) (*models.Settings, error) {
	if cached, err := s.cache.Get(ctx, settingsCacheKey); err == nil {
		var settings models.Settings
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return &settings, nil
		}
	} else if !errors.Is(err, database.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("settings cache read failed")
	}

	settings := &models.Settings{Hosts: models.HostList{}}

	var general models.GeneralSettings
	updatedAt, err := s.repo.Get(ctx, models.SettingsConfigName, &general)
	switch {
	case errors.Is(err, repository.ErrConfigNotFound):
	case err != nil:
		return nil, err
	default:
		settings.EmailAddress = general.EmailAddress
		settings.BotDisplayName = general.BotDisplayName
		settings.ConversationHeader = general.ConversationHeader
		settings.UpdatedAt = updatedAt
	}

	var servers models.ServerList
	_, err = s.repo.Get(ctx, models.ServerListConfigName, &servers)
	switch {
	case errors.Is(err, repository.ErrConfigNotFound):
	case err != nil:
		return nil, err
	default:
		settings.Hosts = servers.Hosts
	}

	if data, err := json.Marshal(settings); err == nil {
		if err := s.cache.Set(ctx, settingsCacheKey, string(data), settingsCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("settings cache write failed")
		}
	}

	return settings, nil
}

// Update validates and stores new settings.
func (s *SettingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := validateSettings(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.SetMany(ctx, map[string]any{
		models.SettingsConfigName: models.GeneralSettings{
			EmailAddress:       settings.EmailAddress,
			BotDisplayName:     settings.BotDisplayName,
			ConversationHeader: settings.ConversationHeader,
		},
		models.ServerListConfigName: models.ServerList{Hosts: settings.Hosts},
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("settings cache invalidation failed")
	}

	s.logger.Info().Str("host", settings.PrimaryHost()).Int("hosts", len(settings.Hosts)).Msg("settings updated")
	return s.Current(ctx)
}

// Seed stores the settings from a YAML file when none are stored yet.
// It reports whether the seed was applied.
func (s *SettingsService) Seed(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	exists, err := s.repo.Exists(ctx, models.SettingsConfigName)
	if err != nil {
		return false, fmt.Errorf("failed to check stored settings: %w", err)
	}
	if exists {
		return false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read settings seed: %w", err)
	}

	var seed models.SettingsSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return false, fmt.Errorf("failed to parse settings seed: %w", err)
	}

	_, err = s.Update(ctx, models.UpdateSettingsRequest{
		EmailAddress:       seed.Settings.EmailAddress,
		BotDisplayName:     seed.Settings.BotDisplayName,
		ConversationHeader: seed.Settings.ConversationHeader,
		Hosts:              models.HostList(seed.ServerList.Hosts),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func validateSettings(req models.UpdateSettingsRequest) (*models.Settings, error) {
	fieldErrors := make(map[string]string)

	email := strings.TrimSpace(req.EmailAddress)
	if email == "" {
		fieldErrors["email_address"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		fieldErrors["email_address"] = "Invalid email format"
	}

	displayName := strings.TrimSpace(req.BotDisplayName)
	if displayName == "" {
		fieldErrors["bot_display_name"] = "Bot display name is required"
	}

	hosts := models.HostList{}
	for _, h := range req.Hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		normalized, err := normalizeHost(h)
		if err != nil {
			fieldErrors["hosts"] = err.Error()
			break
		}
		hosts = append(hosts, normalized)
	}
	if len(hosts) == 0 && fieldErrors["hosts"] == "" {
		fieldErrors["hosts"] = "At least one host is required"
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	return &models.Settings{
		EmailAddress:       email,
		BotDisplayName:     displayName,
		ConversationHeader: strings.TrimSpace(req.ConversationHeader),
		Hosts:              hosts,
	}, nil
}

// normalizeHost accepts absolute http(s) URLs and strips trailing slashes.
func normalizeHost(host string) (string, error) {
	u, err := url.Parse(host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("Invalid host %q, expected e.g. http://localhost:5000", host)
	}
	return strings.TrimRight(host, "/"), nil
}
