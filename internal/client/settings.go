// ABOUTME: Settings endpoints: API keys, notifications, and favorite addresses
// ABOUTME: These routes use a {success, data, message} envelope

package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API key types
const (
	APIKeyGemini    = "gemini"
	APIKeyWeather   = "weather"
	APIKeyOpenRoute = "openroute"
)

// APIKeyTypes lists the accepted API key types
var APIKeyTypes = []string{APIKeyGemini, APIKeyWeather, APIKeyOpenRoute}

// APIKeyConfig is a bring-your-own-key setting for one provider
type APIKeyConfig struct {
	Type          string     `json:"type"`
	UseOwnKey     bool       `json:"useOwnKey"`
	Key           string     `json:"key,omitempty"`
	IsValid       *bool      `json:"isValid,omitempty"`
	LastValidated *time.Time `json:"lastValidated,omitempty"`
}

// ScheduledNotification is a daily message at a fixed time
type ScheduledNotification struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// FinancialAlerts warns ahead of bill due dates
type FinancialAlerts struct {
	Enabled       bool `json:"enabled"`
	DaysBeforeDue int  `json:"daysBeforeDue"`
}

// NotificationConfig holds the user's notification preferences
type NotificationConfig struct {
	MorningBriefing ScheduledNotification `json:"morningBriefing"`
	EveningCheckIn  ScheduledNotification `json:"eveningCheckIn"`
	FinancialAlerts FinancialAlerts       `json:"financialAlerts"`
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FavoriteAddress is a labelled address such as "Casa" or "Trabalho"
type FavoriteAddress struct {
	ID          string       `json:"id,omitempty"`
	Label       string       `json:"label"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	IsDefault   bool         `json:"isDefault,omitempty"`
}

// Preferences are general user preferences
type Preferences struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

// UserSettings is the full settings document of a user
type UserSettings struct {
	UserID        string             `json:"userId"`
	APIKeys       []APIKeyConfig     `json:"apiKeys"`
	Notifications NotificationConfig `json:"notifications"`
	Addresses     []FavoriteAddress  `json:"addresses"`
	Preferences   Preferences        `json:"preferences"`
}

// HasOwnAPIKeys reports whether any provider uses a user-supplied key
func (s *UserSettings) HasOwnAPIKeys() bool {
	for _, k := range s.APIKeys {
		if k.UseOwnKey && k.Key != "" {
			return true
		}
	}
	return false
}

// AllNotificationsDisabled reports whether every notification is off
func (n NotificationConfig) AllNotificationsDisabled() bool {
	return !n.MorningBriefing.Enabled && !n.EveningCheckIn.Enabled && !n.FinancialAlerts.Enabled
}

// Validate checks an API key setting
func (k APIKeyConfig) Validate() error {
	if !validAPIKeyType(k.Type) {
		return invalid("type must be one of %s", strings.Join(APIKeyTypes, ", "))
	}
	if k.UseOwnKey && strings.TrimSpace(k.Key) == "" {
		return invalid("key is required when using your own key")
	}
	return nil
}

// Validate checks notification times and alert lead time
func (n NotificationConfig) Validate() error {
	if n.MorningBriefing.Enabled && !validClock(n.MorningBriefing.Time) {
		return invalid("morning briefing time must be HH:MM")
	}
	if n.EveningCheckIn.Enabled && !validClock(n.EveningCheckIn.Time) {
		return invalid("evening check-in time must be HH:MM")
	}
	if n.FinancialAlerts.Enabled && (n.FinancialAlerts.DaysBeforeDue < 1 || n.FinancialAlerts.DaysBeforeDue > 31) {
		return invalid("days before due must be between 1 and 31")
	}
	return nil
}

// Validate checks a favorite address
func (a FavoriteAddress) Validate() error {
	if strings.TrimSpace(a.Label) == "" {
		return invalid("label is required")
	}
	if strings.TrimSpace(a.Address) == "" {
		return invalid("address is required")
	}
	return nil
}

// settingsEnvelope is the wrapper used by the settings routes
type settingsEnvelope struct {
	Success bool          `json:"success"`
	Data    *UserSettings `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (c *Client) settingsCall(ctx context.Context, method, path string, body any, fallback string) (*UserSettings, error) {
	var env settingsEnvelope
	if err := c.do(ctx, method, path, nil, body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejected(env.Message, fallback)
	}
	return env.Data, nil
}

// LoadSettings calls GET /settings/{userId}
func (c *Client) LoadSettings(ctx context.Context, userID string) (*UserSettings, error) {
	if userID == "" {
		return nil, invalid("user id is required")
	}
	s, err := c.settingsCall(ctx, http.MethodGet, "/settings/"+url.PathEscape(userID), nil, "could not load settings")
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, rejected("", "could not load settings")
	}
	return s, nil
}

// UpdateAPIKey calls POST /api-keys/preferencias/{userId}
func (c *Client) UpdateAPIKey(ctx context.Context, userID string, key APIKeyConfig) error {
	if userID == "" {
		return invalid("user id is required")
	}
	if err := key.Validate(); err != nil {
		return err
	}
	_, err := c.settingsCall(ctx, http.MethodPost, "/api-keys/preferencias/"+url.PathEscape(userID), key, "could not update API key")
	return err
}

// ValidateAPIKey calls POST /api-keys/validate and reports whether the
// provider accepted the key. Transport and HTTP failures are returned, not
// folded into false.
func (c *Client) ValidateAPIKey(ctx context.Context, keyType, key string) (bool, error) {
	if !validAPIKeyType(keyType) {
		return false, invalid("type must be one of %s", strings.Join(APIKeyTypes, ", "))
	}
	if strings.TrimSpace(key) == "" {
		return false, invalid("key is required")
	}

	var resp struct {
		Valid bool `json:"valid"`
	}
	body := map[string]string{"type": keyType, "key": key}
	if err := c.do(ctx, http.MethodPost, "/api-keys/validate", nil, body, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// UpdateNotifications calls POST /calendar-alerts/config/{userId}
func (c *Client) UpdateNotifications(ctx context.Context, userID string, cfg NotificationConfig) error {
	if userID == "" {
		return invalid("user id is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err := c.settingsCall(ctx, http.MethodPost, "/calendar-alerts/config/"+url.PathEscape(userID), cfg, "could not update notifications")
	return err
}

// AddAddress calls POST /addresses/{userId}
func (c *Client) AddAddress(ctx context.Context, userID string, addr FavoriteAddress) error {
	if userID == "" {
		return invalid("user id is required")
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	_, err := c.settingsCall(ctx, http.MethodPost, "/addresses/"+url.PathEscape(userID), addr, "could not add address")
	return err
}

// RemoveAddress calls DELETE /addresses/{userId}/{addressId}
func (c *Client) RemoveAddress(ctx context.Context, userID, addressID string) error {
	if userID == "" || addressID == "" {
		return invalid("user id and address id are required")
	}
	path := "/addresses/" + url.PathEscape(userID) + "/" + url.PathEscape(addressID)
	_, err := c.settingsCall(ctx, http.MethodDelete, path, nil, "could not remove address")
	return err
}

func validAPIKeyType(t string) bool {
	for _, kt := range APIKeyTypes {
		if t == kt {
			return true
		}
	}
	return false
}

// validClock accepts 24-hour HH:MM
func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
