// ABOUTME: Tests for settings endpoints
// ABOUTME: Validates the success envelope, BYOK validation, and address management

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoadSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/settings/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"success": true,
			"data": {
				"userId": "7",
				"apiKeys": [{"type": "gemini", "useOwnKey": true, "key": "k-123", "isValid": true}],
				"notifications": {
					"morningBriefing": {"enabled": true, "time": "07:30"},
					"eveningCheckIn": {"enabled": false, "time": "21:00"},
					"financialAlerts": {"enabled": true, "daysBeforeDue": 3}
				},
				"addresses": [{"id": "a1", "label": "Casa", "address": "Rua A, 1", "isDefault": true}],
				"preferences": {"language": "pt-BR", "timezone": "America/Sao_Paulo", "currency": "BRL"}
			}
		}`))
	}))
	defer server.Close()

	s, err := New(server.URL).LoadSettings(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasOwnAPIKeys() {
		t.Error("expected own API key to be detected")
	}
	if s.Notifications.MorningBriefing.Time != "07:30" || s.Notifications.FinancialAlerts.DaysBeforeDue != 3 {
		t.Errorf("unexpected notifications %+v", s.Notifications)
	}
	if s.Notifications.AllNotificationsDisabled() {
		t.Error("expected some notifications enabled")
	}
	if len(s.Addresses) != 1 || !s.Addresses[0].IsDefault {
		t.Errorf("unexpected addresses %+v", s.Addresses)
	}
	if s.Preferences.Currency != "BRL" {
		t.Errorf("unexpected preferences %+v", s.Preferences)
	}
}

func TestLoadSettings_Unsuccessful(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, 200, map[string]any{"success": false, "message": "usuário não encontrado"}))
	defer server.Close()

	_, err := New(server.URL).LoadSettings(context.Background(), "7")
	if !errors.Is(err, ErrRejected) || err.Error() != "usuário não encontrado" {
		t.Errorf("expected rejected with server message, got %v", err)
	}
}

func TestSettingsMutations(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		json.NewDecoder(r.Body).Decode(&c.body)
		calls = append(calls, c)
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	if err := c.UpdateAPIKey(ctx, "7", APIKeyConfig{Type: APIKeyWeather, UseOwnKey: true, Key: "w-1"}); err != nil {
		t.Fatalf("UpdateAPIKey() error: %v", err)
	}
	notif := NotificationConfig{
		MorningBriefing: ScheduledNotification{Enabled: true, Time: "08:00"},
		FinancialAlerts: FinancialAlerts{Enabled: true, DaysBeforeDue: 5},
	}
	if err := c.UpdateNotifications(ctx, "7", notif); err != nil {
		t.Fatalf("UpdateNotifications() error: %v", err)
	}
	if err := c.AddAddress(ctx, "7", FavoriteAddress{Label: "Trabalho", Address: "Av. Paulista, 1000"}); err != nil {
		t.Fatalf("AddAddress() error: %v", err)
	}
	if err := c.RemoveAddress(ctx, "7", "a1"); err != nil {
		t.Fatalf("RemoveAddress() error: %v", err)
	}

	expected := []struct{ method, path string }{
		{http.MethodPost, "/api-keys/preferencias/7"},
		{http.MethodPost, "/calendar-alerts/config/7"},
		{http.MethodPost, "/addresses/7"},
		{http.MethodDelete, "/addresses/7/a1"},
	}
	if len(calls) != len(expected) {
		t.Fatalf("expected %d calls, got %d", len(expected), len(calls))
	}
	for i, e := range expected {
		if calls[i].method != e.method || calls[i].path != e.path {
			t.Errorf("call %d: expected %s %s, got %s %s", i, e.method, e.path, calls[i].method, calls[i].path)
		}
	}
	if calls[0].body["useOwnKey"] != true || calls[0].body["type"] != "weather" {
		t.Errorf("unexpected API key body %v", calls[0].body)
	}
	if calls[2].body["label"] != "Trabalho" {
		t.Errorf("unexpected address body %v", calls[2].body)
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected bool
		err      error
	}{
		{"valid", 200, `{"valid": true}`, true, nil},
		{"invalid", 200, `{"valid": false}`, false, nil},
		{"server error is not folded into false", 500, ``, false, ErrServer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api-keys/validate" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["type"] != "gemini" || body["key"] != "k-1" {
					t.Errorf("unexpected body %v", body)
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			ok, err := New(server.URL).ValidateAPIKey(context.Background(), APIKeyGemini, "k-1")
			if ok != tc.expected {
				t.Errorf("expected %t, got %t", tc.expected, ok)
			}
			if tc.err == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestSettingsValidation(t *testing.T) {
	c := New("http://127.0.0.1:0")
	ctx := context.Background()

	checks := []struct {
		name string
		err  error
	}{
		{"unknown key type", c.UpdateAPIKey(ctx, "7", APIKeyConfig{Type: "openai"})},
		{"own key without key", c.UpdateAPIKey(ctx, "7", APIKeyConfig{Type: APIKeyGemini, UseOwnKey: true})},
		{"missing user", c.UpdateAPIKey(ctx, "", APIKeyConfig{Type: APIKeyGemini})},
		{"bad morning time", c.UpdateNotifications(ctx, "7", NotificationConfig{MorningBriefing: ScheduledNotification{Enabled: true, Time: "7:30"}})},
		{"bad evening time", c.UpdateNotifications(ctx, "7", NotificationConfig{EveningCheckIn: ScheduledNotification{Enabled: true, Time: "25:00"}})},
		{"bad alert days", c.UpdateNotifications(ctx, "7", NotificationConfig{FinancialAlerts: FinancialAlerts{Enabled: true}})},
		{"address without label", c.AddAddress(ctx, "7", FavoriteAddress{Address: "Rua A"})},
		{"address without address", c.AddAddress(ctx, "7", FavoriteAddress{Label: "Casa"})},
		{"remove without id", c.RemoveAddress(ctx, "7", "")},
	}

	for _, tc := range checks {
		if !errors.Is(tc.err, ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, tc.err)
		}
	}

	if _, err := c.ValidateAPIKey(ctx, "openai", "k"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for unknown type, got %v", err)
	}

	// Disabled notifications skip time checks
	if err := (NotificationConfig{MorningBriefing: ScheduledNotification{Time: "bogus"}}).Validate(); err != nil {
		t.Errorf("expected disabled notification to pass, got %v", err)
	}
}
