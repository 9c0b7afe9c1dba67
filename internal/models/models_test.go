package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "hola")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "hola" {
		t.Errorf("Content = %q, want %q", msg.Content, "hola")
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Errorf("ID %q is not a valid UUID: %v", msg.ID, err)
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		msg := NewMessage(RoleAssistant, "x")
		if seen[msg.ID] {
			t.Fatalf("duplicate ID after %d messages: %s", i, msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessageRoles(t *testing.T) {
	tests := []struct {
		role          Role
		wantUser      bool
		wantAssistant bool
	}{
		{RoleUser, true, false},
		{RoleAssistant, false, true},
		{RoleSystem, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			msg := Message{Role: tt.role}
			if msg.IsUser() != tt.wantUser {
				t.Errorf("IsUser() = %v, want %v", msg.IsUser(), tt.wantUser)
			}
			if msg.IsAssistant() != tt.wantAssistant {
				t.Errorf("IsAssistant() = %v, want %v", msg.IsAssistant(), tt.wantAssistant)
			}
		})
	}
}

func TestDefaultSamplingOptions(t *testing.T) {
	opts := DefaultSamplingOptions()

	if opts.Temperature != 1 {
		t.Errorf("Temperature = %v, want 1", opts.Temperature)
	}
	if opts.TopP != 0.95 {
		t.Errorf("TopP = %v, want 0.95", opts.TopP)
	}
	if opts.TopK != 64 {
		t.Errorf("TopK = %v, want 64", opts.TopK)
	}
	if opts.MaxTokens != 512 {
		t.Errorf("MaxTokens = %v, want 512", opts.MaxTokens)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default options should be valid: %v", err)
	}
}

func TestSamplingOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*SamplingOptions)
		wantErr bool
	}{
		{"defaults", func(o *SamplingOptions) {}, false},
		{"zero temperature", func(o *SamplingOptions) { o.Temperature = 0 }, false},
		{"negative temperature", func(o *SamplingOptions) { o.Temperature = -0.1 }, true},
		{"top_p above one", func(o *SamplingOptions) { o.TopP = 1.5 }, true},
		{"negative top_k", func(o *SamplingOptions) { o.TopK = -1 }, true},
		{"negative max_tokens", func(o *SamplingOptions) { o.MaxTokens = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultSamplingOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders()

	if headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", headers["Content-Type"])
	}
	if _, ok := headers["Authorization"]; ok {
		t.Error("DefaultHeaders should not carry credentials")
	}
}
