package identity

import (
	"testing"

	"github.com/emrgen/mapshare/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		participant model.Participant
		want        string
	}{
		{"full name", model.Participant{GivenName: "Alice", FamilyName: "Nguyen"}, "Alice Nguyen"},
		{"given only", model.Participant{GivenName: "Alice"}, "Alice"},
		{"family only", model.Participant{FamilyName: "Nguyen"}, "Nguyen"},
		{"email local part", model.Participant{Email: "alice@example.com"}, "alice"},
		{"nothing known", model.Participant{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(&tt.participant))
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name        string
		participant model.Participant
		want        string
	}{
		{"full name", model.Participant{GivenName: "alice", FamilyName: "nguyen"}, "AN"},
		{"given only", model.Participant{GivenName: "Alice"}, "A"},
		{"email", model.Participant{Email: "bob@example.com"}, "B"},
		{"nothing known", model.Participant{}, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(&tt.participant))
		})
	}
}

func TestAvatarColorDeterministic(t *testing.T) {
	first := AvatarColor("user-1")
	second := AvatarColor("user-1")
	assert.Equal(t, first, second)
	assert.Contains(t, avatarPalette, first)
}

func TestDisplayOfName(t *testing.T) {
	display := DisplayOfName("Alice Nguyen")
	assert.Equal(t, "Alice Nguyen", display.Name)
	assert.Equal(t, "AN", display.Initials)

	display = DisplayOfName("Alice")
	assert.Equal(t, "A", display.Initials)

	display = DisplayOfName("  ")
	assert.Equal(t, "Unknown", display.Name)
	assert.Equal(t, "?", display.Initials)
}
