package model

import "testing"

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{MessageStatusSending, MessageStatusSent, true},
		{MessageStatusSent, MessageStatusDelivered, true},
		{MessageStatusDelivered, MessageStatusRead, true},
		{MessageStatusSending, MessageStatusDelivered, false},
		{MessageStatusSent, MessageStatusSending, false},
		{MessageStatusRead, MessageStatusDelivered, false},
		{MessageStatusRead, MessageStatusRead, false},
		{MessageStatusSending, MessageStatusFailed, true},
		{MessageStatusSent, MessageStatusFailed, true},
		{MessageStatusDelivered, MessageStatusFailed, false},
		{MessageStatusRead, MessageStatusFailed, false},
		{MessageStatusFailed, MessageStatusSending, true},
		{MessageStatusFailed, MessageStatusSent, false},
		{MessageStatusFailed, MessageStatusRead, false},
		{"unknown", MessageStatusSent, false},
		{MessageStatusSending, "unknown", false},
	}

	for _, tt := range tests {
		if got := CanAdvance(tt.from, tt.to); got != tt.want {
			t.Errorf("CanAdvance(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
