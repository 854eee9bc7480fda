package models

import "testing"

func TestMessageKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     MessageKind
		expected bool
	}{
		{name: "text", kind: MessageKindText, expected: true},
		{name: "image", kind: MessageKindImage, expected: true},
		{name: "gift", kind: MessageKindGift, expected: true},
		{name: "unknown", kind: MessageKind("video"), expected: false},
		{name: "empty", kind: MessageKind(""), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.expected {
				t.Errorf("IsValid() for kind %q got = %v, want %v", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestMatch_OtherUserID(t *testing.T) {
	m := Match{InitiatorID: 1, TargetID: 2}

	tests := []struct {
		name   string
		userID int64
		want   int64
		ok     bool
	}{
		{name: "initiator", userID: 1, want: 2, ok: true},
		{name: "target", userID: 2, want: 1, ok: true},
		{name: "stranger", userID: 3, want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.OtherUserID(tt.userID)
			if got != tt.want || ok != tt.ok {
				t.Errorf("OtherUserID(%d) got = (%d, %v), want (%d, %v)", tt.userID, got, ok, tt.want, tt.ok)
			}
			if m.HasUser(tt.userID) != tt.ok {
				t.Errorf("HasUser(%d) got = %v, want %v", tt.userID, !tt.ok, tt.ok)
			}
		})
	}
}
