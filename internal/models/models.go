package models

import "time"

// DefaultImage is the profile image used until a valid upload is supplied
const DefaultImage = "default.jpg"

// User represents a registered person
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	Interest     string `json:"interest"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	PasswordHash string `json:"-"`
	BirthDate    string `json:"birth_date"`
	Image        string `json:"image"`
}

// Match is one user's recorded interest in another
type Match struct {
	ID          int64     `json:"id"`
	InitiatorID int64     `json:"initiator_id"`
	TargetID    int64     `json:"target_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasUser reports whether userID is either side of the match
func (m *Match) HasUser(userID int64) bool {
	return m.InitiatorID == userID || m.TargetID == userID
}

// OtherUserID returns the id on the opposite side of userID
func (m *Match) OtherUserID(userID int64) (int64, bool) {
	switch userID {
	case m.InitiatorID:
		return m.TargetID, true
	case m.TargetID:
		return m.InitiatorID, true
	}
	return 0, false
}

// MessageKind tags a message payload; it never changes after creation
type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindGift  MessageKind = "gift"
)

// IsValid reports whether k is one of the stored kinds
func (k MessageKind) IsValid() bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindGift:
		return true
	}
	return false
}

// Message is one chat event between two users
type Message struct {
	ID         int64       `json:"id"`
	SenderID   int64       `json:"sender_id"`
	ReceiverID int64       `json:"receiver_id"`
	Content    string      `json:"content"`
	Kind       MessageKind `json:"kind"`
	CreatedAt  time.Time   `json:"created_at"`
}
