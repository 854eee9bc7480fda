package cmd

import (
	"context"
	"slices"
	"sort"
	"sync"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// memory is an in-process stand-in for the three tables
type memory struct {
	mu       sync.Mutex
	seq      int64
	users    []models.User
	matches  []models.Match
	messages []models.Message
}

func (m *memory) next() int64 {
	m.seq++
	return m.seq
}

type memoryUsers struct{ *memory }

func (m memoryUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.users, func(u models.User) bool { return u.Phone == user.Phone }) {
		return repository.ErrConstraintViolation
	}
	user.ID = m.next()
	m.users = append(m.users, *user)
	return nil
}

func (m memoryUsers) get(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.users, match)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	u := m.users[i]
	return &u, nil
}

func (m memoryUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.get(func(u models.User) bool { return u.ID == id })
}

func (m memoryUsers) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return m.get(func(u models.User) bool { return u.Phone == phone })
}

func (m memoryUsers) Replace(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.users, func(u models.User) bool { return u.Phone == user.Phone && u.ID != user.ID }) {
		return repository.ErrConstraintViolation
	}
	i := slices.IndexFunc(m.users, func(u models.User) bool { return u.ID == user.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	m.users[i] = *user
	return nil
}

func (m memoryUsers) filter(keep func(models.User) bool) []*models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.User{}
	for _, u := range m.users {
		if keep(u) {
			out = append(out, &u)
		}
	}
	return out
}

func (m memoryUsers) ListByGender(ctx context.Context, gender string, excludeID int64) ([]*models.User, error) {
	return m.filter(func(u models.User) bool { return u.Gender == gender && u.ID != excludeID }), nil
}

func (m memoryUsers) ListByGenderAndInterest(ctx context.Context, gender, interest string, excludeID int64) ([]*models.User, error) {
	return m.filter(func(u models.User) bool {
		return u.Gender == gender && u.Interest == interest && u.ID != excludeID
	}), nil
}

func (m memoryUsers) DeleteCascade(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.ContainsFunc(m.users, func(u models.User) bool { return u.ID == id }) {
		return repository.ErrNotFound
	}
	m.users = slices.DeleteFunc(m.users, func(u models.User) bool { return u.ID == id })
	m.messages = slices.DeleteFunc(m.messages, func(msg models.Message) bool {
		return msg.SenderID == id || msg.ReceiverID == id
	})
	m.matches = slices.DeleteFunc(m.matches, func(match models.Match) bool { return match.HasUser(id) })
	return nil
}

type memoryMatches struct{ *memory }

func (m memoryMatches) Create(ctx context.Context, match *models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	match.ID = m.next()
	m.matches = append(m.matches, *match)
	return nil
}

func (m memoryMatches) Exists(ctx context.Context, initiatorID, targetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.matches, func(match models.Match) bool {
		return match.InitiatorID == initiatorID && match.TargetID == targetID
	}), nil
}

func (m memoryMatches) ListByUser(ctx context.Context, userID int64) ([]*models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Match{}
	for i := len(m.matches) - 1; i >= 0; i-- {
		if match := m.matches[i]; match.HasUser(userID) {
			out = append(out, &match)
		}
	}
	return out, nil
}

type memoryMessages struct{ *memory }

func (m memoryMessages) Create(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.next()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m memoryMessages) Conversation(ctx context.Context, a, b int64) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Message{}
	for _, msg := range m.messages {
		if (msg.SenderID == a && msg.ReceiverID == b) || (msg.SenderID == b && msg.ReceiverID == a) {
			out = append(out, &msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
