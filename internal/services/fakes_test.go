package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// memDB mirrors the three tables closely enough for service tests
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	users    []*models.User
	matches  []*models.Match
	messages []*models.Message
}

func newMemDB() *memDB {
	return &memDB{}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Phone == user.Phone {
			return fmt.Errorf("phone %q: %w", user.Phone, repository.ErrConstraintViolation)
		}
	}
	user.ID = r.db.id()
	cp := *user
	r.db.users = append(r.db.users, &cp)
	return nil
}

func (r memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUsers) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Phone == phone })
}

func (r memUsers) Replace(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Phone == user.Phone && u.ID != user.ID {
			return repository.ErrConstraintViolation
		}
	}
	for i, u := range r.db.users {
		if u.ID == user.ID {
			cp := *user
			r.db.users[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memUsers) list(match func(*models.User) bool) []*models.User {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.db.users {
		if match(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func (r memUsers) ListByGender(ctx context.Context, gender string, excludeID int64) ([]*models.User, error) {
	return r.list(func(u *models.User) bool { return u.Gender == gender && u.ID != excludeID }), nil
}

func (r memUsers) ListByGenderAndInterest(ctx context.Context, gender, interest string, excludeID int64) ([]*models.User, error) {
	return r.list(func(u *models.User) bool {
		return u.Gender == gender && u.Interest == interest && u.ID != excludeID
	}), nil
}

func (r memUsers) DeleteCascade(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	before := len(r.db.users)
	r.db.users = slices.DeleteFunc(r.db.users, func(u *models.User) bool { return u.ID == id })
	if len(r.db.users) == before {
		return repository.ErrNotFound
	}
	r.db.messages = slices.DeleteFunc(r.db.messages, func(m *models.Message) bool {
		return m.SenderID == id || m.ReceiverID == id
	})
	r.db.matches = slices.DeleteFunc(r.db.matches, func(m *models.Match) bool { return m.HasUser(id) })
	return nil
}

type memMatches struct{ db *memDB }

func (r memMatches) Create(ctx context.Context, match *models.Match) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	match.ID = r.db.id()
	cp := *match
	r.db.matches = append(r.db.matches, &cp)
	return nil
}

func (r memMatches) Exists(ctx context.Context, initiatorID, targetID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.matches {
		if m.InitiatorID == initiatorID && m.TargetID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (r memMatches) ListByUser(ctx context.Context, userID int64) ([]*models.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.Match{}
	for i := len(r.db.matches) - 1; i >= 0; i-- {
		if m := r.db.matches[i]; m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMessages struct{ db *memDB }

func (r memMessages) Create(ctx context.Context, msg *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	msg.ID = r.db.id()
	cp := *msg
	r.db.messages = append(r.db.messages, &cp)
	return nil
}

func (r memMessages) Conversation(ctx context.Context, a, b int64) ([]*models.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.Message{}
	for _, m := range r.db.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			cp := *m
			out = append(out, &cp)
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

// memStore is an in-memory storage.Store
type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStore(seed map[string]string) *memStore {
	s := &memStore{files: map[string][]byte{}}
	for k, v := range seed {
		s.files[k] = []byte(v)
	}
	return s
}

func (s *memStore) Save(ctx context.Context, dir, name string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[dir+"/"+name] = data
	return nil
}

func (s *memStore) List(ctx context.Context, dir string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for key := range s.files {
		if d, name, ok := strings.Cut(key, "/"); ok && d == dir {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) URL(ctx context.Context, dir, name string) (string, error) {
	return "/static/" + dir + "/" + name, nil
}

func (s *memStore) has(dir, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[dir+"/"+name]
	return ok
}
