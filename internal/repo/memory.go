package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process Repository for tests and database-less runs.
type Memory struct {
	mu       sync.Mutex
	users    map[string]memUser
	projects []Project
	now      func() time.Time
}

type memUser struct {
	id    int
	email string
	hash  string
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]memUser), now: time.Now}
}

func (m *Memory) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, fmt.Errorf("user %q already exists", login)
	}
	id := len(m.users) + 1
	m.users[login] = memUser{id: id, email: email, hash: password}
	return id, nil
}

func (m *Memory) GetBylogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *Memory) CreateProject(_ context.Context, ownerID int, name string, input json.RawMessage) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	p := Project{
		ID:        len(m.projects) + 1,
		OwnerID:   ownerID,
		Name:      name,
		Input:     append(json.RawMessage(nil), input...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.projects = append(m.projects, p)
	return p, nil
}

func (m *Memory) ListProjects(_ context.Context, ownerID int) ([]Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Project
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) GetProject(_ context.Context, ownerID, id int) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id && p.OwnerID == ownerID {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}
