// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory [auth.UserRepository] for tests.
package authtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// UserRepository keeps users in a map and mirrors the uniqueness rules of the
// users table.
type UserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*auth.User
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*auth.User)}
}

// Seed stores a user directly and returns it with its assigned ID.
func (m *UserRepository) Seed(username string, role sec.Role) *auth.User {
	user := &auth.User{Username: username, Email: username + "@yamdb.test", Role: role}
	if err := m.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// Count returns the number of stored users.
func (m *UserRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *UserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *UserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *UserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Username, username) || strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *UserRepository) List(_ context.Context, filter auth.Filter, limit, offset int) ([]*auth.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*auth.User
	for _, user := range m.users {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			clone := *user
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	offset = min(offset, total)
	return matched[offset:min(offset+limit, total)], total, nil
}

func (m *UserRepository) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkUnique(user); err != nil {
		return err
	}
	m.nextID++
	user.ID = m.nextID
	user.DateJoined = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *UserRepository) Update(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	if err := m.checkUnique(user); err != nil {
		return err
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *UserRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(m.users, id)
	return nil
}

func (m *UserRepository) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (m *UserRepository) checkUnique(user *auth.User) error {
	for id, existing := range m.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperr.Conflict("A user with that username already exists")
		}
		if existing.Email == user.Email {
			return apperr.Conflict("A user with that email already exists")
		}
	}
	return nil
}
