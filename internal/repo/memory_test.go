package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*Memory)(nil)
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.CreateUser(ctx, "ana", "ana@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = m.CreateUser(ctx, "ana", "other@example.com", "hash2")
	assert.Error(t, err)

	got, hash, err := m.GetBylogin(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "hash", hash)

	got, _, err = m.GetBylogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMemoryProjectsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p1, err := m.CreateProject(ctx, 1, "bridge pier", json.RawMessage(`{"title":"pier"}`))
	require.NoError(t, err)
	_, err = m.CreateProject(ctx, 2, "warehouse", json.RawMessage(`{}`))
	require.NoError(t, err)

	list, err := m.ListProjects(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bridge pier", list[0].Name)
	assert.JSONEq(t, `{"title":"pier"}`, string(list[0].Input))

	got, err := m.GetProject(ctx, 1, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, p1, got)

	_, err = m.GetProject(ctx, 2, p1.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
