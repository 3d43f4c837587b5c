package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenza/internal/adapters/httpapi"
	"evenza/internal/domain/entities"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "stats", "token"} {
		assert.True(t, names[want], want)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORE", "memory")
	t.Setenv("APP_ENV", "test")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--sub", "u42", "--role", "ADMIN", "--email", "ops@evenza.test"})
	require.NoError(t, root.Execute())

	u, err := httpapi.NewTokenVerifier("cli-secret").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, entities.User{ID: "u42", Email: "ops@evenza.test", Role: entities.RoleAdmin}, u)
}

func TestStatsCommand_MemoryStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORE", "memory")
	t.Setenv("APP_ENV", "test")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"stats"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"averageFillRate": 0`)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORE", "memory")
	t.Setenv("APP_ENV", "test")

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "up"})
	assert.ErrorContains(t, root.Execute(), "STORE=postgres")
}
