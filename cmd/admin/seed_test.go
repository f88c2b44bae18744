package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	s, err := parseSeed(strings.NewReader(`
users:
  - username: admin
    password: change-me-please
    role: admin
members:
  - name: Marv
    role: Глава клана
    profileUrl: https://example.com/marv
aboutCards:
  - title: Кто мы
    description: Клан
    style: noir-plain
background:
  color: "#000"
  opacity: 0.5
`))
	require.NoError(t, err)

	require.Len(t, s.Users, 1)
	assert.Equal(t, "admin", s.Users[0].Role)

	require.Len(t, s.Members, 1)
	assert.Equal(t, "Marv", s.Members[0].Name)
	require.NotNil(t, s.Members[0].ProfileURL)
	assert.Equal(t, "https://example.com/marv", *s.Members[0].ProfileURL)

	require.Len(t, s.AboutCards, 1)
	assert.Equal(t, "noir-plain", s.AboutCards[0].Style)

	require.NotNil(t, s.Background)
	assert.Equal(t, "#000", *s.Background.Color)
	assert.InDelta(t, 0.5, *s.Background.Opacity, 1e-9)
	assert.Nil(t, s.Background.ImageURL)
}

func TestParseSeed_Errors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		_, err := parseSeed(strings.NewReader("members:\n  - nickname: Marv\n"))
		require.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := parseSeed(strings.NewReader("users:\n  - username: x\n    password: y\n    role: root\n"))
		require.ErrorContains(t, err, "unknown role")
	})

	t.Run("empty file", func(t *testing.T) {
		s, err := parseSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, s.Users)
	})
}

func TestRootCommand(t *testing.T) {
	root := rootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
	assert.True(t, names["user"])

	f := root.PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, "config.toml", f.DefValue)
}
