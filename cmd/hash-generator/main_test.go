package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-cost", "4", "demo", "тест123"}, &stdout, &stderr)
	require.NoError(t, err)

	blocks := strings.Split(strings.TrimSpace(stdout.String()), "\n\n")
	require.Len(t, blocks, 2)
	for i, password := range []string{"demo", "тест123"} {
		lines := strings.Split(blocks[i], "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Password: "+password, lines[0])

		hash := strings.TrimPrefix(lines[1], "Hash: ")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)))
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, 4, cost)
	}
}

func TestRun_NoPasswords(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.ErrorIs(t, run(nil, &stdout, &stderr), errNoPasswords)
}

func TestRun_EmptyPassword(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{"-cost", "4", ""}, &stdout, &stderr))
}
