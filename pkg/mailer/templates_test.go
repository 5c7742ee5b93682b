package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, err := Render("welcome", map[string]any{"Username": "ramu"})
	require.NoError(t, err)
	require.NotEmpty(t, subject)
	require.Contains(t, text, "Hari Om ramu")
}

func TestRenderVerificationNotice(t *testing.T) {
	subject, text, err := Render("verification_notice", map[string]any{"Username": "ramu", "Level": 54})
	require.NoError(t, err)
	require.NotEmpty(t, subject)
	require.Contains(t, text, "level 54")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("nope", nil)
	require.Error(t, err)
}
