package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_Verification(t *testing.T) {
	body, err := renderTemplate(verificationTemplate, linkEmailData{
		Username: "alice",
		Link:     "http://localhost:3000/verify-email/raw-token",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Welcome, alice!")
	assert.Contains(t, body, `href="http://localhost:3000/verify-email/raw-token"`)
}

func TestRenderTemplate_PasswordReset(t *testing.T) {
	body, err := renderTemplate(passwordResetTemplate, linkEmailData{
		Username: "alice",
		Link:     "http://localhost:3000/reset-password/raw-token",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi alice,")
	assert.Contains(t, body, `href="http://localhost:3000/reset-password/raw-token"`)
}

func TestRenderTemplate_EscapesUsername(t *testing.T) {
	body, err := renderTemplate(verificationTemplate, linkEmailData{
		Username: "<script>alert(1)</script>",
		Link:     "http://localhost:3000/verify-email/raw-token",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>alert(1)</script>")
}
