package prompt_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nais/grantor/pkg/prompt"
)

func TestValidClientId(t *testing.T) {
	for _, tt := range []struct {
		name      string
		candidate string
		valid     bool
	}{
		{"plain guid", "d667d43b-7f6a-4bfa-b29a-3e4b871b85e6", true},
		{"uppercase guid", "D667D43B-7F6A-4BFA-B29A-3E4B871B85E6", true},
		{"mixed case guid", "D667d43b-7f6A-4bfa-B29a-3e4b871b85E6", true},
		{"braced guid", "{d667d43b-7f6a-4bfa-b29a-3e4b871b85e6}", true},
		{"braced uppercase guid", "{D667D43B-7F6A-4BFA-B29A-3E4B871B85E6}", true},
		{"empty", "", false},
		{"not a guid", "not-a-guid", false},
		{"trailing garbage", "d667d43b-7f6a-4bfa-b29a-3e4b871b85e6x", false},
		{"wrong segment lengths", "d667d43b-7f6a-4bfa-b29a-3e4b871b85", false},
		{"missing dashes", "d667d43b7f6a4bfab29a3e4b871b85e6", false},
		{"unbalanced brace", "{d667d43b-7f6a-4bfa-b29a-3e4b871b85e6", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := prompt.ValidClientId(tt.candidate)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, prompt.ErrInvalidClientId)
			}
		})
	}
}

func TestConfirmWithStdin(t *testing.T) {
	approved, err := prompt.ConfirmWithStdin("proceed", io.NopCloser(strings.NewReader("y\n")))
	assert.NoError(t, err)
	assert.True(t, approved)

	// declining is a clean "no", not an error
	approved, err = prompt.ConfirmWithStdin("proceed", io.NopCloser(strings.NewReader("n\n")))
	assert.NoError(t, err)
	assert.False(t, approved)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "d667d43b-7f6a-4bfa-b29a-3e4b871b85e6", prompt.Normalize("{d667d43b-7f6a-4bfa-b29a-3e4b871b85e6}"))
	assert.Equal(t, "d667d43b-7f6a-4bfa-b29a-3e4b871b85e6", prompt.Normalize("d667d43b-7f6a-4bfa-b29a-3e4b871b85e6"))
}
