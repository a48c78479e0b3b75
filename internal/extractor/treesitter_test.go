package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDocstring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "Do the thing.", "Do the thing."},
		{"leading whitespace on first line", "  Do the thing.", "Do the thing."},
		{
			"common indentation removed",
			"Summary.\n\n    Detail one.\n    Detail two.\n",
			"Summary.\n\nDetail one.\nDetail two.",
		},
		{
			"uneven indentation keeps relative depth",
			"Summary.\n    Detail.\n        Nested.\n",
			"Summary.\nDetail.\n    Nested.",
		},
		{"surrounding blank lines trimmed", "\nBody.\n\n", "Body."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanDocstring(tt.in))
		})
	}
}

func TestIsConstantName(t *testing.T) {
	t.Parallel()

	assert.True(t, isConstantName("MAX_USERS"))
	assert.True(t, isConstantName("X"))
	assert.True(t, isConstantName("HTTP_404"))
	assert.False(t, isConstantName("maxUsers"))
	assert.False(t, isConstantName("Max"))
	assert.False(t, isConstantName("_"))
	assert.False(t, isConstantName(""))
	assert.False(t, isConstantName("__all__"))
}
