package tokens

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WellFormed(t *testing.T) {
	token := New()

	parsed, err := uuid.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNew_NoCollisionsOnLargeSample(t *testing.T) {
	// Статистическая проверка уникальности, не математическая.
	const sample = 100000

	seen := make(map[string]struct{}, sample)
	for i := 0; i < sample; i++ {
		token := New()
		_, exists := seen[token]
		require.False(t, exists, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
}
