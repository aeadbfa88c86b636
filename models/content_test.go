package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHashOf(t *testing.T) {
	h1 := ContentHashOf("http://x.com", "T", "B")
	h2 := ContentHashOf("http://x.com", "T", "B")
	assert.Equal(t, h1, h2, "mesmos campos devem gerar o mesmo hash")
	assert.Len(t, h1, 64)

	h3 := ContentHashOf("http://x.com", "T", "outro body")
	assert.NotEqual(t, h1, h3)
}

func TestContentHashOfMissingFields(t *testing.T) {
	// Campos ausentes entram como vazio e o hash continua determinístico.
	h1 := ContentHashOf("", "", "")
	h2 := ContentHashOf("", "", "")
	assert.Equal(t, h1, h2)

	// O delimitador não pode deixar campos "escorregarem" um pro outro.
	assert.NotEqual(t, ContentHashOf("ab", "", ""), ContentHashOf("a", "b", ""))
	assert.NotEqual(t, ContentHashOf("", "ab", ""), ContentHashOf("", "a", "b"))
}

func TestContentVisibilityPredicates(t *testing.T) {
	private := Content{UserID: 1, Visibility: CONTENT_VISIBILITY_PRIVATE}
	public := Content{UserID: 1, Visibility: CONTENT_VISIBILITY_PUBLIC}

	assert.True(t, private.CanBeSeenBy(1))
	assert.False(t, private.CanBeSeenBy(2))
	assert.True(t, public.CanBeSeenBy(2))

	assert.True(t, private.IsOwnedBy(1))
	assert.False(t, private.IsOwnedBy(2))

	// Item sem dono (user_id = 0) nunca é "owned", nem por userID 0.
	orphan := Content{UserID: 0, Visibility: CONTENT_VISIBILITY_PRIVATE}
	assert.False(t, orphan.IsOwnedBy(0))
	assert.False(t, orphan.CanBeSeenBy(0))
}
