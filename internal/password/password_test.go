package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "secret1", digest)

	assert.True(t, Verify("secret1", digest))
	assert.False(t, Verify("wrongpass", digest))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("secret1")
	assert.NoError(t, err)
	b, err := Hash("secret1")
	assert.NoError(t, err)

	// bcrypt embeds a random salt, so two digests of the same input differ
	// while both still verify.
	assert.NotEqual(t, a, b)
	assert.True(t, Verify("secret1", a))
	assert.True(t, Verify("secret1", b))
}

func TestVerify_MalformedDigest(t *testing.T) {
	assert.False(t, Verify("secret1", ""))
	assert.False(t, Verify("secret1", "not-a-bcrypt-digest"))
}
