package gravatar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devconnect-io/devconnect/internal/gravatar"
)

func TestURL(t *testing.T) {
	got := gravatar.URL("alice@example.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060?d=identicon&r=pg&s=200", got)
}

func TestURLNormalizesEmail(t *testing.T) {
	assert.Equal(t, gravatar.URL("alice@example.com"), gravatar.URL("  Alice@Example.COM "))
}

func TestURLDiffersPerEmail(t *testing.T) {
	assert.NotEqual(t, gravatar.URL("a@x.com"), gravatar.URL("b@x.com"))
}
