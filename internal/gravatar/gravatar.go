// Package gravatar derives deterministic avatar URLs from email
// addresses per the Gravatar URL scheme.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const (
	defaultSize    = "200"
	defaultRating  = "pg"
	defaultDefault = "identicon"
)

// URL returns the avatar URL for an email: md5 of the trimmed,
// lowercased address, with fixed size, rating and identicon fallback.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	query := url.Values{}
	query.Set("s", defaultSize)
	query.Set("r", defaultRating)
	query.Set("d", defaultDefault)

	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?%s", hex.EncodeToString(sum[:]), query.Encode())
}
