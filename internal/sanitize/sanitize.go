// Package sanitize strips markup from caller-supplied strings before
// they reach validation, uniqueness checks or the store.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Clean removes every tag, unescapes the entities the policy re-encodes
// and trims surrounding whitespace. Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
