package gitlab

import (
	nethttp "net/http"
	"strings"
)

// nextPageURL extracts the rel="next" target from an RFC 5988 style
// Link header: a comma-separated list of `<url>; rel="relation"`
// entries. Returns "" when no next relation is present.
func nextPageURL(header nethttp.Header) string {
	link := header.Get("Link")
	if link == "" {
		return ""
	}
	for _, entry := range strings.Split(link, ",") {
		target, rel, found := strings.Cut(entry, ";")
		if !found || !strings.Contains(rel, "next") {
			continue
		}
		return strings.Trim(strings.TrimSpace(target), "<>")
	}
	return ""
}
