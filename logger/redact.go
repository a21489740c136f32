package logger

import (
	"net/url"
	"strings"
)

// DefaultMask is the replacement value for redacted credential material.
const DefaultMask = "***"

// RedactorConfig controls which log fields and URL query parameters are
// treated as credential material.
type RedactorConfig struct {
	// SensitiveKeys are field or header names whose values are masked
	// entirely. Matching is case-insensitive on substrings.
	SensitiveKeys []string
	// QueryParams are URL query parameter names whose values are masked
	// when a URL is logged. Matching is case-insensitive and exact.
	QueryParams []string
	// Mask replaces redacted values (default "***").
	Mask string
}

// DefaultRedactorConfig covers the credential surfaces of token-authenticated
// REST APIs: token headers, authorization headers, and token query parameters.
func DefaultRedactorConfig() *RedactorConfig {
	return &RedactorConfig{
		SensitiveKeys: []string{
			"private-token", "private_token",
			"token", "authorization", "password", "secret",
		},
		QueryParams: []string{"private_token", "access_token", "token"},
		Mask:        DefaultMask,
	}
}

// Redactor masks credential material in log fields. A nil Redactor is
// inert; the zero value from NewRedactor(nil) uses the default config.
type Redactor struct {
	config *RedactorConfig
}

// NewRedactor creates a Redactor with the given configuration, falling
// back to DefaultRedactorConfig when config is nil.
func NewRedactor(config *RedactorConfig) *Redactor {
	if config == nil {
		config = DefaultRedactorConfig()
	}
	if config.Mask == "" {
		config.Mask = DefaultMask
	}
	return &Redactor{config: config}
}

// String redacts a string field value. Sensitive keys mask the whole
// value; URL-shaped values get their sensitive query parameters masked.
func (r *Redactor) String(key, value string) string {
	if r.isSensitiveKey(key) {
		if value == "" {
			return value
		}
		return r.config.Mask
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return r.redactURL(value)
	}
	return value
}

// Value redacts an arbitrary field value. Maps are filtered per key;
// everything else passes through unless the field key itself is sensitive.
func (r *Redactor) Value(key string, value any) any {
	if r.isSensitiveKey(key) {
		return r.config.Mask
	}
	switch m := value.(type) {
	case map[string]string:
		filtered := make(map[string]string, len(m))
		for k, v := range m {
			filtered[k] = r.String(k, v)
		}
		return filtered
	case map[string]any:
		return r.Fields(m)
	default:
		return value
	}
}

// Fields redacts a field map, applying Value per entry.
func (r *Redactor) Fields(fields map[string]any) map[string]any {
	filtered := make(map[string]any, len(fields))
	for k, v := range fields {
		filtered[k] = r.Value(k, v)
	}
	return filtered
}

func (r *Redactor) isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range r.config.SensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// redactURL masks sensitive query parameter values and any userinfo
// password while preserving the URL structure. Unparsable URLs are
// masked entirely rather than logged raw.
func (r *Redactor) redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return r.config.Mask
	}

	changed := false
	q := parsed.Query()
	for _, name := range r.config.QueryParams {
		for key := range q {
			if strings.EqualFold(key, name) {
				q.Set(key, r.config.Mask)
				changed = true
			}
		}
	}
	if changed {
		parsed.RawQuery = q.Encode()
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), r.config.Mask)
			changed = true
		}
	}

	if !changed {
		return raw
	}
	return parsed.String()
}
