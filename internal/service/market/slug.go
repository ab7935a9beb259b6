package market

import "strings"

// ItemSlug maps a display item name to the upstream API's slug format:
// lower-cased, spaces joined with underscores, everything outside [a-z0-9_]
// stripped, runs of underscores collapsed, leading/trailing underscores
// trimmed. Idempotent.
func ItemSlug(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}

	slug := b.String()
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	return strings.Trim(slug, "_")
}
