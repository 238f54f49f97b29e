package registry

import "strings"

// Slugify derives the canonical URL-safe identifier for an event name:
// lowercase, runs of anything that is not a letter or digit folded into a
// single '-', leading and trailing separators trimmed. Deterministic, so the
// same display name always lands on the same key.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
