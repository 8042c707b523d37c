package devicemeta

import (
	"strings"

	"github.com/mileusna/useragent"
)

// Name derives a display name like "Samsung SM-G991B (Android)" from a
// User-Agent header. Returns empty for an empty or unrecognizable UA; callers
// treat the name as cosmetic metadata only.
func Name(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.Parse(ua)
	parts := make([]string, 0, 2)
	if parsed.Device != "" {
		parts = append(parts, parsed.Device)
	} else if parsed.Name != "" {
		parts = append(parts, parsed.Name)
	}
	if parsed.OS != "" {
		parts = append(parts, "("+parsed.OS+")")
	}
	return strings.Join(parts, " ")
}
