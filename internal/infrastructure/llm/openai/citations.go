package openai

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

// reCitation matches markdown links (groups 1, 2) or bare URLs (group 3).
var reCitation = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^\s)]+)\)|(https?://[^\s)\]>"']+)`)

// extractCitations returns the links in a search answer in order of
// appearance. Duplicates are kept; the orchestrator removes them.
func extractCitations(text string) []entities.Source {
	matches := reCitation.FindAllStringSubmatch(text, -1)

	citations := make([]entities.Source, 0, len(matches))
	for _, m := range matches {
		title, uri := strings.TrimSpace(m[1]), m[2]
		if uri == "" {
			uri = strings.TrimRight(m[3], ".,;:!?")
		}
		citations = append(citations, entities.Source{
			Title: title,
			URI:   stripTracking(uri),
		})
	}
	return citations
}

// stripTracking drops utm_* query parameters added by search tools.
func stripTracking(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	for key := range q {
		if strings.HasPrefix(key, "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
