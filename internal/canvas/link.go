package canvas

import "strings"

// parseLinkHeader maps rel names to URLs from an RFC 5988 Link header.
// Entries are split on ","; an entry without a ";" separated rel part is
// skipped. When a rel appears twice the last occurrence wins.
func parseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		target := strings.TrimSpace(sections[0])
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")

		rel := strings.TrimSpace(sections[1])
		rel = strings.TrimPrefix(rel, "rel=")
		rel = strings.Trim(rel, `"`)
		rel = strings.TrimSpace(rel)

		links[rel] = target
	}
	return links
}
