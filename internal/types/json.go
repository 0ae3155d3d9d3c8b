package types

import "strings"

// CleanJSONFromMarkdown removes markdown code fences around a JSON reply.
// Models asked for a bare JSON object still wrap it in ```json blocks now and then.
func CleanJSONFromMarkdown(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(s, fence) {
			s = strings.TrimPrefix(s, fence)
			break
		}
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
