package loader

import "regexp"

var tagNoise = regexp.MustCompile(`#\?\?\s*`)

// NormalizeTags strips every "#??" marker together with the whitespace that
// follows it.
func NormalizeTags(tags string) string {
	return tagNoise.ReplaceAllString(tags, "")
}
