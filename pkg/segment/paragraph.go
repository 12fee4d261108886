package segment

import "strings"

// LedeTag marks the lead paragraph of a transcript body.
const LedeTag = `<p nitf:lede="true">`

var unidentifiedMarkers = []string{
	"UNIDENTIFIED MALE:",
	"UNIDENTIFIED FEMALE:",
}

// Preprocess strips the lede tag from a paragraph. It returns false for
// unidentified-speaker lines, which are discarded.
func Preprocess(paragraph string) (string, bool) {
	paragraph = strings.ReplaceAll(paragraph, LedeTag, "")
	trimmed := strings.TrimSpace(paragraph)
	for _, marker := range unidentifiedMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return "", false
		}
	}
	return paragraph, true
}
