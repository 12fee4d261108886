package segment

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordStart stands in for a leading \b: RE2's \b only knows ASCII word
// characters, so "ÖZIL:" would never match. Group 1 stays the bare name.
const wordStart = `(?:^|[^\p{L}\p{N}_])`

// Patterns are the two inline attribution forms built from a record's
// experts byline: "SMITH," and "SMITH:".
type Patterns struct {
	comma *regexp.Regexp
	colon *regexp.Regexp
}

// BuildPatterns derives the attribution patterns from a comma-separated list
// of display names. Only the uppercased last token of each name is used.
// An empty list yields patterns that never match.
func BuildPatterns(experts string) Patterns {
	names := LastNames(experts)
	if len(names) == 0 {
		return Patterns{}
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	alt := strings.Join(quoted, "|")

	return Patterns{
		comma: regexp.MustCompile(wordStart + `(` + alt + `),`),
		colon: regexp.MustCompile(wordStart + `(` + alt + `):`),
	}
}

// LastNames returns the uppercased last names in byline order, without
// empty entries or duplicates. Uppercasing uses full case mappings, so
// "Weiß" becomes "WEISS".
func LastNames(experts string) []string {
	var names []string
	upper := cases.Upper(language.Und)
	seen := make(map[string]bool)
	for _, part := range strings.Split(experts, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		last := upper.String(fields[len(fields)-1])
		if seen[last] {
			continue
		}
		seen[last] = true
		names = append(names, last)
	}
	return names
}

// Match reports the speaker named in paragraph. The comma form is searched in
// full before the colon form is tried at all, so "DOE: ... SMITH," resolves
// to SMITH.
func (p Patterns) Match(paragraph string) (string, bool) {
	for _, re := range []*regexp.Regexp{p.comma, p.colon} {
		if re == nil {
			continue
		}
		if m := re.FindStringSubmatch(paragraph); m != nil {
			return m[1], true
		}
	}
	return "", false
}
