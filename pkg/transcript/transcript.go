package transcript

// Transcript is one flattened archive item ([main_content] row).
// Experts carries the item's Byline: a comma-separated list of display names.
// Content keeps the paragraph markup, paragraphs joined by ParagraphSep.
type Transcript struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Experts    string `json:"experts"`
	Date       string `json:"date"`
	WordLength int    `json:"wordlength"`
	Source     string `json:"source"`
	Content    string `json:"content"`
	Highlight  string `json:"highlight"`
	Headline   string `json:"headline"`
	Guest      string `json:"guest"`
}

// ParagraphSep separates paragraphs inside Content.
const ParagraphSep = "</p><p>"
