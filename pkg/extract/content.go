package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Fields are the parts of a document's embedded markup kept per transcript.
type Fields struct {
	Highlight string
	Headline  string
	Guest     string
	Body      string
}

var (
	reVideoClip = regexp.MustCompile(`(?s)\(BEGIN VIDEO CLIP\).*?\(END VIDEO CLIP\)`)
	reTimestamp = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)
	reBodyTags  = regexp.MustCompile(`</?nitf:body\.content>|</?bodytext>`)

	// Body text is written decoded, with only the characters that would
	// break the markup escaped again.
	bodyTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

const (
	tagHighlight = "highlight"
	tagHeadline  = "nitf:hl1"
	tagGuests    = "guests"
	tagNameText  = "nametext"
	tagBody      = "nitf:body.content"
)

// collector gathers the text of every element with a given tag name.
type collector struct {
	tag   string
	depth int
	buf   strings.Builder
	out   []string
}

func (c *collector) start(name string) {
	if name != c.tag {
		return
	}
	c.depth++
}

func (c *collector) end(name string) {
	if name != c.tag || c.depth == 0 {
		return
	}
	c.depth--
	if c.depth == 0 {
		c.out = append(c.out, c.buf.String())
		c.buf.Reset()
	}
}

func (c *collector) text(s string) {
	if c.depth > 0 {
		c.buf.WriteString(s)
	}
}

// ParseContent tokenizes a document's markup and pulls out highlights,
// headlines, guest names and the cleaned body.
func ParseContent(markup string) Fields {
	var (
		highlights = &collector{tag: tagHighlight}
		headlines  = &collector{tag: tagHeadline}
		names      = &collector{tag: tagNameText}

		guestsDepth int
		bodyDepth   int
		bodyDone    bool
		body        strings.Builder
	)

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF; a strings.Reader has no other failure.
			break
		}

		var name string
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			n, _ := z.TagName()
			name = string(n)
		}
		// Text() unescapes in place, so the raw bytes are copied first.
		raw := append([]byte(nil), z.Raw()...)

		inBody := bodyDepth > 0
		switch tt {
		case html.StartTagToken:
			highlights.start(name)
			headlines.start(name)
			if name == tagGuests {
				guestsDepth++
			}
			if name == tagNameText && guestsDepth > 0 {
				names.start(name)
			}
			if name == tagBody && !bodyDone {
				bodyDepth++
				inBody = true
			}
		case html.EndTagToken:
			highlights.end(name)
			headlines.end(name)
			names.end(name)
			if name == tagGuests && guestsDepth > 0 {
				guestsDepth--
			}
			if name == tagBody && bodyDepth > 0 {
				bodyDepth--
				if bodyDepth == 0 {
					bodyDone = true
				}
			}
		case html.TextToken:
			text := string(z.Text())
			highlights.text(text)
			headlines.text(text)
			names.text(text)
			if inBody {
				body.WriteString(bodyTextEscaper.Replace(text))
				continue
			}
		}

		if inBody {
			body.Write(raw)
		}
	}

	// An unterminated body element still counts.
	if bodyDepth > 0 {
		bodyDone = true
	}

	f := Fields{
		Highlight: strings.Join(highlights.out, " "),
		Headline:  strings.Join(headlines.out, " "),
		Guest:     strings.Join(names.out, ", "),
	}
	if bodyDone {
		f.Body = CleanBody(body.String())
	}
	return f
}

// CleanBody removes video clip transcripts, [hh:mm:ss] timestamps and the
// body wrapper tags from serialized body markup.
func CleanBody(s string) string {
	s = reVideoClip.ReplaceAllString(s, "")
	s = reTimestamp.ReplaceAllString(s, "")
	s = reBodyTags.ReplaceAllString(s, "")
	return s
}
