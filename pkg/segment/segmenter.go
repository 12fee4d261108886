// Package segment splits transcript bodies into runs of paragraphs attributed
// to one speaker.
package segment

import (
	"fmt"
	"strings"

	"nexis-pipeline/pkg/transcript"
)

// Mode selects how the tracked speaker behaves at record boundaries.
type Mode int

const (
	// Reset forgets the tracked speaker at the start of every record.
	Reset Mode = iota
	// CarryOver keeps the last speaker of the previous record, so a record
	// opening with that speaker does not break its leading text off into a
	// separate segment. Records must then be processed in input order.
	CarryOver
)

func (m Mode) String() string {
	switch m {
	case Reset:
		return "reset"
	case CarryOver:
		return "carry"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "reset" or "carry".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reset":
		return Reset, nil
	case "carry", "carry-over", "carryover":
		return CarryOver, nil
	default:
		return 0, fmt.Errorf("unknown speaker mode %q (want reset|carry)", s)
	}
}

// Segment is one emitted run of paragraphs. It carries the record-level
// expert list, not the detected speaker.
type Segment struct {
	Text    string `json:"Segment"`
	ID      string `json:"id"`
	Experts string `json:"experts"`
}

// State is the speaker tracked between paragraphs.
type State struct {
	Speaker string
	Known   bool
}

// Segmenter applies Split record after record, threading State according to
// its Mode. It is not safe for concurrent use.
type Segmenter struct {
	mode  Mode
	state State
}

func New(mode Mode) *Segmenter {
	return &Segmenter{mode: mode}
}

func (s *Segmenter) Mode() Mode { return s.mode }

// State returns the speaker tracked after the last record.
func (s *Segmenter) State() State { return s.state }

// Segment splits one record.
func (s *Segmenter) Segment(t transcript.Transcript) []Segment {
	if s.mode == Reset {
		s.state = State{}
	}
	segs, next := Split(t, s.state)
	s.state = next
	return segs
}

// Split segments a single record starting from state and returns the
// segments together with the state after its last paragraph.
func Split(t transcript.Transcript, state State) ([]Segment, State) {
	patterns := BuildPatterns(t.Experts)

	var (
		segs []Segment
		buf  strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(buf.String()); text != "" {
			segs = append(segs, Segment{Text: text, ID: t.ID, Experts: t.Experts})
		}
		buf.Reset()
	}

	for _, raw := range strings.Split(t.Content, transcript.ParagraphSep) {
		paragraph, ok := Preprocess(raw)
		if !ok {
			continue
		}

		speaker, matched := patterns.Match(paragraph)
		if matched && (!state.Known || speaker != state.Speaker) {
			flush()
			state = State{Speaker: speaker, Known: true}
		}
		buf.WriteString(paragraph)
	}
	flush()

	return segs, state
}
