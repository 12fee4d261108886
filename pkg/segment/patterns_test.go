package segment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLastNames(t *testing.T) {
	tests := []struct {
		name    string
		experts string
		want    []string
	}{
		{name: "two names", experts: "John Smith, Jane Doe", want: []string{"SMITH", "DOE"}},
		{name: "trailing comma", experts: "John Smith,", want: []string{"SMITH"}},
		{name: "blank entries", experts: " , John  Smith ,, ", want: []string{"SMITH"}},
		{name: "single token", experts: "Madonna", want: []string{"MADONNA"}},
		{name: "duplicates collapse", experts: "John Smith, Anna Smith", want: []string{"SMITH"}},
		{name: "empty", experts: "", want: nil},
		{name: "non-ascii", experts: "Mesut Özil, Ángel Ávila", want: []string{"ÖZIL", "ÁVILA"}},
		{name: "full case mapping", experts: "Franz Weiß", want: []string{"WEISS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastNames(tt.experts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LastNames(%q) mismatch (-want +got):\n%s", tt.experts, diff)
			}
		})
	}
}

func TestPatternsMatch(t *testing.T) {
	tests := []struct {
		name      string
		experts   string
		paragraph string
		want      string
		wantOK    bool
	}{
		{name: "colon form", experts: "John Smith", paragraph: "SMITH: Hello.", want: "SMITH", wantOK: true},
		{name: "comma form", experts: "John Smith", paragraph: "SMITH, JOHN (CNN): Hello.", want: "SMITH", wantOK: true},
		{name: "comma beats earlier colon", experts: "John Smith, Jane Doe", paragraph: "DOE: I asked SMITH, and he agreed.", want: "SMITH", wantOK: true},
		{name: "case sensitive", experts: "John Smith", paragraph: "Smith: Hello.", wantOK: false},
		{name: "word boundary", experts: "John Smith", paragraph: "GOLDSMITH: Hello.", wantOK: false},
		{name: "no attribution", experts: "John Smith", paragraph: "SMITH said hello.", wantOK: false},
		{name: "empty experts never match", experts: "", paragraph: "SMITH: Hello, world: yes", wantOK: false},
		{name: "metacharacters escaped", experts: "Dr. A.B", paragraph: "AXB: nope. A.B: yes", want: "A.B", wantOK: true},
		{name: "alternation escaped", experts: "X Y|Z", paragraph: "Y: nope Z: nope", wantOK: false},
		{name: "non-ascii first letter", experts: "Mesut Özil", paragraph: "ÖZIL: Danke.", want: "ÖZIL", wantOK: true},
		{name: "non-ascii comma form", experts: "Ángel Ávila", paragraph: "Entrevista con ÁVILA, ministro.", want: "ÁVILA", wantOK: true},
		{name: "non-ascii letter before name", experts: "John Smith", paragraph: "éSMITH: no", wantOK: false},
		{name: "digit before name", experts: "John Smith", paragraph: "2SMITH: no", wantOK: false},
		{name: "underscore before name", experts: "John Smith", paragraph: "_SMITH: no", wantOK: false},
		{name: "punctuation before name", experts: "John Smith", paragraph: "(SMITH: yes", want: "SMITH", wantOK: true},
		{name: "lowercase byline uppercased", experts: "jane doe", paragraph: "DOE: Hi.", want: "DOE", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildPatterns(tt.experts).Match(tt.paragraph)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.paragraph, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "lede removed", input: `<p nitf:lede="true">SMITH: Good evening.`, want: "SMITH: Good evening.", wantOK: true},
		{name: "plain kept as is", input: " more text ", want: " more text ", wantOK: true},
		{name: "unidentified male", input: "UNIDENTIFIED MALE: inaudible", wantOK: false},
		{name: "unidentified female after whitespace", input: "  UNIDENTIFIED FEMALE: we're live", wantOK: false},
		{name: "unidentified behind lede", input: `<p nitf:lede="true">UNIDENTIFIED MALE: hi`, wantOK: false},
		{name: "marker not leading", input: "SMITH: an UNIDENTIFIED MALE: spoke", want: "SMITH: an UNIDENTIFIED MALE: spoke", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Preprocess(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Preprocess(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
