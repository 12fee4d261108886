// Package nexis decodes Nexis Uni bulk-download JSON archives.
package nexis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrInvalidStructure means the document is not JSON with a "value" list.
var ErrInvalidStructure = errors.New("invalid archive structure")

const resultIDPrefix = "urn:contentItem:"

// Item is one search result in an archive's "value" list.
type Item struct {
	ResultID   string  `json:"ResultId"`
	Title      string  `json:"Title"`
	Byline     string  `json:"Byline"`
	Date       string  `json:"Date"`
	WordLength int     `json:"WordLength"`
	Source     *Source `json:"Source"`
	// Document is kept loose: archives carry objects, strings or null here.
	Document any `json:"Document"`
}

type Source struct {
	Name string `json:"Name"`
}

// ID returns the result id without its urn prefix.
func (it Item) ID() string {
	return strings.ReplaceAll(it.ResultID, resultIDPrefix, "")
}

func (it Item) SourceName() string {
	if it.Source == nil {
		return ""
	}
	return it.Source.Name
}

// Content returns the embedded document markup. ok is false when the
// document explicitly carries a null Content; a missing Content or a
// non-object Document yields an empty string.
func (it Item) Content() (content string, ok bool) {
	doc, isObject := it.Document.(map[string]any)
	if !isObject {
		return "", true
	}
	v, present := doc["Content"]
	if !present {
		return "", true
	}
	switch c := v.(type) {
	case nil:
		return "", false
	case string:
		return c, true
	default:
		return fmt.Sprint(c), true
	}
}

// Decode parses an archive document.
func Decode(data []byte) ([]Item, error) {
	var top struct {
		Value json.RawMessage `json:"value"`
	}
	if err := sonic.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	value := bytes.TrimSpace(top.Value)
	if len(value) == 0 || value[0] != '[' {
		return nil, ErrInvalidStructure
	}

	var raw []json.RawMessage
	if err := sonic.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		var it Item
		if err := sonic.Unmarshal(r, &it); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}
