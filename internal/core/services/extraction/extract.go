// Package extraction pulls structured JSON out of free-form model
// text. Models asked for JSON still wrap it in code fences, prose, or
// both, so extraction runs an ordered list of strategies and the first
// candidate that parses wins. Everything here is pure string work so
// it can be tested against literal fixtures.
package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy locates one JSON candidate inside raw model text. It
// returns false when the text contains nothing it recognizes.
type Strategy func(text string) (string, bool)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	bareFenceRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	braceRe      = regexp.MustCompile(`(?s)\{.*\}`)
)

// FencedJSON matches an explicit ```json code fence.
func FencedJSON(text string) (string, bool) {
	m := fencedJSONRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BareFence matches any ``` code fence.
func BareFence(text string) (string, bool) {
	m := bareFenceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BraceMatch greedily grabs the outermost {...} span, covering JSON
// embedded in surrounding prose with no fences at all.
func BraceMatch(text string) (string, bool) {
	m := braceRe.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// Strategies is the default extraction order. More specific markers
// are tried before the greedy fallback.
var Strategies = []Strategy{FencedJSON, BareFence, BraceMatch}

// Unmarshal extracts a JSON object from text and decodes it into v.
// Each strategy's candidate is parsed in turn; the first candidate
// that decodes cleanly wins. Returns false when no strategy yields
// parseable JSON.
func Unmarshal(text string, v interface{}) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, strategy := range Strategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return true
		}
	}
	return false
}
