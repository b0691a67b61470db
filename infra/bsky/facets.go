package bsky

import (
	"context"
	"regexp"
	"strings"
)

const (
	facetMention = "app.bsky.richtext.facet#mention"
	facetLink    = "app.bsky.richtext.facet#link"
)

// Facet annotates a byte range of post text.
type Facet struct {
	Index    FacetIndex     `json:"index"`
	Features []FacetFeature `json:"features"`
}

// FacetIndex is a UTF-8 byte range, end exclusive.
type FacetIndex struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is a mention (DID) or a link (URI).
type FacetFeature struct {
	Type string `json:"$type"`
	DID  string `json:"did,omitempty"`
	URI  string `json:"uri,omitempty"`
}

type mentionSpan struct {
	Start  int
	End    int
	Handle string
}

type urlSpan struct {
	Start int
	End   int
	URL   string
}

var (
	mentionRe = regexp.MustCompile(`(?:^|[\s(])@([a-zA-Z0-9][a-zA-Z0-9.-]*)`)
	urlRe     = regexp.MustCompile(`https?://[^\s]+`)
)

func parseMentions(text string) []mentionSpan {
	var spans []mentionSpan
	for _, m := range mentionRe.FindAllStringSubmatchIndex(text, -1) {
		handle := strings.TrimRight(text[m[2]:m[3]], ".-")
		if !strings.Contains(handle, ".") {
			continue
		}
		start := m[2] - 1 // include "@"
		spans = append(spans, mentionSpan{
			Start:  start,
			End:    m[2] + len(handle),
			Handle: handle,
		})
	}
	return spans
}

func parseURLs(text string) []urlSpan {
	var spans []urlSpan
	for _, m := range urlRe.FindAllStringIndex(text, -1) {
		raw := strings.TrimRight(text[m[0]:m[1]], ".,;:!?)\"'")
		spans = append(spans, urlSpan{Start: m[0], End: m[0] + len(raw), URL: raw})
	}
	return spans
}

// buildFacets finds mentions and links in text. Mentions whose handle cannot
// be resolved are left as plain text.
func buildFacets(ctx context.Context, text string, resolve func(context.Context, string) (string, error)) []Facet {
	var facets []Facet
	for _, m := range parseMentions(text) {
		if resolve == nil {
			break
		}
		did, err := resolve(ctx, m.Handle)
		if err != nil || did == "" {
			continue
		}
		facets = append(facets, Facet{
			Index:    FacetIndex{ByteStart: m.Start, ByteEnd: m.End},
			Features: []FacetFeature{{Type: facetMention, DID: did}},
		})
	}
	for _, u := range parseURLs(text) {
		facets = append(facets, Facet{
			Index:    FacetIndex{ByteStart: u.Start, ByteEnd: u.End},
			Features: []FacetFeature{{Type: facetLink, URI: u.URL}},
		})
	}
	return facets
}
