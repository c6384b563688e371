package newsapi

import (
	"bytes"
	"encoding/json"
)

// The service wraps article lists in three envelope shapes:
//
//	bare array:    [ {...}, {...} ]
//	listing:       { "category"|"subcategory": ..., "total": n, "news": [...] }
//	admin paging:  { "data": [...], "total": n, "totalPages": n }
//
// envelopeKind makes the choice explicit instead of probing optional
// fields; anything that matches none of them normalizes to empty.
type envelopeKind int

const (
	envelopeUnknown envelopeKind = iota
	envelopeBareArray
	envelopeNews
	envelopePaged
)

type listEnvelope struct {
	News       []wireArticle `json:"news"`
	Data       []wireArticle `json:"data"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

func classify(raw []byte, env *listEnvelope, arr *[]wireArticle) envelopeKind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return envelopeUnknown
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, arr); err != nil {
			return envelopeUnknown
		}
		return envelopeBareArray
	}
	if trimmed[0] != '{' {
		return envelopeUnknown
	}
	if err := json.Unmarshal(trimmed, env); err != nil {
		return envelopeUnknown
	}
	switch {
	case env.News != nil:
		return envelopeNews
	case env.Data != nil:
		return envelopePaged
	default:
		return envelopeUnknown
	}
}

// Normalize extracts a flat article sequence from any known envelope
// shape. Unknown shapes and malformed JSON yield an empty result, never
// an error; downstream code treats that the same as an empty feed.
// Records without a title are dropped, missing summaries become empty
// strings, and a missing source_name becomes defaultSource.
func Normalize(raw []byte, defaultSource string) FeedResult {
	var env listEnvelope
	var arr []wireArticle

	var items []wireArticle
	res := FeedResult{}
	switch classify(raw, &env, &arr) {
	case envelopeBareArray:
		items = arr
	case envelopeNews:
		items = env.News
		res.Total = env.Total
	case envelopePaged:
		items = env.Data
		res.Total = env.Total
		res.TotalPages = env.TotalPages
		res.Paginated = env.TotalPages > 0
	default:
		return res
	}

	res.Items = make([]Article, 0, len(items))
	for _, w := range items {
		a := w.toArticle()
		if a.Title == "" {
			continue
		}
		if a.SourceName == "" {
			a.SourceName = defaultSource
		}
		res.Items = append(res.Items, a)
	}
	if res.Total == 0 {
		res.Total = len(res.Items)
	}
	return res
}

func decodeJSON(raw []byte, v any) error {
	return json.Unmarshal(bytes.TrimSpace(raw), v)
}

// DecodeArticle decodes a single by-id response. The ok result is false
// when the payload is not a usable article record.
func DecodeArticle(raw []byte, defaultSource string) (Article, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Article{}, false
	}
	var w wireArticle
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return Article{}, false
	}
	a := w.toArticle()
	if a.Title == "" {
		return Article{}, false
	}
	if a.SourceName == "" {
		a.SourceName = defaultSource
	}
	return a, true
}
