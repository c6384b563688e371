package newsapi

// Dedupe removes repeated stories from a normalized sequence. Stable and
// single-pass: the first occurrence of each title wins, with a secondary
// guard on link equality for records that expose one. Applying it twice
// changes nothing.
func Dedupe(items []Article) []Article {
	if len(items) < 2 {
		return items
	}
	seenTitles := make(map[string]struct{}, len(items))
	seenLinks := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, a := range items {
		if _, dup := seenTitles[a.Title]; dup {
			continue
		}
		if a.Link != "" {
			if _, dup := seenLinks[a.Link]; dup {
				continue
			}
		}
		seenTitles[a.Title] = struct{}{}
		if a.Link != "" {
			seenLinks[a.Link] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

// ExcludeStory filters out every record matching current by the dedupe
// identity rule (title, then link). Used by the related-articles list.
func ExcludeStory(items []Article, current Article) []Article {
	out := items[:0:0]
	for _, a := range items {
		if a.sameStory(current) {
			continue
		}
		out = append(out, a)
	}
	return out
}
