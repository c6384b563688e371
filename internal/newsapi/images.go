package newsapi

import "strings"

// DefaultImage backs every category this single-vertical deployment does
// not map explicitly.
const DefaultImage = "Tech"

// categoryImages maps the first category segment to the bundled fallback
// image identifier. Keys are the exact spellings the service emits;
// lookup falls back to a case-folded match.
var categoryImages = map[string]string{
	"Tech":          "Tech",
	"Technology":    "Tech",
	"AI":            "Tech",
	"Cybersecurity": "Tech",
	"Quantum Computing": "Tech",
	"AR/VR":             "Tech",
	"Edge Computing":    "Tech",
	"6G & IoT":          "Tech",
	"Sustainable Tech":  "Tech",
	"Web3":              "Tech",
	"Blockchain":        "Tech",
	"Cloud":             "Tech",
	"Semiconductors":    "Tech",
	"Gaming":            "Tech",
	"Gadgets":           "Tech",
	"Internet":          "Tech",
	"Space Tech":        "Tech",
	"Autotech":          "Tech",
	"Green Tech":        "Tech",
	"HealthTech":        "Health",
	"EdTech":            "Education",
	"Fintech":           "Finance",
	"Business":          "Business",
	"Finance":           "Finance",
	"Sports":            "Sports",
	"Entertainment":     "Entertainment",
	"Health":            "Health",
	"Politics":          "Politics",
	"World":             "World",
	"India":             "India",
	"National":          "India",
	"Education":         "Education",
}

var categoryImagesFolded = func() map[string]string {
	m := make(map[string]string, len(categoryImages))
	for k, v := range categoryImages {
		m[strings.ToLower(k)] = v
	}
	return m
}()

// ImageForCategory resolves a category label to a fallback image
// identifier. It takes the first comma-separated segment, tries an exact
// match, then a case-folded match, then the default. Never fails.
func ImageForCategory(category string) string {
	seg := firstSegment(category)
	if seg == "" {
		return DefaultImage
	}
	if img, ok := categoryImages[seg]; ok {
		return img
	}
	if img, ok := categoryImagesFolded[strings.ToLower(seg)]; ok {
		return img
	}
	return DefaultImage
}

// ResolveImage picks the article's own image when present, otherwise the
// category fallback.
func ResolveImage(a Article) string {
	if strings.TrimSpace(a.Image) != "" {
		return a.Image
	}
	return ImageForCategory(a.Category)
}

// ImageAfterError resolves a replacement after failed rendering. One
// retry only: when the failed image already is the category fallback the
// empty result tells the caller to render a text-only placeholder.
func ImageAfterError(category, failed string) string {
	fallback := ImageForCategory(category)
	if failed == fallback {
		return ""
	}
	return fallback
}
