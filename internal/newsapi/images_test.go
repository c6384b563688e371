package newsapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageForCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		expected string
	}{
		{"exact match", "Health", "Health"},
		{"exact tech subcategory", "Quantum Computing", "Tech"},
		{"case-folded match", "hEaLtH", "Health"},
		{"case-folded edtech", "edtech", "Education"},
		{"unmapped", "Cooking", "Tech"},
		{"empty", "", "Tech"},
		{"first comma segment", "Finance, Business", "Finance"},
		{"whitespace segment", "  Sports , World", "Sports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ImageForCategory(tt.category))
		})
	}
}

func TestResolveImagePrefersOwnImage(t *testing.T) {
	a := Article{Image: "https://example.com/pic.jpg", Category: "Health"}
	require.Equal(t, "https://example.com/pic.jpg", ResolveImage(a))

	a.Image = "   "
	require.Equal(t, "Health", ResolveImage(a))

	a.Image = ""
	a.Category = ""
	require.Equal(t, DefaultImage, ResolveImage(a))
}

func TestImageAfterErrorRetriesOnce(t *testing.T) {
	// a broken remote image falls back to the category image
	require.Equal(t, "Health", ImageAfterError("Health", "https://example.com/broken.jpg"))

	// the category image itself failing ends the chain
	require.Equal(t, "", ImageAfterError("Health", "Health"))
	require.Equal(t, "", ImageAfterError("", DefaultImage))
}
