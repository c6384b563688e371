package newsapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	items := []Article{
		{Title: "Alpha", Link: "https://a.example/1", SourceName: "TechPulse"},
		{Title: "Beta", Link: "https://a.example/2"},
		{Title: "Alpha", Link: "https://mirror.example/1", SourceName: "Mirror"},
		{Title: "Gamma"},
	}

	out := Dedupe(items)
	require.Len(t, out, 3)
	require.Equal(t, []string{"Alpha", "Beta", "Gamma"}, titles(out))
	// the first Alpha wins, including its metadata
	require.Equal(t, "TechPulse", out[0].SourceName)
}

func TestDedupeLinkGuard(t *testing.T) {
	// same story syndicated under two headlines but one link
	items := []Article{
		{Title: "Original headline", Link: "https://a.example/story"},
		{Title: "Rewritten headline", Link: "https://a.example/story"},
		{Title: "Different story", Link: "https://a.example/other"},
	}

	out := Dedupe(items)
	require.Equal(t, []string{"Original headline", "Different story"}, titles(out))
}

func TestDedupeLinklessRecords(t *testing.T) {
	items := []Article{
		{Title: "One"},
		{Title: "Two"},
		{Title: "One"},
	}
	out := Dedupe(items)
	require.Equal(t, []string{"One", "Two"}, titles(out))
}

func TestDedupeIdempotent(t *testing.T) {
	items := []Article{
		{Title: "A", Link: "https://a.example/1"},
		{Title: "A", Link: "https://a.example/1"},
		{Title: "B"},
		{Title: "C", Link: "https://a.example/3"},
		{Title: "D", Link: "https://a.example/3"},
	}
	once := Dedupe(items)
	twice := Dedupe(once)
	require.Equal(t, once, twice)
}

func TestExcludeStory(t *testing.T) {
	current := Article{Title: "Current", Link: "https://a.example/cur"}
	items := []Article{
		{Title: "Current", Link: "https://other.example/mirror"},
		{Title: "Renamed mirror", Link: "https://a.example/cur"},
		{Title: "Unrelated", Link: "https://a.example/x"},
	}

	out := ExcludeStory(items, current)
	require.Equal(t, []string{"Unrelated"}, titles(out))
}

func titles(items []Article) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Title)
	}
	return out
}
