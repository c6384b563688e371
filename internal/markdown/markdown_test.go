package markdown

import (
	"strings"
	"testing"
)

func TestFromArticleHTML(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "empty string",
			html:     "",
			expected: "",
		},
		{
			name:     "whitespace only",
			html:     "   \n\t  ",
			expected: "",
		},
		{
			name:     "plain text",
			html:     "Hello World",
			expected: "Hello World",
		},
		{
			name:     "paragraphs",
			html:     "<p>First paragraph</p><p>Second paragraph</p>",
			expected: "First paragraph\n\nSecond paragraph",
		},
		{
			name:     "headings",
			html:     "<h1>Top</h1><h2>Sub</h2>",
			expected: "# Top\n\n## Sub",
		},
		{
			name:     "bold and italic",
			html:     "<p>a <b>bold</b> and <em>italic</em> word</p>",
			expected: "a **bold** and *italic* word",
		},
		{
			name:     "link",
			html:     `<p>read <a href="https://example.com">this</a></p>`,
			expected: "read [this](https://example.com)",
		},
		{
			name:     "javascript link keeps text only",
			html:     `<p><a href="javascript:alert(1)">click</a></p>`,
			expected: "click",
		},
		{
			name:     "image becomes alt placeholder",
			html:     `<p><img src="x.jpg" alt="a chart"></p>`,
			expected: "*[image: a chart]*",
		},
		{
			name:     "image without alt disappears",
			html:     `<p>before <img src="x.jpg">after</p>`,
			expected: "before after",
		},
		{
			name:     "unordered list",
			html:     "<ul><li>one</li><li>two</li></ul>",
			expected: "- one\n- two",
		},
		{
			name:     "ordered list numbering",
			html:     "<ol><li>first</li><li>second</li><li>third</li></ol>",
			expected: "1. first\n2. second\n3. third",
		},
		{
			name:     "inline code",
			html:     "<p>run <code>go test</code> now</p>",
			expected: "run `go test` now",
		},
		{
			name:     "blockquote",
			html:     "<blockquote>quoted line</blockquote>",
			expected: "> quoted line",
		},
		{
			name:     "horizontal rule",
			html:     "<p>above</p><hr><p>below</p>",
			expected: "above\n\n---\n\nbelow",
		},
		{
			name:     "script and style are dropped",
			html:     "<p>keep</p><script>alert(1)</script><style>p{}</style>",
			expected: "keep",
		},
		{
			name:     "collapses whitespace runs",
			html:     "<p>spaced   \n  out</p>",
			expected: "spaced out",
		},
		{
			name:     "nested inline keeps separating space",
			html:     "<p><b>bold</b> then text</p>",
			expected: "**bold** then text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromArticleHTML(tt.html)
			if got != tt.expected {
				t.Errorf("FromArticleHTML(%q) = %q, want %q", tt.html, got, tt.expected)
			}
		})
	}
}

func TestFromArticleHTMLPreBlock(t *testing.T) {
	in := "<pre>line one\n  indented</pre>"
	got := FromArticleHTML(in)
	if !strings.Contains(got, "```\nline one\n  indented\n```") {
		t.Errorf("pre block lost its verbatim whitespace: %q", got)
	}
}

func TestFromArticleHTMLFullDocument(t *testing.T) {
	in := `<html><head><title>ignored</title></head><body><p>body text</p></body></html>`
	if got := FromArticleHTML(in); got != "body text" {
		t.Errorf("expected head content to be dropped, got %q", got)
	}
}
