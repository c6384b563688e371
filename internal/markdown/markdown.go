// Package markdown renders the HTML article bodies the content service
// returns into markdown suitable for terminal display.
package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// FromArticleHTML converts an HTML article body to markdown. Malformed
// markup degrades to whatever text can be salvaged; the result is never
// an error, at worst an empty string.
func FromArticleHTML(htmlStr string) string {
	if strings.TrimSpace(htmlStr) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return strings.TrimSpace(htmlStr)
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}

	out := renderNode(root)
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return body
}

func renderNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return collapseSpace(n.Data)
	case html.ElementNode:
		return renderElement(n)
	case html.DocumentNode:
		return renderChildren(n)
	default:
		return ""
	}
}

func renderElement(n *html.Node) string {
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "iframe", "head", "nav":
		return ""
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		content := strings.TrimSpace(renderChildren(n))
		if content == "" {
			return ""
		}
		return "\n\n" + strings.Repeat("#", level) + " " + content + "\n\n"
	case "p":
		content := strings.TrimSpace(renderChildren(n))
		if content == "" {
			return ""
		}
		return "\n\n" + content + "\n\n"
	case "br":
		return "\n"
	case "hr":
		return "\n\n---\n\n"
	case "strong", "b":
		if content := renderChildren(n); content != "" {
			return "**" + content + "**"
		}
		return ""
	case "em", "i":
		if content := renderChildren(n); content != "" {
			return "*" + content + "*"
		}
		return ""
	case "a":
		content := strings.TrimSpace(renderChildren(n))
		href := attr(n, "href")
		if content == "" {
			return ""
		}
		if href == "" || strings.HasPrefix(href, "javascript:") {
			return content
		}
		return "[" + content + "](" + href + ")"
	case "img":
		// Terminal output: keep the alt text, drop the bytes.
		if alt := strings.TrimSpace(attr(n, "alt")); alt != "" {
			return "*[image: " + alt + "]*"
		}
		return ""
	case "ul":
		return "\n\n" + renderListItems(n, false) + "\n"
	case "ol":
		return "\n\n" + renderListItems(n, true) + "\n"
	case "li":
		// Reached only for stray items outside a list.
		if content := strings.TrimSpace(renderChildren(n)); content != "" {
			return "- " + content + "\n"
		}
		return ""
	case "code":
		if content := renderChildren(n); content != "" {
			return "`" + content + "`"
		}
		return ""
	case "pre":
		if content := renderPreText(n); strings.TrimSpace(content) != "" {
			return "\n\n```\n" + strings.Trim(content, "\n") + "\n```\n\n"
		}
		return ""
	case "blockquote":
		content := strings.TrimSpace(renderChildren(n))
		if content == "" {
			return ""
		}
		var quoted []string
		for _, line := range strings.Split(content, "\n") {
			if strings.TrimSpace(line) == "" {
				quoted = append(quoted, ">")
			} else {
				quoted = append(quoted, "> "+strings.TrimSpace(line))
			}
		}
		return "\n\n" + strings.Join(quoted, "\n") + "\n\n"
	default:
		return renderChildren(n)
	}
}

func renderListItems(list *html.Node, ordered bool) string {
	var b strings.Builder
	idx := 0
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || strings.ToLower(child.Data) != "li" {
			continue
		}
		content := strings.TrimSpace(renderChildren(child))
		if content == "" {
			continue
		}
		idx++
		if ordered {
			b.WriteString(itoa(idx) + ". " + content + "\n")
		} else {
			b.WriteString("- " + content + "\n")
		}
	}
	return b.String()
}

// renderPreText keeps whitespace verbatim inside code blocks.
func renderPreText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func renderChildren(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(renderNode(child))
	}
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		// whitespace-only text between inline nodes still separates words
		return " "
	}
	out := strings.Join(strings.Fields(s), " ")
	if isSpaceByte(s[0]) {
		out = " " + out
	}
	if isSpaceByte(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
