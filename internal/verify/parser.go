// internal/verify/parser.go
package verify

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PageHead holds the SEO-relevant parts of a rendered page.
type PageHead struct {
	Lang        string
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	OpenGraph   map[string]string
	Twitter     map[string]string
	Headline    string
	WordCount   int
}

// ParseHead parses an HTML document and extracts its head metadata and headline.
func ParseHead(r io.Reader) (*PageHead, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	head := &PageHead{
		Keywords:  make([]string, 0),
		OpenGraph: make(map[string]string),
		Twitter:   make(map[string]string),
	}

	head.Lang, _ = doc.Find("html").Attr("lang")
	head.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta[name='description']").Each(func(i int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			head.Description = strings.TrimSpace(content)
		}
	})

	// Extract keywords as tags
	doc.Find("meta[name='keywords']").Each(func(i int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			for _, kw := range strings.Split(content, ",") {
				kw = strings.TrimSpace(kw)
				if kw != "" {
					head.Keywords = append(head.Keywords, kw)
				}
			}
		}
	})

	// Twitter tags show up with either name= or property=
	doc.Find("meta[property], meta[name]").Each(func(i int, s *goquery.Selection) {
		key := s.AttrOr("property", s.AttrOr("name", ""))
		content := strings.TrimSpace(s.AttrOr("content", ""))
		switch {
		case strings.HasPrefix(key, "og:"):
			head.OpenGraph[strings.TrimPrefix(key, "og:")] = content
		case strings.HasPrefix(key, "twitter:"):
			head.Twitter[strings.TrimPrefix(key, "twitter:")] = content
		}
	})

	head.Canonical, _ = doc.Find("link[rel='canonical']").First().Attr("href")
	head.Headline = strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")

	body, _ := doc.Find("body").Html()
	head.WordCount = len(strings.Fields(visibleText(body)))

	return head, nil
}

// visibleText drops scripts, styles and comments and returns the remaining text.
func visibleText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}
