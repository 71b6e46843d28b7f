package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into drafts. Each link
// takes its category from the nearest enclosing folder whose name is a
// known category; links outside such folders get fallback.
func ParseHTMLBookmarks(r io.Reader, fallback model.Category) ([]model.Draft, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var drafts []model.Draft

	// Folder categories, innermost last. "" marks a folder that maps to
	// no category.
	var folderStack []model.Category
	var pendingFolder *model.Category // folder waiting to be pushed on next DL
	lastWasLink := false

	current := func() model.Category {
		for i := len(folderStack) - 1; i >= 0; i-- {
			if folderStack[i] != "" {
				return folderStack[i]
			}
		}
		return fallback
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				cat, _ := locale.LookupCategory(getTextContent(n))
				pendingFolder = &cat
				lastWasLink = false
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					lastWasLink = false
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				drafts = append(drafts, model.Draft{
					Title:    title,
					URL:      href,
					Category: current(),
				})
				lastWasLink = true
				return

			case "dd":
				if lastWasLink {
					drafts[len(drafts)-1].Description = getTextContent(n)
				}
				lastWasLink = false
				// a folder description can end up holding the folder's DL
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}
				lastWasLink = false

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return drafts, nil
}

// getTextContent returns the text content of a node, stopping at nested
// lists so a folder's DD does not swallow its children.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && strings.EqualFold(c.Data, "dl") {
				continue
			}
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
