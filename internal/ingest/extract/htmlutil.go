// Copyright (c) 2026 Palmares. All rights reserved.

package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// # Node helpers
//
// Small walkers over x/net/html parse trees. They are deliberately simple:
// the reference-site markup is regular enough that tag-name matching beats a
// selector engine.

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(node *html.Node) string {
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return builder.String()
}

func findAll(node *html.Node, tag string) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			results = append(results, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return results
}

func findFirst(node *html.Node, tag string) *html.Node {
	var result *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if result != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			result = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return result
}

func isElement(node *html.Node, tags ...string) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if node.Data == tag {
			return true
		}
	}
	return false
}

func hasClass(node *html.Node, class string) bool {
	return strings.Contains(attr(node, "class"), class)
}

// rowCells returns a table row's th and td children in document order.
func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if isElement(child, "th", "td") {
			cells = append(cells, child)
		}
	}
	return cells
}

// cellText is the collapsed text content of a node.
func cellText(node *html.Node) string {
	return strings.Join(strings.Fields(text(node)), " ")
}
