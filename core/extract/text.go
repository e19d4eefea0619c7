package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Text returns the text content of a selection. Unlike Selection.Text,
// line breaks and block boundaries become spaces, so "Prospekt<br>KW 12"
// reads "Prospekt KW 12". Script and style contents are skipped.
func Text(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(node.Data)
		return
	case html.ElementNode:
		switch node.Data {
		case "script", "style":
			return
		case "br":
			buffer.WriteByte(' ')
			return
		case "p", "div", "li":
			buffer.WriteByte(' ')
			defer buffer.WriteByte(' ')
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}
