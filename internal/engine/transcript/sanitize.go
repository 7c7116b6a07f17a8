package transcript

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags may appear in transcript content. Other elements are
// unwrapped (children kept); dropTags are removed with their content.
var allowedTags = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Strong: true, atom.B: true, atom.Em: true,
	atom.I: true, atom.U: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Span: true, atom.A: true, atom.H3: true, atom.H4: true, atom.H5: true,
	atom.H6: true, atom.Blockquote: true,
}

var dropTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Iframe: true, atom.Object: true,
	atom.Embed: true, atom.Form: true, atom.Noscript: true, atom.Template: true,
}

var markupRE = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

var voidTags = map[atom.Atom]bool{atom.Br: true}

// Sanitize reduces editor-supplied transcript HTML to an allowlist of
// formatting tags. Plain text (no markup) is turned into paragraphs.
func Sanitize(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if !markupRE.MatchString(content) {
		return Paragraphs(content)
	}

	ctx := &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := xhtml.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		return Paragraphs(content)
	}
	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func writeNode(sb *strings.Builder, n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case xhtml.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(sb, c)
		}
		return
	}

	if dropTags[n.DataAtom] {
		return
	}
	keep := allowedTags[n.DataAtom]
	if keep {
		sb.WriteByte('<')
		sb.WriteString(n.Data)
		writeAttrs(sb, n)
		sb.WriteByte('>')
		if voidTags[n.DataAtom] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(sb, c)
	}
	if keep {
		sb.WriteString("</" + n.Data + ">")
	}
}

func writeAttrs(sb *strings.Builder, n *xhtml.Node) {
	for _, a := range n.Attr {
		var ok bool
		switch {
		case n.DataAtom == atom.A && a.Key == "href":
			ok = safeHref(a.Val)
		case a.Key == "title":
			ok = true
		case n.DataAtom == atom.Span && (a.Key == "class" || a.Key == "data-start"):
			ok = true
		}
		if !ok {
			continue
		}
		sb.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
	}
	if n.DataAtom == atom.A {
		sb.WriteString(` rel="nofollow noopener"`)
	}
}

func safeHref(v string) bool {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		return true
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	}
	return false
}

// Paragraphs escapes plain text and wraps it into <p> elements: blank lines
// separate paragraphs, single newlines become <br>.
func Paragraphs(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if text == "" {
		return ""
	}
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(l))
		}
		sb.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>")
	}
	return sb.String()
}
