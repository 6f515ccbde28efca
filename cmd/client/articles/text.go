package articles

import (
	"fmt"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
	ExtractorPlain       = "plain"
)

// TextExtractor 는 기사 본문(마크업일 수 있다)에서 사람이 읽을 텍스트를 뽑는다.
type TextExtractor func(content string) (string, error)

// NewTextExtractor 는 이름에 맞는 extractor 를 돌려준다.
// readability/trafilatura 가 본문을 찾지 못하면 plain 으로 떨어진다.
func NewTextExtractor(name string) (TextExtractor, error) {
	switch name {
	case ExtractorReadability, "":
		return withPlainFallback(ParseHtmlWithReadability), nil
	case ExtractorTrafilatura:
		return withPlainFallback(ParseHtmlWithTrafilatura), nil
	case ExtractorPlain:
		return PlainText, nil
	default:
		return nil, fmt.Errorf("unknown text extractor %q", name)
	}
}

func withPlainFallback(primary TextExtractor) TextExtractor {
	return func(content string) (string, error) {
		if !looksLikeMarkup(content) {
			return normalizeSpace(content), nil
		}
		if text, err := primary(content); err == nil && strings.TrimSpace(text) != "" {
			return normalizeSpace(text), nil
		}
		return PlainText(content)
	}
}

// ParseHtmlWithReadability 는 go-readability 로 본문 텍스트를 뽑는다.
func ParseHtmlWithReadability(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// ParseHtmlWithTrafilatura 는 짧은 조각에서도 본문을 잘 찾도록 fallback 을 켠 채 추출한다.
func ParseHtmlWithTrafilatura(htmlStr string) (string, error) {
	opts := trafilatura.Options{
		EnableFallback: true,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return "", err
	}
	return article.ContentText, nil
}

// PlainText 는 태그를 걷어내고 텍스트 노드만 이어 붙인다. script/style 내용은 버린다.
func PlainText(content string) (string, error) {
	if !looksLikeMarkup(content) {
		return normalizeSpace(content), nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return normalizeSpace(sb.String()), nil
}

func looksLikeMarkup(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
