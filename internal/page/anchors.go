package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrBrokenAnchor is returned by CheckAnchors when a fragment link has no target.
var ErrBrokenAnchor = errors.New("fragment link has no target")

// CheckAnchors parses a rendered page and reports every "#id" link whose
// target element does not exist. Content files can point CTAs at
// arbitrary fragments, so the static build runs this before writing.
func CheckAnchors(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parsing page: %w", err)
	}

	ids := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		ids[id] = true
	})

	var broken []string
	doc.Find(`a[href^="#"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		id := strings.TrimPrefix(href, "#")
		if id != "" && !ids[id] {
			broken = append(broken, href)
		}
	})
	if len(broken) > 0 {
		return fmt.Errorf("%w: %s", ErrBrokenAnchor, strings.Join(broken, ", "))
	}
	return nil
}
