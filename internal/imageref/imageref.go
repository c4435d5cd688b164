// Package imageref finds and rewrites image references embedded in article
// bodies. It does no I/O.
package imageref

import (
	"regexp"
	"strings"

	"github.com/starford/folio/internal/models"
)

// DefaultDevOrigin is the local development origin authors paste into bodies.
const DefaultDevOrigin = "http://localhost:3000"

// Scanner matches src="/images/{dir}/{file}" attributes and
// ![alt](/images/{dir}/{file}) links, optionally prefixed with the dev origin.
type Scanner struct {
	re *regexp.Regexp
}

// NewScanner builds a Scanner for the given development origin. An empty
// origin only matches root-relative paths.
func NewScanner(devOrigin string) *Scanner {
	origin := ""
	if devOrigin != "" {
		origin = `(?:` + regexp.QuoteMeta(strings.TrimSuffix(devOrigin, "/")) + `)?`
	}
	// Groups: 1 prefix (opener + optional origin), 2 directory, 3 filename.
	re := regexp.MustCompile(`((?:src=["']|!\[.*?\]\()` + origin + `)/images/([^/"')]+)/([^"')]+)`)
	return &Scanner{re: re}
}

// Default scans with DefaultDevOrigin.
var Default = NewScanner(DefaultDevOrigin)

// Scan returns the distinct references in body, in order of first appearance.
func (s *Scanner) Scan(body string) []models.ImageRef {
	var refs []models.ImageRef
	seen := make(map[models.ImageRef]struct{})
	for _, m := range s.re.FindAllStringSubmatch(body, -1) {
		ref := models.ImageRef{Dir: m[2], Filename: m[3]}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

// Rewrite replaces the directory of every reference with the value returned
// by dir, leaving the prefix and filename intact.
func (s *Scanner) Rewrite(body string, dir func(models.ImageRef) string) string {
	matches := s.re.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, m := range matches {
		prefix := body[m[2]:m[3]]
		ref := models.ImageRef{Dir: body[m[4]:m[5]], Filename: body[m[6]:m[7]]}

		b.WriteString(body[last:m[0]])
		b.WriteString(prefix)
		b.WriteString("/images/")
		b.WriteString(dir(ref))
		b.WriteByte('/')
		b.WriteString(ref.Filename)
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String()
}
