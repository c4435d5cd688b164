package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/imageref"
	"github.com/starford/folio/internal/testutil"
)

var migratedRepo = map[string]string{
	"category-article-mapping.yml": `categories:
  - name: Power
    slug: power
    icon: power.svg
    description: ""
    articles:
      - slug: ohms-law
        title: Ohm's Law
        short_title: Ohm's Law
  - name: Empty
    slug: empty
    icon: no-image.svg
    description: Nothing yet
    articles: []
`,
	"categoryIcons/power.svg":       "<svg/>",
	"categoryIcons/no-image.svg":    "<svg/>",
	"articles/ohms-law/article.md":  "---\ndescription: \"Ohm\"\n---\n![a](/images/ohms-law/a.png)\n<img src=\"/images/categoryIcons/power.svg\">\n",
	"articles/ohms-law/images/a.png": "png",
}

func newValidator(t *testing.T, files map[string]string) *Validator {
	t.Helper()
	root, store := testutil.Repo(t)
	testutil.WriteFiles(t, root, files)
	return New(store, testutil.Layout(), imageref.Default, testutil.Logger())
}

func with(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func joined(issues []Issue) string {
	var lines []string
	for _, i := range issues {
		lines = append(lines, i.String())
	}
	return strings.Join(lines, "\n")
}

func expectIssues(t *testing.T, issues []Issue, want ...string) {
	t.Helper()
	all := joined(issues)
	for _, w := range want {
		if !strings.Contains(all, w) {
			t.Errorf("missing issue %q in:\n%s", w, all)
		}
	}
}

func TestStructure_ValidRepository(t *testing.T) {
	r, err := newValidator(t, migratedRepo).Structure()
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if r.Err() != nil {
		t.Errorf("errors:\n%s", joined(r.Errors))
	}
	if r.Checked != 1 {
		t.Errorf("checked = %d, want 1", r.Checked)
	}
}

func TestStructure_MissingMapping(t *testing.T) {
	r, err := newValidator(t, map[string]string{"articles/a/article.md": "x"}).Structure()
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	expectIssues(t, r.Errors, "category-article-mapping.yml: not found")
}

func TestStructure_NoCategories(t *testing.T) {
	r, _ := newValidator(t, map[string]string{"category-article-mapping.yml": "categories: []\n"}).Structure()
	expectIssues(t, r.Errors, "no categories found")
}

func TestStructure_Violations(t *testing.T) {
	files := with(migratedRepo, map[string]string{
		"category-article-mapping.yml": `categories:
  - name: Power
    slug: power
    description: d
    articles:
      - slug: ohms-law
        title: Ohm's Law
      - slug: bad slug
        title: Bad
        short_title: Bad
      - slug: gone
        title: Gone
        short_title: Gone
      - slug: titled
        title: Titled
        short_title: Titled
  - name: Again
    slug: power
    icon: missing.svg
    description: d
    articles: []
  - name: NoArticles
    slug: bare
    icon: power.svg
    description: d
`,
		"articles/stray/article.md":  "---\ndescription: d\n---\n",
		"articles/titled/article.md": "---\ntitle: Titled\nid: titled\n---\nbody\n",
	})
	r, err := newValidator(t, files).Structure()
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	expectIssues(t, r.Errors,
		"category power: icon is required",
		"article power/ohms-law: short_title cannot be blank",
		"article power/bad slug: slug is not URL-safe",
		"article gone: articles/gone/article.md not found",
		"articles/stray: orphan directory, not in mapping",
		"category power: duplicate category slug",
		`category power: icon "missing.svg" not found in categoryIcons`,
		"category bare: articles is required",
		"article titled: frontmatter missing required 'description'",
		"article titled: frontmatter contains forbidden field 'id'",
		"article titled: frontmatter contains forbidden field 'title'",
	)
	if !errors.Is(r.Err(), apperr.ErrValidationFailed) {
		t.Errorf("Err = %v, want ErrValidationFailed", r.Err())
	}
}

func TestStructure_MissingFrontmatter(t *testing.T) {
	r, _ := newValidator(t, with(migratedRepo, map[string]string{
		"articles/ohms-law/article.md": "just a body\n",
	})).Structure()
	expectIssues(t, r.Errors, "article ohms-law: missing frontmatter")
}

func TestImages_Valid(t *testing.T) {
	r, err := newValidator(t, migratedRepo).Images(nil)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(r.Errors) != 0 || len(r.Warnings) != 0 {
		t.Errorf("errors:\n%s\nwarnings:\n%s", joined(r.Errors), joined(r.Warnings))
	}
}

func TestImages_Violations(t *testing.T) {
	files := with(migratedRepo, map[string]string{
		"articles/ohms-law/article.md": "---\ndescription: d\n---\n" +
			"![a](/images/ohms-law/a.png)\n" +
			"![b](/images/ohms-law/b.png)\n" +
			"![c](/images/power/c.png)\n" +
			"<img src=\"http://localhost:3000/images/categoryIcons/nope.svg\">\n",
		"articles/ohms-law/images/nested/unused.png": "png",
	})
	r, err := newValidator(t, files).Images(nil)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	expectIssues(t, r.Errors,
		"missing image 'articles/ohms-law/images/b.png'",
		"'/images/power/c.png' uses an unknown article slug",
		"missing category icon 'nope.svg'",
	)
	expectIssues(t, r.Warnings, "articles/ohms-law/images/nested/unused.png: unused image")
	if len(r.Errors) != 3 {
		t.Errorf("errors = %d, want 3:\n%s", len(r.Errors), joined(r.Errors))
	}
}

func TestImages_ExplicitFiles(t *testing.T) {
	v := newValidator(t, migratedRepo)
	r, err := v.Images([]string{"./articles/ohms-law/article.md", "articles/missing/article.md"})
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if r.Checked != 1 {
		t.Errorf("checked = %d, want 1", r.Checked)
	}
}

func TestArticles_Legacy(t *testing.T) {
	r, err := newValidator(t, testutil.LegacyRepo).Articles(nil)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if r.Checked != 4 {
		t.Errorf("checked = %d, want 4", r.Checked)
	}
	expectIssues(t, r.Errors, "articles/power/ohms-law.md: duplicate id 'ohms-law' (also in articles/basics/ohms-law.md)")
	if len(r.Errors) != 1 {
		t.Errorf("errors:\n%s", joined(r.Errors))
	}
}

func TestArticles_Violations(t *testing.T) {
	r, err := newValidator(t, map[string]string{
		"articles/a/no-header.md":  "plain text\n",
		"articles/a/partial.md":    "---\nid: bad id!\n---\n",
		"articles/.drafts/skip.md": "plain\n",
		"articles/a/notes.txt":     "ignored",
	}).Articles(nil)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if r.Checked != 2 {
		t.Errorf("checked = %d, want 2", r.Checked)
	}
	expectIssues(t, r.Errors,
		"articles/a/no-header.md: missing frontmatter",
		"articles/a/partial.md: missing required field 'title'",
		"articles/a/partial.md: missing required field 'description'",
		"articles/a/partial.md: id 'bad id!' is not URL-safe",
	)
}

func TestRun_SuitesAndErr(t *testing.T) {
	v := newValidator(t, with(migratedRepo, map[string]string{
		"articles/stray/article.md": "---\ndescription: d\n---\n",
	}))
	results, err := v.Run(context.Background(), []Suite{SuiteAll}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, want := range PostMigration {
		if results[i].Name != string(want) {
			t.Errorf("result %d = %s, want %s", i, results[i].Name, want)
		}
	}
	if err := Err(results); !errors.Is(err, apperr.ErrValidationFailed) {
		t.Errorf("Err = %v, want ErrValidationFailed", err)
	}
	if apperr.ExitCode(Err(results)) != apperr.ExitValidation {
		t.Errorf("exit code = %d, want %d", apperr.ExitCode(Err(results)), apperr.ExitValidation)
	}
}

func TestParseSuite(t *testing.T) {
	if s, err := ParseSuite("images"); err != nil || s != SuiteImages {
		t.Errorf("ParseSuite(images) = %q, %v", s, err)
	}
	if _, err := ParseSuite("everything"); err == nil {
		t.Error("expected error for unknown suite")
	}
}
