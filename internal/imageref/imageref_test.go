package imageref

import (
	"testing"

	"github.com/starford/folio/internal/models"
)

func TestScan_MarkdownAndHTML(t *testing.T) {
	body := `Intro
![diagram](/images/power/diagram.png)
<img src="http://localhost:3000/images/Power/schematic.svg" />
<img src='/images/basics/nested/deep.jpg'>
`
	refs := Default.Scan(body)
	want := []models.ImageRef{
		{Dir: "power", Filename: "diagram.png"},
		{Dir: "Power", Filename: "schematic.svg"},
		{Dir: "basics", Filename: "nested/deep.jpg"},
	}
	if len(refs) != len(want) {
		t.Fatalf("refs = %+v, want %+v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d] = %+v, want %+v", i, refs[i], want[i])
		}
	}
}

func TestScan_DeduplicatesWithinBody(t *testing.T) {
	body := "![a](/images/power/a.png) and again ![b](/images/power/a.png)"
	refs := Default.Scan(body)
	if len(refs) != 1 {
		t.Errorf("refs = %+v, want 1", refs)
	}
}

func TestScan_Idempotent(t *testing.T) {
	body := "![a](/images/power/a.png)\n![b](/images/thermal/b.png)"
	first := Default.Scan(body)
	second := Default.Scan(body)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("first = %v, second = %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("scan %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestScan_IgnoresOtherPaths(t *testing.T) {
	body := `[link](/images/power/not-an-image.png)
![external](https://cdn.example.com/images/power/a.png)
<a href="/images/power/b.png">b</a>
![root](/images/top.png)`
	if refs := Default.Scan(body); len(refs) != 0 {
		t.Errorf("refs = %+v, want none", refs)
	}
}

func TestScan_CustomOrigin(t *testing.T) {
	s := NewScanner("http://127.0.0.1:8080/")
	refs := s.Scan(`<img src="http://127.0.0.1:8080/images/power/a.png">`)
	if len(refs) != 1 || refs[0].Dir != "power" {
		t.Errorf("refs = %+v", refs)
	}
	if refs := s.Scan(`<img src="http://localhost:3000/images/power/a.png">`); len(refs) != 0 {
		t.Errorf("foreign origin matched: %+v", refs)
	}
}

func TestRewrite(t *testing.T) {
	body := `![diagram](/images/power/diagram.png)
<img src="http://localhost:3000/images/Power/schematic.svg" />
text /images/power/untouched.png`
	owners := map[models.ImageKey]string{
		"power/diagram.png":   "ohms-law",
		"power/schematic.svg": "buck",
	}
	got := Default.Rewrite(body, func(ref models.ImageRef) string {
		return owners[ref.Key()]
	})
	want := `![diagram](/images/ohms-law/diagram.png)
<img src="http://localhost:3000/images/buck/schematic.svg" />
text /images/power/untouched.png`
	if got != want {
		t.Errorf("Rewrite =\n%s\nwant\n%s", got, want)
	}
}

func TestRewrite_NoMatches(t *testing.T) {
	body := "nothing to see"
	if got := Default.Rewrite(body, func(models.ImageRef) string { return "x" }); got != body {
		t.Errorf("Rewrite = %q", got)
	}
}
