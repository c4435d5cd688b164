package migrate

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/journal"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/ownership"
)

// Report summarizes one run. The counts taken before staging are identical
// between a dry run and a real run on the same input.
type Report struct {
	DryRun bool

	Categories        int
	UniqueArticles    int
	MultiCategory     []catalog.MultiCategory
	MissingCategories []string

	SharedImages int
	OrphanImages int
	Unassigned   []models.ImageKey
	Assignments  []ownership.Assignment

	ArticlesWritten int
	ImagesMoved     int
	ImagesSkipped   int
	Icons           []string

	Dates          int
	DateDuplicates []DuplicateDate

	Swapped    []journal.Step
	Backups    []string
	RootImages []string

	Warnings []string

	logger *slog.Logger
}

// newReport collects the resolution gaps the catalog and resolver already
// logged; later gaps go through warnf.
func newReport(dryRun bool, cat *catalog.Catalog, res *ownership.Result, logger *slog.Logger) *Report {
	rep := &Report{
		DryRun:            dryRun,
		Categories:        len(cat.Categories()),
		UniqueArticles:    cat.Len(),
		MultiCategory:     cat.MultiCategory(),
		MissingCategories: cat.MissingCategories(),
		SharedImages:      len(res.Shared()),
		OrphanImages:      len(res.Orphans()),
		Unassigned:        res.Unassigned(),
		Assignments:       res.Assignments(),
		logger:            logger,
	}
	for _, id := range rep.MissingCategories {
		rep.note("category %s: no directory", id)
	}
	for _, s := range cat.Skipped() {
		rep.note("article %s (%s): slug cannot be used as a directory, skipped", s.Slug, s.SourcePath)
	}
	for _, key := range rep.Unassigned {
		rep.note("orphan image %s: no owning article, not migrated", key)
	}
	for _, key := range res.Rejected() {
		rep.note("image %s: path leaves its directory, reference left unchanged", key)
	}
	return rep
}

func (r *Report) note(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// warnf records a warning in the report and logs it.
func (r *Report) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	if r.logger != nil {
		r.logger.Warn("migrate: " + msg)
	}
}

// Print writes the human-readable summary.
func (r *Report) Print(w io.Writer) {
	if len(r.MultiCategory) > 0 {
		fmt.Fprintln(w, "\n--- Multi-category articles ---")
		for _, mc := range r.MultiCategory {
			fmt.Fprintf(w, "  %s -> [%s]\n", mc.Slug, strings.Join(mc.Categories, ", "))
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\n--- Warnings ---")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  WARN: %s\n", msg)
		}
	}
	if len(r.DateDuplicates) > 0 {
		fmt.Fprintln(w, "\n--- Skipped duplicate dates ---")
		for _, d := range r.DateDuplicates {
			fmt.Fprintf(w, "  %s (slug %s already seen)\n", d.Key, d.Slug)
		}
	}
	if len(r.Icons) > 0 {
		fmt.Fprintln(w, "\n--- Category icons ---")
		for _, name := range r.Icons {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(r.RootImages) > 0 {
		fmt.Fprintln(w, "\n--- Root images (move to main app public/) ---")
		for _, name := range r.RootImages {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}

	title := "Migration Report"
	if r.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	fmt.Fprintf(w, "Categories: %d\n", r.Categories)
	fmt.Fprintf(w, "Unique articles: %d\n", r.UniqueArticles)
	fmt.Fprintf(w, "Multi-category articles: %d\n", len(r.MultiCategory))
	fmt.Fprintf(w, "Images moved: %d\n", r.ImagesMoved)
	fmt.Fprintf(w, "Orphan images: %d\n", r.OrphanImages)
	fmt.Fprintf(w, "Shared images: %d\n", r.SharedImages)
	fmt.Fprintf(w, "Dates: %d (%d duplicates skipped)\n", r.Dates, len(r.DateDuplicates))

	if !r.DryRun && len(r.Swapped) > 0 {
		fmt.Fprintf(w, "\nBackups: %s\n", strings.Join(r.Backups, ", "))
		fmt.Fprintln(w, "Old images/ dir left intact, delete after verification")
		fmt.Fprintln(w, "\nNext: run folio validate, then clean up old dirs")
	}
}

// PrintAssignments writes the ownership table, one image per line.
func (r *Report) PrintAssignments(w io.Writer) {
	fmt.Fprintln(w, "--- Image ownership ---")
	for _, a := range r.Assignments {
		mark := ""
		if a.Orphan {
			mark = "  (orphan)"
		}
		fmt.Fprintf(w, "  %s -> %s%s\n", a.Key, a.Owner, mark)
	}
	for _, key := range r.Unassigned {
		fmt.Fprintf(w, "  %s -> (unassigned)\n", key)
	}
}
