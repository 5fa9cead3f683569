package compare

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/exposeparity/internal/logfields"
	"git.home.luguber.info/inful/exposeparity/internal/tree"
)

// Options tunes the comparator.
type Options struct {
	// TolerancePercent bounds the allowed image size difference, as a
	// percentage of the first image's size.
	TolerancePercent int
	HTMLExtensions   []string
	ImageExtensions  []string
}

// DefaultOptions matches the generators' own parity tests.
func DefaultOptions() Options {
	return Options{
		TolerancePercent: 5,
		HTMLExtensions:   []string{".html", ".htm"},
		ImageExtensions:  []string{".jpg", ".jpeg", ".png", ".gif"},
	}
}

// Side is one output tree under comparison.
type Side struct {
	Name string
	Dir  string
}

// Comparator diffs output trees.
type Comparator struct {
	opts Options
}

// New creates a comparator; zero-valued options fall back to the defaults.
func New(opts Options) *Comparator {
	def := DefaultOptions()
	if len(opts.HTMLExtensions) == 0 {
		opts.HTMLExtensions = def.HTMLExtensions
	}
	if len(opts.ImageExtensions) == 0 {
		opts.ImageExtensions = def.ImageExtensions
	}
	return &Comparator{opts: opts}
}

// Compare runs every check of left against right. HTML and image checks
// iterate the files of left in sorted order.
func (c *Comparator) Compare(left, right Side) []Result {
	leftList, leftErr := tree.List(left.Dir)
	rightList, rightErr := tree.List(right.Dir)

	var results []Result
	if err := firstErr(leftErr, rightErr); err != nil {
		slog.Warn("Could not list output tree", logfields.Error(err))
		results = append(results,
			Result{Check: CheckDirs, Status: StatusError, Detail: err.Error()},
			Result{Check: CheckFiles, Status: StatusError, Detail: err.Error()},
		)
	} else {
		results = append(results,
			listingResult(CheckDirs, leftList.Dirs, rightList.Dirs, left.Name, right.Name),
			listingResult(CheckFiles, leftList.Files, rightList.Files, left.Name, right.Name),
		)
	}

	present := make(map[string]bool, len(rightList.Files))
	for _, f := range rightList.Files {
		present[f] = true
	}

	for _, rel := range leftList.Files {
		switch {
		case hasExt(rel, c.opts.HTMLExtensions):
			results = append(results, c.compareHTML(left, right, rel,
				leftList.OnDisk(rel), rightList.OnDisk(rel), present[rel])...)
		case hasExt(rel, c.opts.ImageExtensions):
			results = append(results, c.compareImage(left, right, rel,
				leftList.OnDisk(rel), rightList.OnDisk(rel), present[rel]))
		}
	}
	return results
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func listingResult(check Check, left, right []string, leftName, rightName string) Result {
	d := tree.Diff(left, right)
	r := Result{Check: check, Status: StatusMatch, Left: strconv.Itoa(len(left)), Right: strconv.Itoa(len(right))}
	if !d.Empty() {
		r.Status = StatusMismatch
		r.Delta = &d
		var parts []string
		if len(d.OnlyLeft) > 0 {
			parts = append(parts, fmt.Sprintf("only in %s: %s", leftName, strings.Join(d.OnlyLeft, ", ")))
		}
		if len(d.OnlyRight) > 0 {
			parts = append(parts, fmt.Sprintf("only in %s: %s", rightName, strings.Join(d.OnlyRight, ", ")))
		}
		r.Detail = strings.Join(parts, "; ")
	}
	return r
}

func hasExt(rel string, exts []string) bool {
	ext := strings.ToLower(path.Ext(rel))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// compareHTML and compareImage report under the normalized rel but read
// each side through its own on-disk path.
func (c *Comparator) compareHTML(left, right Side, rel, leftRaw, rightRaw string, present bool) []Result {
	if !present {
		return []Result{{Check: CheckHTML, Path: rel, Status: StatusMissing, Detail: "not in " + right.Name}}
	}

	leftContent, err := readFile(left.Dir, leftRaw)
	if err != nil {
		return []Result{errorResult(CheckHTML, rel, err)}
	}
	rightContent, err := readFile(right.Dir, rightRaw)
	if err != nil {
		return []Result{errorResult(CheckHTML, rel, err)}
	}

	if NormalizeWhitespace(string(leftContent)) == NormalizeWhitespace(string(rightContent)) {
		return []Result{{Check: CheckHTML, Path: rel, Status: StatusMatch}}
	}

	results := []Result{{Check: CheckHTML, Path: rel, Status: StatusMismatch, Detail: "normalized content differs"}}

	leftPage, err := ParsePage(leftContent)
	if err != nil {
		return append(results, errorResult(CheckTitle, rel, err))
	}
	rightPage, err := ParsePage(rightContent)
	if err != nil {
		return append(results, errorResult(CheckTitle, rel, err))
	}

	return append(results,
		valueResult(CheckTitle, rel, leftPage.Title(), rightPage.Title()),
		valueResult(CheckSlides, rel, strconv.Itoa(leftPage.Slides), strconv.Itoa(rightPage.Slides)),
		valueResult(CheckGalleries, rel, strconv.Itoa(leftPage.Galleries), strconv.Itoa(rightPage.Galleries)),
	)
}

func valueResult(check Check, rel, left, right string) Result {
	r := Result{Check: check, Path: rel, Status: StatusMatch, Left: left, Right: right}
	if left != right {
		r.Status = StatusMismatch
	}
	return r
}

func (c *Comparator) compareImage(left, right Side, rel, leftRaw, rightRaw string, present bool) Result {
	if !present {
		return Result{Check: CheckImage, Path: rel, Status: StatusMissing, Detail: "not in " + right.Name}
	}

	leftInfo, err := os.Stat(filepath.Join(left.Dir, leftRaw))
	if err != nil {
		return errorResult(CheckImage, rel, err)
	}
	rightInfo, err := os.Stat(filepath.Join(right.Dir, rightRaw))
	if err != nil {
		return errorResult(CheckImage, rel, err)
	}

	size1, size2 := leftInfo.Size(), rightInfo.Size()
	r := Result{
		Check: CheckImage,
		Path:  rel,
		Left:  strconv.FormatInt(size1, 10),
		Right: strconv.FormatInt(size2, 10),
	}
	if WithinTolerance(size1, size2, c.opts.TolerancePercent) {
		r.Status = StatusSimilar
	} else {
		r.Status = StatusSizeDiffers
		r.Detail = fmt.Sprintf("differs by more than %d%%", c.opts.TolerancePercent)
	}
	return r
}

// WithinTolerance reports whether |size1-size2| <= size1*percent/100, using
// integer division.
func WithinTolerance(size1, size2 int64, percent int) bool {
	tolerance := size1 * int64(percent) / 100
	diff := size1 - size2
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func readFile(root, raw string) ([]byte, error) {
	// #nosec G304 -- paths come from listing the output tree
	return os.ReadFile(filepath.Join(root, raw))
}

func errorResult(check Check, rel string, err error) Result {
	slog.Warn("Comparison check failed", logfields.Check(string(check)), logfields.File(rel), logfields.Error(err))
	return Result{Check: check, Path: rel, Status: StatusError, Detail: err.Error()}
}
