package compare

import "git.home.luguber.info/inful/exposeparity/internal/tree"

// Status is the outcome of a single check.
type Status string

const (
	StatusMatch       Status = "match"
	StatusMismatch    Status = "mismatch"
	StatusMissing     Status = "missing"
	StatusSimilar     Status = "similar"
	StatusSizeDiffers Status = "size-differs"
	StatusError       Status = "error"
)

// Statuses lists every status in reporting order.
var Statuses = []Status{StatusMatch, StatusSimilar, StatusSizeDiffers, StatusMismatch, StatusMissing, StatusError}

// Failing reports whether the status breaks parity. Size differences only
// fail in strict mode.
func (s Status) Failing(strict bool) bool {
	switch s {
	case StatusMismatch, StatusMissing, StatusError:
		return true
	case StatusSizeDiffers:
		return strict
	default:
		return false
	}
}

// Check names what a result verified.
type Check string

const (
	CheckDirs      Check = "dirs"
	CheckFiles     Check = "files"
	CheckHTML      Check = "html"
	CheckTitle     Check = "title"
	CheckSlides    Check = "slides"
	CheckGalleries Check = "galleries"
	CheckImage     Check = "image"
)

// Result is one check outcome. Path is relative to both output roots and
// empty for the listing checks.
type Result struct {
	Check  Check       `json:"check"`
	Path   string      `json:"path,omitempty"`
	Status Status      `json:"status"`
	Left   string      `json:"left,omitempty"`
	Right  string      `json:"right,omitempty"`
	Delta  *tree.Delta `json:"delta,omitempty"`
	Detail string      `json:"detail,omitempty"`
}
