// Package tree produces comparable listings of generated output trees.
package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Listing holds the directories and files below a root, as sorted
// slash-separated paths relative to that root. The root itself is excluded.
type Listing struct {
	Dirs  []string `json:"dirs"`
	Files []string `json:"files"`

	// normalized path -> relative path as stored on disk
	onDisk map[string]string
}

// OnDisk returns the relative path, in native separators, under which the
// listed entry rel is stored. Names are returned unchanged when they were
// not altered by normalization.
func (l Listing) OnDisk(rel string) string {
	if raw, ok := l.onDisk[rel]; ok {
		return raw
	}
	return filepath.FromSlash(rel)
}

// List walks root and returns its listing. Paths are NFC-normalized so that
// trees written on decomposing file systems compare equal.
func List(root string) (Listing, error) {
	var l Listing
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		key := norm.NFC.String(filepath.ToSlash(rel))
		if key != filepath.ToSlash(rel) {
			if l.onDisk == nil {
				l.onDisk = make(map[string]string)
			}
			l.onDisk[key] = rel
		}
		rel = key
		if d.IsDir() {
			l.Dirs = append(l.Dirs, rel)
		} else {
			l.Files = append(l.Files, rel)
		}
		return nil
	})
	if err != nil {
		return Listing{}, fmt.Errorf("list %s: %w", root, err)
	}
	sort.Strings(l.Dirs)
	sort.Strings(l.Files)
	return l, nil
}

// Delta is the symmetric difference of two sorted path lists.
type Delta struct {
	OnlyLeft  []string `json:"only_left,omitempty"`
	OnlyRight []string `json:"only_right,omitempty"`
}

// Empty reports whether both sides hold the same paths.
func (d Delta) Empty() bool {
	return len(d.OnlyLeft) == 0 && len(d.OnlyRight) == 0
}

// Diff returns the entries present on only one side. Inputs must be sorted.
func Diff(left, right []string) Delta {
	var d Delta
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i] == right[j]:
			i++
			j++
		case left[i] < right[j]:
			d.OnlyLeft = append(d.OnlyLeft, left[i])
			i++
		default:
			d.OnlyRight = append(d.OnlyRight, right[j])
			j++
		}
	}
	d.OnlyLeft = append(d.OnlyLeft, left[i:]...)
	d.OnlyRight = append(d.OnlyRight, right[j:]...)
	return d
}
