// Package gallery scans an expose input tree (galleries of ordered slides)
// without rendering anything.
package gallery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/exposeparity/internal/frontmatter"
)

// SiteDir is the generator output directory inside an input tree.
const SiteDir = "_site"

// ImageExtensions are the slide image types, lowercase with dot.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// TextExtensions are looked up, in order, for a slide's paired text file.
var TextExtensions = []string{".txt", ".md"}

// Gallery is one directory of slides.
type Gallery struct {
	RelPath string
	Name    string
	Slug    string
	Depth   int
	Slides  []Slide
}

// Slide is an image plus its optional text file.
type Slide struct {
	Image       string
	TextFile    string
	Name        string
	Slug        string
	Title       string
	FrontMatter frontmatter.Document
}

// IsImage reports whether name has a slide image extension.
func IsImage(name string) bool {
	return slices.Contains(ImageExtensions, strings.ToLower(filepath.Ext(name)))
}

// Scan walks root and returns every directory holding at least one slide,
// in lexical (numeric prefix) order. `_`-prefixed and hidden entries are
// skipped, which also excludes the generator's `_site` output.
func Scan(root string) ([]Gallery, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var galleries []Gallery
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipName(d.Name()) {
			return filepath.SkipDir
		}

		slides, err := readSlides(path)
		if err != nil {
			return err
		}
		if len(slides) == 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		g := Gallery{RelPath: filepath.ToSlash(rel), Slides: slides}
		if rel != "." {
			g.Name = StripNumericPrefix(d.Name())
			g.Slug = URLSafe(g.Name)
			g.Depth = strings.Count(g.RelPath, "/") + 1
		}
		galleries = append(galleries, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return galleries, nil
}

func skipName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func readSlides(dir string) ([]Slide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var slides []Slide
	for _, entry := range entries {
		if entry.IsDir() || skipName(entry.Name()) || !IsImage(entry.Name()) {
			continue
		}
		slide, err := readSlide(dir, entry.Name())
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

func readSlide(dir, name string) (Slide, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	slide := Slide{
		Image: filepath.Join(dir, name),
		Name:  StripSlidePrefix(stem),
	}
	slide.Slug = URLSafe(slide.Name)
	slide.Title = slide.Name

	for _, ext := range TextExtensions {
		candidate := filepath.Join(dir, stem+ext)
		// #nosec G304 -- candidate is derived from a directory listing under the scanned root
		data, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Slide{}, err
		}
		slide.TextFile = candidate
		slide.FrontMatter = frontmatter.Parse(data)
		if title, ok := slide.FrontMatter.Get("title"); ok {
			slide.Title = title
		}
		break
	}
	return slide, nil
}
