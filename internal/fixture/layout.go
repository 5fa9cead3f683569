package fixture

import "git.home.luguber.info/inful/exposeparity/internal/frontmatter"

// Image is a solid-color placeholder image to synthesize.
type Image struct {
	Name  string
	Color string
}

// Text is a slide text file written next to an image.
type Text struct {
	Name   string
	Fields []frontmatter.Field
	Body   string
}

// Gallery is one directory of the fixture tree.
type Gallery struct {
	Dir    string
	Images []Image
	Texts  []Text
}

// Sample returns the minimal two-gallery fixture: three solid-color images
// and two text files carrying front matter.
func Sample() []Gallery {
	return []Gallery{
		{
			Dir: "01 Gallery One",
			Images: []Image{
				{Name: "01 blue.jpg", Color: "blue"},
				{Name: "02 red.jpg", Color: "red"},
			},
			Texts: []Text{
				{
					Name: "01 blue.txt",
					Fields: []frontmatter.Field{
						{Key: "title", Value: "Blue Image"},
						{Key: "top", Value: "30"},
						{Key: "left", Value: "10"},
					},
					Body: "A solid blue test image.",
				},
				{
					Name: "02 red.txt",
					Fields: []frontmatter.Field{
						{Key: "title", Value: "Red Image"},
					},
					Body: "A solid red test image.",
				},
			},
		},
		{
			Dir: "02 Gallery Two",
			Images: []Image{
				{Name: "01 green.jpg", Color: "green"},
			},
		},
	}
}
