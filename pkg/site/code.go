package site

import "strings"

// Section identifies one of the three code fields of a generated site.
type Section string

const (
	SectionHTML Section = "html"
	SectionCSS  Section = "css"
	SectionJS   Section = "js"

	// SectionNone marks that no section is currently being generated.
	SectionNone Section = ""
)

// Sections lists the code sections in their fixed reveal order.
var Sections = []Section{SectionHTML, SectionCSS, SectionJS}

// Code holds the three generated source fields. Any field may be empty.
type Code struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// Get returns the content of the given section.
func (c Code) Get(section Section) string {
	switch section {
	case SectionHTML:
		return c.HTML
	case SectionCSS:
		return c.CSS
	case SectionJS:
		return c.JS
	}
	return ""
}

// WithSection returns a copy of the code with one section replaced.
func (c Code) WithSection(section Section, content string) Code {
	switch section {
	case SectionHTML:
		c.HTML = content
	case SectionCSS:
		c.CSS = content
	case SectionJS:
		c.JS = content
	}
	return c
}

// IsEmpty reports whether no section has any content.
func (c Code) IsEmpty() bool {
	return strings.TrimSpace(c.HTML) == "" &&
		strings.TrimSpace(c.CSS) == "" &&
		strings.TrimSpace(c.JS) == ""
}
