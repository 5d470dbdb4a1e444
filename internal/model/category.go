package model

import "fmt"

// Category is the closed set of topical labels a document can be classified into.
type Category string

const (
	CategoryAcademic  Category = "Academic"
	CategoryBusiness  Category = "Business"
	CategoryTechnical Category = "Technical"
	CategoryLegal     Category = "Legal"
	CategoryMedical   Category = "Medical"
	CategoryGeneral   Category = "General"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryAcademic,
	CategoryBusiness,
	CategoryTechnical,
	CategoryLegal,
	CategoryMedical,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory converts s into a Category, rejecting unknown labels.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
