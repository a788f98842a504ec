// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GeneratedTitle is the tagged result of asking the model for a title.
// The zero value is NotFound.
type GeneratedTitle struct {
	title string
	found bool
}

// NotFound is the result when the model produced no usable title, or the
// service could not be reached.
var NotFound = GeneratedTitle{}

// Found wraps a title extracted from a model response.
func Found(title string) GeneratedTitle {
	return GeneratedTitle{title: title, found: true}
}

// Get returns the title and whether one was found.
func (g GeneratedTitle) Get() (string, bool) {
	return g.title, g.found
}

// String renders the result for logs.
func (g GeneratedTitle) String() string {
	if !g.found {
		return "<not found>"
	}
	return g.title
}
