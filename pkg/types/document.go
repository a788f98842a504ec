// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metadata keys read from a PDF document information dictionary.
const (
	MetaTitle        = "title"
	MetaAuthor       = "author"
	MetaSubject      = "subject"
	MetaKeywords     = "keywords"
	MetaCreator      = "creator"
	MetaProducer     = "producer"
	MetaCreationDate = "creationdate"
	MetaModDate      = "moddate"
)

// Document is a PDF discovered during a run. Its derived attributes live
// only for the duration of processing; nothing is persisted across runs.
type Document struct {
	// Path is the filesystem path of the PDF.
	Path string `json:"path" yaml:"path"`

	// Text is the extracted first-page text, empty if none was found.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Metadata holds the information dictionary, keyed by the Meta* constants.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Title is the resolved title, set once resolution completes.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// TitleSource records where a resolved title came from.
type TitleSource string

const (
	SourceMetadata  TitleSource = "metadata"
	SourceInference TitleSource = "inference"
)

// Outcome is the result of handling one document. Outcomes are logged and
// counted, never persisted.
type Outcome string

const (
	OutcomeRenamed          Outcome = "renamed"
	OutcomeRenamedCustom    Outcome = "renamed-custom"
	OutcomeSkippedExists    Outcome = "skipped-exists"
	OutcomeSkippedCancelled Outcome = "skipped-cancelled"
	OutcomeFailed           Outcome = "failed"
	OutcomePlanned          Outcome = "planned"
	OutcomeRemovedEmpty     Outcome = "removed-empty"
	OutcomeMarkedBroken     Outcome = "marked-broken"
)

// Mutated reports whether the outcome moved a file to a new name.
func (o Outcome) Mutated() bool {
	return o == OutcomeRenamed || o == OutcomeRenamedCustom || o == OutcomeMarkedBroken
}
