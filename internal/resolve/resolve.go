// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve decides the title a document should be renamed to.
// Embedded metadata wins when it holds a usable title; otherwise the
// first-page text is sent to the inference service.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/title"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// ErrNoTitle means neither metadata nor inference produced a usable title.
// The file is left untouched.
var ErrNoTitle = errors.New("no usable title")

// TitleGenerator produces a candidate title from document text.
// *inference.Client is the production implementation.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, text string) types.GeneratedTitle
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	// Title is sanitized and non-empty.
	Title string

	// Source records whether the title came from metadata or inference.
	Source types.TitleSource

	// Truncated is set when sanitization cut the title to title.MaxLength
	// runes or title.MaxBytes bytes.
	Truncated bool
}

type state int

const (
	stateExtractText state = iota
	stateCheckMetadata
	stateInferTitle
	stateResolved
)

func (s state) String() string {
	switch s {
	case stateExtractText:
		return "extract-text"
	case stateCheckMetadata:
		return "check-metadata"
	case stateInferTitle:
		return "infer-title"
	case stateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Resolver runs the title state machine for one document at a time. It is
// safe for concurrent use when its collaborators are.
type Resolver struct {
	extractor extract.Extractor
	generator TitleGenerator
	forceLLM  bool
	logger    *slog.Logger
}

// New creates a Resolver. With forceLLM set the metadata check is skipped.
func New(extractor extract.Extractor, generator TitleGenerator, forceLLM bool, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		extractor: extractor,
		generator: generator,
		forceLLM:  forceLLM,
		logger:    logger,
	}
}

// Resolve walks ExtractText, CheckMetadata, InferTitle and Resolved for
// path. Unreadable documents return an error wrapping extract.ErrUnreadable
// before any inference call; a document with no usable title, or with no
// first-page text to infer one from, returns ErrNoTitle.
func (r *Resolver) Resolve(ctx context.Context, path string) (Resolution, error) {
	logger := r.logger.With("file", path)

	var (
		doc       = types.Document{Path: path}
		candidate string
		source    types.TitleSource
	)

	for st := stateExtractText; ; {
		logger.Debug("resolve step", "state", st)

		switch st {
		case stateExtractText:
			text, err := r.extractor.Text(path)
			if err != nil {
				return Resolution{}, fmt.Errorf("extracting text: %w", err)
			}
			doc.Text = text
			if r.forceLLM {
				st = stateInferTitle
			} else {
				st = stateCheckMetadata
			}

		case stateCheckMetadata:
			meta, err := r.extractor.Metadata(path)
			if err != nil {
				logger.Warn("reading metadata failed, treating as empty", "error", err)
				meta = nil
			}
			doc.Metadata = meta
			if t := meta[types.MetaTitle]; title.IsValid(t) {
				candidate, source = t, types.SourceMetadata
				st = stateResolved
			} else {
				logger.Info("no usable metadata title", "metadata_title", t)
				st = stateInferTitle
			}

		case stateInferTitle:
			if err := ctx.Err(); err != nil {
				return Resolution{}, err
			}
			// A page without a text layer leaves the model nothing to read.
			if strings.TrimSpace(doc.Text) == "" {
				logger.Warn("no text on first page, skipping inference")
				return Resolution{}, ErrNoTitle
			}
			generated, ok := r.generator.GenerateTitle(ctx, doc.Text).Get()
			if !ok {
				return Resolution{}, ErrNoTitle
			}
			candidate, source = generated, types.SourceInference
			st = stateResolved

		case stateResolved:
			clean, truncated := title.SanitizeReport(candidate)
			if clean == "" {
				logger.Warn("title empty after sanitizing", "candidate", candidate, "source", source)
				return Resolution{}, ErrNoTitle
			}
			if truncated {
				logger.Warn("title truncated", "max_length", title.MaxLength, "max_bytes", title.MaxBytes, "title", clean)
			}
			doc.Title = clean
			logger.Info("title resolved", "title", doc.Title, "source", source)
			return Resolution{Title: doc.Title, Source: source, Truncated: truncated}, nil
		}
	}
}
