package rename

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/pdfrename/internal/title"
)

// Confirmer asks a human whether a proposed rename should go ahead. The
// reply is "y" to accept, "n" to cancel, or any other text to use as a
// custom name.
type Confirmer interface {
	Confirm(ctx context.Context, src, proposed string) (string, error)
}

// PromptConfirmer reads replies line by line from an input stream.
type PromptConfirmer struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer prompts on out and reads answers from in.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the proposal and waits for one line of input. End of
// input without an answer counts as "n".
func (p *PromptConfirmer) Confirm(_ context.Context, src, proposed string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "File:     %s\nProposed: %s\nRename? (y/n/something random): ", src, proposed)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" && errors.Is(err, io.EOF) {
		return "n", nil
	}
	return line, nil
}

type decision int

const (
	decisionAccept decision = iota
	decisionCancel
	decisionCustom
)

// interpret classifies a reply. For a custom reply it also returns the
// sanitized name with any .pdf suffix removed; a custom name that
// sanitizes to nothing cancels.
func interpret(reply string) (decision, string) {
	reply = strings.TrimSpace(reply)
	switch strings.ToLower(reply) {
	case "y", "yes":
		return decisionAccept, ""
	case "n", "no", "":
		return decisionCancel, ""
	}
	if ext := ".pdf"; len(reply) >= len(ext) && strings.EqualFold(reply[len(reply)-len(ext):], ext) {
		reply = reply[:len(reply)-len(ext)]
	}
	name := title.Sanitize(reply)
	if name == "" {
		return decisionCancel, ""
	}
	return decisionCustom, name
}
