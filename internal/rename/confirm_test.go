package rename

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptConfirmer(strings.NewReader("y\n  Custom Name  \n"), &out)

	reply, err := p.Confirm(context.Background(), "scan.pdf", "Proposed.pdf")
	require.NoError(t, err)
	assert.Equal(t, "y", reply)
	assert.Contains(t, out.String(), "Proposed: Proposed.pdf")
	assert.Contains(t, out.String(), "Rename? (y/n/something random): ")

	reply, err = p.Confirm(context.Background(), "scan2.pdf", "Other.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Custom Name", reply)

	// Input exhausted.
	reply, err = p.Confirm(context.Background(), "scan3.pdf", "Third.pdf")
	require.NoError(t, err)
	assert.Equal(t, "n", reply)
}

func TestPromptConfirmer_LastLineWithoutNewline(t *testing.T) {
	p := NewPromptConfirmer(strings.NewReader("n"), &bytes.Buffer{})

	reply, err := p.Confirm(context.Background(), "a.pdf", "A.pdf")
	require.NoError(t, err)
	assert.Equal(t, "n", reply)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		reply string
		want  decision
		name  string
	}{
		{"y", decisionAccept, ""},
		{"yes", decisionAccept, ""},
		{"n", decisionCancel, ""},
		{"NO", decisionCancel, ""},
		{"", decisionCancel, ""},
		{"Better Title", decisionCustom, "Better Title"},
		{"better title.pdf", decisionCustom, "better title"},
		{"Report.Pdf", decisionCustom, "Report"},
		{"a/b: c", decisionCustom, "ab c"},
		{".pdf", decisionCancel, ""},
		{"|||", decisionCancel, ""},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			got, name := interpret(tt.reply)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, name)
		})
	}
}
