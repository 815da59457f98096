package terminal_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/janekdb/rug-cli/internal/adapters/terminal"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Buffered(t *testing.T) {
	var out bytes.Buffer
	r := terminal.New(strings.NewReader("list\r\ngenerate demo\nlast"), &out, "rug> ")
	defer func() { require.NoError(t, r.Close()) }()

	for _, want := range []string{"list", "generate demo", "last"} {
		line, err := r.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, strings.Repeat("rug> ", 4), out.String())
}

func TestReader_InterruptAbortsOnlyTheLine(t *testing.T) {
	pr, pw := io.Pipe()
	var out bytes.Buffer
	r := terminal.New(pr, &out, "> ")
	defer func() { require.NoError(t, r.Close()) }()

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := r.ReadLine()
		done <- result{line, err}
	}()

	var res result
wait:
	for {
		select {
		case res = <-done:
			break wait
		case <-time.After(10 * time.Millisecond):
			terminal.Interrupt(r)
		}
	}
	require.ErrorIs(t, res.err, domain.ErrInterrupted)

	go func() {
		_, _ = pw.Write([]byte("describe archive\n"))
		_ = pw.Close()
	}()
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "describe archive", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Clear(t *testing.T) {
	var out bytes.Buffer
	r := terminal.New(strings.NewReader(""), &out, "> ")
	require.NoError(t, r.Clear())
	assert.Contains(t, out.String(), "\x1b[2J")
	require.NoError(t, r.Close())
}

func TestCompleteWord(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		candidates []string
		wantLine   string
		wantList   []string
	}{
		{
			name:       "single candidate completes with space",
			line:       "gen",
			candidates: []string{"generate"},
			wantLine:   "generate ",
		},
		{
			name:       "parameter keeps cursor after equals",
			line:       "edit AddReadme na",
			candidates: []string{"name=", "description="},
			wantLine:   "edit AddReadme name=",
		},
		{
			name:       "ambiguous candidates are listed",
			line:       "edit Add",
			candidates: []string{"AddReadme", "AddLicense"},
			wantLine:   "edit Add",
			wantList:   []string{"AddReadme", "AddLicense"},
		},
		{
			name:       "no longer prefix lists all",
			line:       "e",
			candidates: []string{"edit", "editor", "execute"},
			wantLine:   "e",
			wantList:   []string{"edit", "editor", "execute"},
		},
		{
			name:       "shared prefix is filled in",
			line:       "ed",
			candidates: []string{"edit", "editor"},
			wantLine:   "edit",
		},
		{
			name:       "no match leaves line",
			line:       "xyz",
			candidates: []string{"list"},
			wantLine:   "xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, pos, list := terminal.CompleteWord(tt.line, len(tt.line), tt.candidates)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, len(tt.wantLine), pos)
			assert.Equal(t, tt.wantList, list)
		})
	}
}
