// Package terminal reads interactive shell input with line editing and tab completion.
package terminal

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

const keyCtrlC = 3

// Reader implements ports.LineReader.
// On a terminal it edits lines in raw mode, which is entered for each read and restored afterwards.
// Any other input is read line by line.
type Reader struct {
	in     io.Reader
	out    io.Writer
	prompt string
	output *termenv.Output

	fd          int
	term        *term.Terminal
	interrupted bool

	buffered  *bufio.Reader
	pending   chan readResult
	sigs      chan os.Signal
	notifying bool

	completer ports.Completer
}

type readResult struct {
	line string
	err  error
}

// New creates a Reader over in, echoing prompts and completions to out.
// SIGINT is captured from the first ReadLine until Close.
func New(in io.Reader, out io.Writer, prompt string) *Reader {
	r := &Reader{
		in:     in,
		out:    out,
		prompt: prompt,
		output: termenv.NewOutput(out),
		sigs:   make(chan os.Signal, 1),
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		r.term = r.newTerminal(nil)
	} else {
		r.buffered = bufio.NewReader(in)
	}
	return r
}

func (r *Reader) newTerminal(history term.History) *term.Terminal {
	t := term.NewTerminal(ttyIO{r: r}, r.prompt)
	if history != nil {
		t.History = history
	}
	t.AutoCompleteCallback = r.autoComplete
	return t
}

// ReadLine returns the next line of input.
func (r *Reader) ReadLine() (string, error) {
	if !r.notifying {
		signal.Notify(r.sigs, os.Interrupt)
		r.notifying = true
	}
	r.drainSignals()
	if r.term != nil {
		return r.readTerminal()
	}
	return r.readBuffered()
}

func (r *Reader) readTerminal() (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to enter raw mode")
	}
	defer func() { _ = term.Restore(r.fd, state) }()

	if width, height, err := term.GetSize(r.fd); err == nil {
		_ = r.term.SetSize(width, height)
	}

	line, err := r.term.ReadLine()
	switch {
	case errors.Is(err, io.EOF) && r.interrupted:
		r.interrupted = false
		// The terminal keeps the aborted line; start over with a fresh one.
		r.term = r.newTerminal(r.term.History)
		_, _ = io.WriteString(r.out, "^C\r\n")
		return "", domain.ErrInterrupted
	case errors.Is(err, term.ErrPasteIndicator):
		return line, nil
	case err != nil:
		return "", err
	}
	return line, nil
}

func (r *Reader) readBuffered() (string, error) {
	_, _ = io.WriteString(r.out, r.prompt)

	if r.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := r.buffered.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		r.pending = ch
	}

	select {
	case res := <-r.pending:
		r.pending = nil
		if res.err != nil && (!errors.Is(res.err, io.EOF) || res.line == "") {
			return "", res.err
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	case <-r.sigs:
		_, _ = io.WriteString(r.out, "\n")
		return "", domain.ErrInterrupted
	}
}

// drainSignals drops interrupts received while no read was in progress.
func (r *Reader) drainSignals() {
	for {
		select {
		case <-r.sigs:
		default:
			return
		}
	}
}

// SetCompleter installs the source of tab completion candidates.
func (r *Reader) SetCompleter(c ports.Completer) {
	r.completer = c
}

// Clear clears the screen and moves the cursor home.
func (r *Reader) Clear() error {
	r.output.ClearScreen()
	return nil
}

// Close stops capturing SIGINT.
func (r *Reader) Close() error {
	if r.notifying {
		signal.Stop(r.sigs)
		r.notifying = false
	}
	return nil
}

func (r *Reader) autoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' || r.completer == nil {
		return "", 0, false
	}
	candidates := r.completer.Complete(line[:pos])
	newLine, newPos, listing := completeWord(line, pos, candidates)
	if len(listing) > 0 && r.term != nil {
		_, _ = r.term.Write([]byte(strings.Join(listing, "  ") + "\n"))
	}
	return newLine, newPos, true
}

// completeWord replaces the word ending at pos with the longest prefix shared by candidates.
// A single candidate is completed in full and followed by a space.
// When the word cannot be extended, the candidates are returned for listing.
func completeWord(line string, pos int, candidates []string) (string, int, []string) {
	start := strings.LastIndexAny(line[:pos], " \t") + 1
	word := line[start:pos]

	var matching []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			matching = append(matching, c)
		}
	}

	var replacement string
	switch len(matching) {
	case 0:
		return line, pos, nil
	case 1:
		replacement = matching[0]
		if !strings.HasSuffix(replacement, "=") {
			replacement += " "
		}
	default:
		replacement = commonPrefix(matching)
		if replacement == word {
			return line, pos, matching
		}
	}
	return line[:start] + replacement + line[pos:], start + len(replacement), nil
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// ttyIO connects the line editor to the reader streams and notes Ctrl-C keystrokes.
type ttyIO struct {
	r *Reader
}

func (t ttyIO) Read(p []byte) (int, error) {
	n, err := t.r.in.Read(p)
	if bytes.IndexByte(p[:n], keyCtrlC) >= 0 {
		t.r.interrupted = true
	}
	return n, err
}

func (t ttyIO) Write(p []byte) (int, error) {
	return t.r.out.Write(p)
}
