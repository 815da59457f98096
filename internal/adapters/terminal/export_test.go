package terminal

import "os"

// CompleteWord exposes completeWord for testing.
func CompleteWord(line string, pos int, candidates []string) (string, int, []string) {
	return completeWord(line, pos, candidates)
}

// Interrupt delivers an interrupt to r without blocking.
func Interrupt(r *Reader) {
	select {
	case r.sigs <- os.Interrupt:
	default:
	}
}
