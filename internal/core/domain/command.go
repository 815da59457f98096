package domain

import (
	"io"
	"strconv"
)

// OptionKind is the value type of a command option.
type OptionKind int

const (
	// OptionString takes a value.
	OptionString OptionKind = iota
	// OptionBool is a switch.
	OptionBool
)

// Option describes one command-line option of a command.
type Option struct {
	Long    string
	Short   string
	Usage   string
	Default string
	Kind    OptionKind
}

// CommandDescriptor is the static metadata of a command.
type CommandDescriptor struct {
	Name        string
	Usage       string
	Description string
	Detail      string
	Options     []Option
	// Order sorts commands in help output.
	Order int
	// RequiresArtifact is false for commands that skip load, compile and environment building.
	RequiresArtifact bool
	// Interactive marks the command that enters the shell loop after succeeding.
	Interactive bool
	// QualifiedArg is the 1-based position of an argument that may name an operation as
	// group:artifact:name. Zero means the command takes no such argument.
	QualifiedArg int
	// ArchiveArg is the 1-based position of an optional argument naming a published archive as
	// group:artifact[:version]. The argument is consumed before the command runs.
	ArchiveArg int
	// ExtraLocations are made visible in the environment in addition to the closure.
	ExtraLocations []string
}

// Flags are the global switches of an invocation.
type Flags struct {
	// Verbose lists loaded sources and reports failed transfers.
	Verbose bool
	// Trace prints the full cause chain of a failure instead of its root message.
	Trace bool
	// Timer reports the elapsed time after the command completes.
	Timer bool
	// Dir is the directory searched for a local artifact.
	Dir string
}

// Request is a parsed invocation.
type Request struct {
	Command string
	Args    []string
	Options map[string]string
	Flags   Flags
}

// Option returns the value of the named option, or "".
func (r Request) Option(name string) string {
	return r.Options[name]
}

// BoolOption returns the named switch.
func (r Request) BoolOption(name string) bool {
	b, _ := strconv.ParseBool(r.Options[name])
	return b
}

// Invocation is everything a command body receives.
type Invocation struct {
	Request  Request
	Session  *Session
	Artifact Coordinate
	Source   SourceTree
	Units    *LoadedUnits
	Env      *Environment
	Settings *Settings
	Out      io.Writer
}
