package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports/mocks"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/janekdb/rug-cli/internal/engine/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type call struct {
	argv    []string
	session *domain.Session
}

// recordingDispatcher fails every other line.
type recordingDispatcher struct {
	calls []call
}

func (d *recordingDispatcher) DispatchLine(_ context.Context, argv []string, _ domain.Flags, session *domain.Session) dispatcher.Outcome {
	d.calls = append(d.calls, call{argv: argv, session: session})
	if len(d.calls)%2 == 0 {
		return dispatcher.Outcome{ExitCode: dispatcher.ExitFailure, Err: errors.New("failed")}
	}
	return dispatcher.Outcome{}
}

type result struct {
	line string
	err  error
}

type fixture struct {
	reader     *mocks.MockLineReader
	runner     *mocks.MockProcessRunner
	completer  *mocks.MockCompleter
	logger     *mocks.MockLogger
	dispatcher *recordingDispatcher
	out        *bytes.Buffer
	loop       *shell.Loop
}

func newFixture(t *testing.T, input ...result) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		reader:     mocks.NewMockLineReader(ctrl),
		runner:     mocks.NewMockProcessRunner(ctrl),
		completer:  mocks.NewMockCompleter(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		dispatcher: &recordingDispatcher{},
		out:        &bytes.Buffer{},
	}

	calls := make([]any, 0, len(input))
	for _, in := range input {
		calls = append(calls, f.reader.EXPECT().ReadLine().Return(in.line, in.err))
	}
	gomock.InOrder(calls...)
	f.reader.EXPECT().SetCompleter(f.completer)
	f.reader.EXPECT().Close().Return(nil)

	f.loop = shell.New(f.reader, f.dispatcher, f.runner, f.completer, f.logger, f.out)
	return f
}

var session = &domain.Session{
	Root:    domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"},
	Closure: domain.NewClosure(domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"}),
}

func TestRun_EscapeNeverReachesDispatcher(t *testing.T) {
	f := newFixture(t,
		result{line: "!echo hi"},
		result{line: "quit"},
	)
	f.runner.EXPECT().Run(gomock.Any(), "/work", []string{"echo", "hi"}, nil, f.out, f.out).
		DoAndReturn(func(_ context.Context, _ string, argv, _ []string, stdout, _ io.Writer) error {
			_, err := stdout.Write([]byte(argv[1] + "\n"))
			return err
		})

	err := f.loop.Run(context.Background(), session, domain.Flags{Dir: "/work"})
	require.NoError(t, err)
	assert.Empty(t, f.dispatcher.calls)
	assert.Equal(t, "hi\nGoodbye!\n", f.out.String())
}

func TestRun_SessionReusedForEveryLine(t *testing.T) {
	f := newFixture(t,
		result{line: "describe archive"},
		result{line: "edit AddReadme"},
		result{err: domain.ErrInterrupted},
		result{line: "  "},
		result{line: "generate NewService my-service"},
		result{err: io.EOF},
	)

	require.NoError(t, f.loop.Run(context.Background(), session, domain.Flags{}))

	require.Len(t, f.dispatcher.calls, 3)
	for _, c := range f.dispatcher.calls {
		assert.Same(t, session, c.session)
	}
	assert.Equal(t, []string{"generate", "NewService", "my-service"}, f.dispatcher.calls[2].argv)
	assert.Equal(t, "Goodbye!\n", f.out.String())
}

func TestRun_MetaCommands(t *testing.T) {
	for _, exit := range []string{"exit", "quit", "q", "  q  "} {
		t.Run(exit, func(t *testing.T) {
			f := newFixture(t, result{line: "clear"}, result{line: exit})
			f.reader.EXPECT().Clear().Return(nil)

			require.NoError(t, f.loop.Run(context.Background(), session, domain.Flags{}))
			assert.Empty(t, f.dispatcher.calls)
			assert.Equal(t, "Goodbye!\n", f.out.String())
		})
	}
}

func TestRun_Tokenizing(t *testing.T) {
	f := newFixture(t,
		result{line: `edit AddFile "content=hello world" path=$TARGET`},
		result{line: `edit "unterminated`},
		result{err: io.EOF},
	)
	f.loop.SetEnv(func(name string) string {
		if name == "TARGET" {
			return "docs/a.md"
		}
		return ""
	})
	f.logger.EXPECT().Error(gomock.Any())

	require.NoError(t, f.loop.Run(context.Background(), session, domain.Flags{}))
	require.Len(t, f.dispatcher.calls, 1)
	assert.Equal(t, []string{"edit", "AddFile", "content=hello world", "path=docs/a.md"}, f.dispatcher.calls[0].argv)
}

func TestRun_EscapeFailureIsLogged(t *testing.T) {
	f := newFixture(t, result{line: "!false"}, result{line: "!"}, result{err: io.EOF})
	failure := errors.New("exit status 1")
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), []string{"false"}, nil, gomock.Any(), gomock.Any()).Return(failure)
	f.logger.EXPECT().Error(failure)

	require.NoError(t, f.loop.Run(context.Background(), session, domain.Flags{}))
}

func TestRun_ReadFailure(t *testing.T) {
	f := newFixture(t, result{err: errors.New("bad file descriptor")})

	err := f.loop.Run(context.Background(), session, domain.Flags{})
	require.Error(t, err)
	assert.Empty(t, f.out.String())
}

func TestRun_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newFixture(t, result{line: "describe archive"}, result{err: io.EOF})
	require.NoError(t, f.loop.Run(ctx, session, domain.Flags{}))
	assert.Len(t, f.dispatcher.calls, 1)
}
