package shell_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/ports"
)

type captureLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
	errs  []error
}

func (l *captureLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *captureLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *captureLogger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func TestRunner_Run_CapturesStdout(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	res, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "echo hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", string(res.Stdout))
}

func TestRunner_Run_ExitCode(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	res, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "exit 3"},
	})
	require.NoError(t, err, "a non-zero exit is an observation, not a runner error")
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunner_Run_EnvOverlay(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	res, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "printf %s \"$GMON_OUT_PREFIX\""},
		Env:  map[string]string{"GMON_OUT_PREFIX": "/tmp/work/gmon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work/gmon", string(res.Stdout))
}

func TestRunner_Run_EnvOverlayOrderIsStable(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	// New keys are appended in sorted order so the child environment is
	// reproducible run to run.
	res, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"env"},
		Env: map[string]string{
			"RIG_TEST_C": "3",
			"RIG_TEST_A": "1",
			"RIG_TEST_B": "2",
		},
	})
	require.NoError(t, err)

	out := string(res.Stdout)
	a := strings.Index(out, "RIG_TEST_A=1")
	b := strings.Index(out, "RIG_TEST_B=2")
	c := strings.Index(out, "RIG_TEST_C=3")
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, b)
	require.NotEqual(t, -1, c)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestRunner_Run_WorkingDir(t *testing.T) {
	dir := t.TempDir()
	r := shell.NewRunner(&captureLogger{})

	res, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"pwd"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(string(res.Stdout)))
}

func TestRunner_Run_StderrGoesToLogger(t *testing.T) {
	log := &captureLogger{}
	r := shell.NewRunner(log)

	_, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "echo oops >&2"},
	})
	require.NoError(t, err)
	assert.Contains(t, log.infos, "oops")
}

func TestRunner_Run_MissingBinary(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	_, err := r.Run(context.Background(), ports.Command{
		Argv: []string{"definitely-not-a-binary-4711"},
	})
	assert.Error(t, err)
}

func TestRunner_Run_EmptyCommand(t *testing.T) {
	r := shell.NewRunner(&captureLogger{})

	_, err := r.Run(context.Background(), ports.Command{})
	assert.Error(t, err)
}
