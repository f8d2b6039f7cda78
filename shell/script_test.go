package shell

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	t.Parallel()

	s := newEmptyShell()
	script := strings.Join([]string{
		"# setup",
		"mkdir -p a/b",
		"",
		"   ",
		"cd a\r",
		"touch f.txt",
		"ls",
	}, "\n")

	type echoed struct{ line, output string }
	var got []echoed
	res, err := s.RunScript(strings.NewReader(script), func(line, output string) {
		got = append(got, echoed{line, output})
	})

	require.NoError(t, err)
	assert.Equal(t, ScriptResult{Executed: 4, Exited: false}, res)
	assert.Equal(t, []echoed{
		{"mkdir -p a/b", ""},
		{"cd a", ""},
		{"touch f.txt", ""},
		{"ls", "b/\nf.txt\n"},
	}, got)
	assert.Equal(t, "/a", s.Cwd())
	assert.Equal(t, []string{"mkdir -p a/b", "cd a", "touch f.txt", "ls"}, s.History(),
		"skipped lines never reach history")
}

func TestRunScript_StopsAtExit(t *testing.T) {
	t.Parallel()

	s := newEmptyShell()

	res, err := s.RunScript(strings.NewReader("mkdir one\nexit\nmkdir two\n"), nil)

	require.NoError(t, err)
	assert.Equal(t, ScriptResult{Executed: 2, Exited: true}, res)
	assert.Equal(t, "one/\n", run(t, s, "ls"))
	assert.Equal(t, []string{"mkdir one", "exit", "ls"}, s.History())
}

func TestRunScript_FailuresDoNotStopReplay(t *testing.T) {
	t.Parallel()

	s := newEmptyShell()
	var outputs []string

	res, err := s.RunScript(strings.NewReader("cd nope\nbogus\nmkdir ok\n"), func(_, output string) {
		outputs = append(outputs, output)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Executed)
	assert.Equal(t, []string{"cd: No such file or directory\n", "Command 'bogus' not found.\n", ""}, outputs)
}

// Script and interactive lines share one history in execution order
func TestRunScript_InterleavedHistory(t *testing.T) {
	t.Parallel()

	s := newEmptyShell()

	run(t, s, "ls")
	_, err := s.RunScript(strings.NewReader("mkdir x\ncd x\n"), nil)
	require.NoError(t, err)
	run(t, s, "cd /")
	_, err = s.RunScript(strings.NewReader("# comment\nls\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, "1  ls\n2  mkdir x\n3  cd x\n4  cd /\n5  ls\n6  history\n", run(t, s, "history"))
}

func TestRunScript_ReadError(t *testing.T) {
	t.Parallel()

	s := newEmptyShell()
	expErr := errors.New("disk gone")

	_, err := s.RunScript(iotest.ErrReader(expErr), nil)

	assert.ErrorIs(t, err, expErr)
}
