package shell

import (
	"strings"
	"testing"

	"github.com/brettbedarf/vfsh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{"ls", []string{"ls"}},
		{"  ls   -p  a  ", []string{"ls", "-p", "a"}},
		{`touch "a b" 'c d' e\ f`, []string{"touch", "a b", "c d", "e f"}},
		{`head "-n2" x`, []string{"head", "-n2", "x"}},
		{`echo "it's"`, []string{"echo", "it's"}},
		{`touch "a\"b" "c\\d"`, []string{"touch", `a"b`, `c\d`}},
		{"''", []string{""}},
		{"cd ~", []string{"cd", "~"}},
		{"cd ~/docs", []string{"cd", "~/docs"}},
		{"ls $PWD", []string{"ls", "$PWD"}},
		{"ls $UNSET", []string{"ls", "$UNSET"}},
		{"touch $x", []string{"touch", "$x"}},
		{"ls a$x.txt", []string{"ls", "a$x.txt"}},
		{`ls "pre ${x} post"`, []string{"ls", "pre ${x} post"}},
		{`ls "\$x $y"`, []string{"ls", "$x $y"}},
		{"ls $(pwd)", []string{"ls", "$(pwd)"}},
		{"ls $((1+2))", []string{"ls", "$((1+2))"}},
		{"ls ${HOME@P}", []string{"ls", "${HOME@P}"}},
		{"ls ${HOME@U}", []string{"ls", "${HOME@U}"}},
		{"ls *.txt", []string{"ls", "*.txt"}},
		{"ls #tmp", []string{"ls", "#tmp"}},
		{"ls # trailing words", []string{"ls", "#", "trailing", "words"}},
		{"# only #words", []string{"#", "only", "#words"}},
		{"ls a#b", []string{"ls", "a#b"}},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestTokenize_Errors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{`ls "unterminated`, `ls 'unterminated`, "ls; cd", "ls | head", "ls && cd"} {
		_, err := Tokenize(line)

		require.Error(t, err, line)
		assert.ErrorIs(t, err, vfsh.ErrParse, line)
		assert.NotEmpty(t, err.Error(), line)
	}
}

func TestExpandFields_RecoversPanic(t *testing.T) {
	t.Parallel()

	var words []*syntax.Word
	require.NoError(t, syntax.NewParser().Words(strings.NewReader("${HOME@P}"), func(w *syntax.Word) bool {
		words = append(words, w)
		return true
	}))

	fields, err := expandFields(expand.ListEnviron("HOME=/"), words)

	assert.Nil(t, fields)
	assert.ErrorIs(t, err, vfsh.ErrParse)
}
