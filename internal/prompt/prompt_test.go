package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"はい\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
		{"", false}, // EOF declines
	}
	for _, tc := range cases {
		var out bytes.Buffer
		term := NewTerminalWithIO(strings.NewReader(tc.input), &out)

		ok, err := term.Confirm("proceed?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
		assert.Contains(t, out.String(), "proceed? [y/N]:")
	}
}

func TestAutoYes(t *testing.T) {
	ok, err := AutoYes{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMockRecordsQuestions(t *testing.T) {
	m := &Mock{Answer: true}
	ok, err := m.Confirm("first?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"first?"}, m.Questions)
}
