package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "bob", want: "bob"},
		{name: "tags stripped", input: "<b>bob</b>", want: "bob"},
		{name: "script removed with contents", input: "<script>alert(1)</script>oi", want: "oi"},
		{name: "whitespace trimmed", input: "  oi galera  ", want: "oi galera"},
		{name: "entities preserved", input: "a & b < c", want: "a & b < c"},
		{name: "markup only becomes empty", input: "<img src=x>", want: ""},
		{name: "nested markup", input: "<div><span>Todos</span></div>", want: "Todos"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.input))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{"bob", "<b>bob</b>", "a & b", " x < y ", "<script>x</script>"}

	for _, input := range inputs {
		once := Clean(input)
		assert.Equal(t, once, Clean(once), "input %q", input)
	}
}
