package process_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/kbukum/procout/process"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"mixed terminators", "a\r\nb\nc\rd", []string{"a", "b", "c", "d"}},
		{"no terminator", "hello", []string{"hello"}},
		{"trailing terminator", "a\n", []string{"a"}},
		{"trailing partial", "a\nb", []string{"a", "b"}},
		{"empty", "", []string{""}},
		{"blank lines", "a\n\nb", []string{"a", "", "b"}},
		{"cr cr lf", "\r\r\n", []string{"", ""}},
		{"lone newline", "\n", []string{""}},
		{"lf cr is two terminators", "a\n\rb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(process.SplitLines(tt.text)))
		})
	}
}

func TestSplitLines_StopsEarly(t *testing.T) {
	var got []string
	for line := range process.SplitLines("a\nb\nc") {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSplitLines_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune{'a', 'b', '\r', '\n'}), 0, 32, -1).Draw(t, "text")
		seq := process.SplitLines(text)

		first := slices.Collect(seq)
		if second := slices.Collect(seq); !slices.Equal(first, second) {
			t.Fatalf("second pass %q differs from first %q", second, first)
		}
		for _, line := range first {
			if strings.ContainsAny(line, "\r\n") {
				t.Fatalf("line %q carries a terminator", line)
			}
		}
		if !strings.ContainsAny(text, "\r\n") && !slices.Equal(first, []string{text}) {
			t.Fatalf("text without terminator split into %q", first)
		}
		if got, want := strings.Join(first, ""), strings.NewReplacer("\r", "", "\n", "").Replace(text); got != want {
			t.Fatalf("content %q, want %q", got, want)
		}
	})
}
