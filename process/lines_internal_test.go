package process

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func assemble(chunks ...string) []string {
	var got []string
	emit := func(line string) { got = append(got, line) }
	var a lineAssembler
	for _, c := range chunks {
		a.feed(c, emit)
	}
	a.flush(emit)
	return got
}

func TestLineAssembler(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{"line split across reads", []string{"ab", "cd\n"}, []string{"abcd"}},
		{"crlf split across reads", []string{"a\r", "\nb"}, []string{"a", "b"}},
		{"unterminated tail", []string{"a\nb"}, []string{"a", "b"}},
		{"cr then cr", []string{"\r", "\r\n"}, []string{"", ""}},
		{"nothing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assemble(tt.chunks...); !slices.Equal(got, tt.want) {
				t.Errorf("assemble(%q) = %q, want %q", tt.chunks, got, tt.want)
			}
		})
	}
}

// However a stream is cut into reads, carried assembly sees the same lines
// as splitting the whole text at once.
func TestLineAssembler_MatchesWholeText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune{'a', 'b', '\r', '\n'}), 1, 32, -1).Draw(t, "text")
		var cuts []int
		if len(text) > 1 {
			cuts = rapid.SliceOfDistinct(rapid.IntRange(1, len(text)-1), rapid.ID[int]).Draw(t, "cuts")
			slices.Sort(cuts)
		}

		var chunks []string
		prev := 0
		for _, c := range cuts {
			chunks = append(chunks, text[prev:c])
			prev = c
		}
		chunks = append(chunks, text[prev:])

		want := slices.Collect(SplitLines(text))
		if got := assemble(chunks...); !slices.Equal(got, want) {
			t.Fatalf("chunks %q assembled to %q, want %q", chunks, got, want)
		}
	})
}
