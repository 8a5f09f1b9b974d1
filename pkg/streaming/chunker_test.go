package streaming

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed terminators",
			text: "This is a test. Another sentence! And one more?",
			want: []string{"This is a test.", "Another sentence!", "And one more?"},
		},
		{
			name: "no terminator",
			text: "just a fragment",
			want: []string{"just a fragment"},
		},
		{
			name: "terminator without trailing space keeps sentence whole",
			text: "Version 2.5 is out. It works",
			want: []string{"Version 2.5 is out.", "It works"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkReconstructsAnswer(t *testing.T) {
	text := "This is a test. Another sentence! And one more?"
	chunks := Chunk(text, 30)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	collapse := func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}
	joined := collapse(strings.Join(chunks, " "))
	if joined != collapse(text) {
		t.Errorf("reconstructed %q, want %q", joined, collapse(text))
	}
}

func TestChunkRespectsBudget(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten."
	for _, chunk := range Chunk(text, 30) {
		if len(strings.TrimSpace(chunk)) > 30 {
			t.Errorf("chunk %q exceeds budget", chunk)
		}
	}
}

func TestChunkOversizedSentence(t *testing.T) {
	long := "this single sentence is far longer than the configured chunk budget"
	chunks := Chunk(long, 30)
	if len(chunks) != 1 {
		t.Fatalf("oversized sentence should be one chunk, got %d", len(chunks))
	}
	if chunks[0] != long {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkEmpty(t *testing.T) {
	if got := Chunk("   ", 30); got != nil {
		t.Errorf("blank text should yield no chunks, got %v", got)
	}
}

func TestChunkOrderPreserved(t *testing.T) {
	text := "Alpha sentence here. Beta sentence here. Gamma sentence here."
	chunks := Chunk(text, 30)
	joined := strings.Join(chunks, " ")
	alpha := strings.Index(joined, "Alpha")
	beta := strings.Index(joined, "Beta")
	gamma := strings.Index(joined, "Gamma")
	if !(alpha < beta && beta < gamma) {
		t.Errorf("order broken: %v", chunks)
	}
}
