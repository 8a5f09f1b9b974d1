package intent

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{
			name:  "company internship query",
			query: "Tell me about the Acme internship stipend",
			want:  CompanyInternship,
		},
		{
			name:  "coding education query",
			query: "How do I learn data structures in Python?",
			want:  EducationCoding,
		},
		{
			name:  "interview preparation query",
			query: "What questions are asked in the HR round of an interview?",
			want:  InterviewPreparation,
		},
		{
			name:  "general education query",
			query: "Which scholarship can I get with my CGPA?",
			want:  GeneralEducation,
		},
		{
			name:  "no category match falls back to general education",
			query: "good morning",
			want:  GeneralEducation,
		},
		{
			name:  "empty query",
			query: "",
			want:  Unknown,
		},
		{
			name:  "whitespace only",
			query: "   ",
			want:  Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	q := "internship interview preparation at a company"

	first := c.Classify(q)
	for i := 0; i < 50; i++ {
		if got := c.Classify(q); got != first {
			t.Fatalf("Classify not deterministic: got %s then %s", first, got)
		}
	}
}

func TestClassifyAlwaysReturnsKnownIntent(t *testing.T) {
	c := NewClassifier()
	known := make(map[Intent]bool)
	for _, in := range All() {
		known[in] = true
	}

	inputs := []string{"", "x", "internship", "?!.,", "completely unrelated text about weather"}
	for _, in := range inputs {
		if got := c.Classify(in); !known[got] {
			t.Errorf("Classify(%q) returned unknown intent %q", in, got)
		}
	}
}
