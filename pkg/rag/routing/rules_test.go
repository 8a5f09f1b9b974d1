package routing

import (
	"testing"

	"internship-chatbot-be/pkg/rag/intent"
)

func TestDecide(t *testing.T) {
	r := NewRules()

	tests := []struct {
		in   intent.Intent
		want Pipeline
	}{
		{intent.CompanyInternship, PipelineRAG},
		{intent.EducationCoding, PipelineExternal},
		{intent.InterviewPreparation, PipelineExternal},
		{intent.GeneralEducation, PipelineExternal},
		{intent.Unknown, PipelineUnknown},
		{intent.Intent("SOMETHING_NEW"), PipelineUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			d := r.Decide(tt.in)
			if d.Pipeline != tt.want {
				t.Errorf("Decide(%s).Pipeline = %s, want %s", tt.in, d.Pipeline, tt.want)
			}
			if d.Intent != tt.in {
				t.Errorf("Decide(%s).Intent = %s, want %s", tt.in, d.Intent, tt.in)
			}
		})
	}
}

func TestRAGAndExternalAreDisjoint(t *testing.T) {
	r := NewRules()

	for _, in := range intent.All() {
		if r.ShouldUseRAG(in) && r.ShouldUseExternal(in) {
			t.Errorf("intent %s is in both RAG and EXTERNAL sets", in)
		}

		d := r.Decide(in)
		switch d.Pipeline {
		case PipelineRAG, PipelineExternal, PipelineUnknown:
		default:
			t.Errorf("Decide(%s) returned unexpected pipeline %q", in, d.Pipeline)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := validate(); err != nil {
		t.Fatalf("routing table failed validation: %v", err)
	}
}
