package routing

import (
	"fmt"

	"internship-chatbot-be/pkg/rag/intent"
)

// Pipeline names the answer path chosen for an intent.
type Pipeline string

const (
	PipelineRAG      Pipeline = "RAG"
	PipelineExternal Pipeline = "EXTERNAL"
	PipelineUnknown  Pipeline = "UNKNOWN"
)

// Decision pairs the classified intent with the pipeline it routes to.
type Decision struct {
	Intent   intent.Intent `json:"intent"`
	Pipeline Pipeline      `json:"pipeline"`
}

// pipelineByIntent is the single source of truth for routing. Intents absent
// from this table route to PipelineUnknown. Keeping one table (instead of
// two separate membership lists) makes drift impossible; validate() rejects
// any entry that is neither RAG nor EXTERNAL.
var pipelineByIntent = map[intent.Intent]Pipeline{
	intent.CompanyInternship:    PipelineRAG,
	intent.EducationCoding:      PipelineExternal,
	intent.InterviewPreparation: PipelineExternal,
	intent.GeneralEducation:     PipelineExternal,
}

func init() {
	if err := validate(); err != nil {
		panic(err)
	}
}

func validate() error {
	for in, p := range pipelineByIntent {
		if p != PipelineRAG && p != PipelineExternal {
			return fmt.Errorf("routing: intent %s mapped to invalid pipeline %q", in, p)
		}
	}
	return nil
}

// Rules decides which pipeline serves a given intent. Pure lookup: no side
// effects, no failure mode.
type Rules struct{}

func NewRules() *Rules {
	return &Rules{}
}

// Decide returns the routing decision for an intent.
func (r *Rules) Decide(in intent.Intent) Decision {
	p, ok := pipelineByIntent[in]
	if !ok {
		p = PipelineUnknown
	}
	return Decision{Intent: in, Pipeline: p}
}

// ShouldUseRAG reports whether the intent routes to the retrieval pipeline.
func (r *Rules) ShouldUseRAG(in intent.Intent) bool {
	return pipelineByIntent[in] == PipelineRAG
}

// ShouldUseExternal reports whether the intent routes to the
// external-knowledge pipeline.
func (r *Rules) ShouldUseExternal(in intent.Intent) bool {
	return pipelineByIntent[in] == PipelineExternal
}
