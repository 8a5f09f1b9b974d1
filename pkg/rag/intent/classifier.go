package intent

import (
	"strings"

	"internship-chatbot-be/pkg/rag/query"
)

// Intent is a coarse category describing the topic of a user query. It is
// the routing key for choosing between the document-grounded and
// external-knowledge pipelines.
type Intent string

const (
	CompanyInternship    Intent = "COMPANY_INTERNSHIP"
	EducationCoding      Intent = "EDUCATION_CODING"
	InterviewPreparation Intent = "INTERVIEW_PREPARATION"
	GeneralEducation     Intent = "GENERAL_EDUCATION"
	Unknown              Intent = "UNKNOWN"
)

// All lists every intent the classifier can emit.
func All() []Intent {
	return []Intent{
		CompanyInternship,
		EducationCoding,
		InterviewPreparation,
		GeneralEducation,
		Unknown,
	}
}

// Classifier maps query text to exactly one Intent. Classification is
// keyword-based: each category carries weighted signal terms, the highest
// scoring category wins, and ties resolve in a fixed priority order so the
// result is deterministic for identical input.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

type signal struct {
	term   string
	weight int
}

// Multi-word terms are matched as substrings of the normalized query;
// single words by token equality. Weights favor specific phrasing over
// generic vocabulary.
var intentSignals = map[Intent][]signal{
	CompanyInternship: {
		{"internship", 3},
		{"intern", 2},
		{"placement", 2},
		{"company", 2},
		{"stipend", 3},
		{"hiring", 2},
		{"apply", 1},
		{"application", 1},
		{"eligibility", 2},
		{"drive", 1},
		{"offer", 1},
		{"recruitment", 2},
	},
	EducationCoding: {
		{"coding", 3},
		{"programming", 3},
		{"dsa", 3},
		{"data structures", 3},
		{"algorithm", 2},
		{"python", 2},
		{"java", 2},
		{"javascript", 2},
		{"leetcode", 3},
		{"learn", 1},
		{"course", 1},
		{"project", 1},
		{"language", 1},
	},
	InterviewPreparation: {
		{"interview", 3},
		{"hr round", 3},
		{"technical round", 3},
		{"aptitude", 2},
		{"resume", 2},
		{"mock", 2},
		{"prepare", 1},
		{"preparation", 2},
		{"questions asked", 2},
	},
	GeneralEducation: {
		{"college", 2},
		{"university", 2},
		{"degree", 2},
		{"semester", 2},
		{"exam", 2},
		{"scholarship", 2},
		{"admission", 2},
		{"syllabus", 2},
		{"gpa", 2},
		{"cgpa", 2},
		{"education", 1},
		{"career", 1},
	},
}

// classifyOrder fixes tie-breaking: when two categories score equally the
// earlier one in this list wins.
var classifyOrder = []Intent{
	CompanyInternship,
	InterviewPreparation,
	EducationCoding,
	GeneralEducation,
}

// Classify returns the intent for the given query text. It is total: blank
// input maps to Unknown, and text matching no category falls back to
// GeneralEducation, the designated catch-all for this domain.
func (c *Classifier) Classify(text string) Intent {
	normalized := query.Normalize(text)
	if normalized == "" {
		return Unknown
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		tokens[tok] = true
	}

	bestIntent := Intent("")
	bestScore := 0
	for _, candidate := range classifyOrder {
		score := 0
		for _, sig := range intentSignals[candidate] {
			if strings.Contains(sig.term, " ") {
				if strings.Contains(normalized, sig.term) {
					score += sig.weight
				}
			} else if tokens[sig.term] {
				score += sig.weight
			}
		}
		if score > bestScore {
			bestScore = score
			bestIntent = candidate
		}
	}

	if bestScore == 0 {
		return GeneralEducation
	}
	return bestIntent
}
