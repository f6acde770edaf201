package domain

// Strategy names one way of steering the generation backend.
type Strategy string

const (
	StrategyConservative Strategy = "conservative"
	StrategyCreative     Strategy = "creative"
	StrategyMemoryGuided Strategy = "memory_guided"
	StrategyFallback     Strategy = "fallback"
)

// Temperature is the sampling temperature a strategy asks the backend for.
func (s Strategy) Temperature() float64 {
	switch s {
	case StrategyConservative:
		return 0.3
	case StrategyCreative:
		return 1.2
	case StrategyMemoryGuided:
		return 0.8
	default:
		return 0.3
	}
}

// Rotation hands out generation strategies round-robin.
type Rotation struct {
	order []Strategy
	next  int
}

func NewRotation() *Rotation {
	return &Rotation{order: []Strategy{StrategyConservative, StrategyCreative, StrategyMemoryGuided}}
}

func (r *Rotation) Next() Strategy {
	s := r.order[r.next%len(r.order)]
	r.next++
	return s
}

// Score weights for the combined ranking score.
const (
	weightLM              = 0.3
	weightGrammar         = 0.3
	weightModelConfidence = 0.2
	weightKGCompliance    = 0.2
)

type Scores struct {
	LM              float64 `json:"lm_score"`
	Grammar         float64 `json:"grammar_score"`
	ModelConfidence float64 `json:"model_confidence"`
	KGCompliance    float64 `json:"kg_compliance"`
	Epistemic       float64 `json:"epistemic_uncertainty"`
	Aleatoric       float64 `json:"aleatoric_uncertainty"`
	Combined        float64 `json:"combined"`
}

// Combine folds the component scores into the ranking score. It does not
// mutate s.
func (s Scores) Combine() float64 {
	return weightLM*s.LM +
		weightGrammar*s.Grammar +
		weightModelConfidence*s.ModelConfidence +
		weightKGCompliance*s.KGCompliance
}

type CitedRule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type Translation struct {
	Literal   string `json:"literal"`
	Idiomatic string `json:"idiomatic"`
}

// Candidate is one proposed restoration for a masked span.
type Candidate struct {
	ID           string      `json:"candidate_id"`
	Text         string      `json:"text"`
	IAST         string      `json:"iast"`
	MorphTags    []string    `json:"morphological_analysis"`
	CitedRules   []CitedRule `json:"cited_sutras"`
	Translation  Translation `json:"translation"`
	Scores       Scores      `json:"scores"`
	Strategy     Strategy    `json:"strategy"`
	GrammarNotes []string    `json:"grammar_notes,omitempty"`
}

type Timings struct {
	TotalMS          int64 `json:"total_ms"`
	ModelInferenceMS int64 `json:"model_inference_ms"`
	KGLookupMS       int64 `json:"kg_lookup_ms"`
}

// Result is the outcome of one reconstruction run.
type Result struct {
	Candidates   []Candidate `json:"candidates"`
	Timings      Timings     `json:"timings"`
	FallbackUsed bool        `json:"fallback_used"`
}

// SegmentMorphology splits a word into a rough stem and ending. Words of
// three aksharas or fewer stay whole.
func SegmentMorphology(text string) []string {
	runes := []rune(text)
	if len(runes) <= 3 {
		return []string{text}
	}
	return []string{string(runes[:len(runes)-2]), string(runes[len(runes)-2:])}
}
