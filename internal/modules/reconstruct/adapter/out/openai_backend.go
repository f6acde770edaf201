package out

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const generationInstructions = `You restore damaged Sanskrit manuscripts.
Each <MASK> in the input marks an illegible span. Propose grammatically
valid Devanagari restorations for the masked words only. Honor the cited
Paninian sutras when they apply. Report honest lm_score, model_confidence
and uncertainty estimates in [0,1].`

type generatedCandidate struct {
	Text            string  `json:"text" jsonschema:"description=Devanagari restoration of the masked span"`
	LMScore         float64 `json:"lm_score"`
	ModelConfidence float64 `json:"model_confidence"`
	Epistemic       float64 `json:"epistemic_uncertainty"`
	Aleatoric       float64 `json:"aleatoric_uncertainty"`
}

type generationResponse struct {
	Candidates []generatedCandidate `json:"candidates"`
}

var generationSchema = generateSchema[generationResponse]()

// OpenAIBackend generates restoration candidates through the Responses API
// with a schema-constrained JSON output.
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend reads OPENAI_API_KEY from the environment through the
// SDK's default options.
func NewOpenAIBackend(model string) *OpenAIBackend {
	return &OpenAIBackend{client: openai.NewClient(), model: model}
}

var _ reconstructout.GenerationBackend = (*OpenAIBackend)(nil)

func (b *OpenAIBackend) Generate(ctx context.Context, req reconstructout.GenerationRequest) ([]reconstructout.RawCandidate, error) {
	params := responses.ResponseNewParams{
		Model:           b.model,
		MaxOutputTokens: openai.Int(1200),
		Temperature:     openai.Float(req.Temperature),
		Instructions:    openai.String(generationInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(buildPrompt(req), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   "GenerationResponse",
					Schema: generationSchema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := b.client.Responses.New(ctx, params)
	if err != nil {
		if isServerSideError(err) {
			return nil, fmt.Errorf("openai call: %v: %w", err, apperrors.ErrBackendUnavailable)
		}
		return nil, fmt.Errorf("openai call: %v: %w", err, apperrors.ErrBackendError)
	}

	var decoded generationResponse
	if err := json.Unmarshal([]byte(resp.OutputText()), &decoded); err != nil {
		return nil, fmt.Errorf("malformed model output: %v: %w", err, apperrors.ErrBackendError)
	}
	if len(decoded.Candidates) == 0 {
		return nil, fmt.Errorf("model returned no candidates: %w", apperrors.ErrBackendError)
	}
	raws := make([]reconstructout.RawCandidate, 0, len(decoded.Candidates))
	for _, candidate := range decoded.Candidates {
		raws = append(raws, reconstructout.RawCandidate{
			Text:            candidate.Text,
			LMScore:         clamp01(candidate.LMScore),
			ModelConfidence: clamp01(candidate.ModelConfidence),
			Epistemic:       clamp01(candidate.Epistemic),
			Aleatoric:       clamp01(candidate.Aleatoric),
		})
	}
	return raws, nil
}

func buildPrompt(req reconstructout.GenerationRequest) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Masked text:\n%s\n\n", req.MaskedText)
	if len(req.KGContext) > 0 {
		prompt.WriteString("Applicable sutras:\n")
		for _, rule := range req.KGContext {
			fmt.Fprintf(&prompt, "- %s %s: %s\n", rule.ID, rule.Text, rule.Description)
		}
		prompt.WriteString("\n")
	}
	switch req.Strategy {
	case "creative":
		prompt.WriteString("Strategy: explore less common but defensible restorations.\n")
	case "memory_guided":
		prompt.WriteString("Strategy: prefer restorations attested in classical usage.\n")
	default:
		prompt.WriteString("Strategy: prefer the most conventional restoration.\n")
	}
	fmt.Fprintf(&prompt, "Return exactly %d candidate(s).", req.Count)
	return prompt.String()
}

func isServerSideError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "too many requests", "500", "502", "503", "server_error", "connection", "timeout", "deadline"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		panic(err)
	}
	forceStrictObjects(schema)
	return schema
}

// forceStrictObjects makes every object in the schema closed and fully
// required, which strict structured output demands.
func forceStrictObjects(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if properties, ok := schema["properties"].(map[string]interface{}); ok {
			required := make([]string, 0, len(properties))
			for name := range properties {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if properties, ok := schema["properties"].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				forceStrictObjects(propMap)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		forceStrictObjects(items)
	}
}
