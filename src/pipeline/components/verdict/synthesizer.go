package verdict

import (
	"context"
	"fmt"
	"strings"

	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

// Degradation responses. The synthesizer always answers with text, even
// when search or the model is unavailable.
const (
	MsgNoSearchResults = "Error: Could not fetch search results. Check API keys or quota."
	MsgNoAnalysis      = "Search fetched content, but the analysis model is not configured."
)

// Source pairs a search result with the body text fetched from it. An
// unfetchable page keeps its entry with an empty Body.
type Source struct {
	Result websearch.Result
	Body   string
}

// EvidenceBundle is the ordered evidence gathered for one claim.
type EvidenceBundle struct {
	Sources []Source
}

// URLs returns the source links in retrieval order.
func (b EvidenceBundle) URLs() []string {
	urls := make([]string, 0, len(b.Sources))
	for _, s := range b.Sources {
		urls = append(urls, s.Result.Link)
	}
	return urls
}

// LanguageModel is the slice of the LLM client the synthesizer needs.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer turns a claim and its evidence into a verdict text.
type Synthesizer struct {
	model      LanguageModel // nil when no LLM credential is configured
	maxSources int
}

func NewSynthesizer(model LanguageModel, maxSources int) *Synthesizer {
	if maxSources <= 0 {
		maxSources = 3
	}
	return &Synthesizer{model: model, maxSources: maxSources}
}

// Synthesize returns the model's verdict text for claim, or a fixed
// diagnostic when evidence or the model is missing. It never returns an
// error; a failed model call is reported inside the response text.
func (s *Synthesizer) Synthesize(ctx context.Context, claim string, evidence EvidenceBundle) string {
	if len(evidence.Sources) == 0 {
		return MsgNoSearchResults
	}
	if s.model == nil {
		return MsgNoAnalysis
	}

	response, err := s.model.Generate(ctx, s.buildPrompt(claim, evidence))
	if err != nil {
		return fmt.Sprintf("Gemini analysis error: %v", err)
	}
	return response
}

func (s *Synthesizer) buildPrompt(claim string, evidence EvidenceBundle) string {
	var context strings.Builder
	for i, src := range evidence.Sources {
		fmt.Fprintf(&context, "Source [%d]: %s\nURL: %s\nContent: %s\n\n",
			i+1, src.Result.Title, src.Result.Link, src.Body)
	}

	urls := evidence.URLs()
	if len(urls) > s.maxSources {
		urls = urls[:s.maxSources]
	}

	// The Roman-alphabet rule is deliberate product behavior: short
	// English claims were being misread as other Latin-script languages.
	return fmt.Sprintf(`You are a multilingual Misinformation Analyst.
USER CLAIM: "%s"
CONTEXT:
%s
INSTRUCTIONS:
1. Analyze the language of the USER'S CLAIM. SPECIAL RULE: if the text is in the Roman alphabet, you MUST assume the language is ENGLISH.
2. Analyze the context and give a verdict.
3. Report format: "Verdict: [Factually True/Factually False/Misleading/Unverified]"
Sources: %s`, claim, context.String(), strings.Join(urls, ", "))
}
