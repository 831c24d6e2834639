package verdict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

type mockModel struct {
	calls    int
	prompt   string
	response string
	err      error
}

func (m *mockModel) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.response, m.err
}

func twoSourceBundle() EvidenceBundle {
	return EvidenceBundle{Sources: []Source{
		{Result: websearch.Result{Title: "NASA archive", Link: "https://example.com/a"}, Body: "telemetry records"},
		{Result: websearch.Result{Title: "Photo analysis", Link: "https://example.com/b"}, Body: ""},
	}}
}

func TestEmptyBundleSkipsModel(t *testing.T) {
	model := &mockModel{response: "should not be used"}
	s := NewSynthesizer(model, 3)

	got := s.Synthesize(context.Background(), "some claim", EvidenceBundle{})
	assert.Equal(t, MsgNoSearchResults, got)
	assert.Zero(t, model.calls)
}

func TestNoModelReturnsDiagnostic(t *testing.T) {
	s := NewSynthesizer(nil, 3)
	got := s.Synthesize(context.Background(), "some claim", twoSourceBundle())
	assert.Equal(t, MsgNoAnalysis, got)
}

func TestModelResponseReturnedVerbatim(t *testing.T) {
	model := &mockModel{response: "Verdict: [Factually False]\nThe landings are documented."}
	s := NewSynthesizer(model, 3)

	got := s.Synthesize(context.Background(), "The moon landing was faked", twoSourceBundle())
	assert.Equal(t, model.response, got)
}

func TestPromptContents(t *testing.T) {
	model := &mockModel{response: "Verdict: [Unverified]"}
	s := NewSynthesizer(model, 3)
	s.Synthesize(context.Background(), "The moon landing was faked", twoSourceBundle())

	assert.Contains(t, model.prompt, `USER CLAIM: "The moon landing was faked"`)
	assert.Contains(t, model.prompt, "Source [1]: NASA archive")
	assert.Contains(t, model.prompt, "Source [2]: Photo analysis")
	assert.Contains(t, model.prompt, "https://example.com/a")
	assert.Contains(t, model.prompt, "Roman alphabet")
	assert.Contains(t, model.prompt, "Verdict: [Factually True/Factually False/Misleading/Unverified]")
}

func TestSourceListCapped(t *testing.T) {
	bundle := EvidenceBundle{}
	for _, link := range []string{"u1", "u2", "u3", "u4"} {
		bundle.Sources = append(bundle.Sources, Source{
			Result: websearch.Result{Title: link, Link: "https://example.com/" + link},
		})
	}

	model := &mockModel{response: "Verdict: [Unverified]"}
	s := NewSynthesizer(model, 3)
	s.Synthesize(context.Background(), "claim", bundle)

	assert.Contains(t, model.prompt, "Sources: https://example.com/u1, https://example.com/u2, https://example.com/u3")
	assert.NotContains(t, model.prompt, "Sources: https://example.com/u1, https://example.com/u2, https://example.com/u3, https://example.com/u4")
}

func TestModelErrorEmbeddedInResponse(t *testing.T) {
	model := &mockModel{err: errors.New("deadline exceeded")}
	s := NewSynthesizer(model, 3)

	got := s.Synthesize(context.Background(), "claim", twoSourceBundle())
	assert.Contains(t, got, "Gemini analysis error")
	assert.Contains(t, got, "deadline exceeded")
}

func TestURLsPreserveOrder(t *testing.T) {
	bundle := twoSourceBundle()
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, bundle.URLs())
}
