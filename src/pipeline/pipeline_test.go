package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freaksearch/freaksearch/src/pipeline/components/intent"
	"github.com/freaksearch/freaksearch/src/pipeline/components/verdict"
	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

type mockSearch struct {
	calls   int
	results []websearch.Result
	err     error
}

func (m *mockSearch) Search(_ context.Context, _ string, count int) ([]websearch.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) > count {
		return m.results[:count], nil
	}
	return m.results, nil
}

type mockModel struct {
	calls     int
	responses map[string]string // matched by substring of the prompt
	fallback  string
	err       error
}

func (m *mockModel) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	for needle, response := range m.responses {
		if needle != "" && strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return m.fallback, nil
}

type mockFetcher struct {
	calls  int
	bodies map[string]string
}

func (m *mockFetcher) FetchBody(_ context.Context, url string) string {
	m.calls++
	return m.bodies[url]
}

type mockOCR struct {
	calls int
	text  string
	err   error
}

func (m *mockOCR) Recognize(_ []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

func newTestHandler(search SearchProvider, model *mockModel, fetcher ContentFetcher, ocr OCREngine) *Handler {
	var classifier *intent.Classifier
	var synthesizer *verdict.Synthesizer
	if model != nil {
		classifier = intent.NewClassifier(model, nil)
		synthesizer = verdict.NewSynthesizer(model, 3)
	} else {
		classifier = intent.NewClassifier(nil, nil)
		synthesizer = verdict.NewSynthesizer(nil, 3)
	}
	return New(search, ocr, fetcher, classifier, synthesizer, 3)
}

func TestGreetingShortCircuit(t *testing.T) {
	search := &mockSearch{}
	model := &mockModel{}
	fetcher := &mockFetcher{}

	h := newTestHandler(search, model, fetcher, nil)
	got := h.Handle(context.Background(), "hello", nil)

	assert.Equal(t, MsgGreeting, got)
	assert.Zero(t, search.calls, "greeting must not search")
	assert.Zero(t, model.calls, "greeting must not call the model")
	assert.Zero(t, fetcher.calls, "greeting must not fetch")
}

func TestGreetingNormalization(t *testing.T) {
	h := newTestHandler(nil, nil, &mockFetcher{}, nil)
	for _, input := range []string{"  Hello  ", "HI", "Good Morning"} {
		assert.Equal(t, MsgGreeting, h.Handle(context.Background(), input, nil), "input %q", input)
	}
}

func TestNoInput(t *testing.T) {
	h := newTestHandler(nil, nil, &mockFetcher{}, nil)
	assert.Equal(t, MsgNoInput, h.Handle(context.Background(), "", nil))
	assert.Equal(t, MsgNoInput, h.Handle(context.Background(), "   ", nil))
}

func TestImageWithNoReadableText(t *testing.T) {
	ocr := &mockOCR{err: errors.New("decode failed")}
	h := newTestHandler(nil, nil, &mockFetcher{}, ocr)

	got := h.Handle(context.Background(), "", []byte{0xde, 0xad})
	assert.Equal(t, MsgNoImageText, got)
	assert.Equal(t, 1, ocr.calls)
}

func TestImageTextFeedsClassifier(t *testing.T) {
	ocr := &mockOCR{text: "The moon landing was faked"}
	search := &mockSearch{results: []websearch.Result{
		{Title: "NASA archive", Link: "https://example.com/a", Snippet: "moon"},
	}}
	model := &mockModel{
		responses: map[string]string{
			"Category:":              "fact_checking_claim",
			"Misinformation Analyst": "Verdict: [Factually False]",
		},
	}
	fetcher := &mockFetcher{bodies: map[string]string{"https://example.com/a": "telemetry records"}}

	h := newTestHandler(search, model, fetcher, ocr)
	got := h.Handle(context.Background(), "", []byte{0x01})

	assert.Contains(t, got, "Verdict:")
	assert.Equal(t, 1, search.calls)
}

func TestGeneralQuestionRefusal(t *testing.T) {
	search := &mockSearch{}
	model := &mockModel{responses: map[string]string{"Category:": "general_question"}}
	fetcher := &mockFetcher{}

	h := newTestHandler(search, model, fetcher, nil)
	got := h.Handle(context.Background(), "what is the capital of France?", nil)

	assert.Equal(t, MsgOnlyClaims, got)
	assert.Zero(t, search.calls, "general questions must not search")
	assert.Zero(t, fetcher.calls, "general questions must not fetch")
}

func TestClaimWithEvidenceReachesVerdict(t *testing.T) {
	search := &mockSearch{results: []websearch.Result{
		{Title: "Source A", Link: "https://example.com/a", Snippet: "a"},
		{Title: "Source B", Link: "https://example.com/b", Snippet: "b"},
	}}
	model := &mockModel{
		responses: map[string]string{
			"Category:":              "fact_checking_claim",
			"Misinformation Analyst": "Verdict: [Factually False] — telemetry and rock samples confirm the landings.",
		},
	}
	fetcher := &mockFetcher{bodies: map[string]string{
		"https://example.com/a": "body a",
		"https://example.com/b": "body b",
	}}

	h := newTestHandler(search, model, fetcher, nil)
	got := h.Handle(context.Background(), "The moon landing was faked", nil)

	assert.Contains(t, got, "Verdict:")
	assert.Equal(t, 2, fetcher.calls)
}

func TestSearchUnavailableDegrades(t *testing.T) {
	// nil SearchProvider models missing credentials.
	model := &mockModel{responses: map[string]string{"Category:": "fact_checking_claim"}}
	fetcher := &mockFetcher{}

	h := newTestHandler(nil, model, fetcher, nil)
	got := h.Handle(context.Background(), "The moon landing was faked", nil)

	assert.Equal(t, verdict.MsgNoSearchResults, got)
	assert.Zero(t, fetcher.calls)
	// One call for classification, none for synthesis.
	assert.Equal(t, 1, model.calls)
}

func TestSearchErrorDegrades(t *testing.T) {
	search := &mockSearch{err: errors.New("quota exceeded")}
	model := &mockModel{responses: map[string]string{"Category:": "fact_checking_claim"}}

	h := newTestHandler(search, model, &mockFetcher{}, nil)
	got := h.Handle(context.Background(), "The moon landing was faked", nil)

	assert.Equal(t, verdict.MsgNoSearchResults, got)
	assert.Equal(t, 1, model.calls, "synthesis must not run without evidence")
}

func TestFetchFailureIsolation(t *testing.T) {
	search := &mockSearch{results: []websearch.Result{
		{Title: "A", Link: "https://example.com/a"},
		{Title: "B", Link: "https://example.com/b"},
		{Title: "C", Link: "https://example.com/c"},
	}}
	// b is unfetchable; a and c still contribute.
	fetcher := &mockFetcher{bodies: map[string]string{
		"https://example.com/a": "body a",
		"https://example.com/c": "body c",
	}}
	model := &mockModel{
		responses: map[string]string{
			"Category:":              "fact_checking_claim",
			"Misinformation Analyst": "Verdict: [Unverified]",
		},
	}

	h := newTestHandler(search, model, fetcher, nil)
	got := h.Handle(context.Background(), "some claim", nil)

	assert.Contains(t, got, "Verdict:")
	assert.Equal(t, 3, fetcher.calls, "all three URLs are attempted")
	// Synthesis ran, so the failed fetch did not abort the loop.
	assert.Equal(t, 2, model.calls)
}

func TestResultsWithoutLinksAreSkipped(t *testing.T) {
	search := &mockSearch{results: []websearch.Result{
		{Title: "No link"},
		{Title: "A", Link: "https://example.com/a"},
	}}
	fetcher := &mockFetcher{bodies: map[string]string{"https://example.com/a": "body"}}
	model := &mockModel{
		responses: map[string]string{
			"Category:":              "fact_checking_claim",
			"Misinformation Analyst": "Verdict: [Unverified]",
		},
	}

	h := newTestHandler(search, model, fetcher, nil)
	got := h.Handle(context.Background(), "some claim", nil)

	require.Contains(t, got, "Verdict:")
	assert.Equal(t, 1, fetcher.calls, "linkless results are never fetched")
}

func TestIdempotence(t *testing.T) {
	build := func() *Handler {
		search := &mockSearch{results: []websearch.Result{
			{Title: "A", Link: "https://example.com/a", Snippet: "a"},
		}}
		model := &mockModel{
			responses: map[string]string{
				"Category:":              "fact_checking_claim",
				"Misinformation Analyst": "Verdict: [Misleading] — partial truth.",
			},
		}
		fetcher := &mockFetcher{bodies: map[string]string{"https://example.com/a": "body"}}
		return newTestHandler(search, model, fetcher, nil)
	}

	first := build().Handle(context.Background(), "some claim", nil)
	second := build().Handle(context.Background(), "some claim", nil)
	assert.Equal(t, first, second)
}

func TestResultLimitBoundsFetches(t *testing.T) {
	var results []websearch.Result
	bodies := map[string]string{}
	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("https://example.com/%d", i)
		results = append(results, websearch.Result{Title: "t", Link: url})
		bodies[url] = "body"
	}
	search := &mockSearch{results: results}
	fetcher := &mockFetcher{bodies: bodies}
	model := &mockModel{
		responses: map[string]string{
			"Category:":              "fact_checking_claim",
			"Misinformation Analyst": "Verdict: [Unverified]",
		},
	}

	h := newTestHandler(search, model, fetcher, nil)
	h.Handle(context.Background(), "some claim", nil)

	assert.LessOrEqual(t, fetcher.calls, 3)
}
