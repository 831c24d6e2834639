// Package pipeline is the claim-verification core: it resolves input
// text (typed or OCR'd from an image), classifies intent, gathers web
// evidence for claims, and synthesizes a verdict. Every failure path
// degrades to a plain-text response; nothing here panics or returns an
// error to the caller, because the chat endpoint has no other channel
// for partial failure.
package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/freaksearch/freaksearch/src/pipeline/components/intent"
	"github.com/freaksearch/freaksearch/src/pipeline/components/verdict"
	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

// Fixed terminal responses.
const (
	MsgNoImageText = "Error: No text read from image."
	MsgNoInput     = "Error: No input provided."
	MsgGreeting    = "Hello! I am FreakSearch. Provide a claim to verify."
	MsgOnlyClaims  = "I am FreakSearch. I only verify news claims."
)

// SearchProvider retrieves candidate evidence sources for a query.
type SearchProvider interface {
	Search(ctx context.Context, query string, count int) ([]websearch.Result, error)
}

// OCREngine recognizes text in an image payload.
type OCREngine interface {
	Recognize(imageBytes []byte) (string, error)
}

// ContentFetcher extracts readable body text from a URL. It returns an
// empty string on failure rather than an error.
type ContentFetcher interface {
	FetchBody(ctx context.Context, url string) string
}

// Handler runs the verification pipeline. Optional dependencies
// (search, OCR) are nil when their credentials or binaries are absent;
// each stage degrades on its own rather than surfacing an error.
type Handler struct {
	search      SearchProvider // nil when search credentials are missing
	ocr         OCREngine      // nil when no OCR engine is available
	fetcher     ContentFetcher
	classifier  *intent.Classifier
	synthesizer *verdict.Synthesizer
	resultLimit int
}

// New wires a pipeline handler. search and ocr may be nil; fetcher,
// classifier and synthesizer must not be.
func New(search SearchProvider, ocr OCREngine, fetcher ContentFetcher,
	classifier *intent.Classifier, synthesizer *verdict.Synthesizer, resultLimit int) *Handler {
	if resultLimit <= 0 {
		resultLimit = 3
	}
	return &Handler{
		search:      search,
		ocr:         ocr,
		fetcher:     fetcher,
		classifier:  classifier,
		synthesizer: synthesizer,
		resultLimit: resultLimit,
	}
}

// Handle is the single entry point used by the chat endpoint. Exactly
// one of userText/imageBytes is expected; imageBytes wins when both are
// set, matching upload behavior. The return value is always displayable
// text.
func (h *Handler) Handle(ctx context.Context, userText string, imageBytes []byte) string {
	text := userText
	if len(imageBytes) > 0 {
		text = h.extractText(imageBytes)
		if text == "" {
			return MsgNoImageText
		}
	}

	if strings.TrimSpace(text) == "" {
		return MsgNoInput
	}

	switch h.classifier.Classify(ctx, text) {
	case intent.Greeting:
		return MsgGreeting
	case intent.GeneralQuestion:
		return MsgOnlyClaims
	}

	bundle := h.gatherEvidence(ctx, text)
	return h.synthesizer.Synthesize(ctx, text, bundle)
}

// extractText collapses every OCR failure to "" so the orchestrator can
// apply a single "no text read" message.
func (h *Handler) extractText(imageBytes []byte) string {
	if h.ocr == nil {
		log.Printf("OCR requested but no engine is configured")
		return ""
	}
	text, err := h.ocr.Recognize(imageBytes)
	if err != nil {
		log.Printf("OCR error: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// gatherEvidence searches for the claim and fetches each usable result
// sequentially, preserving provider order. Results without a link are
// skipped; a failed fetch keeps its entry with an empty body.
func (h *Handler) gatherEvidence(ctx context.Context, claim string) verdict.EvidenceBundle {
	if h.search == nil {
		return verdict.EvidenceBundle{}
	}

	results, err := h.search.Search(ctx, claim, h.resultLimit)
	if err != nil {
		log.Printf("Search error for claim %q: %v", claim, err)
		return verdict.EvidenceBundle{}
	}

	var bundle verdict.EvidenceBundle
	for _, result := range results {
		if len(bundle.Sources) >= h.resultLimit {
			break
		}
		if strings.TrimSpace(result.Link) == "" {
			continue
		}
		bundle.Sources = append(bundle.Sources, verdict.Source{
			Result: result,
			Body:   h.fetcher.FetchBody(ctx, result.Link),
		})
	}
	return bundle
}
