package intent

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Intent is the classified purpose of a user input.
type Intent string

const (
	Greeting          Intent = "greeting"
	FactCheckingClaim Intent = "fact_checking_claim"
	GeneralQuestion   Intent = "general_question"
)

// LanguageModel is the slice of the LLM client the classifier needs.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultGreetings are matched exactly against the normalized input.
var DefaultGreetings = []string{
	"hello", "hi", "vanakkam", "hai", "good morning", "good evening",
}

// Classifier decides whether input is a greeting, a verifiable claim,
// or a general question.
type Classifier struct {
	model     LanguageModel // nil when no LLM credential is configured
	greetings map[string]bool
}

// NewClassifier builds a classifier. model may be nil; greetings may be
// nil to use DefaultGreetings.
func NewClassifier(model LanguageModel, greetings []string) *Classifier {
	if len(greetings) == 0 {
		greetings = DefaultGreetings
	}
	set := make(map[string]bool, len(greetings))
	for _, g := range greetings {
		set[strings.ToLower(strings.TrimSpace(g))] = true
	}
	return &Classifier{model: model, greetings: set}
}

// Classify never returns an error: greetings are matched locally with
// no network call, and any model failure falls back to treating the
// input as a claim worth checking.
func (c *Classifier) Classify(ctx context.Context, text string) Intent {
	if c.greetings[strings.ToLower(strings.TrimSpace(text))] {
		return Greeting
	}

	if c.model == nil {
		return FactCheckingClaim
	}

	prompt := fmt.Sprintf(`Analyze the user input and classify it into exactly one category:
1. fact_checking_claim
2. general_question
User Input: "%s"
Category:`, text)

	response, err := c.model.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Intent recognition error: %v", err)
		return FactCheckingClaim
	}

	label := strings.ToLower(strings.TrimSpace(response))
	label = strings.ReplaceAll(label, `"`, "")
	label = strings.ReplaceAll(label, "'", "")
	if strings.Contains(label, string(FactCheckingClaim)) {
		return FactCheckingClaim
	}
	return GeneralQuestion
}
