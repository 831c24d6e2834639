// pipeline-smoketest runs one verification through the live pipeline
// from the command line, using whatever provider credentials are set in
// the environment. Useful for checking keys and prompt behavior without
// the API in front.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/freaksearch/freaksearch/src/ai/gemini"
	"github.com/freaksearch/freaksearch/src/pipeline"
	"github.com/freaksearch/freaksearch/src/pipeline/components/fetch"
	"github.com/freaksearch/freaksearch/src/pipeline/components/intent"
	"github.com/freaksearch/freaksearch/src/pipeline/components/ocr"
	"github.com/freaksearch/freaksearch/src/pipeline/components/verdict"
	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

var (
	textFlag    = flag.String("text", "", "Claim or message to run through the pipeline")
	imageFlag   = flag.String("image", "", "Path to an image to OCR instead of -text")
	limitFlag   = flag.Int("limit", 3, "Search result limit")
	modelFlag   = flag.String("model", "", "Override Gemini model name")
	timeoutFlag = flag.Duration("timeout", 3*time.Minute, "Overall timeout")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *textFlag == "" && *imageFlag == "" {
		log.Fatal("one of -text or -image is required")
	}

	var imageBytes []byte
	if *imageFlag != "" {
		var err error
		imageBytes, err = os.ReadFile(*imageFlag)
		if err != nil {
			log.Fatalf("read image: %v", err)
		}
	}

	var search pipeline.SearchProvider
	if key, cx := os.Getenv("GOOGLE_API_KEY"), os.Getenv("SEARCH_ENGINE_ID"); key != "" && cx != "" {
		search = websearch.NewClient(key, cx)
	} else {
		log.Print("GOOGLE_API_KEY / SEARCH_ENGINE_ID not set; search disabled")
	}

	var classifier *intent.Classifier
	var synthesizer *verdict.Synthesizer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		model := gemini.NewClient(key, *modelFlag)
		classifier = intent.NewClassifier(model, nil)
		synthesizer = verdict.NewSynthesizer(model, *limitFlag)
	} else {
		log.Print("GEMINI_API_KEY not set; classification and analysis degraded")
		classifier = intent.NewClassifier(nil, nil)
		synthesizer = verdict.NewSynthesizer(nil, *limitFlag)
	}

	handler := pipeline.New(search, ocr.NewEngine(), fetch.NewFetcher(), classifier, synthesizer, *limitFlag)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	response := handler.Handle(ctx, *textFlag, imageBytes)
	fmt.Printf("--- response (%s) ---\n%s\n", time.Since(start).Round(time.Millisecond), response)
}
