package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freaksearch/freaksearch/src/ai/gemini"
	"github.com/freaksearch/freaksearch/src/api/config"
	"github.com/freaksearch/freaksearch/src/api/data"
	"github.com/freaksearch/freaksearch/src/api/webserver"
	"github.com/freaksearch/freaksearch/src/pipeline"
	"github.com/freaksearch/freaksearch/src/pipeline/components/fetch"
	"github.com/freaksearch/freaksearch/src/pipeline/components/intent"
	"github.com/freaksearch/freaksearch/src/pipeline/components/ocr"
	"github.com/freaksearch/freaksearch/src/pipeline/components/verdict"
	"github.com/freaksearch/freaksearch/src/pipeline/components/websearch"
)

func main() {
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "freaksearch:freaksearch@tcp(localhost:3306)/freaksearch?parseTime=true"
	}
	db := data.MustMySQL(mysqlDSN)

	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	handler := buildPipeline(cfg)
	router := webserver.New(cfg, db, rdb, handler)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // verdicts wait on search + fetch + LLM
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("FreakSearch API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}

// buildPipeline decides each optional capability once at startup:
// clients exist only when their credentials do, and the pipeline
// branches on nil instead of re-checking env vars per request.
func buildPipeline(cfg config.Config) *pipeline.Handler {
	var search pipeline.SearchProvider
	if cfg.GoogleAPIKey != "" && cfg.SearchEngineID != "" {
		search = websearch.NewClient(cfg.GoogleAPIKey, cfg.SearchEngineID)
	} else {
		log.Printf("Google API key or search engine ID not configured; web search disabled")
	}

	var classifier *intent.Classifier
	var synthesizer *verdict.Synthesizer
	if cfg.GeminiAPIKey != "" {
		model := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		classifier = intent.NewClassifier(model, nil)
		synthesizer = verdict.NewSynthesizer(model, cfg.SearchResultLimit)
	} else {
		log.Printf("Gemini API key not configured; classification and analysis degraded")
		classifier = intent.NewClassifier(nil, nil)
		synthesizer = verdict.NewSynthesizer(nil, cfg.SearchResultLimit)
	}

	return pipeline.New(
		search,
		ocr.NewEngine(),
		fetch.NewFetcher(),
		classifier,
		synthesizer,
		cfg.SearchResultLimit,
	)
}
