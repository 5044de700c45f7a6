package services

import (
	"context"
	"log"
	"time"
)

// Document is one CV payload handed in by the caller. It is not retained
// beyond the analysis call.
type Document struct {
	Data     []byte
	Filename string
}

// AnalyzeOptions carries optional per-call overrides.
type AnalyzeOptions struct {
	Model   string
	Timeout time.Duration
}

// Analyzer runs the full analysis pipeline: extract text, build the prompt,
// invoke the model, normalize the reply. Each call is stateless and
// independent; concurrent calls share nothing mutable.
type Analyzer interface {
	Analyze(ctx context.Context, doc Document, opts *AnalyzeOptions) (*Analysis, error)
}

type analyzer struct {
	extractor     TextExtractor
	promptBuilder *PromptBuilder
	client        ModelClient
}

func NewAnalyzer(extractor TextExtractor, client ModelClient) Analyzer {
	return &analyzer{
		extractor:     extractor,
		promptBuilder: NewPromptBuilder(),
		client:        client,
	}
}

// Analyze implements Analyzer. Extraction failure is the one tolerated
// fault: it degrades to the filename fallback. Everything downstream
// propagates its typed error unmodified, so the result is either fully
// populated or absent.
func (a *analyzer) Analyze(ctx context.Context, doc Document, opts *AnalyzeOptions) (*Analysis, error) {
	text := a.extractor.ExtractText(doc.Data, doc.Filename)
	if text == nil {
		log.Printf("⚠️  No text extracted from %q, falling back to filename\n", doc.Filename)
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(text, doc.Filename)

	var completionOpts *CompletionOptions
	if opts != nil {
		completionOpts = &CompletionOptions{
			Model:   opts.Model,
			Timeout: opts.Timeout,
		}
	}

	reply, err := a.client.Complete(ctx, prompt, completionOpts)
	if err != nil {
		return nil, err
	}

	return NormalizeAnalysis(reply)
}
