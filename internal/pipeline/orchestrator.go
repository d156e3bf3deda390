// Package pipeline runs the three generation stages of a report. Every
// stage resolves: failures are logged and replaced with fixed content.
package pipeline

import (
	llmclient "questio/internal/llmClient"
	"questio/internal/logger"
	"questio/internal/retrieval"
)

// Call labels, used in logs, traces and hook events.
const (
	LabelAnalysis = "short-analysis"
	LabelImage    = "persona-image"
	LabelReport   = "detailed-report"
)

type Orchestrator struct {
	LLM       llmclient.Client
	Retriever retrieval.Retriever
	Log       *logger.Logger
}

// New wires an orchestrator. A nil retriever uses the bundled notes and a
// nil logger discards output.
func New(client llmclient.Client, r retrieval.Retriever, log *logger.Logger) *Orchestrator {
	if r == nil {
		r = retrieval.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{LLM: client, Retriever: r, Log: log.With("component", "pipeline")}
}
