// Package chat implements the conversational retrieval engine: embed the
// question, retrieve the nearest corpus chunks, assemble a grounded prompt
// with the running history, and reconstruct typed source citations.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/VyomThaker-2154/Documind-ai/internal/index"
	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
)

const answerPromptFormat = `You are an AI assistant analyzing a PDF document. Use the following pieces of context to answer the question. If you don't know the answer, just say that you don't know, don't try to make up an answer.

Context:
%s

Chat History:
%s

Question: %s
Answer:`

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Source cites the typed, paged origin of a retrieved chunk. Page is nil
// when the chunk text carries no page marker.
type Source struct {
	Type    string `json:"type"`
	Page    *int   `json:"page"`
	Content string `json:"content"`
}

// Answer is the engine's reply: the model answer plus source citations in
// retrieval-rank order.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Engine answers questions against one document's similarity index.
type Engine struct {
	idx          *index.Index
	completer    llm.Completer
	embedder     llm.Embedder
	k            int
	maxCtxTokens int
}

func NewEngine(idx *index.Index, completer llm.Completer, embedder llm.Embedder, k, maxCtxTokens int) *Engine {
	if k <= 0 {
		k = 4
	}
	if maxCtxTokens <= 0 {
		maxCtxTokens = 4000
	}
	return &Engine{
		idx:          idx,
		completer:    completer,
		embedder:     embedder,
		k:            k,
		maxCtxTokens: maxCtxTokens,
	}
}

// Ask retrieves the nearest chunks, obtains a grounded answer, and derives
// citations. It never mutates history; appending the new turn is the
// caller's job.
func (e *Engine) Ask(ctx context.Context, question string, history []Turn) (Answer, error) {
	queryVec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("embed question: %w", err)
	}

	hits := e.idx.Search(queryVec, e.k)
	hits = e.fitBudget(hits, question, history)

	prompt := buildPrompt(hits, question, history)
	reply, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("answer question: %w", err)
	}

	sources := make([]Source, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, SourceFromChunk(hit.Text))
	}

	return Answer{Answer: strings.TrimSpace(reply), Sources: sources}, nil
}

// fitBudget drops lowest-ranked chunks until the assembled prompt fits the
// token budget.
func (e *Engine) fitBudget(hits []index.ScoredChunk, question string, history []Turn) []index.ScoredChunk {
	for len(hits) > 1 && EstimateTokens(buildPrompt(hits, question, history)) > e.maxCtxTokens {
		hits = hits[:len(hits)-1]
	}
	return hits
}

func buildPrompt(hits []index.ScoredChunk, question string, history []Turn) string {
	contexts := make([]string, len(hits))
	for i, hit := range hits {
		contexts[i] = hit.Text
	}

	var hb strings.Builder
	for _, turn := range history {
		fmt.Fprintf(&hb, "Human: %s\nAssistant: %s\n", turn.Question, turn.Answer)
	}

	return fmt.Sprintf(answerPromptFormat, strings.Join(contexts, "\n\n"), hb.String(), question)
}

var pageRe = regexp.MustCompile(`page (\d+)`)

// SourceFromChunk classifies a chunk by its bracketed prefix and extracts
// the page number when present.
func SourceFromChunk(text string) Source {
	src := Source{Content: text}

	switch {
	case strings.HasPrefix(text, "[Table"):
		src.Type = "table"
	case strings.HasPrefix(text, "[Graph"):
		src.Type = "graph"
	case strings.HasPrefix(text, "[Image"):
		src.Type = "image"
	default:
		src.Type = "text"
	}

	if m := pageRe.FindStringSubmatch(text); m != nil {
		page := 0
		fmt.Sscanf(m[1], "%d", &page)
		src.Page = &page
	}
	return src
}

// EstimateTokens gives a rough token count using a words-per-token
// heuristic. Exact tokenization is not required for budget trimming.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
