// Package aitest provides an in-memory ai.Generator for tests.
package aitest

import (
	"context"
	"sync"

	"github.com/Vovarama1992/memo_coach/internal/ai"
)

// Generator replays canned replies and records every request.
type Generator struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Inline   bool
	Requests []ai.Request

	// Block, when set, is waited on before replying.
	Block chan struct{}
	// Started receives one value per call, if set.
	Started chan struct{}
}

func (g *Generator) Generate(ctx context.Context, req ai.Request) (ai.Response, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	block, started := g.Block, g.Started
	g.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ai.Response{}, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return ai.Response{}, g.Err
	}
	return ai.Response{Text: g.Reply}, nil
}

func (g *Generator) InlineDocuments() bool { return g.Inline }

func (g *Generator) Name() string { return "fake" }

func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Requests)
}

func (g *Generator) Last() ai.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Requests) == 0 {
		return ai.Request{}
	}
	return g.Requests[len(g.Requests)-1]
}

// Set swaps the canned reply under the lock.
func (g *Generator) Set(reply string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Reply, g.Err = reply, err
}
