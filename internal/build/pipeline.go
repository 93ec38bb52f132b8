package build

import (
	"context"
	"fmt"

	"github.com/dominikbraun/graph"
)

type stepFunc func(ctx context.Context) StepResult

// pipeline runs steps in dependency order. After the first failure every
// remaining step is recorded as skipped without running.
type pipeline struct {
	g     graph.Graph[string, string]
	steps map[string]stepFunc
	index map[string]int
}

func newPipeline() *pipeline {
	return &pipeline{
		g:     graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
		steps: make(map[string]stepFunc),
		index: make(map[string]int),
	}
}

// add registers a step that runs after the steps named in after.
func (p *pipeline) add(name string, fn stepFunc, after ...string) error {
	if err := p.g.AddVertex(name); err != nil {
		return fmt.Errorf("failed to register step %s: %w", name, err)
	}
	p.steps[name] = fn
	p.index[name] = len(p.index)

	for _, dep := range after {
		if err := p.g.AddEdge(dep, name); err != nil {
			return fmt.Errorf("failed to order step %s after %s: %w", name, dep, err)
		}
	}
	return nil
}

func (p *pipeline) order() ([]string, error) {
	return graph.StableTopologicalSort(p.g, func(a, b string) bool {
		return p.index[a] < p.index[b]
	})
}

func (p *pipeline) run(ctx context.Context) ([]StepResult, error) {
	order, err := p.order()
	if err != nil {
		return nil, fmt.Errorf("failed to order pipeline steps: %w", err)
	}

	results := make([]StepResult, 0, len(order))
	ok := true
	for _, name := range order {
		if !ok {
			results = append(results, skippedStep(name))
			continue
		}
		result := p.steps[name](ctx)
		result.Name = name
		results = append(results, result)
		ok = result.Success
	}
	return results, nil
}

func allSucceeded(results []StepResult) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
