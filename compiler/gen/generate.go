package gen

import (
	"context"

	"classforge/compiler/load"
)

// Generate plans the diagram and renders the complete backend project in
// one step. It returns the project together with the planned graph so
// callers can surface planner warnings next to the result.
func Generate(ctx context.Context, d *load.Diagram, opts ...Option) (Project, *Graph, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}
	g, err := NewGraph(cfg, d)
	if err != nil {
		return nil, nil, err
	}
	project, err := NewWriter(g).Write(ctx)
	if err != nil {
		return project, g, err
	}
	return project, g, nil
}
