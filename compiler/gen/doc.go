// Package gen turns a loaded class diagram into a complete Spring Boot
// backend project.
//
// Generation is a deterministic two-phase pass. NewGraph plans the diagram:
// every class name, attribute line and type token is sanitized and resolved
// into a Type with scalar Fields and relationship Edges, with ownership and
// mapping direction decided per relation. The planner never fails on
// malformed member input; unknown type tokens degrade to String, colliding
// member names are dropped first-seen-wins, and every irregularity is
// recorded as a warning on the graph. The only refused input is a diagram
// with no classes.
//
// A Writer then renders the graph into a Project, a flat map from relative
// file path to content: per class one entity, DTO, repository, service and
// controller source file, plus the build descriptor, runtime configuration,
// bootstrap class, mapper configuration and the request collection
// documents. Artifacts render concurrently; a failed artifact is recorded
// and skipped so the rest of the project still materializes.
//
// Generate combines both phases:
//
//	project, graph, err := gen.Generate(ctx, diagram,
//		gen.WithGroupID("com.acme"),
//		gen.WithArtifactID("shop"),
//	)
//
// The zero configuration emits a runnable demo project under the
// com.example.demo package.
package gen
