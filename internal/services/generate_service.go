package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"classforge"
	"classforge/compiler/gen"
	"classforge/compiler/load"
	"classforge/internal/archive"
)

// GenerateService runs the generator with a content-addressed cache in
// front of it. The cache key covers the diagram and the resolved generator
// config, so two canvases submitting the same model share one rendering.
type GenerateService struct {
	cache classforge.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewGenerateService(cache classforge.Cache, ttl time.Duration, log *zap.Logger) *GenerateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GenerateService{cache: cache, ttl: ttl, log: log}
}

// Generate renders the diagram into a project file map. Fully rendered
// projects are cached; partial results from degraded runs are returned but
// never cached.
func (s *GenerateService) Generate(ctx context.Context, d *load.Diagram, opts ...gen.Option) (gen.Project, *gen.Graph, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}

	key, err := projectKey(d, cfg)
	if err == nil && s.cache != nil {
		if cached, cerr := s.cache.Get(ctx, key); cerr == nil && cached != nil {
			var files map[string][]byte
			if merr := msgpack.Unmarshal(cached, &files); merr == nil {
				// The planner is cheap; rebuild it so callers still get
				// warnings and config access on a cache hit.
				g, gerr := gen.NewGraph(cfg, d)
				if gerr == nil {
					s.log.Debug("generation cache hit", zap.String("key", key))
					return files, g, nil
				}
			}
			s.log.Warn("dropping undecodable cache entry", zap.String("key", key))
			_ = s.cache.Delete(ctx, key)
		}
	}

	g, err := gen.NewGraph(cfg, d)
	if err != nil {
		return nil, nil, err
	}
	project, err := gen.NewWriter(g).WithLogger(s.log).Write(ctx)
	if err != nil {
		return project, g, err
	}

	if s.cache != nil && key != "" {
		if encoded, merr := msgpack.Marshal(map[string][]byte(project)); merr == nil {
			if cerr := s.cache.Set(ctx, key, encoded, s.ttl); cerr != nil {
				s.log.Warn("cache generated project", zap.Error(cerr))
			}
		}
	}
	return project, g, nil
}

// GenerateArchive renders the diagram and packages it as a zip archive.
func (s *GenerateService) GenerateArchive(ctx context.Context, d *load.Diagram, opts ...gen.Option) ([]byte, *gen.Graph, error) {
	project, g, err := s.Generate(ctx, d, opts...)
	if err != nil {
		return nil, g, err
	}
	data, err := archive.Zip(project)
	if err != nil {
		return nil, g, fmt.Errorf("package project: %w", err)
	}
	return data, g, nil
}

// projectKey derives the cache key from the diagram content and resolved
// config. msgpack over the two structs is deterministic, struct fields
// encode in declaration order.
func projectKey(d *load.Diagram, cfg *gen.Config) (string, error) {
	payload, err := msgpack.Marshal(struct {
		Diagram *load.Diagram
		Config  *gen.Config
	}{d, cfg})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "project:" + hex.EncodeToString(sum[:]), nil
}
