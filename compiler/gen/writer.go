package gen

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Writer renders a planned graph into one in-memory Project with parallel
// artifact rendering. The writer never touches the filesystem; packaging
// and download handling happen elsewhere.
type Writer struct {
	graph   *Graph
	log     *zap.Logger
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesFailed    int
	TotalBytes     int64
	RenderTime     int64 // nanoseconds
}

// NewWriter creates a writer for the graph.
func NewWriter(g *Graph) *Writer {
	workers := runtime.GOMAXPROCS(0)
	if g.Config != nil && g.Config.Workers > 0 {
		workers = g.Config.Workers
	}
	return &Writer{
		graph:   g,
		log:     zap.NewNop(),
		workers: workers,
		metrics: &WriterMetrics{},
	}
}

// WithLogger sets the logger for per-artifact diagnostics.
func (w *Writer) WithLogger(log *zap.Logger) *Writer {
	if log != nil {
		w.log = log
	}
	return w
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := *w.metrics
	return &m
}

// fileTask represents a single artifact render task. Template tasks carry
// a template name and data; document tasks carry a build function instead.
type fileTask struct {
	path     string // output path inside the project
	template string // template name to execute
	data     any    // data to pass to the template
	build    func(*Graph) ([]byte, error)
}

// Write renders every artifact of the project. A failed artifact is
// skipped and its error recorded rather than aborting the run; the partial
// project is returned together with one aggregate error so callers can
// still package what was produced.
func (w *Writer) Write(ctx context.Context) (Project, error) {
	start := time.Now()

	// Collect all artifacts to render.
	var tasks []fileTask

	// Per-type templates
	for _, t := range w.graph.Nodes {
		for _, tmpl := range Templates {
			if tmpl.Cond != nil && !tmpl.Cond(t) {
				continue
			}
			tasks = append(tasks, fileTask{
				path:     tmpl.Format(t),
				template: tmpl.Name,
				data:     t,
			})
		}
	}

	// Graph-level templates
	for _, tmpl := range GraphTemplates {
		if tmpl.Skip != nil && tmpl.Skip(w.graph) {
			continue
		}
		tasks = append(tasks, fileTask{
			path:     tmpl.Format(w.graph),
			template: tmpl.Name,
			data:     w.graph,
		})
	}

	// Programmatically built documents
	for _, b := range documentBuilders {
		tasks = append(tasks, fileTask{path: b.path, build: b.build})
	}

	project := make(Project, len(tasks))
	var (
		renderMu sync.Mutex
		errs     []error
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for _, f := range tasks {
		f := f // capture per-iteration copy; required under the go 1.21 directive
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := w.renderTask(f)
			if err != nil {
				w.log.Warn("artifact render failed",
					zap.String("path", f.path),
					zap.Error(err))
				renderMu.Lock()
				errs = append(errs, NewGenerationError(f.path, "render artifact", err))
				renderMu.Unlock()
				w.fail()
				return nil
			}
			renderMu.Lock()
			project[f.path] = data
			renderMu.Unlock()
			w.done(len(data))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return project, err
	}

	w.mu.Lock()
	w.metrics.RenderTime = time.Since(start).Nanoseconds()
	w.mu.Unlock()

	w.log.Info("project rendered",
		zap.Int("files", len(project)),
		zap.Int("classes", len(w.graph.Nodes)),
		zap.Int("warnings", len(w.graph.Warnings)),
		zap.Duration("elapsed", time.Since(start)))
	return project, errors.Join(errs...)
}

// renderTask produces the content of a single artifact.
func (w *Writer) renderTask(f fileTask) ([]byte, error) {
	if f.build != nil {
		return f.build(w.graph)
	}
	var buf bytes.Buffer
	if err := templates().ExecuteTemplate(&buf, f.template+".tmpl", f.data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Writer) done(n int) {
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(n)
	w.mu.Unlock()
}

func (w *Writer) fail() {
	w.mu.Lock()
	w.metrics.FilesFailed++
	w.mu.Unlock()
}
