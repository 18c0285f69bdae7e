package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWriter(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	w := NewWriter(g)
	assert.NotNil(t, w.log)
	assert.Greater(t, w.workers, 0)

	t.Run("workers from config", func(t *testing.T) {
		g, err := NewGraph(&Config{Workers: 3}, libraryDiagram())
		require.NoError(t, err)
		assert.Equal(t, 3, NewWriter(g).workers)
	})

	t.Run("chaining", func(t *testing.T) {
		w := NewWriter(g).WithLogger(zap.NewNop()).WithWorkers(2)
		assert.Equal(t, 2, w.workers)
	})

	t.Run("nil logger ignored", func(t *testing.T) {
		w := NewWriter(g).WithLogger(nil)
		assert.NotNil(t, w.log)
	})

	t.Run("zero workers ignored", func(t *testing.T) {
		w := NewWriter(g).WithWorkers(0)
		assert.Greater(t, w.workers, 0)
	})
}

func TestWriteMetrics(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	w := NewWriter(g)
	project, err := w.Write(context.Background())
	require.NoError(t, err)
	require.Len(t, project, 16)

	m := w.Metrics()
	assert.Equal(t, 16, m.FilesGenerated)
	assert.Equal(t, 0, m.FilesFailed)
	assert.Equal(t, project.Size(), m.TotalBytes)
	assert.Greater(t, m.RenderTime, int64(0))
}

func TestWriteSingleWorker(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	project, err := NewWriter(g).WithWorkers(1).Write(context.Background())
	require.NoError(t, err)
	assert.Len(t, project, 16)
}

func TestWriteCanceledContext(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	project, err := NewWriter(g).Write(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, project)
}

func TestWriteRenderFailure(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	// Register an artifact whose template does not exist so its render
	// fails while every other artifact still goes through.
	old := Templates
	Templates = append([]TypeTemplate{{
		Name:   "absent",
		Format: func(t *Type) string { return "broken/" + t.Name + ".java" },
	}}, old...)
	defer func() { Templates = old }()

	w := NewWriter(g)
	project, err := w.Write(context.Background())
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.Contains(t, err.Error(), "broken/Author.java")

	// The healthy artifacts survive the failed ones.
	assert.Len(t, project, 16)
	assert.NotContains(t, project, "broken/Author.java")

	m := w.Metrics()
	assert.Equal(t, 16, m.FilesGenerated)
	assert.Equal(t, 2, m.FilesFailed)
}

func TestWriteConditionalTemplate(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	old := Templates
	Templates = append([]TypeTemplate{{
		Name:   "entity",
		Format: func(t *Type) string { return "extra/" + t.Name + ".java" },
		Cond:   func(t *Type) bool { return t.Name == "Book" },
	}}, old...)
	defer func() { Templates = old }()

	project, err := NewWriter(g).Write(context.Background())
	require.NoError(t, err)
	assert.Contains(t, project, "extra/Book.java")
	assert.NotContains(t, project, "extra/Author.java")
}

func TestWriteSkippedGraphTemplate(t *testing.T) {
	g, err := NewGraph(nil, libraryDiagram())
	require.NoError(t, err)

	old := GraphTemplates
	GraphTemplates = append([]GraphTemplate{{
		Name:   "pom",
		Format: func(*Graph) string { return "skipped.xml" },
		Skip:   func(*Graph) bool { return true },
	}}, old...)
	defer func() { GraphTemplates = old }()

	project, err := NewWriter(g).Write(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, project, "skipped.xml")
}
