package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"classforge/compiler/gen"
	"classforge/compiler/load"
	"classforge/internal/archive"
)

var (
	generateFile     string
	generateOut      string
	generateZip      string
	generateArtifact string
	generateGroup    string
	generatePackage  string
	generateApp      string
	generatePort     int
	generateWorkers  int
	generateWatch    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Spring Boot project from a diagram file",
	Long: `Generate reads a diagram document (.json or .yaml) and writes the
generated project to a directory, or to a zip archive with --zip.

With --watch the command keeps running and regenerates whenever the
diagram file changes.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "diagram.json", "diagram document to compile")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "output directory")
	generateCmd.Flags().StringVar(&generateZip, "zip", "", "write a zip archive to this path instead of a directory")
	generateCmd.Flags().StringVar(&generateArtifact, "artifact", "", "maven artifactId")
	generateCmd.Flags().StringVar(&generateGroup, "group", "", "maven groupId")
	generateCmd.Flags().StringVar(&generatePackage, "base-package", "", "base java package")
	generateCmd.Flags().StringVar(&generateApp, "app", "", "spring application name")
	generateCmd.Flags().IntVar(&generatePort, "port", 0, "spring server port")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "parallel render workers")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate when the diagram file changes")
}

func generateOptions() []gen.Option {
	var opts []gen.Option
	if generateArtifact != "" {
		opts = append(opts, gen.WithArtifactID(generateArtifact))
	}
	if generateGroup != "" {
		opts = append(opts, gen.WithGroupID(generateGroup))
	}
	if generatePackage != "" {
		opts = append(opts, gen.WithBasePackage(generatePackage))
	}
	if generateApp != "" {
		opts = append(opts, gen.WithAppName(generateApp))
	}
	if generatePort != 0 {
		opts = append(opts, gen.WithServerPort(generatePort))
	}
	if generateWorkers != 0 {
		opts = append(opts, gen.WithWorkers(generateWorkers))
	}
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := generateOptions()
	run := func(ctx context.Context) error {
		start := time.Now()

		diagram, err := load.LoadFile(generateFile)
		if err != nil {
			return err
		}
		project, graph, err := gen.Generate(ctx, diagram, opts...)
		if err != nil {
			return fmt.Errorf("generate project: %w", err)
		}
		for _, warning := range graph.Warnings {
			log.Warn("diagram irregularity", zap.String("detail", warning))
		}

		if generateZip != "" {
			data, err := archive.Zip(project)
			if err != nil {
				return err
			}
			if err := os.WriteFile(generateZip, data, 0o644); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}
			log.Info("project archived",
				zap.String("path", generateZip),
				zap.Int("files", len(project)),
				zap.Duration("took", time.Since(start)),
			)
			return nil
		}

		if err := project.WriteTo(generateOut); err != nil {
			return fmt.Errorf("write project: %w", err)
		}
		log.Info("project generated",
			zap.String("dir", generateOut),
			zap.Int("files", len(project)),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		if !generateWatch {
			return err
		}
		log.Error("generation failed", zap.Error(err))
	}
	if !generateWatch {
		return nil
	}
	return watchDiagram(ctx, log, run)
}

// watchDiagram reruns the generation whenever the diagram file changes.
// The parent directory is watched because editors replace files on save,
// which would drop a watch on the file itself.
func watchDiagram(ctx context.Context, log *zap.Logger, run func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(generateFile)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target, err := filepath.Abs(generateFile)
	if err != nil {
		return err
	}
	log.Info("watching diagram", zap.String("file", generateFile))

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			debounce.Reset(300 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-debounce.C:
			if err := run(ctx); err != nil {
				log.Error("generation failed", zap.Error(err))
			}
		}
	}
}
