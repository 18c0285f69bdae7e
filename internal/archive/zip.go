package archive

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zip"

	"classforge/compiler/gen"
)

// Zip packages a generated project as a zip archive for download. Entries
// are written in path order with zeroed timestamps, so the same project
// always produces the same archive bytes.
func Zip(project gen.Project) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, path := range project.Paths() {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   path,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", path, err)
		}
		if _, err := w.Write(project[path]); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Unzip restores a file map from an archive produced by Zip. The server
// only writes archives; this direction exists for the generation cache and
// for tests.
func Unzip(data []byte) (gen.Project, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}
	project := make(gen.Project, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}
		var content bytes.Buffer
		_, err = content.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read zip entry %s: %w", f.Name, err)
		}
		project[f.Name] = content.Bytes()
	}
	return project, nil
}
