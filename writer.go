package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifact is one fully rendered output file.
type artifact struct {
	name string
	data []byte
}

// sourceStem is the file name of the source up to its first dot.
func sourceStem(src string) string {
	base := filepath.Base(src)
	if i := strings.Index(base[1:], "."); i >= 0 {
		return base[:i+1]
	}
	return base
}

type outputDir struct {
	path string
}

func newOutputDir(dest, stem string) (*outputDir, error) {
	path := filepath.Join(dest, stem)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", path, err)
	}
	return &outputDir{path: path}, nil
}

// writeFile writes data to a temporary file next to the target and renames
// it into place, so a reader never sees a half written file.
func (d *outputDir) writeFile(name string, data []byte) (string, error) {
	target := filepath.Join(d.path, name)
	tmp, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing %s: %w", target, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing %s: %w", target, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("error writing %s: %w", target, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return "", err
	}
	if err = os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("error moving %s into place: %w", target, err)
	}
	return target, nil
}

// writeAll writes the artifacts in order and returns the written paths.
func (d *outputDir) writeAll(artifacts []artifact) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := d.writeFile(a.name, a.data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
