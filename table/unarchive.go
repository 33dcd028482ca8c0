package table

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// readSource returns the decompressed bytes of the source file and the name
// its format is detected from. Plain files are returned as they are.
func readSource(filePath string) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackStream(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	data, err := os.ReadFile(filePath)
	return data, filePath, err
}

// unpackZipArchive reads the largest file of the archive.
func unpackZipArchive(filePath string) ([]byte, string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return nil, "", fmt.Errorf("zip archive %s contains no files", filePath)
	}

	rc, err := largestFile.Open()
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s from %s: %w", largestFile.Name, filePath, err)
	}
	return data, largestFile.Name, nil
}

func unpackStream(filePath, ext string, open func(io.Reader) (io.Reader, error)) ([]byte, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	r, err := open(file)
	if err != nil {
		return nil, "", fmt.Errorf("error opening %s archive %s: %w", ext, filePath, err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("error unpacking %s: %w", filePath, err)
	}
	return data, filePath[:len(filePath)-len(ext)], nil
}
