package loader

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"census/internal/models"
)

// ZIPLoader implements Loader for ZIP archives containing a census CSV
type ZIPLoader struct {
	root    string
	tempDir string
}

// NewZIPLoader creates a new ZIP loader instance
func NewZIPLoader(root string) (*ZIPLoader, error) {
	tempDir, err := os.MkdirTemp("", "census_data_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &ZIPLoader{
		root:    root,
		tempDir: tempDir,
	}, nil
}

// Method returns the loader type
func (l *ZIPLoader) Method() string {
	return "zip"
}

// Load implements the Loader interface
func (l *ZIPLoader) Load(ctx context.Context, path string) ([]models.Record, error) {
	zipPath := resolve(l.root, path)
	if isRemote(path) {
		downloaded, err := l.download(ctx, path)
		if err != nil {
			log.Printf("Error downloading ZIP: %v", err)
			return nil, NewLoadError(StageFetch, path, err)
		}
		defer os.Remove(downloaded)
		zipPath = downloaded
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, NewLoadError(StageFetch, path, fmt.Errorf("failed to open ZIP: %w", err))
	}
	defer r.Close()

	log.Printf("Found %d files in ZIP archive", len(r.File))
	for _, f := range r.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			log.Printf("Skipping non-CSV file: %s", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, NewLoadError(StageExtract, path, fmt.Errorf("failed to open %s in ZIP: %w", f.Name, err))
		}
		defer rc.Close()

		log.Printf("Processing CSV file: %s", f.Name)
		return decode(ctx, rc, path+"!"+f.Name)
	}

	return nil, NewLoadError(StageExtract, path, errors.New("no CSV file in archive"))
}

// download saves a remote archive into the loader's temp directory
func (l *ZIPLoader) download(ctx context.Context, url string) (string, error) {
	body, err := open(ctx, "", url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	f, err := os.CreateTemp(l.tempDir, "download_*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	log.Printf("Successfully wrote %d bytes to %s", written, filepath.Base(f.Name()))

	return f.Name(), nil
}

// Cleanup removes temporary files
func (l *ZIPLoader) Cleanup() error {
	return os.RemoveAll(l.tempDir)
}
