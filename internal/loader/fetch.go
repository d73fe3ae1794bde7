package loader

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fetchTimeout bounds remote resource downloads
const fetchTimeout = 30 * time.Second

func isRemote(resource string) bool {
	return strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://")
}

// resolve joins relative local paths onto root
func resolve(root, resource string) string {
	if isRemote(resource) || filepath.IsAbs(resource) || root == "" {
		return resource
	}
	return filepath.Join(root, resource)
}

// open returns a reader for a local file or an http(s) resource
func open(ctx context.Context, root, resource string) (io.ReadCloser, error) {
	if !isRemote(resource) {
		f, err := os.Open(resolve(root, resource))
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	log.Printf("Creating HTTP request for URL: %s", resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/zip, */*")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	log.Printf("Received response with status code: %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
