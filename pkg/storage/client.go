package storage

import (
	"context"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
)

// SignedURLTTL is how long a minted download link stays valid. Links are
// generated fresh on every render and never cached, so nothing outlives this
// window.
const SignedURLTTL = time.Hour

// Client lists objects in one bucket and mints read-only signed download
// links, authenticated with the account-level service key.
type Client struct {
	api     *storage_go.Client
	bucket  string
	baseURL string
}

func NewClient(rawURL, serviceKey, bucket string) *Client {
	return &Client{
		api:     storage_go.NewClient(rawURL, serviceKey, nil),
		bucket:  bucket,
		baseURL: strings.TrimRight(rawURL, "/"),
	}
}

// List returns the paths of every object in the bucket, flat, in store
// order. The full listing is assumed to fit in one response.
func (c *Client) List(ctx context.Context) ([]string, error) {
	files, err := c.api.ListFiles(c.bucket, "", storage_go.FileSearchOptions{})
	if err != nil {
		return nil, &AuthError{Op: "list", Err: err}
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Name)
	}
	return paths, nil
}

// SignedURL mints a download link for objectPath, valid for SignedURLTTL
// from now. Only read access is ever requested.
func (c *Client) SignedURL(ctx context.Context, objectPath string) (string, error) {
	signed, err := c.api.CreateSignedUrl(c.bucket, objectPath, int(SignedURLTTL.Seconds()))
	if err != nil {
		return "", &AuthError{Op: "sign", Err: err}
	}

	url := signed.SignedURL
	// Older API versions return the path relative to the storage host.
	if !strings.HasPrefix(url, "http") {
		url = c.baseURL + "/" + strings.TrimLeft(url, "/")
	}
	return url, nil
}
