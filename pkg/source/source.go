// Package source retrieves dictionary payloads: compiled lexicons, raw word lists and common
// word lists. A Source is named by a URI: a local path, an http(s) URL, a gs://bucket/object
// reference or a bigquery://project/dataset.table word query. Other schemes can be plugged in
// with WithScheme.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"unicode"

	"cloud.google.com/go/storage"
)

// ErrUnsupportedScheme is returned by Parse for URIs it cannot resolve.
var ErrUnsupportedScheme = errors.New("unsupported source scheme")

// Source is a retrievable payload.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// File is a local file path.
type File string

func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(string(f))
}

func (f File) String() string {
	return string(f)
}

// Bytes is an in-memory payload.
type Bytes struct {
	Name string
	Data []byte
}

func (b Bytes) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

func (b Bytes) String() string {
	return b.Name
}

// HTTP fetches a URL with GET. A nil Client uses http.DefaultClient.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h HTTP) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", h.URL, resp.Status)
	}
	return resp.Body, nil
}

func (h HTTP) String() string {
	return h.URL
}

// GCS reads an object from Google Cloud Storage. A nil Client is created on Open with default
// credentials and closed together with the returned reader.
type GCS struct {
	Client *storage.Client
	Bucket string
	Object string
}

func (g GCS) Open(ctx context.Context) (io.ReadCloser, error) {
	client := g.Client
	owned := false
	if client == nil {
		var err error
		if client, err = storage.NewClient(ctx); err != nil {
			return nil, fmt.Errorf("storage.NewClient: %w", err)
		}
		owned = true
	}
	r, err := client.Bucket(g.Bucket).Object(g.Object).NewReader(ctx)
	if err != nil {
		if owned {
			client.Close()
		}
		return nil, fmt.Errorf("read gs://%s/%s: %w", g.Bucket, g.Object, err)
	}
	if !owned {
		return r, nil
	}
	return &gcsReader{Reader: r, client: client}, nil
}

func (g GCS) String() string {
	return fmt.Sprintf("gs://%s/%s", g.Bucket, g.Object)
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	return errors.Join(r.Reader.Close(), r.client.Close())
}

// Resolver builds a Source from a parsed URI.
type Resolver func(u *url.URL) (Source, error)

type parseOptions struct {
	schemes    map[string]Resolver
	httpClient *http.Client
}

type Option func(*parseOptions)

// WithScheme resolves URIs of the given scheme with r.
func WithScheme(scheme string, r Resolver) Option {
	return func(o *parseOptions) {
		o.schemes[scheme] = r
	}
}

// WithHTTPClient sets the client used by http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *parseOptions) {
		o.httpClient = c
	}
}

// Parse resolves uri into a Source. URIs without a scheme are local paths.
func Parse(uri string, opts ...Option) (Source, error) {
	o := parseOptions{schemes: make(map[string]Resolver)}
	for _, opt := range opts {
		opt(&o)
	}

	if uri == "" {
		return nil, errors.New("empty source URI")
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return File(uri), nil
	}

	if r, ok := o.schemes[u.Scheme]; ok {
		return r(u)
	}
	switch u.Scheme {
	case "file":
		return File(u.Path), nil
	case "http", "https":
		return HTTP{URL: uri, Client: o.httpClient}, nil
	case "gs":
		object := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || object == "" {
			return nil, fmt.Errorf("gs URI %q must name a bucket and an object", uri)
		}
		return GCS{Bucket: u.Host, Object: object}, nil
	case "bigquery":
		return parseBigQuery(u)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}

// ReadWords splits a delimited word list. Commas and whitespace both separate words; words are
// lower-cased and lines starting with '#' are comments.
func ReadWords(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, f := range fields {
			words = append(words, strings.ToLower(f))
		}
	}
	return words, nil
}

// LoadWords opens src and reads its word list.
func LoadWords(ctx context.Context, src Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadWords(rc)
}
