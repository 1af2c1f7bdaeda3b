package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"

	"bargain-buddy/internal/domain"
)

// HTTPError carries status/body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 900))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// secretParams are query parameters whose values never appear in errors.
var secretParams = []string{"apikey", "key", "token", "app_token", "access_token"}

// redactURL masks user info and secret query values so the URL can be logged.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	q := c.Query()
	for k := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(k, secret) {
				q.Set(k, "REDACTED")
			}
		}
	}
	c.RawQuery = q.Encode()
	return c.Redacted()
}

// scrub rewrites the URL inside a *url.Error, which net/http builds from the
// full request URL.
func scrub(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	redacted := "<invalid url>"
	if parsed, perr := url.Parse(uerr.URL); perr == nil {
		redacted = redactURL(parsed)
	}
	return &url.Error{Op: uerr.Op, URL: redacted, Err: uerr.Err}
}

// Fetch issues a single GET against rawURL and returns the decoded body.
// There is no retry: connection and read failures come back wrapped in
// domain.ErrTransport. A non-2xx reply still returns its body, together with
// an *HTTPError; use StatusOnly to tell the two apart.
func Fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrTransport, scrub(err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	return Do(client, req)
}

// PostJSON sends body as a JSON POST, once.
func PostJSON(ctx context.Context, client *http.Client, rawURL string, body []byte, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrTransport, scrub(err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	return Do(client, req)
}

// Do executes req exactly once. It always reads the full body (even on error)
// so the underlying TCP connection can be reused by http.Transport.
//
// A body that cannot be decoded is domain.ErrMalformedPayload: the reply
// arrived, its content is bad. Non-2xx replies return the body and a bare
// *HTTPError.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	target := redactURL(req.URL)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, req.Method, target, scrub(err))
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, &HTTPError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}
	return body, nil
}

// StatusOnly reports whether err is nothing more than a non-2xx status, in
// which case the body returned alongside it is still worth parsing.
func StatusOnly(err error) (*HTTPError, bool) {
	var herr *HTTPError
	if err == nil || !errors.As(err, &herr) {
		return nil, false
	}
	if errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrMalformedPayload) {
		return nil, false
	}
	return herr, true
}

// sourceReader remembers the last non-EOF error of the raw connection body.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	encoding := resp.Header.Get("Content-Encoding")
	src := &sourceReader{r: resp.Body}

	body, err := func() ([]byte, error) {
		r, err := decodeBody(encoding, src)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}()
	switch {
	case err == nil:
		return body, nil
	case src.err != nil:
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrTransport, src.err)
	default:
		return nil, fmt.Errorf("%w: decode %s body: %v", domain.ErrMalformedPayload, encoding, err)
	}
}

// decodeBody unwraps the encodings we advertise in Accept-Encoding.
func decodeBody(encoding string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "br":
		return io.NopCloser(brotli.NewReader(r)), nil
	case "gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	default:
		return io.NopCloser(r), nil
	}
}

// Snippet trims b for log lines.
func Snippet(b []byte) string {
	return snippet(b, 300)
}
