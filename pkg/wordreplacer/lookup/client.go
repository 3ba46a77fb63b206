// Package lookup talks to the thesaurus service and picks replacement
// candidates out of its answers.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
)

// DefaultTimeout applies when the caller does not provide an http.Client.
const DefaultTimeout = 15 * time.Second

// Status tags the outcome of a single lookup.
type Status int

// The zero value is Unknown so that a bare Result{} never reads as a success.
const (
	Unknown Status = iota
	Success
	RateLimited
	Failed
	Empty
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Success:
		return "success"
	case RateLimited:
		return "rate_limited"
	case Failed:
		return "failed"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Candidates is the decoded service answer:
// word type -> category -> candidates, in service order.
type Candidates map[string]map[string][]string

// Result is the outcome of one lookup. Candidates is only set on Success.
type Result struct {
	Status     Status
	Candidates Candidates
}

// Client calls a thesaurus endpoint shaped like words.bighugelabs.com.
type Client struct {
	// URLTemplate contains a {word} placeholder and optionally {key}.
	// Without {word}, the template is treated as a base URL and
	// "/<word>/json" is appended.
	URLTemplate string
	APIKey      string

	// RateLimitStatuses are the HTTP statuses treated as a soft processing
	// cap. Defaults to 303.
	RateLimitStatuses []int

	HTTPClient *http.Client
}

// Lookup fetches candidates for an already sanitized word.
// The returned error is nil only on Success; it wraps
// internalerr.ErrRateLimited, internalerr.ErrLookupFailed or
// internalerr.ErrEmptyWord so callers can tell the cases apart.
func (c *Client) Lookup(ctx context.Context, word string) (Result, error) {
	if word == "" {
		return Result{Status: Empty}, internalerr.ErrEmptyWord
	}
	if c.URLTemplate == "" {
		return Result{Status: Failed}, fmt.Errorf("%w: url template required", internalerr.ErrInvalidConfig)
	}

	reqURL := c.buildURL(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{Status: Failed}, fmt.Errorf("%w: %v", internalerr.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{Status: Failed}, ctx.Err()
		}
		return Result{Status: Failed}, fmt.Errorf("%w: %v", internalerr.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if c.isRateLimit(resp.StatusCode) {
		io.Copy(io.Discard, resp.Body)
		return Result{Status: RateLimited}, fmt.Errorf("%w: status %d for %q", internalerr.ErrRateLimited, resp.StatusCode, word)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return Result{Status: Failed}, fmt.Errorf("%w: status %d for %q", internalerr.ErrLookupFailed, resp.StatusCode, word)
	}

	candidates, err := decode(resp.Body)
	if err != nil {
		return Result{Status: Failed}, fmt.Errorf("%w: %q: %v", internalerr.ErrLookupFailed, word, err)
	}
	return Result{Status: Success, Candidates: candidates}, nil
}

func (c *Client) buildURL(word string) string {
	tmpl := c.URLTemplate
	if !strings.Contains(tmpl, "{word}") {
		tmpl = strings.TrimRight(tmpl, "/") + "/{word}/json"
	}
	return strings.NewReplacer(
		"{word}", url.PathEscape(word),
		"{key}", url.PathEscape(c.APIKey),
	).Replace(tmpl)
}

func (c *Client) isRateLimit(status int) bool {
	if len(c.RateLimitStatuses) == 0 {
		return status == http.StatusSeeOther
	}
	for _, s := range c.RateLimitStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// httpClient returns a client that never follows redirects, since a redirect
// is how the service signals its processing cap.
func (c *Client) httpClient() *http.Client {
	var client http.Client
	if c.HTTPClient != nil {
		client = *c.HTTPClient
	} else {
		client = http.Client{Timeout: DefaultTimeout}
	}
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

// decode parses the service body. A body carrying an "error" or a "message"
// key is a failure even with a 2xx status. Word-type entries that are not
// category maps are skipped, as are categories that are not string lists.
// Empty strings are dropped, then empty categories.
func decode(r io.Reader) (Candidates, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	for _, key := range []string{"error", "message"} {
		if msg, ok := raw[key]; ok {
			return nil, fmt.Errorf("service error: %s", msg)
		}
	}

	candidates := make(Candidates, len(raw))
	for wordType, body := range raw {
		var cats map[string]json.RawMessage
		if err := json.Unmarshal(body, &cats); err != nil {
			continue
		}
		kept := make(map[string][]string, len(cats))
		for cat, list := range cats {
			var words []string
			if err := json.Unmarshal(list, &words); err != nil {
				continue
			}
			if words = nonEmpty(words); len(words) > 0 {
				kept[cat] = words
			}
		}
		if len(kept) > 0 {
			candidates[wordType] = kept
		}
	}
	return candidates, nil
}

func nonEmpty(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
