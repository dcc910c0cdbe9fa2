package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// PoliteClient is the plain HTTP client used for product detail pages. It
// enforces per-host rate limits, robots.txt rules, and retries on throttling
// responses. Detail fetches are read-only GETs against a third-party shop.
type PoliteClient struct {
	client      *http.Client
	ua          string
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.RobotsData
	mu          sync.Mutex
}

func NewPoliteClient(userAgent string) *PoliteClient {
	return &PoliteClient{
		client:      &http.Client{Timeout: 15 * time.Second},
		ua:          userAgent,
		limiters:    map[string]*rate.Limiter{},
		robotsCache: map[string]*robotstxt.RobotsData{},
	}
}

func (p *PoliteClient) limiterFor(host string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(time.Second), 1) // 1 req/s, no burst
	p.limiters[host] = l
	return l
}

func (p *PoliteClient) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Hostname()
	p.mu.Lock()
	if data, ok := p.robotsCache[host]; ok {
		p.mu.Unlock()
		return data, nil
	}
	p.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.ua)

	if err := p.limiterFor(host).Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.robotsCache[host] = data
	p.mu.Unlock()
	return data, nil
}

// GetDocument fetches rawURL and parses the body as HTML.
func (p *PoliteClient) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if rawURL == "" {
		return nil, errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.ua)

	if !p.allowed(ctx, u) {
		return nil, fmt.Errorf("blocked by robots.txt: %s", u)
	}

	limiter := p.limiterFor(u.Hostname())

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			resp.Body.Close()
			lastErr = &FetchError{Status: resp.StatusCode, Err: errors.New("retryable status")}
			backoff := time.Duration(500*(1<<attempt)) * time.Millisecond
			if err := sleepWithContext(ctx, backoff); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", rawURL, err)
		}
		return doc, nil
	}

	if lastErr == nil {
		lastErr = errors.New("detail fetch failed without error")
	}
	return nil, lastErr
}

func (p *PoliteClient) allowed(ctx context.Context, u *url.URL) bool {
	data, err := p.robotsFor(ctx, u)
	if err != nil {
		return true // fail open to avoid blocking everything
	}
	group := data.FindGroup(p.ua)
	if group == nil {
		group = data.FindGroup("*")
	}
	if group == nil {
		return true
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}
