package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"wellness-backend/internal/config"
	"wellness-backend/internal/model"
	"wellness-backend/internal/utils"
	"wellness-backend/pkg/logger"
)

// trustedSiteClause restricts search hits to the health-authority allow-list.
const trustedSiteClause = "site:cdc.gov OR site:who.int OR site:nih.gov OR site:mayoclinic.org OR site:health.harvard.edu"

// contextLimit caps the snippet handed to the prompt composer.
const contextLimit = 500

// domainMarkers are scanned against the full result body, in this order.
var domainMarkers = []model.WebSource{
	{Name: "CDC", URL: "cdc.gov"},
	{Name: "WHO", URL: "who.int"},
	{Name: "NIH", URL: "nih.gov"},
	{Name: "Mayo Clinic", URL: "mayoclinic.org"},
}

type Searcher interface {
	Search(ctx context.Context, query string) model.WebSearchResult
}

// WebSearcher queries a search backend for health information from trusted
// domains. Failures degrade to an empty result; search is best-effort and
// never blocks a chat request from proceeding.
type WebSearcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

func NewWebSearcher(cfg config.SearchConfig) *WebSearcher {
	return &WebSearcher{
		client:    utils.NewHTTPClient(cfg.Timeout),
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
	}
}

// Search performs one search request, no retry. The returned context is the
// leading slice of the raw body; sources are whichever trusted domains appear
// anywhere in it.
func (s *WebSearcher) Search(ctx context.Context, query string) model.WebSearchResult {
	empty := model.WebSearchResult{Context: "", Sources: []model.WebSource{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		logger.Errorf("Web search error: %v", err)
		return empty
	}

	q := url.Values{}
	q.Set("q", query+" "+trustedSiteClause)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Errorf("Web search error: %v", err)
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("Web search returned status %d", resp.StatusCode)
		return empty
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Errorf("Web search error: %v", err)
		return empty
	}

	text := string(body)
	lower := strings.ToLower(text)

	sources := []model.WebSource{}
	for _, marker := range domainMarkers {
		if strings.Contains(lower, marker.URL) {
			sources = append(sources, marker)
		}
	}

	return model.WebSearchResult{
		Context: truncate(text, contextLimit),
		Sources: sources,
	}
}

// truncate cuts s to at most n runes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
