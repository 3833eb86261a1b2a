package mojang

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/transport"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const statusSummaryCacheKeyPrefix = "go-launcher::status_summary::v1"

// StatusSummaryCacheKey returns the cache key for the summary document served
// at endpoint: go-launcher::status_summary::v1::<escaped endpoint>.
func StatusSummaryCacheKey(endpoint string) string {
	return statusSummaryCacheKeyPrefix + "::" + url.PathEscape(strings.TrimSpace(endpoint))
}

// Status refreshes the service status table from the summary document.
// Entries whose slug is not in the table are ignored. When the document cannot
// be fetched every service is reset to grey and the error response carries
// that table.
func (c *Client) Status(ctx context.Context) Response[[]ServiceStatus] {
	summary, err := c.fetchSummary(ctx)
	if err != nil {
		statuses := c.resetStatuses()
		return failure(c.logger, operationStatus, err, func() []ServiceStatus { return statuses })
	}
	return success(c.applySummary(summary))
}

// Statuses returns the table as of the last Status call.
func (c *Client) Statuses() []ServiceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneStatuses(c.statuses)
}

func (c *Client) fetchSummary(ctx context.Context) ([]SummaryEntry, error) {
	fetch := func(ctx context.Context) ([]SummaryEntry, error) {
		res, err := c.fetcher.Do(ctx, core.TransportRequest{
			Operation: operationStatus,
			Method:    http.MethodGet,
			URL:       c.statusEndpoint,
			Headers:   map[string]string{"Accept": "application/json"},
			Timeout:   c.statusTimeout,
		})
		if err != nil {
			return nil, err
		}
		transport.ExpectStatus(c.logger, operationStatus, http.StatusOK, res.StatusCode)
		return transport.DecodeJSON[[]SummaryEntry](operationStatus, res)
	}
	if c.statusCache == nil {
		return fetch(ctx)
	}
	return repositorycache.GetOrFetch(ctx, c.statusCache, StatusSummaryCacheKey(c.statusEndpoint), fetch)
}

func (c *Client) applySummary(summary []SummaryEntry) []ServiceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	index := make(map[string]int, len(c.statuses))
	for i, status := range c.statuses {
		index[status.Service] = i
	}
	for _, entry := range summary {
		i, ok := index[strings.TrimSpace(entry.Slug)]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(entry.Status), "up") {
			c.statuses[i].Status = StatusGreen
		} else {
			c.statuses[i].Status = StatusRed
		}
	}
	return cloneStatuses(c.statuses)
}

func (c *Client) resetStatuses() []ServiceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.statuses {
		c.statuses[i].Status = StatusGrey
	}
	return cloneStatuses(c.statuses)
}

func cloneStatuses(in []ServiceStatus) []ServiceStatus {
	return append([]ServiceStatus(nil), in...)
}
