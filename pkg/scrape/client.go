// Package scrape provides the HTTP client and goquery helpers shared by the
// site-specific fetchers.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hooplytics/pickarb/pkg/retry"
)

// DefaultUserAgent mirrors a desktop browser; Basketball-Reference serves
// bot user agents a 403.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client wraps http.Client with the headers and retry policy one source
// needs. Each fetcher package constructs its own.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Referer   string
	Policy    retry.Policy
}

// NewClient builds a client with the given timeout and retry policy.
func NewClient(timeout time.Duration, policy retry.Policy) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: DefaultUserAgent,
		Policy:    policy,
	}
}

// Get fetches a URL under the client's retry policy and returns the body of
// the last response together with its status code. A non-2xx final status is
// not itself an error; callers choose between failing and returning an empty
// table (the two behaviors differ per source).
func (c *Client) Get(ctx context.Context, url string) (body []byte, status int, err error) {
	attempt := func() (int, error) {
		req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if rerr != nil {
			return 0, rerr
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		if c.Referer != "" {
			req.Header.Set("Referer", c.Referer)
		}
		resp, rerr := c.HTTP.Do(req)
		if rerr != nil {
			return 0, rerr
		}
		defer resp.Body.Close()
		body, rerr = io.ReadAll(resp.Body)
		if rerr != nil {
			return resp.StatusCode, rerr
		}
		return resp.StatusCode, nil
	}

	if c.Policy.MaxAttempts <= 1 {
		status, err = attempt()
	} else {
		status, err = c.Policy.Do(ctx, attempt)
	}
	if err != nil {
		return nil, status, fmt.Errorf("fetching %s: %w", url, err)
	}
	slog.Debug("fetched", "url", url, "status", status, "bytes", len(body))
	return body, status, nil
}

// GetOK is Get for sources that fail fast: any terminal non-2xx status is an
// error.
func (c *Client) GetOK(ctx context.Context, url string) ([]byte, error) {
	body, status, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("fetching %s: status %d", url, status)
	}
	return body, nil
}

// Document parses an HTML body.
func Document(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

var commentRE = regexp.MustCompile(`(?s)<!--(.*?)-->`)

// TableByID locates <table id="..."> in a page. Basketball-Reference hides
// many tables inside HTML comments for lazy rendering, so when the live DOM
// has no match the raw comments are scanned and re-parsed.
func TableByID(body []byte, id string) (*goquery.Selection, error) {
	doc, err := Document(body)
	if err != nil {
		return nil, err
	}
	if sel := doc.Find("table#" + id); sel.Length() > 0 {
		return sel.First(), nil
	}
	marker := fmt.Sprintf("id=%q", id)
	for _, m := range commentRE.FindAllSubmatch(body, -1) {
		if !strings.Contains(string(m[1]), marker) {
			continue
		}
		inner, err := goquery.NewDocumentFromReader(bytes.NewReader(m[1]))
		if err != nil {
			continue
		}
		if sel := inner.Find("table#" + id); sel.Length() > 0 {
			return sel.First(), nil
		}
	}
	return nil, fmt.Errorf("table %q not found", id)
}

// FirstTable returns the first table on the page, searching comments as a
// fallback like TableByID.
func FirstTable(body []byte) (*goquery.Selection, error) {
	doc, err := Document(body)
	if err != nil {
		return nil, err
	}
	if sel := doc.Find("table"); sel.Length() > 0 {
		return sel.First(), nil
	}
	for _, m := range commentRE.FindAllSubmatch(body, -1) {
		inner, err := goquery.NewDocumentFromReader(bytes.NewReader(m[1]))
		if err != nil {
			continue
		}
		if sel := inner.Find("table"); sel.Length() > 0 {
			return sel.First(), nil
		}
	}
	return nil, fmt.Errorf("no table found on page")
}

// HeaderIndex maps a table's header cell texts to column positions.
func HeaderIndex(table *goquery.Selection) map[string]int {
	idx := make(map[string]int)
	table.Find("thead tr").Last().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if _, ok := idx[text]; !ok && text != "" {
			idx[text] = i
		}
	})
	if len(idx) == 0 {
		// No thead; fall back to the first row.
		table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if _, ok := idx[text]; !ok && text != "" {
				idx[text] = i
			}
		})
	}
	return idx
}

// BodyRows iterates data rows of a table, skipping repeated header rows
// that Basketball-Reference inserts mid-table (class "thead") and all-th
// header rows that the parser folds into an implied tbody.
func BodyRows(table *goquery.Selection, fn func(row *goquery.Selection)) {
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}
	rows.Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") || row.Find("td").Length() == 0 {
			return
		}
		fn(row)
	})
}

// CellByStat finds a row cell by its data-stat attribute.
func CellByStat(row *goquery.Selection, stat string) *goquery.Selection {
	return row.Find(`[data-stat="` + stat + `"]`).First()
}

// CleanMoney strips currency formatting ("$12,345,678" -> 12345678).
// Unparseable values come back as zero; salary tables are full of footnote
// markers and empty cells that all mean "no salary reported".
func CleanMoney(value string) float64 {
	cleaned := moneyRE.ReplaceAllString(strings.TrimSpace(value), "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

var moneyRE = regexp.MustCompile(`[^0-9.]`)
