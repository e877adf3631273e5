// Package ladder extracts the club ladder standings table from the league
// website so it can ride along in the availability report.
package ladder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Fallback is rendered when the standings table cannot be retrieved.
const Fallback = `<p>Ladder standings are currently unavailable.</p>`

// maxColumns is how many leading columns of the source table are kept.
const maxColumns = 4

// Scraper fetches a page and reduces one table on it to an HTML fragment.
type Scraper struct {
	client  *http.Client
	pageURL string
	tableID string
}

// NewScraper creates a scraper for the table with the given element id.
func NewScraper(pageURL, tableID string) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		pageURL: pageURL,
		tableID: tableID,
	}
}

// Fetch returns the reduced standings table as an HTML fragment. Any failure
// (network, bad status, missing table) yields the fallback fragment; the
// main report never depends on this source being up.
func (s *Scraper) Fetch(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		slog.Warn("ladder request failed", "error", err)
		return Fallback
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("ladder fetch failed", "url", s.pageURL, "error", err)
		return Fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("ladder fetch bad status", "url", s.pageURL, "status", resp.StatusCode)
		return Fallback
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("ladder read failed", "error", err)
		return Fallback
	}

	fragment, err := ExtractTable(string(body), s.tableID)
	if err != nil {
		slog.Warn("ladder table not extracted", "table_id", s.tableID, "error", err)
		return Fallback
	}
	return fragment
}

// ExtractTable finds the table with the given id in an HTML document and
// re-renders it with only its first four columns, header cells preserved.
func ExtractTable(body, tableID string) (string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	table := findTable(doc, tableID)
	if table == nil {
		return "", fmt.Errorf("no table with id %q", tableID)
	}

	var b strings.Builder
	b.WriteString(`<table border="1" cellpadding="4" style="border-collapse:collapse">`)
	for _, row := range collectRows(table) {
		b.WriteString("<tr>")
		cells := 0
		for td := row.FirstChild; td != nil && cells < maxColumns; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
				continue
			}
			text := html.EscapeString(strings.TrimSpace(extractText(td)))
			fmt.Fprintf(&b, "<%s>%s</%s>", td.Data, text, td.Data)
			cells++
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String(), nil
}

func findTable(n *html.Node, tableID string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == tableID {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c, tableID); t != nil {
			return t
		}
	}
	return nil
}

// collectRows gathers tr nodes whether or not they sit under thead/tbody.
func collectRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
	}
	return b.String()
}
