package ladder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const standingsPage = `<html><body>
<table id="other"><tr><td>wrong table</td></tr></table>
<table id="standings">
<thead><tr><th>Pos</th><th>Player</th><th>Won</th><th>Lost</th><th>Points</th><th>Form</th></tr></thead>
<tbody>
<tr><td>1</td><td>A. Trastero</td><td>9</td><td>1</td><td>27</td><td>WWWLW</td></tr>
<tr><td>2</td><td>B. O&#39;Neill</td><td>7</td><td>3</td><td>21</td><td>LWWWL</td></tr>
</tbody>
</table>
</body></html>`

func TestExtractTable(t *testing.T) {
	t.Run("keeps only the first four columns", func(t *testing.T) {
		got, err := ExtractTable(standingsPage, "standings")
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		for _, want := range []string{"<th>Pos</th>", "<th>Player</th>", "<th>Won</th>", "<th>Lost</th>", "<td>A. Trastero</td>"} {
			if !strings.Contains(got, want) {
				t.Fatalf("fragment missing %q:\n%s", want, got)
			}
		}
		for _, banned := range []string{"Points", "Form", "27", "WWWLW", "wrong table"} {
			if strings.Contains(got, banned) {
				t.Fatalf("fragment should not contain %q:\n%s", banned, got)
			}
		}
	})

	t.Run("headers stay headers", func(t *testing.T) {
		got, err := ExtractTable(standingsPage, "standings")
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if strings.Count(got, "<th>") != 4 {
			t.Fatalf("expected 4 header cells, got:\n%s", got)
		}
	})

	t.Run("missing table id is an error", func(t *testing.T) {
		if _, err := ExtractTable(standingsPage, "nope"); err == nil {
			t.Fatal("expected error for absent table")
		}
	})
}

func TestFetch(t *testing.T) {
	t.Run("returns reduced table from live page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, standingsPage)
		}))
		defer srv.Close()

		got := NewScraper(srv.URL, "standings").Fetch(context.Background())
		if !strings.Contains(got, "A. Trastero") {
			t.Fatalf("expected standings content, got:\n%s", got)
		}
	})

	t.Run("server error yields fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		if got := NewScraper(srv.URL, "standings").Fetch(context.Background()); got != Fallback {
			t.Fatalf("expected fallback, got:\n%s", got)
		}
	})

	t.Run("missing table yields fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body><p>no tables here</p></body></html>")
		}))
		defer srv.Close()

		if got := NewScraper(srv.URL, "standings").Fetch(context.Background()); got != Fallback {
			t.Fatalf("expected fallback, got:\n%s", got)
		}
	})

	t.Run("unreachable host yields fallback", func(t *testing.T) {
		if got := NewScraper("http://127.0.0.1:0", "standings").Fetch(context.Background()); got != Fallback {
			t.Fatalf("expected fallback, got:\n%s", got)
		}
	})
}
