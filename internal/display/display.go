// Package display handles terminal output for the dappier CLI.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/quocvuong92/dappier-go"
)

const (
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
	colorBold  = "\033[1m"
	colorReset = "\033[0m"
)

// TitleWidth is the column budget for article titles in list output
const TitleWidth = 72

// ShowError prints an error message to stderr
func ShowError(msg string) {
	ShowErrorTo(os.Stderr, msg)
}

// ShowErrorTo prints an error message to w
func ShowErrorTo(w io.Writer, msg string) {
	fmt.Fprintf(w, "%sError:%s %s\n", colorRed, colorReset, msg)
}

// ShowContent prints plain text
func ShowContent(w io.Writer, content string) {
	fmt.Fprintln(w, strings.TrimRight(content, "\n"))
}

// ShowRealTimeResult prints the answer to a real-time search. When heading
// is set the query is printed above the answer, for multi-query output.
func ShowRealTimeResult(w io.Writer, query string, resp *dappier.RealTimeDataResponse, heading, render bool) {
	if heading {
		fmt.Fprintf(w, "%s%s%s\n", colorBold, query, colorReset)
	}
	if render {
		ShowContentRendered(w, resp.Message)
		return
	}
	ShowContent(w, resp.Message)
}

// ShowRecommendations prints one numbered entry per article
func ShowRecommendations(w io.Writer, resp *dappier.AIRecommendationsResponse) {
	results := resp.Response.Results
	if len(results) == 0 {
		fmt.Fprintf(w, "No recommendations for %q\n", resp.Response.Query)
		return
	}

	fmt.Fprintf(w, "Recommendations for %q (%d):\n\n", resp.Response.Query, len(results))
	for i, a := range results {
		fmt.Fprintf(w, "%2d. %s%s%s\n", i+1, colorBold, Truncate(a.Title, TitleWidth), colorReset)

		var meta []string
		if site := firstNonEmpty(a.Site, a.SiteDomain); site != "" {
			meta = append(meta, site)
		}
		if a.Author != "" {
			meta = append(meta, a.Author)
		}
		if published := formatPubDate(a); published != "" {
			meta = append(meta, published)
		}
		if a.Score != 0 {
			meta = append(meta, fmt.Sprintf("score %.2f", a.Score))
		}
		if len(meta) > 0 {
			fmt.Fprintf(w, "    %s%s%s\n", colorDim, strings.Join(meta, " | "), colorReset)
		}
		if a.URL != "" {
			fmt.Fprintf(w, "    %s%s%s\n", colorCyan, a.URL, colorReset)
		}
		if a.Summary != "" {
			fmt.Fprintf(w, "    %s\n", Truncate(a.Summary, TitleWidth*2))
		}
		fmt.Fprintln(w)
	}
}

// ShowJSON prints v as indented JSON
func ShowJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Truncate shortens s to at most width terminal columns, counting wide
// characters as two
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func formatPubDate(a dappier.Article) string {
	if a.PubDateUnix > 0 {
		return time.Unix(a.PubDateUnix, 0).UTC().Format("2006-01-02")
	}
	return a.PubDate
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
