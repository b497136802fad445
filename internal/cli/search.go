package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nikbrunner/bmdash/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print ranked bookmarks matching a query",
		Long: `Ranks the profile's bookmarks against the query and prints the best
matches. Matched title characters are wrapped in [brackets].

Titles weigh three times, tags twice and URLs once.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.SearchLimit
			}

			query := strings.Join(args, " ")
			results := search.Search(p.Bookmarks, query, limit)
			a.logger.Debug("search", "profile", p.Name, "query", query, "results", len(results))

			if jsonOut {
				return writeSearchJSON(cmd.OutOrStdout(), results)
			}
			writeSearchText(cmd.OutOrStdout(), results, query)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config, 0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output results as JSON")

	return cmd
}

type searchResultJSON struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
	Score int      `json:"score"`
}

func writeSearchJSON(w io.Writer, results []search.Result) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			ID:    r.Bookmark.ID,
			Title: r.Bookmark.Title,
			URL:   r.Bookmark.URL,
			Tags:  r.Bookmark.Tags,
			Score: r.Score,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeSearchText prints one line per result: score, marked title, URL.
func writeSearchText(w io.Writer, results []search.Result, query string) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No bookmarks found for '%s'\n", query)
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%4d  %s  %s\n", r.Score, markSegments(r.Segments), r.Bookmark.URL)
	}
}

func markSegments(segments []search.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Highlighted {
			b.WriteString("[" + seg.Text + "]")
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
