package cli

import (
	"github.com/nikbrunner/bmdash/internal/culler"
	"github.com/spf13/cobra"
)

func newCullCmd(a *app) *cobra.Command {
	var deleteDead bool

	cmd := &cobra.Command{
		Use:   "cull",
		Short: "Check bookmark URLs and report dead links",
		Long: `Check every bookmark URL in the profile. 404 and 410 responses are
reported as dead, except on domains listed in cull_exclude_domains where
they usually mean "private". Timeouts, DNS failures and other errors are
reported as unreachable.

With --delete, dead bookmarks are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			a.logger.Info("checking links", "profile", p.Name, "count", len(p.Bookmarks))
			results := culler.CheckURLs(cmd.Context(), p.Bookmarks, culler.Options{
				Concurrency:    a.cfg.CullConcurrency,
				Timeout:        a.cfg.CullTimeout(),
				ExcludeDomains: a.cfg.CullExcludeDomains,
				OnProgress: func(completed, total int) {
					a.logger.Debug("checked", "completed", completed, "total", total)
				},
			})

			var dead, unreachable int
			for _, r := range results {
				switch r.Status {
				case culler.Dead:
					dead++
					cmd.Printf("dead         %d  %s  %s  %s\n", r.StatusCode, r.Bookmark.ID, r.Bookmark.Title, r.Bookmark.URL)
				case culler.Unreachable:
					unreachable++
					cmd.Printf("unreachable  %s  %s  %s  (%s)\n", r.Bookmark.ID, r.Bookmark.Title, r.Bookmark.URL, r.Error)
				}
			}
			cmd.Printf("%d checked, %d dead, %d unreachable\n", len(results), dead, unreachable)

			if !deleteDead || dead == 0 {
				return nil
			}

			// Collect IDs first; deleting shifts the slice results point into
			ids := culler.DeadIDs(results)
			for _, id := range ids {
				if err := p.DeleteBookmark(id); err != nil {
					return err
				}
			}
			if err := a.save(); err != nil {
				return err
			}
			cmd.Printf("Deleted %d dead bookmarks\n", len(ids))
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteDead, "delete", false, "remove dead bookmarks")

	return cmd
}
