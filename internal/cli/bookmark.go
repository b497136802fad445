package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks in stored order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}
			if len(p.Bookmarks) == 0 {
				cmd.Printf("No bookmarks in %s\n", p.Name)
				return nil
			}
			for i, b := range p.Bookmarks {
				cmd.Printf("%3d  %s  %s  %s", i+1, b.ID, b.Title, b.URL)
				if len(b.Tags) > 0 {
					cmd.Printf("  #%s", strings.Join(b.Tags, " #"))
				}
				cmd.Println()
			}
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var params model.NewBookmarkParams

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Long: `Add a bookmark to the profile. The title defaults to the URL.

	Examples:
	  bmdash add https://go.dev --title "Go" --tags lang,docs
	  bmdash add https://ci.example.com --search-title "jenkins build" --intranet-url http://ci.lan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			params.URL = args[0]
			b := model.NewBookmark(params)
			p.AddBookmark(b)
			if err := a.save(); err != nil {
				return err
			}

			a.logger.Info("added bookmark", "profile", p.Name, "id", b.ID)
			cmd.Printf("Added %s (%s)\n", b.Title, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&params.SearchTitle, "search-title", "", "text matched instead of the title")
	cmd.Flags().StringVar(&params.IntranetURL, "intranet-url", "", "URL used in intranet mode")
	cmd.Flags().StringVar(&params.SearchURL, "search-url", "", "site search template, {} is the query")
	cmd.Flags().StringSliceVar(&params.Tags, "tags", nil, "comma separated tags")

	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var (
		title, searchTitle, url, intranetURL, searchURL string
		tags                                            []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a bookmark",
		Long: `Change fields of a bookmark. Only the flags given are applied;
pass an empty value to clear an optional field.

	Examples:
	  bmdash edit 3f2a... --title "Go Docs" --tags go,docs
	  bmdash edit 3f2a... --search-title ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			existing := p.BookmarkByID(args[0])
			if existing == nil {
				return fmt.Errorf("%w: %s", model.ErrBookmarkNotFound, args[0])
			}

			b := *existing
			flags := cmd.Flags()
			if flags.Changed("title") {
				b.Title = strings.TrimSpace(title)
			}
			if flags.Changed("search-title") {
				b.SearchTitle = strings.TrimSpace(searchTitle)
			}
			if flags.Changed("url") {
				b.URL = strings.TrimSpace(url)
			}
			if flags.Changed("intranet-url") {
				b.IntranetURL = strings.TrimSpace(intranetURL)
			}
			if flags.Changed("search-url") {
				b.SearchURL = strings.TrimSpace(searchURL)
			}
			if flags.Changed("tags") {
				b.Tags = tags
			}
			if b.Title == "" {
				b.Title = b.URL
			}

			if err := p.UpdateBookmark(b); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			cmd.Printf("Updated %s\n", b.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&searchTitle, "search-title", "", "text matched instead of the title")
	cmd.Flags().StringVar(&url, "url", "", "bookmark URL")
	cmd.Flags().StringVar(&intranetURL, "intranet-url", "", "URL used in intranet mode")
	cmd.Flags().StringVar(&searchURL, "search-url", "", "site search template, {} is the query")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags (replaces existing)")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			b := p.BookmarkByID(args[0])
			if b == nil {
				return fmt.Errorf("%w: %s", model.ErrBookmarkNotFound, args[0])
			}
			title := b.Title

			if err := p.DeleteBookmark(args[0]); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			cmd.Printf("Removed %s\n", title)
			return nil
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a bookmark to another position",
		Long: `Move the bookmark at position <from> to position <to>.
Positions are 1-based, as printed by "bmdash list".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}

			p, err := a.profile()
			if err != nil {
				return err
			}
			if err := p.MoveBookmark(from-1, to-1); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			cmd.Printf("Moved %s to position %d\n", p.Bookmarks[to-1].Title, to)
			return nil
		},
	}
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a positive number", s)
	}
	return n, nil
}
