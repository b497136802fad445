package cli

import (
	"github.com/nikbrunner/bmdash/internal/search"
	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	var applied []string

	cmd := &cobra.Command{
		Use:   "tags [input]",
		Short: "List tags or suggest tags for an input",
		Long: `Without input, lists the profile's tags. With input, prints the tags
that fuzzy-match it, best first. Tags passed with --applied are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			tags := p.Tags
			if len(args) == 1 {
				tags = search.SuggestTags(p.Tags, applied, args[0])
			}
			for _, t := range tags {
				cmd.Println(t)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&applied, "applied", nil, "tags already on the bookmark")

	return cmd
}
