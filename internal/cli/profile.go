package cli

import (
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage bookmark profiles",
		Long: `Profiles are independent bookmark sets, each with its own tags and
web search engine. "profile use" changes the profile that commands act on
when --profile is not given.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List profiles",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				active, err := a.profile()
				if err != nil {
					return err
				}
				for _, p := range a.store.Profiles {
					marker := "  "
					if p.Name == active.Name {
						marker = "* "
					}
					cmd.Printf("%s%s (%d bookmarks)\n", marker, p.Name, len(p.Bookmarks))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create an empty profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.store.AddProfile(args[0])
				if err != nil {
					return err
				}
				if err := a.save(); err != nil {
					return err
				}
				cmd.Printf("Created profile %s\n", p.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a profile",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.RenameProfile(args[0], args[1]); err != nil {
					return err
				}
				if err := a.save(); err != nil {
					return err
				}
				cmd.Printf("Renamed profile %s to %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <name>",
			Aliases: []string{"remove"},
			Short:   "Delete a profile and its bookmarks",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.DeleteProfile(args[0]); err != nil {
					return err
				}
				if err := a.save(); err != nil {
					return err
				}
				cmd.Printf("Deleted profile %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <name>",
			Short: "Make a profile current",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.SwitchProfile(args[0]); err != nil {
					return err
				}
				if err := a.save(); err != nil {
					return err
				}
				if a.cfg.DefaultProfile != "" && a.cfg.DefaultProfile != args[0] {
					a.logger.Warn("config default_profile takes precedence", "default_profile", a.cfg.DefaultProfile)
				}
				cmd.Printf("Using profile %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "order <name>...",
			Short: "Reorder profiles",
			Long:  "Reorder profiles. Every profile must be named exactly once.",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.ReorderProfiles(args); err != nil {
					return err
				}
				return a.save()
			},
		},
	)

	return cmd
}
