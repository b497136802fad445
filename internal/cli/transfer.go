package cli

import (
	"fmt"
	"os"

	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import bookmarks from browser HTML",
		Long: `Import a Netscape bookmark HTML file (the format browsers export).
Folder names become tags. Bookmarks whose URL is already in the profile
are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			added, skipped := p.ImportMerge(bookmarks)
			if err := a.save(); err != nil {
				return err
			}

			a.logger.Info("imported bookmarks", "profile", p.Name, "file", args[0], "added", added, "skipped", skipped)
			cmd.Printf("Imported %d bookmarks into %s", added, p.Name)
			if skipped > 0 {
				cmd.Printf(" (%d duplicates skipped)", skipped)
			}
			cmd.Println()
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to browser HTML",
		Long: `Export the profile as Netscape bookmark HTML. The default path is
~/Downloads/bookmarks-<profile>-YYYY-MM-DD.html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			} else if path, err = exporter.DefaultExportPath(p.Name); err != nil {
				return fmt.Errorf("default export path: %w", err)
			}

			if err := os.WriteFile(path, []byte(exporter.ExportHTML(p)), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			cmd.Printf("Exported %d bookmarks to %s\n", len(p.Bookmarks), path)
			return nil
		},
	}
}
