package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nikbrunner/bmdash/internal/picker"
	"github.com/nikbrunner/bmdash/internal/search"
	"github.com/spf13/cobra"
)

type openFlags struct {
	copy     bool
	intranet bool
}

func addOpenFlags(cmd *cobra.Command, a *app) {
	a.open = &openFlags{}
	cmd.Flags().BoolVarP(&a.open.copy, "copy", "y", false, "copy the URL to the clipboard instead of opening it")
	cmd.Flags().BoolVar(&a.open.intranet, "intranet", false, "open intranet URLs where bookmarks have one")
}

// runOpen searches the profile and opens (or copies) the chosen URL.
func (a *app) runOpen(cmd *cobra.Command, args []string) error {
	p, err := a.profile()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	var results []search.Result
	if strings.TrimSpace(query) != "" {
		results = search.Search(p.Bookmarks, query, a.cfg.SearchLimit)
	}

	var url string
	if len(results) == 1 {
		b := results[0].Bookmark
		a.logger.Debug("single match", "title", b.Title)
		url = b.OpenURL(a.intranet())
	} else {
		final, err := a.runPicker(picker.New(p.Bookmarks, picker.Options{
			Query:       query,
			Limit:       a.cfg.SearchLimit,
			ProfileName: p.Name,
		}))
		if err != nil {
			return err
		}
		if b := final.SelectedBookmark(); b != nil {
			url = b.OpenURL(a.intranet())
		} else if q, ok := final.WebSearch(); ok {
			url = p.SearchURL(q)
		} else {
			return nil
		}
	}

	if a.open.copy {
		if err := a.copyURL(url); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		cmd.Printf("Copied: %s\n", url)
		return nil
	}

	a.logger.Debug("opening", "url", url)
	if err := a.openURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func (a *app) intranet() bool {
	return a.open.intranet || a.cfg.Intranet
}

// openInBrowser opens a URL in the default browser.
func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
