package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmdash/internal/model"
)

// DefaultExportPath returns the default export file path for a profile.
// Format: ~/Downloads/bookmarks-<profile>-YYYY-MM-DD.html
func DefaultExportPath(profileName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads", exportFileName(profileName, time.Now())), nil
}

func exportFileName(profileName string, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, profileName)
	return fmt.Sprintf("bookmarks-%s-%s.html", name, now.Format("2006-01-02"))
}

// ExportHTML exports a profile to Netscape bookmark HTML format.
// The profile becomes a single folder; tags are written to the TAGS attribute.
func ExportHTML(profile *model.Profile) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(profile.Name))
	b.WriteString("    <DL><p>\n")
	for _, bookmark := range profile.Bookmarks {
		writeBookmark(&b, bookmark, "        ")
	}
	b.WriteString("    </DL><p>\n")

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bookmark model.Bookmark, prefix string) {
	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", prefix, html.EscapeString(bookmark.URL))
	if len(bookmark.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bookmark.Title))
}
