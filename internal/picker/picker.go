package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/search"
)

// Options configures a Picker.
type Options struct {
	Query       string // initial query
	Limit       int    // max results shown, <= 0 for unlimited
	ProfileName string
}

// Picker is a live-search TUI over a profile's bookmarks.
type Picker struct {
	bookmarks []model.Bookmark
	results   []search.Result
	input     textinput.Model
	limit     int
	profile   string
	cursor    int
	selected  bool
	webSearch bool
	cancelled bool
	width     int
	height    int
	keys      KeyMap
	styles    Styles
}

// New creates a Picker over bookmarks and runs the initial query.
func New(bookmarks []model.Bookmark, opts Options) Picker {
	input := textinput.New()
	input.Placeholder = "Search bookmarks..."
	input.Prompt = "> "
	input.SetValue(opts.Query)
	input.Focus()

	p := Picker{
		bookmarks: bookmarks,
		input:     input,
		limit:     opts.Limit,
		profile:   opts.ProfileName,
		width:     80,
		height:    24,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
	}
	p.refresh()
	return p
}

// refresh re-runs the search for the current query.
func (p *Picker) refresh() {
	p.results = search.Search(p.bookmarks, p.input.Value(), p.limit)
	p.cursor = 0
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.input.Width = max(msg.Width-len(p.input.Prompt)-1, 1)
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Select):
			if len(p.results) > 0 {
				p.selected = true
				return p, tea.Quit
			}
			if strings.TrimSpace(p.input.Value()) != "" {
				p.webSearch = true
				return p, tea.Quit
			}
			return p, nil

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return p, cmd
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%d results", len(p.results))
	if p.profile != "" {
		header = p.profile + " · " + header
	}
	b.WriteString(p.styles.Header.Render(header))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		if strings.TrimSpace(p.input.Value()) != "" {
			b.WriteString(p.styles.Empty.Render("No matches. Enter searches the web."))
		} else {
			b.WriteString(p.styles.Empty.Render("No bookmarks."))
		}
		b.WriteString("\n")
	}

	start, end := p.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(p.renderResult(p.results[i], i == p.cursor))
	}

	b.WriteString("\n")
	b.WriteString(p.renderHints())

	return b.String()
}

// visibleRange returns the window of results that fits the terminal,
// keeping the cursor in view. Each result takes two lines.
func (p Picker) visibleRange() (int, int) {
	// header + input + blank + blank + hints
	capacity := max((p.height-5)/2, 1)
	if len(p.results) <= capacity {
		return 0, len(p.results)
	}
	start := 0
	if p.cursor >= capacity {
		start = p.cursor - capacity + 1
	}
	return start, start + capacity
}

func (p Picker) renderResult(r search.Result, selected bool) string {
	cursor := "  "
	base := p.styles.Item
	if selected {
		cursor = "> "
		base = p.styles.ItemSelected
	}

	var title strings.Builder
	remaining := p.width - 2
	for _, seg := range r.Segments {
		if remaining <= 0 {
			break
		}
		text := TruncateText(seg.Text, remaining)
		remaining -= VisibleLength(text)
		if seg.Highlighted {
			title.WriteString(p.styles.Match.Render(text))
		} else {
			title.WriteString(base.Render(text))
		}
	}

	line := r.Bookmark.URL
	if len(r.Bookmark.Tags) > 0 {
		line += "  #" + strings.Join(r.Bookmark.Tags, " #")
	}

	return fmt.Sprintf("%s%s\n   %s\n", cursor, title.String(), p.styles.URL.Render(TruncateText(line, p.width-3)))
}

func (p Picker) renderHints() string {
	var hints []string
	for _, k := range []key.Binding{p.keys.Up, p.keys.Down, p.keys.Select, p.keys.Cancel} {
		h := k.Help()
		hints = append(hints, p.styles.HintKey.Render(h.Key)+" "+p.styles.HintDesc.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}

// SelectedBookmark returns the selected bookmark, or nil if none was chosen.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// WebSearch returns the query to send to the profile's search engine when
// the user confirmed a query that matched nothing.
func (p Picker) WebSearch() (string, bool) {
	if p.cancelled || !p.webSearch {
		return "", false
	}
	return strings.TrimSpace(p.input.Value()), true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Query returns the current query text.
func (p Picker) Query() string {
	return p.input.Value()
}

// Results returns the results currently shown.
func (p Picker) Results() []search.Result {
	return p.results
}
