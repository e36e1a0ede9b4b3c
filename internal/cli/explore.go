package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/social"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(13)
)

// =============================================================================
// explore command
// =============================================================================

// exploreCommand opens an interactive browser over the follows graph.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts followsInput

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse users and their follows interactively",
		Example: `  followgraph explore -f posts.json
  followgraph explore --graph graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == stdinPath {
				return perr.New(perr.ErrCodeInvalidInput, "explore cannot read posts from stdin")
			}
			g, err := opts.follows(cmd)
			if err != nil {
				return err
			}
			m := NewExploreModel(g)
			if len(m.Rows) == 0 {
				printWarning(cmd.ErrOrStderr(), "No users to explore")
				return nil
			}

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	// Stdin drives the TUI, so input must come from a file.
	opts.register(cmd)
	cmd.MarkFlagsOneRequired("file", "graph")
	return cmd
}

// =============================================================================
// ExploreModel - Interactive follows browser
// =============================================================================

// ExploreRow is one user in the explorer list.
type ExploreRow struct {
	User      string
	Followers int
	Following int
}

// ExploreModel is the bubbletea model for browsing a follows graph.
// Rows are ranked by follower count, or by name after pressing s.
type ExploreModel struct {
	Rows   []ExploreRow
	Cursor int
	Height int
	Offset int
	ByName bool

	graph      social.FollowsGraph
	followedBy map[string][]string
}

// NewExploreModel creates an explorer over every user in g.
func NewExploreModel(g social.FollowsGraph) ExploreModel {
	g = social.Normalize(g)
	counts := social.Followers(g)

	followedBy := make(map[string][]string)
	for _, from := range social.Mentioners(g) {
		for _, to := range g[from].Sorted() {
			followedBy[to] = append(followedBy[to], from)
		}
	}

	users := social.Users(g)
	rows := make([]ExploreRow, len(users))
	for i, u := range users {
		rows[i] = ExploreRow{User: u, Followers: counts[u], Following: g[u].Len()}
	}

	m := ExploreModel{
		Rows:       rows,
		Height:     15,
		graph:      g,
		followedBy: followedBy,
	}
	m.sortRows()
	return m
}

func (m *ExploreModel) sortRows() {
	slices.SortFunc(m.Rows, func(a, b ExploreRow) int {
		if !m.ByName {
			if c := cmp.Compare(b.Followers, a.Followers); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.User, b.User)
	})
}

// Selected returns the row under the cursor.
func (m ExploreModel) Selected() (ExploreRow, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return ExploreRow{}, false
	}
	return m.Rows[m.Cursor], true
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Rows) - 1)
		case "s":
			m.toggleSort()
		}
	case tea.WindowSizeMsg:
		// Room for the title, hints, table borders and the detail pane.
		m.Height = max(msg.Height-12, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo clamps i to the rows and scrolls the window to keep it visible.
func (m *ExploreModel) moveTo(i int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(i, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// toggleSort switches ordering and keeps the cursor on the same user.
func (m *ExploreModel) toggleSort() {
	current, ok := m.Selected()
	m.Rows = slices.Clone(m.Rows)
	m.ByName = !m.ByName
	m.sortRows()
	if ok {
		m.Offset = 0
		m.moveTo(slices.IndexFunc(m.Rows, func(r ExploreRow) bool { return r.User == current.User }))
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	order := "followers"
	if m.ByName {
		order = "name"
	}
	b.WriteString(StyleTitle.Render("Follows Explorer"))
	b.WriteString(listDimStyle.Render("  sorted by " + order))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sort  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.User, strconv.Itoa(r.Followers), strconv.Itoa(r.Following)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "User", "Followers", "Following").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorGray)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if sel, ok := m.Selected(); ok {
		b.WriteString(listLabelStyle.Render("follows") + " " + joinOrNone(m.graph[sel.User].Sorted()))
		b.WriteString("\n")
		b.WriteString(listLabelStyle.Render("followed by") + " " + joinOrNone(m.followedBy[sel.User]))
		b.WriteString("\n\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return StyleDim.Render("—")
	}
	return StyleValue.Render(strings.Join(names, ", "))
}
