package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondomain "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessiondto "github.com/pauljayakar30/Paninis-eye/internal/modules/session/dto"
	"github.com/pauljayakar30/Paninis-eye/internal/ui/theme"
)

// sessionPort is the slice of the session usecase the review screen needs.
type sessionPort interface {
	List(ctx context.Context) ([]sessiondto.SummaryOutput, error)
	Snapshot(ctx context.Context, id string) (sessiondomain.Session, error)
}

type sessionsLoadedMsg struct {
	summaries []sessiondto.SummaryOutput
	err       error
}

type detailLoadedMsg struct {
	session sessiondomain.Session
	err     error
}

// Model is the candidate review screen: sessions on the left, the selected
// session's latest ranked candidates on the right.
type Model struct {
	sessions sessionPort

	summaries []sessiondto.SummaryOutput
	cursor    int
	detail    *sessiondomain.Session
	err       error
	width     int
	height    int
}

func NewModel(sessions sessionPort) Model {
	return Model{sessions: sessions}
}

func (m Model) Init() tea.Cmd {
	return m.loadSessions
}

func (m Model) loadSessions() tea.Msg {
	summaries, err := m.sessions.List(context.Background())
	return sessionsLoadedMsg{summaries: summaries, err: err}
}

func (m Model) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.sessions.Snapshot(context.Background(), id)
		return detailLoadedMsg{session: session, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case sessionsLoadedMsg:
		m.summaries, m.err = msg.summaries, msg.err
		if m.cursor >= len(m.summaries) {
			m.cursor = 0
		}
	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.detail = nil
		} else {
			session := msg.session
			m.detail = &session
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.summaries)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.summaries) > 0 {
				return m, m.loadDetail(m.summaries[m.cursor].SessionID)
			}
		case "r":
			return m, m.loadSessions
		}
	}
	return m, nil
}

func (m Model) View() string {
	left := m.sessionList()
	right := m.detailPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := theme.Muted.Render("↑/↓ select · enter open · r refresh · q quit")
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

func (m Model) sessionList() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sessions") + "\n\n")
	if m.err != nil {
		b.WriteString(theme.Degraded.Render(m.err.Error()))
	}
	if len(m.summaries) == 0 {
		b.WriteString(theme.Muted.Render("no sessions yet"))
	}
	for i, summary := range m.summaries {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s (%d masks)", marker, summary.SessionID, summary.MaskCount)
		if summary.FallbackUsed {
			line += " " + theme.Degraded.Render("degraded")
		}
		b.WriteString(line + "\n")
	}
	return theme.PaneActive.Width(36).Render(b.String())
}

func (m Model) detailPane() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Candidates") + "\n\n")
	switch {
	case m.detail == nil:
		b.WriteString(theme.Muted.Render("press enter on a session"))
	case m.detail.LastResult == nil:
		b.WriteString(theme.Muted.Render("no reconstruction run yet"))
	default:
		result := m.detail.LastResult
		if result.FallbackUsed {
			b.WriteString(theme.Degraded.Render("fallback exemplars") + "\n\n")
		}
		for _, candidate := range result.Candidates {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				theme.Score.Render(fmt.Sprintf("%.2f", candidate.Scores.Combined)),
				candidate.Text,
				theme.Muted.Render(candidate.IAST)))
		}
		b.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("total %dms · model %dms · kg %dms",
			result.Timings.TotalMS, result.Timings.ModelInferenceMS, result.Timings.KGLookupMS)))
	}
	width := 48
	if m.width > 90 {
		width = m.width - 44
	}
	return theme.Pane.Width(width).Render(b.String())
}
