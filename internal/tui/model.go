// Package tui is the interactive chat front-end for asking questions and
// rating answers.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// AskPort is the TUI-facing subset of the answer composer.
type AskPort interface {
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

// EvalPort records user ratings of answers.
type EvalPort interface {
	Log(input models.EvaluationInput) (*models.EvaluationRecord, error)
}

type phase int

const (
	phaseQuestion phase = iota
	phaseWaiting
	phaseRating
	phaseFeedback
)

// Model is the Bubble Tea model for the chat session.
type Model struct {
	composer AskPort
	evals    EvalPort
	input    textinput.Model
	viewport viewport.Model
	phase    phase
	question string
	answer   *models.Answer
	rating   int
	status   string
	ready    bool
}

type answerMsg struct {
	answer *models.Answer
	err    error
}

// New creates a chat model backed by the given composer and evaluation log.
func New(composer AskPort, evals EvalPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		composer: composer,
		evals:    evals,
		input:    ti,
		viewport: vp,
		status:   "Ready. Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and drives the ask/rate cycle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := answerBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, spacer, input frame, status
		vh := msg.Height - reserved - fh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case answerMsg:
		if msg.err != nil {
			m.phase = phaseQuestion
			m.status = "Error: " + msg.err.Error()
			m.input.Placeholder = "Ask a question and press Enter"
			return m, nil
		}
		m.answer = msg.answer
		m.phase = phaseRating
		m.status = "Rate this answer 1-5, or press Esc to skip."
		m.input.Placeholder = "Rating (1-5)"
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseQuestion:
			if msg.String() == "enter" {
				q := strings.TrimSpace(m.input.Value())
				if q == "" {
					return m, nil
				}
				m.question = q
				m.phase = phaseWaiting
				m.status = "Thinking..."
				m.input.SetValue("")
				m.viewport.SetContent("")
				return m, m.askCmd(q)
			}
		case phaseWaiting:
			// Ignore input until the answer arrives.
			return m, nil
		case phaseRating:
			switch msg.String() {
			case "esc":
				m.resetForNextQuestion("Skipped rating.")
				return m, nil
			case "enter", "1", "2", "3", "4", "5":
				val := msg.String()
				if val == "enter" {
					val = strings.TrimSpace(m.input.Value())
				}
				rating, err := strconv.Atoi(val)
				if err != nil || rating < 1 || rating > 5 {
					m.status = "Rating must be between 1 and 5."
					m.input.SetValue("")
					return m, nil
				}
				m.rating = rating
				m.phase = phaseFeedback
				m.status = "Optional feedback, Enter to submit (empty to skip)."
				m.input.SetValue("")
				m.input.Placeholder = "Feedback (optional)"
				return m, nil
			}
		case phaseFeedback:
			if msg.String() == "enter" {
				feedback := strings.TrimSpace(m.input.Value())
				m.logEvaluation(feedback)
				return m, nil
			}
			if msg.String() == "esc" {
				m.logEvaluation("")
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		answer, err := m.composer.Ask(ctx, question)
		return answerMsg{answer: answer, err: err}
	}
}

func (m *Model) logEvaluation(feedback string) {
	sourceIDs := make([]string, 0, len(m.answer.Sources))
	for _, c := range m.answer.Sources {
		sourceIDs = append(sourceIDs, c.ID)
	}
	_, err := m.evals.Log(models.EvaluationInput{
		Question:  m.question,
		Answer:    m.answer.Text,
		Rating:    m.rating,
		Feedback:  feedback,
		SourceIDs: sourceIDs,
	})
	if err != nil {
		m.resetForNextQuestion("Failed to record rating: " + err.Error())
		return
	}
	m.resetForNextQuestion("Rating recorded. Ask another question.")
}

func (m *Model) resetForNextQuestion(status string) {
	m.phase = phaseQuestion
	m.rating = 0
	m.status = status
	m.input.SetValue("")
	m.input.Placeholder = "Ask a question and press Enter"
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("kotae")
	answer := answerBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "Ask a question to get started."
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render("Q: " + m.question))
	b.WriteString("\n\n")
	b.WriteString(m.answer.Text)
	if len(m.answer.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sourceHeaderStyle.Render("Sources:"))
		for _, c := range m.answer.Sources {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render(fmt.Sprintf("  [%s] %s", c.ID, utils.Truncate(c.Content, 120))))
		}
	}
	return b.String()
}

var (
	answerBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle     = lipgloss.NewStyle().Bold(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
	sourceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
