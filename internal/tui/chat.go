// Package tui holds the terminal views: the assistant chat program and the
// document checklist panel.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/certimatch/internal/chat"
)

// AskFunc answers one line of user input.
type AskFunc func(text string) (chat.Reply, error)

type turn struct {
	user bool
	text string
}

type replyMsg struct {
	reply chat.Reply
	err   error
}

// ChatModel is a bubbletea model for a single assistant session.
type ChatModel struct {
	input   textinput.Model
	ask     AskFunc
	turns   []turn
	waiting bool
	width   int
}

func NewChatModel(ask AskFunc, greeting string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "질문을 입력하세요 (예: FAIL 항목 개선 방법)"
	ti.Focus()
	ti.CharLimit = 300
	ti.Width = 60

	m := ChatModel{input: ti, ask: ask, width: 80}
	if greeting != "" {
		m.turns = append(m.turns, turn{text: greeting})
	}
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.turns = append(m.turns, turn{user: true, text: text})
			m.waiting = true
			return m, m.send(text)
		}
	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.turns = append(m.turns, turn{text: "오류: " + msg.err.Error()})
		} else {
			m.turns = append(m.turns, turn{text: msg.reply.Text})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) send(text string) tea.Cmd {
	ask := m.ask
	return func() tea.Msg {
		reply, err := ask(text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m ChatModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("CertiMatch 도우미"))
	sb.WriteString("\n\n")
	for _, t := range m.turns {
		if t.user {
			sb.WriteString(userStyle.Render("나 › "))
			sb.WriteString(t.text)
		} else {
			sb.WriteString(aiStyle.Render("AI › "))
			sb.WriteString(t.text)
		}
		sb.WriteString("\n\n")
	}
	if m.waiting {
		sb.WriteString(helpStyle.Render("답변 작성 중..."))
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("enter 보내기 • esc 종료"))
	return sb.String()
}

// Transcript returns the conversation so far, oldest first.
func (m ChatModel) Transcript() []string {
	out := make([]string, len(m.turns))
	for i, t := range m.turns {
		out[i] = t.text
	}
	return out
}
