package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/pipeline"
	"github.com/outbreakrpg/engine/pkg/textfilter"
	"github.com/outbreakrpg/engine/pkg/world"
)

const (
	NarratorName    = "Narrator"
	PlaceHolderText = "Type your message here...\nExamples: Look around. Take the crowbar. Talk to Maria."
)

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// smartWrap wraps text at natural break points, falling back to a
// slash/dash-aware splitter for unspaced strings such as a session uuid.
func smartWrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if !strings.Contains(text, " ") {
		var lines []string
		var current strings.Builder
		for _, r := range text {
			current.WriteRune(r)
			if (r == '/' || r == '-') && current.Len() >= width/2 {
				lines = append(lines, current.String())
				current.Reset()
			} else if current.Len() >= width {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
		return lines
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}

// turnResultMsg carries a completed pipeline.RunTurn call back to Update.
type turnResultMsg struct {
	result pipeline.TurnResult
	err    error
}

type worldsLoadedMsg struct {
	filenames []string
	err       error
}

// ConsoleUI is the BubbleTea model driving an in-process GameSession through
// a stub pipeline.Pipeline. Unlike a client talking to cmd/api over HTTP,
// every turn here runs synchronously in the same process.
type ConsoleUI struct {
	dataDir  string
	pipeline *pipeline.Pipeline

	session *pipeline.GameSession
	world   *world.World

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	showWorldModal bool
	worldFiles     []string
	selectedWorld  int
	loadingWorlds  bool

	showQuitModal bool

	profanityFilter *textfilter.ProfanityFilter
	contentRating   string

	outcome  pipeline.Outcome
	gameOver bool
}

func NewConsoleUI(dataDir string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	tealColor := lipgloss.Color("39")
	ta.FocusedStyle.Text = ta.FocusedStyle.Text.Foreground(tealColor)
	ta.BlurredStyle.Text = ta.BlurredStyle.Text.Foreground(tealColor)

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = false
	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		dataDir:        dataDir,
		pipeline:       pipeline.NewStubPipeline(),
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		showWorldModal: true,
		loadingWorlds:  true,
		contentRating:  "PG-13",
		profanityFilter: textfilter.NewProfanityFilter(),
		outcome:         pipeline.OutcomeContinue,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadWorlds()
}

func (m ConsoleUI) loadWorlds() tea.Cmd {
	return func() tea.Msg {
		files, err := listWorldDefs(m.dataDir)
		return worldsLoadedMsg{filenames: files, err: err}
	}
}

func (m *ConsoleUI) startSession(filename string) error {
	w, err := loadWorldDef(m.dataDir, filename)
	if err != nil {
		return err
	}
	playerUID, ok := findPlayerCharacter(w)
	if !ok {
		return fmt.Errorf("world definition %s has no controllable character", filename)
	}

	m.world = w
	m.session = pipeline.NewGameSession(w, event.NewManager(), playerUID)
	m.session.ID = uuid.New()
	m.outcome = pipeline.OutcomeContinue
	m.gameOver = false
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var tiCmd, vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		if !m.ready {
			m.ready = true
			m.writeChatContent("Welcome to " + titleStyle.Render(m.world.Title) + ". Type your first action below.\n")
		}
		m.metaViewport.SetContent(m.renderSidebar())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if m.session != nil {
				_ = clipboard.WriteAll(m.session.ID.String())
			}
			return m, nil

		case tea.KeyCtrlZ:
			m.textarea.Reset()
			return m, nil

		case tea.KeyEnter:
			if m.loading || m.gameOver {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			input = m.profanityFilter.FilterText(input, m.contentRating)

			m.textarea.Reset()
			m.loading = true
			m.appendChatLine(speakerStyle.Render("You: ") + userStyle.Render(input))

			return m, m.runTurn(input)
		}

		keyStr := msg.String()
		if keyStr == "up" || keyStr == "down" || keyStr == "pgup" || keyStr == "pgdown" || keyStr == "home" || keyStr == "end" {
			m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		}

	case turnResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.appendChatLine(errorStyle.Render("Error: " + msg.err.Error()))
			break
		}
		m.outcome = msg.result.Outcome
		m.appendChatLine(narratorStyle.Render(NarratorName+": ") + msg.result.Narration)
		if msg.result.Outcome != pipeline.OutcomeContinue {
			m.gameOver = true
			m.appendChatLine(titleStyle.Render(fmt.Sprintf("--- %s ---", strings.ToUpper(string(msg.result.Outcome)))))
		}
		m.metaViewport.SetContent(m.renderSidebar())
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// runTurn drives one player input through the pipeline synchronously inside
// a tea.Cmd, so the UI loop stays responsive while the stub collaborators
// (or, eventually, real LLM-backed ones) run.
func (m ConsoleUI) runTurn(input string) tea.Cmd {
	session, p, ctx := m.session, m.pipeline, context.Background()
	return func() tea.Msg {
		result := p.RunTurn(ctx, session, input)
		return turnResultMsg{result: result}
	}
}

func (m *ConsoleUI) appendChatLine(line string) {
	chatWidth := m.chatViewport.Width - 2
	wasBottom := m.chatViewport.AtBottom()
	current := m.chatViewport.View()
	wrapped := strings.Join(smartWrap(line, max(20, chatWidth)), "\n")
	content := current
	if content != "" {
		content += "\n\n"
	}
	content += wrapped
	m.chatViewport.SetContent(content)
	if wasBottom {
		m.chatViewport.GotoBottom()
	}
}

func (m *ConsoleUI) writeChatContent(initial string) {
	m.chatViewport.SetContent(initial)
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) renderSidebar() string {
	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render("OUTBREAK RPG") + "\n\n")

	if m.world != nil {
		b.WriteString(m.world.Title + "\n\n")
	}

	if m.session != nil {
		if player, ok := m.world.Character(m.session.PlayerUID); ok {
			b.WriteString(metaStyle.Render("Health: ") + fmt.Sprintf("%d\n", player.Health))
			if area, ok := m.world.Area(player.CurrentArea); ok {
				b.WriteString(metaStyle.Render("Location: ") + area.Name + "\n")
			}
			b.WriteString(metaStyle.Render("Inventory: ") + "\n")
			if len(player.Inventory) == 0 {
				b.WriteString("None\n")
			} else {
				for _, uid := range player.Inventory {
					if item, ok := m.world.Item(uid); ok {
						b.WriteString(fmt.Sprintf("• %s\n", item.Name))
					}
				}
			}
		}
		b.WriteString("\n" + metaStyle.Render("Undo depth: ") + fmt.Sprintf("%d\n", m.session.Undo.Len()))
	}

	if m.gameOver {
		b.WriteString("\n" + titleStyle.Render(strings.ToUpper(string(m.outcome))) + "\n")
	}

	b.WriteString("\n")
	width := max(8, m.metaViewport.Width)
	if m.session != nil {
		for _, line := range smartWrap(m.session.ID.String(), width) {
			b.WriteString(promptStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + promptStyle.Render("Ctrl+Y copy id · Ctrl+Z clear · Esc quit"))

	return b.String()
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case worldsLoadedMsg:
		m.loadingWorlds = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.worldFiles = msg.filenames
		return m, nil

	case tea.KeyMsg:
		if m.loadingWorlds || len(m.worldFiles) == 0 {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worldFiles)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			if err := m.startSession(m.worldFiles[m.selectedWorld]); err != nil {
				m.err = err
				return m, nil
			}
			m.showWorldModal = false
			return m, tea.Batch(textarea.Blink, func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} })
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "y", "ctrl+c":
			return m, tea.Quit
		case "n", "esc":
			m.showQuitModal = false
			return m, nil
		}
	}
	return m, nil
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	switch {
	case m.loadingWorlds:
		content.WriteString(modalTitleStyle.Render("Loading Worlds..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to quit")
	case len(m.worldFiles) == 0:
		content.WriteString(modalTitleStyle.Render("No World Definitions Found"))
		content.WriteString("\n\n")
		content.WriteString(fmt.Sprintf("Place a world definition JSON file under %s/worlds and restart.", m.dataDir))
	default:
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")
		for i, f := range m.worldFiles {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + f))
			} else {
				content.WriteString(modalItemStyle.Render("  " + f))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to quit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(1, chatWidth-8))),
			m.textarea.View(),
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
