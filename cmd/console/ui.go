package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/paulutsch/clembench/pkg/episode"
	"github.com/paulutsch/clembench/pkg/level"
	"github.com/paulutsch/clembench/pkg/render"
	"github.com/paulutsch/clembench/pkg/transcript"
)

// ConsoleUI is the BubbleTea model for playing a level interactively.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	level   *level.Level
	episode *episode.Episode
	result  *transcript.Result

	historyViewport viewport.Model
	ready           bool
	width           int
	height          int
	statusMsg       string
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	wallStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dark grey
	projectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	switchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // teal
	portalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // green
	playerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	wonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	exhaustedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var symbolStyles = map[render.Symbol]lipgloss.Style{
	render.Wall:          wallStyle,
	render.ProjectedWall: projectedStyle,
	render.Switch:        switchStyle,
	render.Portal:        portalStyle,
	render.Player:        playerStyle,
}

var statusTitle = cases.Title(language.English)

func NewConsoleUI(lvl *level.Level, experimentName string, gameID int) *ConsoleUI {
	return &ConsoleUI{
		level:   lvl,
		episode: episode.New(lvl),
		result:  transcript.New(experimentName, gameID, "console"),
	}
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return nil
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		historyHeight := msg.Height - ui.level.GridSize - 12
		if historyHeight < 3 {
			historyHeight = 3
		}
		if !ui.ready {
			ui.historyViewport = viewport.New(msg.Width-4, historyHeight)
			ui.ready = true
		} else {
			ui.historyViewport.Width = msg.Width - 4
			ui.historyViewport.Height = historyHeight
		}
		ui.historyViewport.SetContent(ui.historyContent())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return ui, tea.Quit
		case "r":
			ui.episode = episode.New(ui.level)
			ui.result = transcript.New(ui.result.Experiment, ui.result.GameID, ui.result.Model)
			ui.statusMsg = "Episode restarted."
			ui.refreshHistory()
		case "c":
			ui.copyTranscript()
		case "up", "n":
			ui.move(episode.North)
		case "down", "s":
			ui.move(episode.South)
		case "right", "e":
			ui.move(episode.East)
		case "left", "w":
			ui.move(episode.West)
		}
	}

	var cmd tea.Cmd
	ui.historyViewport, cmd = ui.historyViewport.Update(msg)
	return ui, cmd
}

func (ui *ConsoleUI) move(d episode.Direction) {
	if ui.episode.Terminal() {
		ui.statusMsg = "Episode is over. Press r to restart."
		return
	}

	outcome, err := ui.episode.ApplyMove(d)
	if err != nil {
		ui.statusMsg = err.Error()
		return
	}

	ui.result.Append("DIRECTION: "+d.Letter(), outcome)
	if ui.episode.Terminal() {
		ui.result.Finish()
	}

	if outcome.Blocked {
		ui.statusMsg = outcome.BlockReason
	} else {
		ui.statusMsg = ""
	}
	ui.refreshHistory()
}

func (ui *ConsoleUI) refreshHistory() {
	if ui.ready {
		ui.historyViewport.SetContent(ui.historyContent())
		ui.historyViewport.GotoBottom()
	}
}

func (ui *ConsoleUI) copyTranscript() {
	data, err := json.MarshalIndent(ui.result, "", "  ")
	if err != nil {
		ui.statusMsg = "Failed to serialize transcript."
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		ui.statusMsg = "Failed to copy transcript to clipboard."
		return
	}
	ui.statusMsg = "Transcript copied to clipboard."
}

func (ui *ConsoleUI) historyContent() string {
	if len(ui.result.Records) == 0 {
		return helpStyle.Render("No moves yet.")
	}

	var b strings.Builder
	for _, rec := range ui.result.Records {
		line := fmt.Sprintf("%2d. %-5s -> %s", rec.Move, rec.Outcome.Direction, rec.Outcome.PlayerPos)
		if rec.Outcome.Blocked {
			line += "  blocked"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (ui *ConsoleUI) renderGrid() string {
	grid := render.Render(ui.level, ui.episode.ProjectedWallActive, ui.episode.PlayerPos)

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, sym := range row {
			glyph := render.StringSkin[sym]
			if style, ok := symbolStyles[sym]; ok {
				glyph = style.Render(glyph)
			}
			b.WriteString(glyph + " ")
		}
	}
	return gridStyle.Render(b.String())
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf("Portal Game: %s / game %d", ui.result.Experiment, ui.result.GameID))

	status := fmt.Sprintf("Status: %s   Moves: %d/%d   Projected wall: %v",
		statusTitle.String(strings.ReplaceAll(string(ui.episode.Status), "_", " ")),
		ui.episode.MovesTaken, ui.level.MaxMoves,
		ui.episode.ProjectedWallActive)
	switch ui.episode.Status {
	case episode.StatusWon:
		status = wonStyle.Render(status + "   You reached the portal!")
	case episode.StatusExhausted:
		status = exhaustedStyle.Render(status + "   Out of moves.")
	}

	var warning string
	if ui.statusMsg != "" {
		warning = warningStyle.Render(wordwrap.String(ui.statusMsg, ui.width-4)) + "\n"
	}

	help := helpStyle.Render("arrows/nsew: move   r: restart   c: copy transcript   q: quit")

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n%s\n\n%s\n",
		title,
		ui.renderGrid(),
		status,
		warning,
		ui.historyViewport.View(),
		help)
}
