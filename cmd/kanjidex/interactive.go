// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kanjidex"
	"github.com/ianlewis/go-kanjidex/input"
	"github.com/ianlewis/go-kanjidex/render"
	"github.com/ianlewis/go-kanjidex/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// headerHeight is the number of lines above the results.
	headerHeight = 3
)

var (
	pageStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	charStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	sepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	linkStyle    = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("69"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	blockStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpText     = "esc: clear • pgup/pgdn: scroll • ctrl+c: quit"
	placeholder  = "id, range, meaning, ~substring or kanji"
	searchPrompt = "> "
)

func (e *env) interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Usage:   "search interactively",
		Aliases: []string{"i"},
		Action:  e.interactive,
	}
}

func (e *env) interactive(c *cli.Context) error {
	d, err := e.open(c)
	if err != nil {
		return err
	}

	var p *tea.Program
	ctrl := input.NewController(d, func(raw string, r *kanjidex.Result) {
		p.Send(resultMsg{raw: raw, result: r})
	}, &input.Options{
		Delay:  e.cfg.Debounce,
		Logger: e.logger,
	})
	defer ctrl.Stop()

	p = tea.NewProgram(newSearchModel(ctrl),
		tea.WithAltScreen(),
		tea.WithInput(c.App.Reader),
		tea.WithOutput(c.App.Writer),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%w: %w", ErrKanjidex, err)
	}
	return nil
}

// resultMsg carries the result of evaluating raw.
type resultMsg struct {
	raw    string
	result *kanjidex.Result
}

// searchModel is the bubbletea model for the interactive search.
type searchModel struct {
	ctrl    *input.Controller
	input   textinput.Model
	results viewport.Model
	last    *kanjidex.Result
	width   int
}

func newSearchModel(ctrl *input.Controller) *searchModel {
	ti := textinput.New()
	ti.Prompt = searchPrompt
	ti.Placeholder = placeholder
	ti.Focus()

	vp := viewport.New(defaultWidth, defaultHeight-headerHeight)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	return &searchModel{
		ctrl:    ctrl,
		input:   ti,
		results: vp,
		width:   defaultWidth,
	}
}

// Init implements tea.Model.
func (m *searchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input.SetValue("")
			m.ctrl.Reset()
			m.results.GotoTop()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.ctrl.Keystroke(v)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(searchPrompt)-1, 1)
		m.results.Width = msg.Width
		m.results.Height = max(msg.Height-headerHeight, 1)
		m.refresh()
		return m, nil

	case resultMsg:
		// Results for input that has since changed are dropped.
		if strings.TrimSpace(msg.raw) != strings.TrimSpace(m.input.Value()) {
			return m, nil
		}
		m.last = msg.result
		m.refresh()
		m.results.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *searchModel) refresh() {
	if m.last == nil {
		m.results.SetContent("")
		return
	}
	m.results.SetContent(renderBlocks(m.last.Matches, m.width))
}

// View implements tea.Model.
func (m *searchModel) View() string {
	status := helpText
	if m.last != nil && m.input.Value() != "" {
		status = fmt.Sprintf("%s • %s", matchCount(len(m.last.Matches)), helpText)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		statusStyle.Render(status),
		"",
		m.results.View(),
	)
}

func matchCount(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// renderBlocks renders one bordered block per match.
func renderBlocks(matches []render.Match, width int) string {
	style := blockStyle
	if width > 2 {
		// Width excludes the border.
		style = style.Width(width - 2)
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		e := m.Entry
		blocks = append(blocks, style.Render(lipgloss.JoinVertical(lipgloss.Left,
			pageStyle.Render(e.Page),
			lipgloss.JoinHorizontal(lipgloss.Top,
				charStyle.Render(e.Character),
				idStyle.Render("#"+e.ID),
			),
			renderMeaning(e.Meaning),
			linkStyle.Render(string(render.JishoURL(m.Key))),
		)))
	}
	return strings.Join(blocks, "\n")
}

func renderMeaning(meaning string) string {
	return strings.Join(strings.Split(meaning, store.Separator), sepStyle.Render(store.Separator))
}
