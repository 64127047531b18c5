package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages (required by tea.Model interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % Tab(len(tabNames))
			m.refreshContent()
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
			m.refreshContent()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case DeclarationLoadedMsg:
		m.decl = msg.Declaration
		m.loadingMessage = "Analisando declaracao..."
		return m, analyzeCmd(m.decl)

	case AnalysisCompleteMsg:
		m.result = msg.Result
		m.loading = false
		m.refreshContent()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) resizeViewport() {
	// Header, tab bar and status bar take up vertical space; borders and
	// padding take up horizontal space.
	contentWidth := m.width - 6
	contentHeight := m.height - 8
	if contentWidth < 20 {
		contentWidth = 20
	}
	if contentHeight < 5 {
		contentHeight = 5
	}

	if !m.ready {
		m.viewport = viewportNew(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if !m.ready || m.result == nil {
		return
	}
	m.viewport.SetContent(m.renderTabContent())
	m.viewport.GotoTop()
}
