package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcosgabbardo/irpf-analyzer/internal/analysis"
	"github.com/marcosgabbardo/irpf-analyzer/internal/config"
	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

// Tab identifies one of the result views.
type Tab int

const (
	TabResumo Tab = iota
	TabInconsistencias
	TabAlertas
	TabSugestoes
	TabPatrimonio
)

var tabNames = []string{"Resumo", "Inconsistencias", "Alertas", "Sugestoes", "Patrimonio"}

// String returns a human-readable name for a tab.
func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "Unknown"
}

// Model represents the entire application state.
type Model struct {
	// Input
	declPath string
	decl     *domain.Declaration
	result   *domain.AnalysisResult

	// Navigation
	activeTab Tab
	viewport  viewport.Model
	ready     bool

	// Terminal dimensions
	width  int
	height int

	// Error and loading state
	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model for the given declaration file.
func NewModel(declPath string) Model {
	return Model{
		declPath:       declPath,
		activeTab:      TabResumo,
		loading:        true,
		loadingMessage: "Carregando declaracao...",
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface).
func (m Model) Init() tea.Cmd {
	return loadDeclarationCmd(m.declPath)
}

// loadDeclarationCmd returns a command that loads the declaration file.
func loadDeclarationCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		decl, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DeclarationLoadedMsg{Declaration: decl}
	}
}

// analyzeCmd returns a command that runs the analysis engine.
func analyzeCmd(decl *domain.Declaration) tea.Cmd {
	return func() tea.Msg {
		engine := analysis.NewEngine()
		result, err := engine.Analyze(decl)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return AnalysisCompleteMsg{Result: result}
	}
}
