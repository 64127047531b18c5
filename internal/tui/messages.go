package tui

import (
	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

// DeclarationLoadedMsg is sent when the declaration file has been parsed.
type DeclarationLoadedMsg struct {
	Declaration *domain.Declaration
}

// AnalysisCompleteMsg is sent when the engine finishes an analysis run.
type AnalysisCompleteMsg struct {
	Result *domain.AnalysisResult
}

// ErrorMsg carries any error out of a command.
type ErrorMsg struct {
	Err error
}
