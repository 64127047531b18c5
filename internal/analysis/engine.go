package analysis

import (
	"fmt"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

// Engine wires the analyzers together and runs a full evaluation pass over a
// declaration. Analyzers run in a fixed order so findings come out stable
// across runs of the same input.
type Engine struct {
	Table  *rules.RuleTable
	logger Logger

	consistency     *ConsistencyAnalyzer
	deductions      *DeductionAnalyzer
	income          *IncomeAnalyzer
	crossValidation *CrossValidationAnalyzer
	optimization    *OptimizationAnalyzer
	risk            *RiskAggregator
}

// NewEngine creates an engine for the default rule table.
func NewEngine() *Engine {
	return NewEngineWithTable(rules.NewRuleTable2025())
}

// NewEngineWithTable creates an engine bound to a specific rule table.
func NewEngineWithTable(table *rules.RuleTable) *Engine {
	return &Engine{
		Table:           table,
		logger:          &NopLogger{},
		consistency:     NewConsistencyAnalyzer(table),
		deductions:      NewDeductionAnalyzer(table),
		income:          NewIncomeAnalyzer(table),
		crossValidation: NewCrossValidationAnalyzer(table),
		optimization:    NewOptimizationAnalyzer(table),
		risk:            NewRiskAggregator(),
	}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = &NopLogger{}
	}
	e.logger = l
}

// Analyze runs every analyzer over the declaration and aggregates the
// findings into one result. The declaration is read-only throughout, so
// running Analyze twice on the same input yields the same output.
func (e *Engine) Analyze(d *domain.Declaration) (*domain.AnalysisResult, error) {
	if d == nil {
		return nil, fmt.Errorf("declaracao nao pode ser nula")
	}

	e.logger.Infof("iniciando analise da declaracao: CPF %s, exercicio %d",
		d.Contribuinte.CPFMascarado(), d.AnoExercicio)

	var inconsistencies []domain.Inconsistency
	var warnings []domain.Warning

	runs := []struct {
		nome    string
		analyze func(*domain.Declaration) ([]domain.Inconsistency, []domain.Warning)
	}{
		{"consistencia", e.consistency.Analyze},
		{"deducoes", e.deductions.Analyze},
		{"rendimentos", e.income.Analyze},
		{"cruzamentos", e.crossValidation.Analyze},
	}
	for _, run := range runs {
		incs, warns := run.analyze(d)
		e.logger.Debugf("analisador %s: %d inconsistencias, %d alertas",
			run.nome, len(incs), len(warns))
		inconsistencies = append(inconsistencies, incs...)
		warnings = append(warnings, warns...)
	}

	suggestions := e.optimization.Analyze(d)
	e.logger.Debugf("analisador otimizacao: %d sugestoes", len(suggestions))

	score := e.risk.Aggregate(inconsistencies, warnings)
	e.logger.Infof("analise concluida: score %d (%s), %d inconsistencias, %d alertas, %d sugestoes",
		score.Score, score.Level, len(inconsistencies), len(warnings), len(suggestions))

	return &domain.AnalysisResult{
		RiskScore:       score,
		Inconsistencies: inconsistencies,
		Warnings:        warnings,
		Suggestions:     suggestions,
		PatrimonyFlow:   e.consistency.PatrimonyFlow(d),
	}, nil
}
