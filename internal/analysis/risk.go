package analysis

import (
	"fmt"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

// RiskAggregator turns the findings of every analyzer into a single 0-100
// score. Points accumulate per finding by severity; warnings weigh half of
// inconsistencies and informational warnings add nothing.
type RiskAggregator struct{}

// NewRiskAggregator creates a risk aggregator.
func NewRiskAggregator() *RiskAggregator {
	return &RiskAggregator{}
}

func inconsistencyPoints(risco domain.RiskLevel) int {
	switch risco {
	case domain.RiskCritical:
		return 50
	case domain.RiskHigh:
		return 30
	case domain.RiskMedium:
		return 15
	default:
		return 5
	}
}

// Warning points are the inconsistency points halved, integer division.
func warningPoints(risco domain.RiskLevel) int {
	return inconsistencyPoints(risco) / 2
}

var inconsistencyLabels = map[domain.InconsistencyType]string{
	domain.IncPatrimonioVsRenda:      "variacao patrimonial incompativel com a renda",
	domain.IncValorZeradoSuspeito:    "valores zerados suspeitos",
	domain.IncDespesasMedicasAltas:   "despesas medicas elevadas",
	domain.IncDespesasEducacaoLimite: "despesas de educacao acima do limite",
	domain.IncDependenteDuplicado:    "dependentes duplicados",
	domain.IncDeducaoSemComprovante:  "deducoes sem comprovacao",
	domain.IncPensaoDesproporcional:  "pensao alimenticia desproporcional",
}

func labelFor(tipo domain.InconsistencyType) string {
	if l, ok := inconsistencyLabels[tipo]; ok {
		return l
	}
	return string(tipo)
}

// Aggregate computes the final risk score from the collected findings.
// Factors list the distinct finding categories in discovery order; a clean
// declaration carries a single "nenhuma inconsistencia" factor.
func (a *RiskAggregator) Aggregate(inconsistencies []domain.Inconsistency, warnings []domain.Warning) domain.RiskScore {
	score := 0
	seen := make(map[string]bool)
	var fatores []string

	addFator := func(f string) {
		if !seen[f] {
			seen[f] = true
			fatores = append(fatores, f)
		}
	}

	for _, inc := range inconsistencies {
		score += inconsistencyPoints(inc.Risco)
		addFator(labelFor(inc.Tipo))
	}
	for _, w := range warnings {
		if w.Informativo {
			continue
		}
		score += warningPoints(w.Risco)
		addFator(fmt.Sprintf("alertas em %s", w.Campo))
	}

	if len(fatores) == 0 {
		fatores = []string{"nenhuma inconsistencia relevante"}
	}
	return domain.NewRiskScore(score, fatores)
}
