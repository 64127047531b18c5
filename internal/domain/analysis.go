package domain

import (
	"github.com/shopspring/decimal"
)

// Inconsistency is a finding that points at a concrete mismatch between
// declared values, the kind of divergence that drives audit selection.
type Inconsistency struct {
	Tipo           InconsistencyType `json:"tipo"`
	Descricao      string            `json:"descricao"`
	ValorDeclarado *decimal.Decimal  `json:"valor_declarado,omitempty"`
	ValorEsperado  *decimal.Decimal  `json:"valor_esperado,omitempty"`
	Risco          RiskLevel         `json:"risco"`
	Recomendacao   string            `json:"recomendacao,omitempty"`
}

// Warning is an advisory finding. Informational warnings are shown in the
// report but excluded from the risk score.
type Warning struct {
	Mensagem    string    `json:"mensagem"`
	Risco       RiskLevel `json:"risco"`
	Campo       string    `json:"campo,omitempty"`
	Informativo bool      `json:"informativo"`
}

// Suggestion is a tax optimization opportunity. Priority runs 1 (act now)
// through 5; the engine returns suggestions sorted ascending by priority.
type Suggestion struct {
	Titulo            string           `json:"titulo"`
	Descricao         string           `json:"descricao"`
	EconomiaPotencial *decimal.Decimal `json:"economia_potencial,omitempty"`
	Prioridade        int              `json:"prioridade"`
}

// RiskScore is the aggregated audit-risk score: 0 means nothing suspicious,
// 100 means the declaration accumulates every red flag the analyzers know.
type RiskScore struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Fatores []string  `json:"fatores"`
}

// NewRiskScore clamps score to [0,100] and derives the level from the fixed
// breakpoints: <=20 low, <=50 medium, <=75 high, above that critical.
func NewRiskScore(score int, fatores []string) RiskScore {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var level RiskLevel
	switch {
	case score <= 20:
		level = RiskLow
	case score <= 50:
		level = RiskMedium
	case score <= 75:
		level = RiskHigh
	default:
		level = RiskCritical
	}

	if fatores == nil {
		fatores = []string{}
	}
	return RiskScore{Score: score, Level: level, Fatores: fatores}
}

// PatrimonyFlow breaks down the year's patrimony variation against the
// resources the declaration itself can account for. Living expenses are
// estimated as a tiered share of declared income: the higher the income, the
// smaller the share assumed spent.
type PatrimonyFlow struct {
	PatrimonioAnterior    decimal.Decimal `json:"patrimonio_anterior"`
	PatrimonioAtual       decimal.Decimal `json:"patrimonio_atual"`
	VariacaoPatrimonial   decimal.Decimal `json:"variacao_patrimonial"`
	RendaDeclarada        decimal.Decimal `json:"renda_declarada"`
	DespesasVidaEstimadas decimal.Decimal `json:"despesas_vida_estimadas"`
	RecursosDisponiveis   decimal.Decimal `json:"recursos_disponiveis"`
	Saldo                 decimal.Decimal `json:"saldo"`
	Explicado             bool            `json:"explicado"`
}

// PercentualDespesasVida returns the living-expense percentage assumed for a
// given declared income. Tiers: <=50k spends all of it, 50-100k 80%,
// 100-250k 65%, 250-500k 50%, above that 30%.
func PercentualDespesasVida(rendaDeclarada decimal.Decimal) int {
	switch {
	case rendaDeclarada.GreaterThan(decimal.NewFromInt(500000)):
		return 30
	case rendaDeclarada.GreaterThan(decimal.NewFromInt(250000)):
		return 50
	case rendaDeclarada.GreaterThan(decimal.NewFromInt(100000)):
		return 65
	case rendaDeclarada.GreaterThan(decimal.NewFromInt(50000)):
		return 80
	}
	return 100
}

// AnalysisResult is the complete output of one analysis run. Counts are
// derived on read; nothing is stored redundantly.
type AnalysisResult struct {
	RiskScore       RiskScore       `json:"risk_score"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	Warnings        []Warning       `json:"warnings"`
	Suggestions     []Suggestion    `json:"suggestions"`
	PatrimonyFlow   *PatrimonyFlow  `json:"patrimony_flow,omitempty"`
}

// TotalInconsistencies returns the number of inconsistency findings.
func (r *AnalysisResult) TotalInconsistencies() int {
	return len(r.Inconsistencies)
}

// CriticalCount counts critical findings across inconsistencies and warnings.
func (r *AnalysisResult) CriticalCount() int {
	n := 0
	for _, inc := range r.Inconsistencies {
		if inc.Risco == RiskCritical {
			n++
		}
	}
	for _, w := range r.Warnings {
		if w.Risco == RiskCritical {
			n++
		}
	}
	return n
}

// HighCount counts high-risk findings across inconsistencies and warnings.
func (r *AnalysisResult) HighCount() int {
	n := 0
	for _, inc := range r.Inconsistencies {
		if inc.Risco == RiskHigh {
			n++
		}
	}
	for _, w := range r.Warnings {
		if w.Risco == RiskHigh {
			n++
		}
	}
	return n
}
