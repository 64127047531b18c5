// Package rules holds the versioned constant tables the analyzers run
// against: progressive tax brackets, deduction limits and the heuristic
// thresholds. One RuleTable corresponds to one tax year; evaluating another
// year means loading another table, never changing analyzer code.
package rules

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of the annual progressive table. Tax for an income
// inside the bracket is income*Rate - Parcela.
type TaxBracket struct {
	Base    decimal.Decimal `yaml:"base" json:"base"`       // bracket floor (annual)
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`       // marginal rate
	Parcela decimal.Decimal `yaml:"parcela" json:"parcela"` // subtracted parcel (annual)
}

// RuleTable carries every constant the analyzers need for one tax year.
type RuleTable struct {
	AnoExercicio int `yaml:"ano_exercicio" json:"ano_exercicio"`

	// Brackets is the annual progressive table, ordered by ascending Base
	// with the exempt bracket first.
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`

	// Deduction limits.
	LimiteSimplificada   decimal.Decimal `yaml:"limite_simplificada" json:"limite_simplificada"`       // 20% discount cap
	LimiteEducacaoPessoa decimal.Decimal `yaml:"limite_educacao_pessoa" json:"limite_educacao_pessoa"` // per person per year
	DeducaoDependente    decimal.Decimal `yaml:"deducao_dependente" json:"deducao_dependente"`         // fixed per dependent
	LimitePGBL           decimal.Decimal `yaml:"limite_pgbl" json:"limite_pgbl"`                       // fraction of taxable income
	LimiteDoacoes        decimal.Decimal `yaml:"limite_doacoes" json:"limite_doacoes"`                 // fraction of tax due

	// Suggestion thresholds.
	RendaMinimaPGBL        decimal.Decimal `yaml:"renda_minima_pgbl" json:"renda_minima_pgbl"`
	EconomiaMinimaSugestao decimal.Decimal `yaml:"economia_minima_sugestao" json:"economia_minima_sugestao"`
	EspacoMinimoPGBL       decimal.Decimal `yaml:"espaco_minimo_pgbl" json:"espaco_minimo_pgbl"`

	// Sanity bounds: the optimization analyzer refuses to work outside this
	// open interval, treating the input as an upstream parsing failure.
	RendaMinimaValida decimal.Decimal `yaml:"renda_minima_valida" json:"renda_minima_valida"`
	RendaMaximaValida decimal.Decimal `yaml:"renda_maxima_valida" json:"renda_maxima_valida"`

	// Heuristic thresholds shared by the analyzers.
	LimiteDespesasMedicas decimal.Decimal `yaml:"limite_despesas_medicas" json:"limite_despesas_medicas"` // share of income
	GiniConcentracao      decimal.Decimal `yaml:"gini_concentracao" json:"gini_concentracao"`
	PensaoMinRatio        decimal.Decimal `yaml:"pensao_min_ratio" json:"pensao_min_ratio"`
	PensaoMaxRatio        decimal.Decimal `yaml:"pensao_max_ratio" json:"pensao_max_ratio"`
}

// NewRuleTable2025 returns the compiled-in table for exercise year 2025
// (calendar year 2024), the values published by the Receita Federal.
func NewRuleTable2025() *RuleTable {
	monthly := []TaxBracket{
		{Base: decimal.Zero, Rate: decimal.Zero, Parcela: decimal.Zero},
		{Base: decimal.NewFromFloat(2259.21), Rate: decimal.NewFromFloat(0.075), Parcela: decimal.NewFromFloat(169.44)},
		{Base: decimal.NewFromFloat(2826.66), Rate: decimal.NewFromFloat(0.15), Parcela: decimal.NewFromFloat(381.44)},
		{Base: decimal.NewFromFloat(3751.06), Rate: decimal.NewFromFloat(0.225), Parcela: decimal.NewFromFloat(662.77)},
		{Base: decimal.NewFromFloat(4664.68), Rate: decimal.NewFromFloat(0.275), Parcela: decimal.NewFromFloat(896.00)},
	}

	twelve := decimal.NewFromInt(12)
	annual := make([]TaxBracket, len(monthly))
	for i, b := range monthly {
		annual[i] = TaxBracket{
			Base:    b.Base.Mul(twelve),
			Rate:    b.Rate,
			Parcela: b.Parcela.Mul(twelve),
		}
	}

	return &RuleTable{
		AnoExercicio: 2025,
		Brackets:     annual,

		LimiteSimplificada:   decimal.NewFromFloat(16754.34),
		LimiteEducacaoPessoa: decimal.NewFromFloat(3561.50),
		DeducaoDependente:    decimal.NewFromFloat(2275.08),
		LimitePGBL:           decimal.NewFromFloat(0.12),
		LimiteDoacoes:        decimal.NewFromFloat(0.06),

		RendaMinimaPGBL:        decimal.NewFromInt(50000),
		EconomiaMinimaSugestao: decimal.NewFromInt(100),
		EspacoMinimoPGBL:       decimal.NewFromInt(1000),

		RendaMinimaValida: decimal.Zero,
		RendaMaximaValida: decimal.NewFromInt(10000000),

		LimiteDespesasMedicas: decimal.NewFromFloat(0.15),
		GiniConcentracao:      decimal.NewFromFloat(0.85),
		PensaoMinRatio:        decimal.NewFromFloat(0.10),
		PensaoMaxRatio:        decimal.NewFromFloat(0.40),
	}
}

// AnnualTax computes the progressive annual tax for a taxable income: find
// the highest bracket whose floor is strictly below the income, apply
// income*rate - parcela, and never go below zero.
func (t *RuleTable) AnnualTax(rendaTributavel decimal.Decimal) decimal.Decimal {
	for i := len(t.Brackets) - 1; i >= 0; i-- {
		b := t.Brackets[i]
		if rendaTributavel.GreaterThan(b.Base) {
			tax := rendaTributavel.Mul(b.Rate).Sub(b.Parcela)
			if tax.LessThan(decimal.Zero) {
				return decimal.Zero
			}
			return tax
		}
	}
	return decimal.Zero
}

// MarginalRate returns the marginal rate applicable to a taxable income,
// using the same bracket search as AnnualTax.
func (t *RuleTable) MarginalRate(rendaTributavel decimal.Decimal) decimal.Decimal {
	for i := len(t.Brackets) - 1; i >= 0; i-- {
		b := t.Brackets[i]
		if rendaTributavel.GreaterThan(b.Base) {
			return b.Rate
		}
	}
	return decimal.Zero
}

// RendaValida reports whether a taxable income sits inside the open sanity
// interval. Values outside it are treated as parsing artifacts.
func (t *RuleTable) RendaValida(rendaTributavel decimal.Decimal) bool {
	return rendaTributavel.GreaterThan(t.RendaMinimaValida) &&
		rendaTributavel.LessThan(t.RendaMaximaValida)
}
