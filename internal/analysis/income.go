package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
	"github.com/marcosgabbardo/irpf-analyzer/internal/stats"
)

// IncomeAnalyzer flags withholding, concentration, social security, alimony
// and bookkeeping anomalies in the income side of the declaration.
type IncomeAnalyzer struct {
	Table *rules.RuleTable
}

// NewIncomeAnalyzer creates an income analyzer bound to a rule table.
func NewIncomeAnalyzer(table *rules.RuleTable) *IncomeAnalyzer {
	return &IncomeAnalyzer{Table: table}
}

// irrfBand is the expected withholding ratio range for an annual income band.
type irrfBand struct {
	minRenda, maxRenda decimal.Decimal
	minRatio, maxRatio decimal.Decimal
}

// Conservative withholding expectations per annual income band, matching the
// progressive table the employers withhold against.
var irrfBands = []irrfBand{
	{decimal.Zero, decimal.NewFromFloat(27110.52), decimal.Zero, decimal.Zero},
	{decimal.NewFromFloat(27110.52), decimal.NewFromFloat(33919.80), decimal.Zero, decimal.NewFromFloat(0.05)},
	{decimal.NewFromFloat(33919.80), decimal.NewFromFloat(45012.60), decimal.NewFromFloat(0.02), decimal.NewFromFloat(0.10)},
	{decimal.NewFromFloat(45012.60), decimal.NewFromFloat(55976.16), decimal.NewFromFloat(0.05), decimal.NewFromFloat(0.15)},
	{decimal.NewFromFloat(55976.16), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.08), decimal.NewFromFloat(0.20)},
}

// Tolerance bands around the expected withholding range.
var (
	irrfToleranceBelow = decimal.NewFromFloat(0.02)
	irrfToleranceAbove = decimal.NewFromFloat(0.05)
)

// INSS expectations for salaried income.
var (
	previdenciaMinRatio = decimal.NewFromFloat(0.07)
	previdenciaMaxRatio = decimal.NewFromFloat(0.14)
	tetoINSSAnual       = decimal.NewFromFloat(7786.02).Mul(decimal.NewFromInt(12))
	rendaIsentaAnual    = decimal.NewFromFloat(27110.52)
)

// Year-end bonus: expected 1/12 of the annual salary, within 20%.
var decimoTerceiroTolerance = decimal.NewFromFloat(0.20)

// Analyze runs every income check against the declaration snapshot.
func (a *IncomeAnalyzer) Analyze(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	var inconsistencies []domain.Inconsistency
	var warnings []domain.Warning

	warnings = append(warnings, a.checkWithholdingRatio(d)...)
	warnings = append(warnings, a.checkConcentration(d)...)

	incs, warns := a.checkPrevidencia(d)
	inconsistencies = append(inconsistencies, incs...)
	warnings = append(warnings, warns...)

	incs, warns = a.checkAlimony(d)
	inconsistencies = append(inconsistencies, incs...)
	warnings = append(warnings, warns...)

	incs, warns = a.checkLivroCaixa(d)
	inconsistencies = append(inconsistencies, incs...)
	warnings = append(warnings, warns...)

	warnings = append(warnings, a.checkDecimoTerceiro(d)...)
	if w := a.checkExemptRatio(d); w != nil {
		warnings = append(warnings, *w)
	}

	return inconsistencies, warnings
}

// checkWithholdingRatio compares withheld tax against the band implied by
// the income level. Divergences point at typing errors or income reported
// differently by the employer (DIRF).
func (a *IncomeAnalyzer) checkWithholdingRatio(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning
	for _, r := range d.Rendimentos {
		if r.Tipo != domain.IncomeTrabalhoAssalariado && r.Tipo != domain.IncomeTrabalhoNaoAssalariado {
			continue
		}
		if r.ValorAnual.LessThanOrEqual(decimal.Zero) {
			continue
		}

		ratio := r.ImpostoRetido.Div(r.ValorAnual)
		for _, band := range irrfBands {
			if r.ValorAnual.LessThan(band.minRenda) || !r.ValorAnual.LessThan(band.maxRenda) {
				continue
			}
			if ratio.GreaterThan(decimal.Zero) && ratio.LessThan(band.minRatio.Sub(irrfToleranceBelow)) {
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf(
						"IRRF baixo para a faixa de renda: %s%% (esperado min %s%%) - %s; a DIRF do empregador sera cruzada",
						ratio.Mul(decimal.NewFromInt(100)).StringFixed(1),
						band.minRatio.Mul(decimal.NewFromInt(100)).StringFixed(0),
						r.NomeFonte()),
					Risco: domain.RiskLow,
					Campo: "rendimentos",
				})
			} else if ratio.GreaterThan(band.maxRatio.Add(irrfToleranceAbove)) {
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf(
						"IRRF alto para a faixa de renda: %s%% (esperado max %s%%) - %s; possivel rendimento nao declarado",
						ratio.Mul(decimal.NewFromInt(100)).StringFixed(1),
						band.maxRatio.Mul(decimal.NewFromInt(100)).StringFixed(0),
						r.NomeFonte()),
					Risco: domain.RiskMedium,
					Campo: "rendimentos",
				})
			}
			break
		}
	}
	return warnings
}

// checkConcentration measures how concentrated the taxable income sources
// are and flags identical amounts that suggest a duplicated entry.
func (a *IncomeAnalyzer) checkConcentration(d *domain.Declaration) []domain.Warning {
	var fontes []domain.Rendimento
	for _, r := range d.Rendimentos {
		switch r.Tipo {
		case domain.IncomeTrabalhoAssalariado, domain.IncomeTrabalhoNaoAssalariado,
			domain.IncomeAlugueis, domain.IncomeLucrosDividendos:
			if r.ValorAnual.GreaterThan(decimal.Zero) {
				fontes = append(fontes, r)
			}
		}
	}

	var warnings []domain.Warning

	if len(fontes) >= 2 {
		valores := make([]decimal.Decimal, len(fontes))
		total := decimal.Zero
		for i, r := range fontes {
			valores[i] = r.ValorAnual
			total = total.Add(r.ValorAnual)
		}

		gini := stats.Gini(valores)
		if total.GreaterThan(decimal.Zero) && gini.GreaterThan(a.Table.GiniConcentracao) {
			maior := fontes[0]
			for _, r := range fontes[1:] {
				if r.ValorAnual.GreaterThan(maior.ValorAnual) {
					maior = r
				}
			}
			percentual := maior.ValorAnual.Div(total).Mul(decimal.NewFromInt(100))
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"renda altamente concentrada (Gini=%s): %s%% de %s; verifique se ha outras fontes nao declaradas",
					gini.StringFixed(2), percentual.StringFixed(0), maior.NomeFonte()),
				Risco:       domain.RiskLow,
				Campo:       "rendimentos",
				Informativo: true,
			})
		}

		// Identical amounts from distinct entries usually mean the same
		// income was typed twice.
		counted := make(map[string]bool)
		for i, r := range fontes {
			key := r.ValorAnual.String()
			if counted[key] || r.ValorAnual.LessThanOrEqual(decimal.NewFromInt(10000)) {
				continue
			}
			n := 1
			for _, other := range fontes[i+1:] {
				if other.ValorAnual.Equal(r.ValorAnual) {
					n++
				}
			}
			if n >= 2 {
				counted[key] = true
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf(
						"rendimentos identicos detectados: %dx R$ %s; verifique se nao ha duplicacao",
						n, r.ValorAnual.StringFixed(2)),
					Risco: domain.RiskMedium,
					Campo: "rendimentos",
				})
			}
		}
	}

	return warnings
}

// checkPrevidencia validates the INSS contribution against salaried income.
// Salaried income above the exemption line with no contribution at all is an
// inconsistency; ratios outside the expected band are warnings.
func (a *IncomeAnalyzer) checkPrevidencia(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	rendaCLT := decimal.Zero
	previdencia := decimal.Zero
	for _, r := range d.Rendimentos {
		if r.Tipo == domain.IncomeTrabalhoAssalariado {
			rendaCLT = rendaCLT.Add(r.ValorAnual)
			previdencia = previdencia.Add(r.ContribuicaoPrevidenciaria)
		}
	}
	if rendaCLT.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	baseCalculo := decimal.Min(rendaCLT, tetoINSSAnual)
	esperadoMin := baseCalculo.Mul(previdenciaMinRatio)

	if previdencia.IsZero() {
		if rendaCLT.LessThanOrEqual(rendaIsentaAnual) {
			return nil, nil
		}
		zero := decimal.Zero
		return []domain.Inconsistency{{
			Tipo: domain.IncValorZeradoSuspeito,
			Descricao: fmt.Sprintf(
				"renda assalariada de R$ %s declarada, mas sem contribuicao previdenciaria (INSS)",
				rendaCLT.StringFixed(2)),
			ValorDeclarado: &zero,
			ValorEsperado:  &esperadoMin,
			Risco:          domain.RiskHigh,
			Recomendacao:   "trabalhadores assalariados devem ter INSS retido; verifique o informe de rendimentos",
		}}, nil
	}

	ratio := previdencia.Div(rendaCLT)
	tolerancia := decimal.NewFromFloat(0.02)
	var warnings []domain.Warning
	if ratio.LessThan(previdenciaMinRatio.Sub(tolerancia)) {
		warnings = append(warnings, domain.Warning{
			Mensagem: fmt.Sprintf(
				"contribuicao previdenciaria baixa: %s%% da renda assalariada (esperado min %s%%)",
				ratio.Mul(decimal.NewFromInt(100)).StringFixed(1),
				previdenciaMinRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			Risco: domain.RiskLow,
			Campo: "rendimentos",
		})
	} else if ratio.GreaterThan(previdenciaMaxRatio.Add(tolerancia)) {
		warnings = append(warnings, domain.Warning{
			Mensagem: fmt.Sprintf(
				"contribuicao previdenciaria alta: %s%% da renda assalariada (esperado max %s%%)",
				ratio.Mul(decimal.NewFromInt(100)).StringFixed(1),
				previdenciaMaxRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			Risco: domain.RiskMedium,
			Campo: "rendimentos",
		})
	}
	return nil, warnings
}

// checkAlimony validates alimony proportionality: 10-40% of income is the
// normal range, above half the income is disproportionate.
func (a *IncomeAnalyzer) checkAlimony(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	pensao := d.ResumoDeducoes().PensaoAlimenticia
	if pensao.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	rendaTotal := d.RendaTotal()
	if rendaTotal.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	ratio := pensao.Div(rendaTotal)
	if ratio.GreaterThan(decimal.NewFromFloat(0.50)) {
		esperado := rendaTotal.Mul(a.Table.PensaoMaxRatio)
		return []domain.Inconsistency{{
			Tipo: domain.IncPensaoDesproporcional,
			Descricao: fmt.Sprintf(
				"pensao alimenticia representa %s%% da renda (R$ %s de R$ %s), acima do esperado (max ~%s%%)",
				ratio.Mul(decimal.NewFromInt(100)).StringFixed(0),
				pensao.StringFixed(2), rendaTotal.StringFixed(2),
				a.Table.PensaoMaxRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			ValorDeclarado: &pensao,
			ValorEsperado:  &esperado,
			Risco:          domain.RiskHigh,
			Recomendacao:   "pensao muito alta em relacao a renda; tenha a documentacao judicial comprobatoria",
		}}, nil
	}
	if ratio.GreaterThan(a.Table.PensaoMaxRatio) {
		return nil, []domain.Warning{{
			Mensagem: fmt.Sprintf(
				"pensao alimenticia representa %s%% da renda; valor significativo, mantenha documentacao comprobatoria",
				ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			Risco:       domain.RiskLow,
			Campo:       "deducoes",
			Informativo: true,
		}}
	}
	return nil, nil
}

// checkLivroCaixa validates cash-book deductions against self-employment
// income. The deduction only exists for autonomous professionals; the
// reverse situation (income without cash-book) is an optimization
// suggestion, not an inconsistency.
func (a *IncomeAnalyzer) checkLivroCaixa(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	livroCaixa := d.ResumoDeducoes().LivroCaixa
	if livroCaixa.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	rendaAutonoma := d.TotalRendimentosDoTipo(domain.IncomeTrabalhoNaoAssalariado)
	if rendaAutonoma.LessThanOrEqual(decimal.Zero) {
		zero := decimal.Zero
		return []domain.Inconsistency{{
			Tipo: domain.IncDeducaoSemComprovante,
			Descricao: fmt.Sprintf(
				"deducao de livro-caixa (R$ %s) sem rendimentos de trabalho autonomo declarados",
				livroCaixa.StringFixed(2)),
			ValorDeclarado: &livroCaixa,
			ValorEsperado:  &zero,
			Risco:          domain.RiskHigh,
			Recomendacao:   "livro-caixa e valido apenas para profissionais autonomos; declare os rendimentos correspondentes",
		}}, nil
	}

	ratio := livroCaixa.Div(rendaAutonoma)
	if ratio.GreaterThan(decimal.NewFromFloat(0.80)) {
		return nil, []domain.Warning{{
			Mensagem: fmt.Sprintf(
				"livro-caixa representa %s%% da renda autonoma; despesas muito altas, mantenha documentacao completa",
				ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			Risco: domain.RiskMedium,
			Campo: "deducoes",
		}}
	}
	return nil, nil
}

// checkDecimoTerceiro validates the year-end bonus against the expected
// one-twelfth of the annual salary, within a 20% tolerance.
func (a *IncomeAnalyzer) checkDecimoTerceiro(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning
	for _, r := range d.Rendimentos {
		if r.Tipo != domain.IncomeTrabalhoAssalariado {
			continue
		}
		if r.ValorAnual.LessThanOrEqual(decimal.Zero) || r.DecimoTerceiro.LessThanOrEqual(decimal.Zero) {
			continue
		}

		esperado := r.ValorAnual.Div(decimal.NewFromInt(12))
		tolerancia := esperado.Mul(decimoTerceiroTolerance)
		if r.DecimoTerceiro.Sub(esperado).Abs().LessThanOrEqual(tolerancia) {
			continue
		}

		direcao := "abaixo"
		if r.DecimoTerceiro.GreaterThan(esperado) {
			direcao = "acima"
		}
		warnings = append(warnings, domain.Warning{
			Mensagem: fmt.Sprintf(
				"13o salario %s do esperado de %s: R$ %s vs esperado ~R$ %s",
				direcao, r.NomeFonte(),
				r.DecimoTerceiro.StringFixed(2), esperado.StringFixed(2)),
			Risco:       domain.RiskLow,
			Campo:       "rendimentos",
			Informativo: true,
		})
	}
	return warnings
}

// checkExemptRatio warns when exempt income dominates the declaration.
func (a *IncomeAnalyzer) checkExemptRatio(d *domain.Declaration) *domain.Warning {
	tributavel := d.TotalRendimentosTributaveis
	isenta := d.TotalRendimentosIsentos
	if tributavel.LessThanOrEqual(decimal.Zero) || isenta.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	total := tributavel.Add(isenta)
	ratio := isenta.Div(total)
	if !ratio.GreaterThan(decimal.NewFromFloat(0.60)) {
		return nil
	}

	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"proporcao alta de rendimentos isentos: %s%% do total (R$ %s de R$ %s); mantenha documentacao comprobatoria",
			ratio.Mul(decimal.NewFromInt(100)).StringFixed(0),
			isenta.StringFixed(2), total.StringFixed(2)),
		Risco:       domain.RiskLow,
		Campo:       "rendimentos",
		Informativo: true,
	}
}
