package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
	"github.com/marcosgabbardo/irpf-analyzer/internal/stats"
)

// DeductionAnalyzer flags suspicious or non-compliant deduction entries.
type DeductionAnalyzer struct {
	Table *rules.RuleTable
}

// NewDeductionAnalyzer creates a deduction analyzer bound to a rule table.
func NewDeductionAnalyzer(table *rules.RuleTable) *DeductionAnalyzer {
	return &DeductionAnalyzer{Table: table}
}

// Single medical deductions above this need a provider identity.
var medicalReceiptThreshold = decimal.NewFromInt(5000)

// Round-value screening parameters.
var (
	roundTolerance = decimal.NewFromInt(100)
	roundMinimum   = decimal.NewFromInt(500)
)

// Analyze runs every deduction check against the declaration snapshot.
func (a *DeductionAnalyzer) Analyze(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	var inconsistencies []domain.Inconsistency
	var warnings []domain.Warning

	if inc := a.checkMedicalExpenses(d); inc != nil {
		inconsistencies = append(inconsistencies, *inc)
	}
	if inc := a.checkEducationLimit(d); inc != nil {
		inconsistencies = append(inconsistencies, *inc)
	}
	if inc := a.checkDuplicateDependents(d); inc != nil {
		inconsistencies = append(inconsistencies, *inc)
	}
	warnings = append(warnings, a.checkUnverifiedMedical(d)...)
	if w := a.checkRoundValues(d); w != nil {
		warnings = append(warnings, *w)
	}
	if w := a.checkBenford(d); w != nil {
		warnings = append(warnings, *w)
	}
	warnings = append(warnings, a.checkMedicalOutliers(d)...)

	return inconsistencies, warnings
}

// checkMedicalExpenses flags medical deductions above 15% of total income.
// The threshold is strict: exactly 15% passes.
func (a *DeductionAnalyzer) checkMedicalExpenses(d *domain.Declaration) *domain.Inconsistency {
	despesas := d.ResumoDeducoes().DespesasMedicas
	rendaTotal := d.RendaTotal()

	if rendaTotal.LessThanOrEqual(decimal.Zero) || despesas.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	ratio := despesas.Div(rendaTotal)
	if !ratio.GreaterThan(a.Table.LimiteDespesasMedicas) {
		return nil
	}

	percentual := ratio.Mul(decimal.NewFromInt(100))
	var risco domain.RiskLevel
	switch {
	case percentual.GreaterThan(decimal.NewFromInt(30)):
		risco = domain.RiskHigh
	case percentual.GreaterThan(decimal.NewFromInt(20)):
		risco = domain.RiskMedium
	default:
		risco = domain.RiskLow
	}

	esperado := rendaTotal.Mul(a.Table.LimiteDespesasMedicas)
	return &domain.Inconsistency{
		Tipo: domain.IncDespesasMedicasAltas,
		Descricao: fmt.Sprintf(
			"despesas medicas representam %s%% da renda (R$ %s de R$ %s)",
			percentual.StringFixed(1), despesas.StringFixed(2), rendaTotal.StringFixed(2)),
		ValorDeclarado: &despesas,
		ValorEsperado:  &esperado,
		Risco:          risco,
		Recomendacao:   "proporcao alta de despesas medicas exige documentacao completa (notas fiscais, recibos)",
	}
}

// checkEducationLimit flags education expenses above the legal per-person
// cap times the household size (holder plus dependents).
func (a *DeductionAnalyzer) checkEducationLimit(d *domain.Declaration) *domain.Inconsistency {
	educacao := d.ResumoDeducoes().DespesasEducacao
	if educacao.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	numPessoas := int64(1 + len(d.Dependentes))
	limite := a.Table.LimiteEducacaoPessoa.Mul(decimal.NewFromInt(numPessoas))
	if !educacao.GreaterThan(limite) {
		return nil
	}

	return &domain.Inconsistency{
		Tipo: domain.IncDespesasEducacaoLimite,
		Descricao: fmt.Sprintf(
			"despesas com educacao (R$ %s) excedem o limite legal de R$ %s para %d pessoa(s)",
			educacao.StringFixed(2), limite.StringFixed(2), numPessoas),
		ValorDeclarado: &educacao,
		ValorEsperado:  &limite,
		Risco:          domain.RiskHigh,
		Recomendacao: fmt.Sprintf(
			"o limite de deducao com educacao e R$ %s por pessoa/ano",
			a.Table.LimiteEducacaoPessoa.StringFixed(2)),
	}
}

// checkDuplicateDependents flags repeated dependent CPFs. One finding lists
// every duplicated identifier.
func (a *DeductionAnalyzer) checkDuplicateDependents(d *domain.Declaration) *domain.Inconsistency {
	if len(d.Dependentes) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	dupSeen := make(map[string]bool)
	var duplicates []string
	for _, dep := range d.Dependentes {
		if seen[dep.CPF] && !dupSeen[dep.CPF] {
			duplicates = append(duplicates, dep.CPF)
			dupSeen[dep.CPF] = true
		}
		seen[dep.CPF] = true
	}
	if len(duplicates) == 0 {
		return nil
	}

	return &domain.Inconsistency{
		Tipo: domain.IncDependenteDuplicado,
		Descricao: fmt.Sprintf(
			"CPF(s) de dependente(s) duplicado(s): %s",
			strings.Join(duplicates, ", ")),
		Risco:        domain.RiskCritical,
		Recomendacao: "cada dependente deve aparecer apenas uma vez",
	}
}

// checkUnverifiedMedical warns about individual medical deductions above the
// receipt threshold that carry no provider identity.
func (a *DeductionAnalyzer) checkUnverifiedMedical(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning
	for _, ded := range d.DeducoesDoTipo(domain.DeductionDespesasMedicas) {
		if ded.Valor.GreaterThan(medicalReceiptThreshold) && !ded.TemPrestador() {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"despesa medica de R$ %s sem CNPJ/CPF do prestador informado",
					ded.Valor.StringFixed(2)),
				Risco: domain.RiskMedium,
				Campo: "deducoes",
			})
		}
	}
	return warnings
}

// checkRoundValues screens deduction amounts for suspiciously round values.
// Estimates tend to be round; receipts rarely are.
func (a *DeductionAnalyzer) checkRoundValues(d *domain.Declaration) *domain.Warning {
	var valores []decimal.Decimal
	for _, ded := range d.Deducoes {
		valores = append(valores, ded.Valor)
	}

	redondos := stats.DetectRoundValues(valores, roundTolerance, roundMinimum)
	if len(redondos) < 2 {
		return nil
	}

	parts := make([]string, len(redondos))
	for i, v := range redondos {
		parts[i] = "R$ " + v.StringFixed(2)
	}
	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"%d deducoes com valores redondos (%s); valores estimados sao frequentemente questionados",
			len(redondos), strings.Join(parts, ", ")),
		Risco:       domain.RiskLow,
		Campo:       "deducoes",
		Informativo: true,
	}
}

// checkBenford runs the first-digit test over every income and deduction
// amount of the declaration. Only samples covering all nine digits are
// judged, so small declarations never trigger it.
func (a *DeductionAnalyzer) checkBenford(d *domain.Declaration) *domain.Warning {
	var valores []decimal.Decimal
	for _, r := range d.Rendimentos {
		valores = append(valores, r.ValorAnual)
	}
	for _, ded := range d.Deducoes {
		valores = append(valores, ded.Valor)
	}

	chi2, anomalo := stats.BenfordChiSquare(valores)
	if !anomalo {
		return nil
	}

	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"distribuicao de primeiros digitos foge da lei de Benford (chi2=%s); valores podem ter sido estimados",
			chi2.StringFixed(2)),
		Risco: domain.RiskMedium,
		Campo: "deducoes",
	}
}

// checkMedicalOutliers flags medical deduction entries far outside the range
// of the taxpayer's other medical expenses.
func (a *DeductionAnalyzer) checkMedicalOutliers(d *domain.Declaration) []domain.Warning {
	var valores []decimal.Decimal
	for _, ded := range d.DeducoesDoTipo(domain.DeductionDespesasMedicas) {
		valores = append(valores, ded.Valor)
	}

	var warnings []domain.Warning
	for _, o := range stats.IQROutliers(valores, stats.DefaultIQRMultiplier) {
		if o.Kind != stats.OutlierSuperior {
			continue
		}
		warnings = append(warnings, domain.Warning{
			Mensagem: fmt.Sprintf(
				"despesa medica de R$ %s destoa das demais despesas medicas declaradas",
				o.Valor.StringFixed(2)),
			Risco:       domain.RiskLow,
			Campo:       "deducoes",
			Informativo: true,
		})
	}
	return warnings
}
