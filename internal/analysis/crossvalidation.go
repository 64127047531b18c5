package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

// CrossValidationAnalyzer simulates, from declaration data alone, the
// automatic registry crossings the Receita Federal runs: DIRF (employer
// withholding), DIMOB (real estate), e-Financeira (bank reporting), DMED
// (medical providers), DECRED (card spending) and DOC/TED (transfers).
// Every message names its source system so downstream consumers can group
// the warnings.
type CrossValidationAnalyzer struct {
	Table *rules.RuleTable
}

// NewCrossValidationAnalyzer creates a cross-validation analyzer bound to a
// rule table.
func NewCrossValidationAnalyzer(table *rules.RuleTable) *CrossValidationAnalyzer {
	return &CrossValidationAnalyzer{Table: table}
}

var (
	dirfIncomeThreshold      = decimal.NewFromInt(50000)
	dimobAcquisitionMinimum  = decimal.NewFromInt(100000)
	dmedThreshold            = decimal.NewFromInt(5000)
	decredPatrimonioMinimo   = decimal.NewFromInt(1000000)
	decredRendaBaixa         = decimal.NewFromInt(100000)
	docAcquisitionThreshold  = decimal.NewFromInt(50000)
	efinanceiraIncomeFactor  = decimal.NewFromInt(3)
	employerValueTolerance   = decimal.NewFromInt(1000)
)

// Analyze runs every simulated crossing against the declaration snapshot.
func (a *CrossValidationAnalyzer) Analyze(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	var warnings []domain.Warning

	warnings = append(warnings, a.checkDIRF(d)...)
	warnings = append(warnings, a.checkDIMOBAcquisitions(d)...)
	if w := a.checkDIMOBRental(d); w != nil {
		warnings = append(warnings, *w)
	}
	if w := a.checkEFinanceira(d); w != nil {
		warnings = append(warnings, *w)
	}
	warnings = append(warnings, a.checkDMED(d)...)
	if w := a.checkDECRED(d); w != nil {
		warnings = append(warnings, *w)
	}
	warnings = append(warnings, a.checkDuplicateEmployers(d)...)
	warnings = append(warnings, a.checkDOCAcquisitions(d)...)

	return nil, warnings
}

// checkDIRF flags high employment income with no withholding: the employer
// reports both sides via DIRF and a divergence is detected automatically.
func (a *CrossValidationAnalyzer) checkDIRF(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning
	for _, r := range d.Rendimentos {
		switch r.Tipo {
		case domain.IncomeTrabalhoAssalariado, domain.IncomeTrabalhoNaoAssalariado:
		default:
			continue
		}
		if r.FontePagadora == nil {
			continue
		}
		if r.ValorAnual.GreaterThan(dirfIncomeThreshold) && r.ImpostoRetido.IsZero() {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"renda de R$ %s sem IRRF declarado; o empregador (%s) reporta via DIRF e divergencias sao detectadas automaticamente",
					r.ValorAnual.StringFixed(2), r.FontePagadora.Nome),
				Risco: domain.RiskMedium,
				Campo: "rendimentos",
			})
		}
	}
	return warnings
}

// checkDIMOBAcquisitions flags new real estate above the declared income:
// notaries and property managers report every transaction via DIMOB.
func (a *CrossValidationAnalyzer) checkDIMOBAcquisitions(d *domain.Declaration) []domain.Warning {
	rendaTotal := d.RendaTotal()
	var warnings []domain.Warning
	for _, b := range d.BensDireitos {
		if b.Grupo != domain.AssetImoveis {
			continue
		}
		if !b.EhAquisicaoNova() || !b.SituacaoAtual.GreaterThan(dimobAcquisitionMinimum) {
			continue
		}
		if b.SituacaoAtual.GreaterThan(rendaTotal) {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"aquisicao de imovel (R$ %s) sera cruzada com a DIMOB; valor superior a renda declarada (R$ %s), tenha documentacao de origem",
					b.SituacaoAtual.StringFixed(2), rendaTotal.StringFixed(2)),
				Risco: domain.RiskMedium,
				Campo: "bens_direitos",
			})
		}
	}
	return warnings
}

// checkDIMOBRental warns about multiple properties with no rental income;
// if any of them is rented, the property manager's DIMOB will show it.
func (a *CrossValidationAnalyzer) checkDIMOBRental(d *domain.Declaration) *domain.Warning {
	var imoveis []domain.BemDireito
	for _, b := range d.BensDireitos {
		if b.Grupo == domain.AssetImoveis && b.SituacaoAtual.GreaterThan(decimal.Zero) {
			imoveis = append(imoveis, b)
		}
	}
	if len(imoveis) < 2 {
		return nil
	}

	rendaAluguel := d.TotalRendimentosDoTipo(domain.IncomeAlugueis)
	if !rendaAluguel.IsZero() {
		return nil
	}

	total := decimal.Zero
	for _, b := range imoveis {
		total = total.Add(b.SituacaoAtual)
	}
	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"possui %d imoveis (R$ %s) sem renda de aluguel declarada; se algum esta alugado, a DIMOB reportara o cruzamento",
			len(imoveis), total.StringFixed(2)),
		Risco:       domain.RiskLow,
		Campo:       "rendimentos",
		Informativo: true,
	}
}

// checkEFinanceira warns when financial holdings are an order of magnitude
// above income; institutions report balances and movements automatically.
func (a *CrossValidationAnalyzer) checkEFinanceira(d *domain.Declaration) *domain.Warning {
	totalFinanceiro := decimal.Zero
	for _, b := range d.BensDireitos {
		if b.Grupo.IsFinancial() {
			totalFinanceiro = totalFinanceiro.Add(b.SituacaoAtual)
		}
	}
	if totalFinanceiro.IsZero() {
		return nil
	}

	rendaTotal := d.RendaDeclarada()
	if !totalFinanceiro.GreaterThan(rendaTotal.Mul(efinanceiraIncomeFactor)) {
		return nil
	}

	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"patrimonio financeiro (R$ %s) muito superior a renda declarada (R$ %s); a e-Financeira reporta automaticamente, mantenha documentacao de origem",
			totalFinanceiro.StringFixed(2), rendaTotal.StringFixed(2)),
		Risco:       domain.RiskLow,
		Campo:       "bens_direitos",
		Informativo: true,
	}
}

// checkDMED cross-checks medical deductions with provider reporting: a high
// expense without provider identity risks rejection, and identified high
// expenses are informational only.
func (a *CrossValidationAnalyzer) checkDMED(d *domain.Declaration) []domain.Warning {
	porPrestador := make(map[string]decimal.Decimal)
	var ordem []string
	for _, ded := range d.DeducoesDoTipo(domain.DeductionDespesasMedicas) {
		if ded.Valor.LessThanOrEqual(decimal.Zero) {
			continue
		}
		id := ded.CNPJPrestador
		if id == "" {
			id = ded.CPFPrestador
		}
		if id == "" {
			id = "sem_id"
		}
		if _, ok := porPrestador[id]; !ok {
			ordem = append(ordem, id)
		}
		porPrestador[id] = porPrestador[id].Add(ded.Valor)
	}

	var warnings []domain.Warning
	for _, id := range ordem {
		valor := porPrestador[id]
		if !valor.GreaterThan(dmedThreshold) {
			continue
		}
		if id == "sem_id" {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"despesas medicas de R$ %s sem identificacao do prestador; a DMED cruza automaticamente e despesas sem CPF/CNPJ tem maior risco de rejeicao",
					valor.StringFixed(2)),
				Risco: domain.RiskMedium,
				Campo: "deducoes",
			})
		} else {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"despesas medicas de R$ %s serao cruzadas com a DMED do prestador; guarde recibos e notas fiscais",
					valor.StringFixed(2)),
				Risco:       domain.RiskLow,
				Campo:       "deducoes",
				Informativo: true,
			})
		}
	}
	return warnings
}

// checkDECRED warns about a lifestyle mismatch: high patrimony against low
// income, visible to the card-spending registry.
func (a *CrossValidationAnalyzer) checkDECRED(d *domain.Declaration) *domain.Warning {
	patrimonio := d.ResumoPatrimonio().TotalBensAtual
	rendaTotal := d.RendaTotal()

	if !patrimonio.GreaterThan(decredPatrimonioMinimo) || !rendaTotal.LessThan(decredRendaBaixa) {
		return nil
	}

	return &domain.Warning{
		Mensagem: fmt.Sprintf(
			"patrimonio alto (R$ %s) com renda relativamente baixa (R$ %s); a DECRED reporta gastos em cartao e o estilo de vida deve ser compativel com a renda",
			patrimonio.StringFixed(2), rendaTotal.StringFixed(2)),
		Risco:       domain.RiskLow,
		Campo:       "geral",
		Informativo: true,
	}
}

// checkDuplicateEmployers flags multiple salaried entries under the same
// payer with materially different values.
func (a *CrossValidationAnalyzer) checkDuplicateEmployers(d *domain.Declaration) []domain.Warning {
	vistos := make(map[string]decimal.Decimal)
	var warnings []domain.Warning
	for _, r := range d.Rendimentos {
		if r.Tipo != domain.IncomeTrabalhoAssalariado || r.FontePagadora == nil {
			continue
		}
		cnpj := r.FontePagadora.CNPJCPF
		if anterior, ok := vistos[cnpj]; ok {
			if anterior.Sub(r.ValorAnual).Abs().GreaterThan(employerValueTolerance) {
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf(
						"multiplas entradas de renda do mesmo empregador (%s); verifique se nao ha duplicacao",
						r.FontePagadora.Nome),
					Risco: domain.RiskMedium,
					Campo: "rendimentos",
				})
			}
			continue
		}
		vistos[cnpj] = r.ValorAnual
	}
	return warnings
}

// checkDOCAcquisitions marks high-value new assets whose funding transfer
// shows up in DOC/TED reporting.
func (a *CrossValidationAnalyzer) checkDOCAcquisitions(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning
	for _, b := range d.BensDireitos {
		if b.EhAquisicaoNova() && b.SituacaoAtual.GreaterThan(docAcquisitionThreshold) {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf(
					"aquisicao de R$ %s sera cruzada com registros de DOC/TED; mantenha documentacao da transferencia e da origem dos recursos",
					b.SituacaoAtual.StringFixed(2)),
				Risco:       domain.RiskLow,
				Campo:       "bens_direitos",
				Informativo: true,
			})
		}
	}
	return warnings
}
