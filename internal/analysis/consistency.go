package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

// ConsistencyAnalyzer flags mismatches between declared patrimony and
// declared income.
type ConsistencyAnalyzer struct {
	Table *rules.RuleTable
}

// NewConsistencyAnalyzer creates a consistency analyzer bound to a rule table.
func NewConsistencyAnalyzer(table *rules.RuleTable) *ConsistencyAnalyzer {
	return &ConsistencyAnalyzer{Table: table}
}

// Minimum patrimony variation worth looking at; small swings are noise.
var minPatrimonyVariation = decimal.NewFromInt(10000)

// Patrimony floor for the zero-income check.
var minPatrimonyZeroIncome = decimal.NewFromInt(100000)

// Analyze runs every consistency check against the declaration snapshot.
func (a *ConsistencyAnalyzer) Analyze(d *domain.Declaration) ([]domain.Inconsistency, []domain.Warning) {
	var inconsistencies []domain.Inconsistency
	var warnings []domain.Warning

	if inc := a.checkPatrimonyVsIncome(d); inc != nil {
		inconsistencies = append(inconsistencies, *inc)
	}
	if inc := a.checkZeroIncome(d); inc != nil {
		inconsistencies = append(inconsistencies, *inc)
	}
	warnings = append(warnings, a.checkAssetVariations(d)...)

	return inconsistencies, warnings
}

// checkPatrimonyVsIncome compares the year's patrimony growth with the
// income that could plausibly fund it. Half of the declared income is
// assumed consumed by living expenses; growth beyond twice the remainder is
// flagged, with severity scaling on the ratio.
func (a *ConsistencyAnalyzer) checkPatrimonyVsIncome(d *domain.Declaration) *domain.Inconsistency {
	variacao := d.ResumoPatrimonio().VariacaoPatrimonial()
	rendaTotal := d.RendaDeclarada()

	if rendaTotal.LessThanOrEqual(decimal.Zero) || variacao.Abs().LessThan(minPatrimonyVariation) {
		return nil
	}
	if variacao.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	rendaDisponivel := rendaTotal.Mul(decimal.NewFromFloat(0.5))
	if rendaDisponivel.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if variacao.LessThanOrEqual(rendaDisponivel.Mul(decimal.NewFromInt(2))) {
		return nil
	}

	ratio := variacao.Div(rendaDisponivel)
	var risco domain.RiskLevel
	switch {
	case ratio.GreaterThan(decimal.NewFromInt(5)):
		risco = domain.RiskCritical
	case ratio.GreaterThan(decimal.NewFromInt(3)):
		risco = domain.RiskHigh
	case ratio.GreaterThan(decimal.NewFromInt(2)):
		risco = domain.RiskMedium
	default:
		risco = domain.RiskLow
	}

	return &domain.Inconsistency{
		Tipo: domain.IncPatrimonioVsRenda,
		Descricao: fmt.Sprintf(
			"variacao patrimonial (R$ %s) superior a renda disponivel estimada (R$ %s)",
			variacao.StringFixed(2), rendaDisponivel.StringFixed(2)),
		ValorDeclarado: &variacao,
		ValorEsperado:  &rendaDisponivel,
		Risco:          risco,
		Recomendacao:   "verifique se ha rendimentos nao declarados ou valores de bens incorretos",
	}
}

// checkZeroIncome flags declarations that carry patrimony but no income at
// all, a classic omission pattern.
func (a *ConsistencyAnalyzer) checkZeroIncome(d *domain.Declaration) *domain.Inconsistency {
	rendaTotal := d.RendaTotal()
	patrimonio := d.ResumoPatrimonio().TotalBensAtual

	if patrimonio.LessThanOrEqual(minPatrimonyZeroIncome) || !rendaTotal.IsZero() {
		return nil
	}

	zero := decimal.Zero
	return &domain.Inconsistency{
		Tipo: domain.IncValorZeradoSuspeito,
		Descricao: fmt.Sprintf(
			"patrimonio de R$ %s declarado mas nenhum rendimento informado",
			patrimonio.StringFixed(2)),
		ValorDeclarado: &zero,
		Risco:          domain.RiskHigh,
		Recomendacao:   "verifique se todos os rendimentos foram declarados",
	}
}

// Keywords marking assets that normally go to zero without a taxable sale:
// fixed income is taxed at source and account balances just move.
var assetVariationExemptKeywords = []string{
	"CDB", "LCA", "LCI", "RENDA FIXA", "POUPANCA", "TESOURO", "DEBENTURE",
	"SALDO EM CONTA", "SALDO DE CONTA", "CONTA CORRENTE",
}

var foreignStockIndicators = []string{"US$", "USD", "$"}

var grandeReducaoPercentual = decimal.NewFromInt(-50)
var grandeAumentoValor = decimal.NewFromInt(100000)
var grandeAumentoPercentual = decimal.NewFromInt(100)

// checkAssetVariations walks the asset entries looking for swings the rest
// of the declaration does not account for. A big decrease is fine when the
// entry carries its own profit/loss or a matching disposal was declared;
// otherwise it reads as a possible undeclared sale.
func (a *ConsistencyAnalyzer) checkAssetVariations(d *domain.Declaration) []domain.Warning {
	var warnings []domain.Warning

	for _, bem := range d.BensDireitos {
		if assetExemptFromVariationWarning(bem) {
			continue
		}
		variacao := bem.VariacaoAbsoluta()
		percentual := bem.VariacaoPercentual()

		if variacao.LessThan(minPatrimonyVariation.Neg()) && percentual.LessThan(grandeReducaoPercentual) {
			switch {
			case bem.LucroPrejuizo != nil:
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf("venda declarada: %s (lucro/prejuizo informado no bem)",
						resumoDiscriminacao(bem.Discriminacao)),
					Risco: domain.RiskLow,
					Campo: "bens_direitos",
				})
			case hasMatchingAlienation(d, bem):
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf("venda declarada: %s (alienacao encontrada)",
						resumoDiscriminacao(bem.Discriminacao)),
					Risco: domain.RiskLow,
					Campo: "bens_direitos",
				})
			case isForeignStock(bem):
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf("acao estrangeira zerada: %s; pode ser venda sem lucro/prejuizo ou falta de declaracao",
						resumoDiscriminacao(bem.Discriminacao)),
					Risco:       domain.RiskMedium,
					Campo:       "bens_direitos",
					Informativo: true,
				})
			default:
				warnings = append(warnings, domain.Warning{
					Mensagem: fmt.Sprintf("grande reducao em bem (%s%%): %s; verifique se houve venda nao declarada",
						percentual.StringFixed(0), resumoDiscriminacao(bem.Discriminacao)),
					Risco: domain.RiskMedium,
					Campo: "bens_direitos",
				})
			}
			continue
		}

		if variacao.GreaterThan(grandeAumentoValor) && percentual.GreaterThan(grandeAumentoPercentual) {
			warnings = append(warnings, domain.Warning{
				Mensagem: fmt.Sprintf("grande aumento em bem (%s%%): %s; verifique a origem dos recursos",
					percentual.StringFixed(0), resumoDiscriminacao(bem.Discriminacao)),
				Risco: domain.RiskLow,
				Campo: "bens_direitos",
			})
		}
	}

	return warnings
}

// hasMatchingAlienation reports whether a declared disposal plausibly refers
// to this asset entry: either the disposal's CNPJ appears in the entry
// description or at least two of the disposal name's first three words do.
func hasMatchingAlienation(d *domain.Declaration, bem domain.BemDireito) bool {
	descricao := strings.ToUpper(bem.Discriminacao)

	for _, al := range d.Alienacoes {
		if al.CNPJ != "" && strings.Contains(bem.Discriminacao, al.CNPJ) {
			return true
		}
		if al.NomeBem == "" {
			continue
		}
		palavras := strings.Fields(strings.ToUpper(al.NomeBem))
		if len(palavras) > 3 {
			palavras = palavras[:3]
		}
		matches := 0
		for _, p := range palavras {
			if strings.Contains(descricao, p) {
				matches++
			}
		}
		if matches >= 2 {
			return true
		}
	}
	return false
}

func assetExemptFromVariationWarning(bem domain.BemDireito) bool {
	switch bem.Grupo {
	case domain.AssetAplicacoesFinanceiras, domain.AssetPoupanca, domain.AssetDepositosVista:
		return true
	}
	descricao := strings.ToUpper(bem.Discriminacao)
	for _, k := range assetVariationExemptKeywords {
		if strings.Contains(descricao, k) {
			return true
		}
	}
	return false
}

// isForeignStock recognizes codigo 12 entries held abroad, where the asset
// going to zero can be a legitimate break-even sale.
func isForeignStock(bem domain.BemDireito) bool {
	if bem.Codigo != "12" {
		return false
	}
	descricao := strings.ToUpper(bem.Discriminacao)
	for _, ind := range foreignStockIndicators {
		if strings.Contains(descricao, ind) {
			return true
		}
	}
	return false
}

func resumoDiscriminacao(s string) string {
	if len(s) > 50 {
		return s[:50] + "..."
	}
	if s == "" {
		return "(sem discriminacao)"
	}
	return s
}

// PatrimonyFlow breaks the patrimony variation down against declared
// resources, after discounting the tiered living-expense estimate. The
// breakdown is attached to the final result for reporting; it produces no
// findings itself.
func (a *ConsistencyAnalyzer) PatrimonyFlow(d *domain.Declaration) *domain.PatrimonyFlow {
	resumo := d.ResumoPatrimonio()
	rendaDeclarada := d.RendaDeclarada()

	pct := domain.PercentualDespesasVida(rendaDeclarada)
	despesas := rendaDeclarada.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
	recursos := rendaDeclarada.Sub(despesas)
	variacao := resumo.VariacaoPatrimonial()
	saldo := recursos.Sub(variacao)

	return &domain.PatrimonyFlow{
		PatrimonioAnterior:    resumo.TotalBensAnterior.Sub(resumo.TotalDividasAnterior),
		PatrimonioAtual:       resumo.TotalBensAtual.Sub(resumo.TotalDividasAtual),
		VariacaoPatrimonial:   variacao,
		RendaDeclarada:        rendaDeclarada,
		DespesasVidaEstimadas: despesas,
		RecursosDisponiveis:   recursos,
		Saldo:                 saldo,
		Explicado:             saldo.GreaterThanOrEqual(decimal.Zero),
	}
}
