package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

// OptimizationAnalyzer compares filing regimes and identifies unused
// deduction capacity, producing prioritized savings suggestions.
type OptimizationAnalyzer struct {
	Table *rules.RuleTable
}

// NewOptimizationAnalyzer creates an optimization analyzer bound to a rule
// table.
func NewOptimizationAnalyzer(table *rules.RuleTable) *OptimizationAnalyzer {
	return &OptimizationAnalyzer{Table: table}
}

// Keywords that mark a deduction description as an incentive donation
// (child/adolescent, elderly, culture, audiovisual and sports funds).
// Deliberately a heuristic over free text: the declaration has no structured
// field for it. Kept behind this single function so a structured source can
// replace it without touching the analyzer.
var donationKeywords = []string{
	"ECA", "CRIANÇA", "CRIANCA", "ADOLESCENTE",
	"IDOSO", "CULTURA", "AUDIOVISUAL",
	"DESPORTO", "PRONON", "PRONAS",
}

// IsIncentiveDonation reports whether a deduction description looks like an
// incentive donation.
func IsIncentiveDonation(descricao string) bool {
	upper := strings.ToUpper(descricao)
	for _, kw := range donationKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// Analyze runs every optimization check and returns the suggestions sorted
// ascending by priority, ties keeping discovery order. Income outside the
// sanity range returns nothing: garbled input must not produce numbers.
func (a *OptimizationAnalyzer) Analyze(d *domain.Declaration) []domain.Suggestion {
	if !a.Table.RendaValida(d.TotalRendimentosTributaveis) {
		return nil
	}

	var suggestions []domain.Suggestion
	if s := a.checkRegime(d); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := a.checkPGBL(d); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := a.checkEducation(d); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := a.checkDonations(d); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := a.checkLivroCaixa(d); s != nil {
		suggestions = append(suggestions, *s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Prioridade < suggestions[j].Prioridade
	})
	return suggestions
}

// simplifiedDiscount is 20% of taxable income capped at the legal limit.
func (a *OptimizationAnalyzer) simplifiedDiscount(rendaTributavel decimal.Decimal) decimal.Decimal {
	return decimal.Min(
		rendaTributavel.Mul(decimal.NewFromFloat(0.20)),
		a.Table.LimiteSimplificada,
	)
}

// checkRegime compares the simplified discount with the itemized deduction
// total and suggests switching when the other regime clearly wins.
func (a *OptimizationAnalyzer) checkRegime(d *domain.Declaration) *domain.Suggestion {
	renda := d.TotalRendimentosTributaveis
	desconto := a.simplifiedDiscount(renda)
	totalDeducoes := d.TotalDeducoes()

	switch d.Regime {
	case domain.RegimeCompleta:
		if !desconto.GreaterThan(totalDeducoes) {
			return nil
		}
		economia := desconto.Sub(totalDeducoes)
		if economia.LessThan(a.Table.EconomiaMinimaSugestao) {
			return nil
		}
		economiaImposto := economia.Mul(a.Table.MarginalRate(renda))
		return &domain.Suggestion{
			Titulo: "Considere a declaracao simplificada",
			Descricao: fmt.Sprintf(
				"o desconto simplificado (R$ %s) e maior que suas deducoes (R$ %s); economia estimada de IR: R$ %s",
				desconto.StringFixed(2), totalDeducoes.StringFixed(2), economiaImposto.StringFixed(2)),
			EconomiaPotencial: &economiaImposto,
			Prioridade:        1,
		}

	case domain.RegimeSimplificada:
		if !totalDeducoes.GreaterThan(desconto) {
			return nil
		}
		economia := totalDeducoes.Sub(desconto)
		economiaImposto := economia.Mul(a.Table.MarginalRate(renda))
		if economiaImposto.LessThan(a.Table.EconomiaMinimaSugestao) {
			return nil
		}
		return &domain.Suggestion{
			Titulo: "Considere a declaracao completa",
			Descricao: fmt.Sprintf(
				"suas deducoes (R$ %s) superam o desconto simplificado (R$ %s); economia estimada de IR: R$ %s",
				totalDeducoes.StringFixed(2), desconto.StringFixed(2), economiaImposto.StringFixed(2)),
			EconomiaPotencial: &economiaImposto,
			Prioridade:        1,
		}
	}
	return nil
}

// checkPGBL looks for unused deductible private-pension headroom, up to 12%
// of taxable income, for incomes above the floor where the complete regime
// tends to pay off.
func (a *OptimizationAnalyzer) checkPGBL(d *domain.Declaration) *domain.Suggestion {
	renda := d.TotalRendimentosTributaveis
	if renda.LessThan(a.Table.RendaMinimaPGBL) {
		return nil
	}

	limite := renda.Mul(a.Table.LimitePGBL)
	usado := d.ResumoDeducoes().PrevidenciaPrivada
	espaco := limite.Sub(usado)
	if espaco.LessThan(a.Table.EspacoMinimoPGBL) {
		return nil
	}

	economia := espaco.Mul(a.Table.MarginalRate(renda))
	if economia.LessThan(a.Table.EconomiaMinimaSugestao) {
		return nil
	}

	return &domain.Suggestion{
		Titulo: "Oportunidade: contribuicao PGBL",
		Descricao: fmt.Sprintf(
			"voce pode deduzir ate R$ %s em PGBL (12%% da renda tributavel); espaco disponivel: R$ %s; aporte ate 31/12 do ano-calendario",
			limite.StringFixed(2), espaco.StringFixed(2)),
		EconomiaPotencial: &economia,
		Prioridade:        1,
	}
}

// checkEducation reminds the taxpayer of unused education headroom when the
// declared amount is under half the theoretical cap. Purely informational:
// there is no way to know whether eligible expenses exist.
func (a *OptimizationAnalyzer) checkEducation(d *domain.Declaration) *domain.Suggestion {
	educacao := d.ResumoDeducoes().DespesasEducacao
	if educacao.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	numPessoas := int64(1 + len(d.Dependentes))
	limite := a.Table.LimiteEducacaoPessoa.Mul(decimal.NewFromInt(numPessoas))
	if !educacao.LessThan(limite.Mul(decimal.NewFromFloat(0.5))) {
		return nil
	}

	return &domain.Suggestion{
		Titulo: "Verifique despesas com educacao",
		Descricao: fmt.Sprintf(
			"limite de educacao: R$ %s/pessoa (%d pessoas = R$ %s); declarado: R$ %s; confira se todas as despesas elegiveis foram incluidas",
			a.Table.LimiteEducacaoPessoa.StringFixed(2), numPessoas,
			limite.StringFixed(2), educacao.StringFixed(2)),
		Prioridade: 3,
	}
}

// checkDonations computes the remaining incentive-donation headroom, 6% of
// the tax due minus donations already identified by the keyword classifier.
// The amount offsets the tax directly, so the headroom is the saving.
func (a *OptimizationAnalyzer) checkDonations(d *domain.Declaration) *domain.Suggestion {
	if d.ImpostoDevido.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	limite := d.ImpostoDevido.Mul(a.Table.LimiteDoacoes)
	atuais := decimal.Zero
	for _, ded := range d.Deducoes {
		if IsIncentiveDonation(ded.Descricao) {
			atuais = atuais.Add(ded.Valor)
		}
	}

	espaco := limite.Sub(atuais)
	if espaco.LessThan(a.Table.EconomiaMinimaSugestao) {
		return nil
	}

	return &domain.Suggestion{
		Titulo: "Oportunidade: doacoes incentivadas",
		Descricao: fmt.Sprintf(
			"voce pode direcionar ate R$ %s (6%% do IR devido) para fundos incentivados (crianca, idoso, cultura, audiovisual, desporto); espaco disponivel: R$ %s, abatido diretamente do imposto",
			limite.StringFixed(2), espaco.StringFixed(2)),
		EconomiaPotencial: &espaco,
		Prioridade:        2,
	}
}

// checkLivroCaixa suggests cash-book bookkeeping to self-employed taxpayers
// who declared none.
func (a *OptimizationAnalyzer) checkLivroCaixa(d *domain.Declaration) *domain.Suggestion {
	rendaAutonoma := d.TotalRendimentosDoTipo(domain.IncomeTrabalhoNaoAssalariado)
	if rendaAutonoma.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if !d.ResumoDeducoes().LivroCaixa.IsZero() {
		return nil
	}

	return &domain.Suggestion{
		Titulo: "Verifique deducoes de livro-caixa",
		Descricao: fmt.Sprintf(
			"voce tem renda de trabalho autonomo (R$ %s) mas nao declarou livro-caixa; aluguel de consultorio, materiais e deslocamentos profissionais sao dedutiveis",
			rendaAutonoma.StringFixed(2)),
		Prioridade: 3,
	}
}
