package domain

import (
	"github.com/shopspring/decimal"
)

// Contribuinte is the taxpayer identification block.
type Contribuinte struct {
	// CPF is stored as the bare 11-digit string; formatting is stripped by
	// the loader.
	CPF  string `yaml:"cpf" json:"cpf"`
	Nome string `yaml:"nome" json:"nome"`

	OcupacaoPrincipal string `yaml:"ocupacao_principal,omitempty" json:"ocupacao_principal,omitempty"`
}

// CPFMascarado returns the CPF masked for display (***.***.***-XX).
func (c Contribuinte) CPFMascarado() string {
	if len(c.CPF) != 11 {
		return "***.***.***-**"
	}
	return "***.***.***-" + c.CPF[9:]
}

// Declaration is one taxpayer's annual filing record. It is assembled once
// by the loader and treated as immutable from then on: every analyzer is a
// pure function of this snapshot, and all derived summaries below are
// computed on read rather than cached.
type Declaration struct {
	Contribuinte  Contribuinte      `yaml:"contribuinte" json:"contribuinte"`
	AnoExercicio  int               `yaml:"ano_exercicio" json:"ano_exercicio"`
	AnoCalendario int               `yaml:"ano_calendario" json:"ano_calendario"`
	Regime        DeclarationRegime `yaml:"regime" json:"regime"`

	Rendimentos  []Rendimento `yaml:"rendimentos" json:"rendimentos"`
	Deducoes     []Deducao    `yaml:"deducoes" json:"deducoes"`
	BensDireitos []BemDireito `yaml:"bens_direitos" json:"bens_direitos"`
	Dividas      []Divida     `yaml:"dividas" json:"dividas"`
	Dependentes  []Dependente `yaml:"dependentes" json:"dependentes"`
	Alienacoes   []Alienacao  `yaml:"alienacoes" json:"alienacoes"`

	// Totals carried over from the declaration summary page. The parser
	// populates them; the analyzers read but never recompute them.
	TotalRendimentosTributaveis decimal.Decimal `yaml:"total_rendimentos_tributaveis" json:"total_rendimentos_tributaveis"`
	TotalRendimentosIsentos     decimal.Decimal `yaml:"total_rendimentos_isentos" json:"total_rendimentos_isentos"`
	TotalRendimentosExclusivos  decimal.Decimal `yaml:"total_rendimentos_exclusivos" json:"total_rendimentos_exclusivos"`
	ImpostoDevido               decimal.Decimal `yaml:"imposto_devido" json:"imposto_devido"`
	ImpostoPago                 decimal.Decimal `yaml:"imposto_pago" json:"imposto_pago"`
	SaldoImposto                decimal.Decimal `yaml:"saldo_imposto" json:"saldo_imposto"` // positive = to pay, negative = refund
}

// RendaTotal returns taxable plus exempt income, the denominator used by the
// proportionality checks.
func (d *Declaration) RendaTotal() decimal.Decimal {
	return d.TotalRendimentosTributaveis.Add(d.TotalRendimentosIsentos)
}

// RendaDeclarada returns every income class added together, including
// exclusive-taxation income.
func (d *Declaration) RendaDeclarada() decimal.Decimal {
	return d.TotalRendimentosTributaveis.
		Add(d.TotalRendimentosIsentos).
		Add(d.TotalRendimentosExclusivos)
}

// RendimentosDoTipo returns the income entries of a given type, in
// declaration order.
func (d *Declaration) RendimentosDoTipo(tipo IncomeType) []Rendimento {
	var out []Rendimento
	for _, r := range d.Rendimentos {
		if r.Tipo == tipo {
			out = append(out, r)
		}
	}
	return out
}

// TotalRendimentosDoTipo returns the summed annual value of every income
// entry of the given type.
func (d *Declaration) TotalRendimentosDoTipo(tipo IncomeType) decimal.Decimal {
	total := decimal.Zero
	for _, r := range d.Rendimentos {
		if r.Tipo == tipo {
			total = total.Add(r.ValorAnual)
		}
	}
	return total
}

// DeducoesDoTipo returns the deduction entries of a given type, in
// declaration order.
func (d *Declaration) DeducoesDoTipo(tipo DeductionType) []Deducao {
	var out []Deducao
	for _, ded := range d.Deducoes {
		if ded.Tipo == tipo {
			out = append(out, ded)
		}
	}
	return out
}

// ResumoDeducoes computes the per-type deduction totals.
func (d *Declaration) ResumoDeducoes() ResumoDeducoes {
	var r ResumoDeducoes
	for _, ded := range d.Deducoes {
		switch ded.Tipo {
		case DeductionPrevidenciaOficial:
			r.PrevidenciaOficial = r.PrevidenciaOficial.Add(ded.Valor)
		case DeductionPrevidenciaPrivada:
			r.PrevidenciaPrivada = r.PrevidenciaPrivada.Add(ded.Valor)
		case DeductionDependentes:
			r.Dependentes = r.Dependentes.Add(ded.Valor)
		case DeductionDespesasMedicas:
			r.DespesasMedicas = r.DespesasMedicas.Add(ded.Valor)
		case DeductionDespesasEducacao:
			r.DespesasEducacao = r.DespesasEducacao.Add(ded.Valor)
		case DeductionPensaoAlimenticia:
			r.PensaoAlimenticia = r.PensaoAlimenticia.Add(ded.Valor)
		case DeductionLivroCaixa:
			r.LivroCaixa = r.LivroCaixa.Add(ded.Valor)
		case DeductionOutros:
			r.Outras = r.Outras.Add(ded.Valor)
		default:
			r.Outras = r.Outras.Add(ded.Valor)
		}
	}
	return r
}

// ResumoPatrimonio computes the patrimony summary from the asset and debt
// entry lists.
func (d *Declaration) ResumoPatrimonio() ResumoPatrimonio {
	var r ResumoPatrimonio
	for _, b := range d.BensDireitos {
		r.TotalBensAnterior = r.TotalBensAnterior.Add(b.SituacaoAnterior)
		r.TotalBensAtual = r.TotalBensAtual.Add(b.SituacaoAtual)
	}
	for _, dv := range d.Dividas {
		r.TotalDividasAnterior = r.TotalDividasAnterior.Add(dv.SituacaoAnterior)
		r.TotalDividasAtual = r.TotalDividasAtual.Add(dv.SituacaoAtual)
	}
	return r
}

// TotalDeducoes returns the sum of every itemized deduction entry.
func (d *Declaration) TotalDeducoes() decimal.Decimal {
	total := decimal.Zero
	for _, ded := range d.Deducoes {
		total = total.Add(ded.Valor)
	}
	return total
}
