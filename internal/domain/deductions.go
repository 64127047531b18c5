package domain

import (
	"github.com/shopspring/decimal"
)

// Deducao is a single deduction entry of the declaration.
type Deducao struct {
	Tipo  DeductionType   `yaml:"tipo" json:"tipo"`
	Valor decimal.Decimal `yaml:"valor" json:"valor"`

	// CPFBeneficiario identifies the person the deduction refers to
	// (dependent, alimony recipient).
	CPFBeneficiario string `yaml:"cpf_beneficiario,omitempty" json:"cpf_beneficiario,omitempty"`

	// CNPJPrestador / CPFPrestador identify the service provider for medical
	// and education expenses. Medical deductions without either are the main
	// rejection pattern in provider cross-matching.
	CNPJPrestador string `yaml:"cnpj_prestador,omitempty" json:"cnpj_prestador,omitempty"`
	CPFPrestador  string `yaml:"cpf_prestador,omitempty" json:"cpf_prestador,omitempty"`

	Descricao string `yaml:"descricao,omitempty" json:"descricao,omitempty"`
}

// TemPrestador reports whether any provider identity was recorded.
func (d Deducao) TemPrestador() bool {
	return d.CNPJPrestador != "" || d.CPFPrestador != ""
}

// ResumoDeducoes is the per-type deduction total, computed on read from the
// declaration entry list.
type ResumoDeducoes struct {
	PrevidenciaOficial decimal.Decimal `json:"previdencia_oficial"`
	PrevidenciaPrivada decimal.Decimal `json:"previdencia_privada"`
	Dependentes        decimal.Decimal `json:"dependentes"`
	DespesasMedicas    decimal.Decimal `json:"despesas_medicas"`
	DespesasEducacao   decimal.Decimal `json:"despesas_educacao"`
	PensaoAlimenticia  decimal.Decimal `json:"pensao_alimenticia"`
	LivroCaixa         decimal.Decimal `json:"livro_caixa"`
	Outras             decimal.Decimal `json:"outras"`
}

// Total returns the sum over every deduction type.
func (r ResumoDeducoes) Total() decimal.Decimal {
	return r.PrevidenciaOficial.
		Add(r.PrevidenciaPrivada).
		Add(r.Dependentes).
		Add(r.DespesasMedicas).
		Add(r.DespesasEducacao).
		Add(r.PensaoAlimenticia).
		Add(r.LivroCaixa).
		Add(r.Outras)
}
