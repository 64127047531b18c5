package domain

import (
	"github.com/shopspring/decimal"
)

// FontePagadora identifies the paying source of an income entry.
type FontePagadora struct {
	CNPJCPF string `yaml:"cnpj_cpf" json:"cnpj_cpf"`
	Nome    string `yaml:"nome" json:"nome"`
}

// Rendimento is a single income entry of the declaration. Entries are value
// records: they are built once by the parser and never mutated.
type Rendimento struct {
	Tipo IncomeType `yaml:"tipo" json:"tipo"`

	// ValorAnual is the annual gross amount received from this source.
	ValorAnual decimal.Decimal `yaml:"valor_anual" json:"valor_anual"`

	// ImpostoRetido is the tax withheld at source (IRRF).
	ImpostoRetido decimal.Decimal `yaml:"imposto_retido" json:"imposto_retido"`

	// ContribuicaoPrevidenciaria is the official social security (INSS)
	// contribution withheld on this income.
	ContribuicaoPrevidenciaria decimal.Decimal `yaml:"contribuicao_previdenciaria" json:"contribuicao_previdenciaria"`

	// DecimoTerceiro is the year-end bonus (13th salary) and its withholding.
	DecimoTerceiro     decimal.Decimal `yaml:"decimo_terceiro" json:"decimo_terceiro"`
	IRRFDecimoTerceiro decimal.Decimal `yaml:"irrf_decimo_terceiro" json:"irrf_decimo_terceiro"`

	FontePagadora *FontePagadora `yaml:"fonte_pagadora,omitempty" json:"fonte_pagadora,omitempty"`
}

// NomeFonte returns the paying source name or a placeholder when absent.
func (r Rendimento) NomeFonte() string {
	if r.FontePagadora == nil || r.FontePagadora.Nome == "" {
		return "fonte nao informada"
	}
	return r.FontePagadora.Nome
}
