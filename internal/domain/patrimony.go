package domain

import (
	"github.com/shopspring/decimal"
)

// BemDireito is a single asset entry (bens e direitos schedule).
type BemDireito struct {
	Grupo  AssetGroup `yaml:"grupo" json:"grupo"`
	Codigo string     `yaml:"codigo,omitempty" json:"codigo,omitempty"`

	Discriminacao string `yaml:"discriminacao,omitempty" json:"discriminacao,omitempty"`

	// SituacaoAnterior / SituacaoAtual are the declared values at the end of
	// the prior and current calendar years.
	SituacaoAnterior decimal.Decimal `yaml:"situacao_anterior" json:"situacao_anterior"`
	SituacaoAtual    decimal.Decimal `yaml:"situacao_atual" json:"situacao_atual"`

	// LucroPrejuizo is the profit or loss declared inside the asset entry
	// itself (used for foreign stock positions).
	LucroPrejuizo *decimal.Decimal `yaml:"lucro_prejuizo,omitempty" json:"lucro_prejuizo,omitempty"`

	// Localizacao identifies the custodian institution or property location.
	Localizacao string `yaml:"localizacao,omitempty" json:"localizacao,omitempty"`
}

// VariacaoAbsoluta returns the year-over-year value change of the asset.
func (b BemDireito) VariacaoAbsoluta() decimal.Decimal {
	return b.SituacaoAtual.Sub(b.SituacaoAnterior)
}

// VariacaoPercentual returns the year-over-year change as a percentage of
// the prior value, or zero when the asset had no prior value.
func (b BemDireito) VariacaoPercentual() decimal.Decimal {
	if b.SituacaoAnterior.IsZero() {
		return decimal.Zero
	}
	return b.VariacaoAbsoluta().Div(b.SituacaoAnterior).Mul(decimal.NewFromInt(100))
}

// EhAquisicaoNova reports whether the asset first appears this year.
func (b BemDireito) EhAquisicaoNova() bool {
	return b.SituacaoAnterior.IsZero() && b.SituacaoAtual.GreaterThan(decimal.Zero)
}

// Alienacao is a declared sale or disposal of an asset (ganhos de capital
// schedule). A declared alienation explains an asset entry going down or to
// zero during the year.
type Alienacao struct {
	NomeBem       string `yaml:"nome_bem" json:"nome_bem"`
	CNPJ          string `yaml:"cnpj,omitempty" json:"cnpj,omitempty"`
	TipoOperacao  string `yaml:"tipo_operacao,omitempty" json:"tipo_operacao,omitempty"`
	DataAlienacao string `yaml:"data_alienacao,omitempty" json:"data_alienacao,omitempty"`

	ValorAlienacao decimal.Decimal `yaml:"valor_alienacao" json:"valor_alienacao"`
	CustoAquisicao decimal.Decimal `yaml:"custo_aquisicao" json:"custo_aquisicao"`
	GanhoCapital   decimal.Decimal `yaml:"ganho_capital" json:"ganho_capital"`
	ImpostoDevido  decimal.Decimal `yaml:"imposto_devido" json:"imposto_devido"`
}

// TemGanho reports whether the disposal produced a capital gain.
func (a Alienacao) TemGanho() bool {
	return a.GanhoCapital.GreaterThan(decimal.Zero)
}

// TemPerda reports whether the disposal produced a capital loss.
func (a Alienacao) TemPerda() bool {
	return a.GanhoCapital.LessThan(decimal.Zero)
}

// Divida is a single debt entry (dividas e onus reais schedule).
type Divida struct {
	SituacaoAnterior decimal.Decimal `yaml:"situacao_anterior" json:"situacao_anterior"`
	SituacaoAtual    decimal.Decimal `yaml:"situacao_atual" json:"situacao_atual"`
	ValorPago        decimal.Decimal `yaml:"valor_pago" json:"valor_pago"`
	Credor           string          `yaml:"credor,omitempty" json:"credor,omitempty"`
}

// ResumoPatrimonio is the patrimony summary, computed on read from the asset
// and debt entry lists.
type ResumoPatrimonio struct {
	TotalBensAnterior    decimal.Decimal `json:"total_bens_anterior"`
	TotalBensAtual       decimal.Decimal `json:"total_bens_atual"`
	TotalDividasAnterior decimal.Decimal `json:"total_dividas_anterior"`
	TotalDividasAtual    decimal.Decimal `json:"total_dividas_atual"`
}

// VariacaoPatrimonial returns the net patrimony change over the year
// (assets minus debts, current versus prior).
func (r ResumoPatrimonio) VariacaoPatrimonial() decimal.Decimal {
	anterior := r.TotalBensAnterior.Sub(r.TotalDividasAnterior)
	atual := r.TotalBensAtual.Sub(r.TotalDividasAtual)
	return atual.Sub(anterior)
}
