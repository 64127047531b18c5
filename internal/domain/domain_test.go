package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRiskScore(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		expectedScore int
		expectedLevel RiskLevel
	}{
		{"zero", 0, 0, RiskLow},
		{"upper edge of low", 20, 20, RiskLow},
		{"lower edge of medium", 21, 21, RiskMedium},
		{"upper edge of medium", 50, 50, RiskMedium},
		{"lower edge of high", 51, 51, RiskHigh},
		{"upper edge of high", 75, 75, RiskHigh},
		{"lower edge of critical", 76, 76, RiskCritical},
		{"maximum", 100, 100, RiskCritical},
		{"clamped above", 180, 100, RiskCritical},
		{"clamped below", -5, 0, RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRiskScore(tt.score, []string{"fator"})
			assert.Equal(t, tt.expectedScore, rs.Score)
			assert.Equal(t, tt.expectedLevel, rs.Level)
		})
	}

	t.Run("nil factors become empty slice", func(t *testing.T) {
		rs := NewRiskScore(10, nil)
		assert.NotNil(t, rs.Fatores)
		assert.Empty(t, rs.Fatores)
	})
}

func TestCPFMascarado(t *testing.T) {
	c := Contribuinte{CPF: "12345678901"}
	assert.Equal(t, "***.***.***-01", c.CPFMascarado())

	t.Run("malformed CPF is fully masked", func(t *testing.T) {
		assert.Equal(t, "***.***.***-**", Contribuinte{CPF: "123"}.CPFMascarado())
		assert.Equal(t, "***.***.***-**", Contribuinte{}.CPFMascarado())
	})
}

func TestPercentualDespesasVida(t *testing.T) {
	tests := []struct {
		renda    int64
		expected int
	}{
		{30000, 100},
		{50000, 100},
		{50001, 80},
		{100000, 80},
		{100001, 65},
		{250001, 50},
		{500001, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PercentualDespesasVida(decimal.NewFromInt(tt.renda)),
			"renda %d", tt.renda)
	}
}

func TestDeclarationDerived(t *testing.T) {
	d := &Declaration{
		Rendimentos: []Rendimento{
			{Tipo: IncomeTrabalhoAssalariado, ValorAnual: decimal.NewFromInt(80000)},
			{Tipo: IncomeTrabalhoNaoAssalariado, ValorAnual: decimal.NewFromInt(20000)},
			{Tipo: IncomeTrabalhoAssalariado, ValorAnual: decimal.NewFromInt(15000)},
		},
		Deducoes: []Deducao{
			{Tipo: DeductionDespesasMedicas, Valor: decimal.NewFromInt(5000)},
			{Tipo: DeductionDespesasMedicas, Valor: decimal.NewFromInt(3000)},
			{Tipo: DeductionDespesasEducacao, Valor: decimal.NewFromInt(2000)},
		},
		TotalRendimentosTributaveis: decimal.NewFromInt(115000),
		TotalRendimentosIsentos:     decimal.NewFromInt(10000),
		TotalRendimentosExclusivos:  decimal.NewFromInt(5000),
	}

	assert.True(t, d.RendaTotal().Equal(decimal.NewFromInt(125000)))
	assert.True(t, d.RendaDeclarada().Equal(decimal.NewFromInt(130000)))

	assert.Len(t, d.RendimentosDoTipo(IncomeTrabalhoAssalariado), 2)
	assert.True(t, d.TotalRendimentosDoTipo(IncomeTrabalhoAssalariado).Equal(decimal.NewFromInt(95000)))
	assert.True(t, d.TotalRendimentosDoTipo(IncomeAlugueis).IsZero())

	assert.Len(t, d.DeducoesDoTipo(DeductionDespesasMedicas), 2)

	resumo := d.ResumoDeducoes()
	assert.True(t, resumo.DespesasMedicas.Equal(decimal.NewFromInt(8000)))
	assert.True(t, resumo.DespesasEducacao.Equal(decimal.NewFromInt(2000)))
	assert.True(t, resumo.Total().Equal(decimal.NewFromInt(10000)))
	assert.True(t, d.TotalDeducoes().Equal(decimal.NewFromInt(10000)))
}

func TestResumoPatrimonio(t *testing.T) {
	d := &Declaration{
		BensDireitos: []BemDireito{
			{Grupo: AssetImoveis, SituacaoAnterior: decimal.NewFromInt(300000), SituacaoAtual: decimal.NewFromInt(350000)},
			{Grupo: AssetPoupanca, SituacaoAnterior: decimal.Zero, SituacaoAtual: decimal.NewFromInt(50000)},
		},
		Dividas: []Divida{
			{SituacaoAnterior: decimal.NewFromInt(100000), SituacaoAtual: decimal.NewFromInt(80000)},
		},
	}

	resumo := d.ResumoPatrimonio()
	assert.True(t, resumo.TotalBensAnterior.Equal(decimal.NewFromInt(300000)))
	assert.True(t, resumo.TotalBensAtual.Equal(decimal.NewFromInt(400000)))
	assert.True(t, resumo.TotalDividasAtual.Equal(decimal.NewFromInt(80000)))

	// (400000-80000) - (300000-100000) = 120000
	assert.True(t, resumo.VariacaoPatrimonial().Equal(decimal.NewFromInt(120000)))
}

func TestBemDireito(t *testing.T) {
	novo := BemDireito{SituacaoAnterior: decimal.Zero, SituacaoAtual: decimal.NewFromInt(150000)}
	assert.True(t, novo.EhAquisicaoNova())
	assert.True(t, novo.VariacaoAbsoluta().Equal(decimal.NewFromInt(150000)))

	existente := BemDireito{SituacaoAnterior: decimal.NewFromInt(100000), SituacaoAtual: decimal.NewFromInt(150000)}
	assert.False(t, existente.EhAquisicaoNova())

	vazio := BemDireito{}
	assert.False(t, vazio.EhAquisicaoNova())

	assert.True(t, existente.VariacaoPercentual().Equal(decimal.NewFromInt(50)))
	assert.True(t, novo.VariacaoPercentual().IsZero(), "no prior value means no percentage")

	vendido := BemDireito{SituacaoAnterior: decimal.NewFromInt(200000), SituacaoAtual: decimal.Zero}
	assert.True(t, vendido.VariacaoPercentual().Equal(decimal.NewFromInt(-100)))
}

func TestAlienacao(t *testing.T) {
	ganho := Alienacao{NomeBem: "Quotas XYZ", GanhoCapital: decimal.NewFromInt(40000)}
	assert.True(t, ganho.TemGanho())
	assert.False(t, ganho.TemPerda())

	perda := Alienacao{NomeBem: "Terreno", GanhoCapital: decimal.NewFromInt(-5000)}
	assert.False(t, perda.TemGanho())
	assert.True(t, perda.TemPerda())

	neutra := Alienacao{NomeBem: "Veiculo"}
	assert.False(t, neutra.TemGanho())
	assert.False(t, neutra.TemPerda())
}

func TestAssetGroupIsFinancial(t *testing.T) {
	assert.True(t, AssetPoupanca.IsFinancial())
	assert.True(t, AssetFundos.IsFinancial())
	assert.False(t, AssetImoveis.IsFinancial())
	assert.False(t, AssetCriptoativos.IsFinancial())
}

func TestNomeFonte(t *testing.T) {
	r := Rendimento{FontePagadora: &FontePagadora{Nome: "Empresa X"}}
	assert.Equal(t, "Empresa X", r.NomeFonte())
	assert.Equal(t, "fonte nao informada", Rendimento{}.NomeFonte())
}

func TestAnalysisResultCounts(t *testing.T) {
	result := &AnalysisResult{
		Inconsistencies: []Inconsistency{
			{Risco: RiskCritical},
			{Risco: RiskHigh},
			{Risco: RiskLow},
		},
		Warnings: []Warning{
			{Risco: RiskHigh},
			{Risco: RiskLow},
		},
	}

	require.Equal(t, 3, result.TotalInconsistencies())
	assert.Equal(t, 1, result.CriticalCount())
	assert.Equal(t, 2, result.HighCount())
}
