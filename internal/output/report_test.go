package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

func sampleDeclaration() *domain.Declaration {
	return &domain.Declaration{
		Contribuinte:  domain.Contribuinte{CPF: "12345678901", Nome: "Maria da Silva"},
		AnoExercicio:  2025,
		AnoCalendario: 2024,
		Regime:        domain.RegimeCompleta,
	}
}

func sampleResult() *domain.AnalysisResult {
	declarado := decimal.NewFromInt(40000)
	esperado := decimal.NewFromInt(15000)
	economia := decimal.NewFromFloat(5225)
	return &domain.AnalysisResult{
		RiskScore: domain.RiskScore{
			Score:   45,
			Level:   domain.RiskMedium,
			Fatores: []string{"despesas medicas desproporcionais a renda"},
		},
		Inconsistencies: []domain.Inconsistency{{
			Tipo:           domain.IncDespesasMedicasAltas,
			Descricao:      "despesas medicas representam 40% da renda",
			ValorDeclarado: &declarado,
			ValorEsperado:  &esperado,
			Risco:          domain.RiskHigh,
			Recomendacao:   "mantenha os recibos dos prestadores",
		}},
		Warnings: []domain.Warning{
			{Mensagem: "IRRF baixo para a faixa de renda", Risco: domain.RiskLow, Campo: "rendimentos"},
			{Mensagem: "patrimonio financeiro sujeito a e-Financeira", Risco: domain.RiskLow, Campo: "bens_direitos", Informativo: true},
		},
		Suggestions: []domain.Suggestion{{
			Titulo:            "Aportar em PGBL",
			Descricao:         "ha espaco de deducao previdenciaria nao utilizado",
			EconomiaPotencial: &economia,
			Prioridade:        1,
		}},
		PatrimonyFlow: &domain.PatrimonyFlow{
			PatrimonioAnterior:    decimal.NewFromInt(100000),
			PatrimonioAtual:       decimal.NewFromInt(120000),
			VariacaoPatrimonial:   decimal.NewFromInt(20000),
			RendaDeclarada:        decimal.NewFromInt(100000),
			DespesasVidaEstimadas: decimal.NewFromInt(80000),
			RecursosDisponiveis:   decimal.NewFromInt(20000),
			Saldo:                 decimal.Zero,
			Explicado:             true,
		},
	}
}

func TestGenerateConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, sampleDeclaration(), sampleResult(), "console")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ANALISE DE DECLARACAO IRPF")
	assert.Contains(t, out, "Maria da Silva")
	assert.Contains(t, out, "***.***.***-01", "CPF is masked")
	assert.Contains(t, out, "SCORE DE RISCO")
	assert.Contains(t, out, "Score: 45/100 (MEDIO)")
	assert.Contains(t, out, "INCONSISTENCIAS (1)")
	assert.Contains(t, out, "[ALTO] despesas medicas")
	assert.Contains(t, out, "Declarado: R$ 40.000,00")
	assert.Contains(t, out, "Esperado:  R$ 15.000,00")
	assert.Contains(t, out, "ALERTAS (2)")
	assert.Contains(t, out, "[INFO] patrimonio financeiro")
	assert.Contains(t, out, "OPORTUNIDADES DE OTIMIZACAO (1)")
	assert.Contains(t, out, "Economia potencial: R$ 5.225,00")
	assert.Contains(t, out, "FLUXO PATRIMONIAL")
	assert.Contains(t, out, "explicada pela renda declarada")
}

func TestGenerateConsoleReportUnexplainedFlow(t *testing.T) {
	result := sampleResult()
	result.PatrimonyFlow.Explicado = false

	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, sampleDeclaration(), result, "console"))
	assert.Contains(t, buf.String(), "NAO explicada")
}

func TestGenerateJSONReport(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, sampleDeclaration(), sampleResult(), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	risk, ok := decoded["risk_score"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(45), risk["score"])

	assert.Len(t, decoded["inconsistencies"], 1)
	assert.Len(t, decoded["warnings"], 2)
	assert.Len(t, decoded["suggestions"], 1)
	assert.NotNil(t, decoded["patrimony_flow"])
}

func TestGenerateReportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, sampleDeclaration(), sampleResult(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "R$ 0,00"},
		{decimal.NewFromFloat(123.45), "R$ 123,45"},
		{decimal.NewFromInt(1000), "R$ 1.000,00"},
		{decimal.NewFromFloat(1234567.89), "R$ 1.234.567,89"},
		{decimal.NewFromInt(-1000), "-R$ 1.000,00"},
		{decimal.NewFromFloat(0.5), "R$ 0,50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "27.50%", FormatPercentage(decimal.NewFromFloat(27.5)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}
