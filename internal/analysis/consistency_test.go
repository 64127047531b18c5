package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

func newConsistencyAnalyzer() *ConsistencyAnalyzer {
	return NewConsistencyAnalyzer(rules.NewRuleTable2025())
}

func TestCheckPatrimonyVsIncome(t *testing.T) {
	a := newConsistencyAnalyzer()

	t.Run("growth far beyond income is critical", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetImoveis, SituacaoAtual: decimal.NewFromInt(300000)},
			},
		}
		incs, _ := a.Analyze(d)
		require.Len(t, incs, 1)
		assert.Equal(t, domain.IncPatrimonioVsRenda, incs[0].Tipo)
		// 300000 growth against 50000 disposable income: ratio 6.
		assert.Equal(t, domain.RiskCritical, incs[0].Risco)
	})

	t.Run("growth within twice the disposable income passes", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetPoupanca, SituacaoAtual: decimal.NewFromInt(80000)},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Empty(t, incs)
	})

	t.Run("small swings are ignored", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(1000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetPoupanca, SituacaoAtual: decimal.NewFromInt(9000)},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Empty(t, incs)
	})

	t.Run("severity scales with the ratio", func(t *testing.T) {
		// Disposable income 50000; growth 180000 gives ratio 3.6: high.
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetPoupanca, SituacaoAtual: decimal.NewFromInt(180000)},
			},
		}
		incs, _ := a.Analyze(d)
		require.Len(t, incs, 1)
		assert.Equal(t, domain.RiskHigh, incs[0].Risco)
	})

	t.Run("debts reduce the measured growth", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetImoveis, SituacaoAtual: decimal.NewFromInt(300000)},
			},
			Dividas: []domain.Divida{
				{SituacaoAtual: decimal.NewFromInt(250000)},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Empty(t, incs, "financed acquisition should not be flagged")
	})
}

func TestCheckZeroIncome(t *testing.T) {
	a := newConsistencyAnalyzer()

	t.Run("patrimony with no income at all", func(t *testing.T) {
		d := &domain.Declaration{
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetImoveis, SituacaoAnterior: decimal.NewFromInt(150000), SituacaoAtual: decimal.NewFromInt(150000)},
			},
		}
		incs, _ := a.Analyze(d)
		require.Len(t, incs, 1)
		assert.Equal(t, domain.IncValorZeradoSuspeito, incs[0].Tipo)
		assert.Equal(t, domain.RiskHigh, incs[0].Risco)
	})

	t.Run("small patrimony is tolerated", func(t *testing.T) {
		d := &domain.Declaration{
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetVeiculos, SituacaoAnterior: decimal.NewFromInt(50000), SituacaoAtual: decimal.NewFromInt(50000)},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Empty(t, incs)
	})
}

func TestCheckAssetVariations(t *testing.T) {
	a := newConsistencyAnalyzer()

	soldProperty := func() domain.BemDireito {
		return domain.BemDireito{
			Grupo:            domain.AssetImoveis,
			Discriminacao:    "Apartamento na Rua Augusta 100, Sao Paulo",
			SituacaoAnterior: decimal.NewFromInt(300000),
			SituacaoAtual:    decimal.Zero,
		}
	}

	t.Run("large decrease without a declared sale", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos:                []domain.BemDireito{soldProperty()},
		}
		_, warns := a.Analyze(d)
		w := findWarning(warns, "venda nao declarada")
		require.NotNil(t, w)
		assert.Equal(t, domain.RiskMedium, w.Risco)
		assert.False(t, w.Informativo)
	})

	t.Run("matching alienation by name silences the flag", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos:                []domain.BemDireito{soldProperty()},
			Alienacoes: []domain.Alienacao{{
				NomeBem:        "Apartamento Rua Augusta",
				ValorAlienacao: decimal.NewFromInt(350000),
				CustoAquisicao: decimal.NewFromInt(300000),
				GanhoCapital:   decimal.NewFromInt(50000),
			}},
		}
		_, warns := a.Analyze(d)
		assert.Nil(t, findWarning(warns, "venda nao declarada"))
		w := findWarning(warns, "alienacao encontrada")
		require.NotNil(t, w)
		assert.Equal(t, domain.RiskLow, w.Risco)
	})

	t.Run("matching alienation by CNPJ", func(t *testing.T) {
		bem := domain.BemDireito{
			Grupo:            domain.AssetParticipacoesSocietarias,
			Discriminacao:    "Quotas da empresa XYZ Ltda, CNPJ 11222333000144",
			SituacaoAnterior: decimal.NewFromInt(80000),
			SituacaoAtual:    decimal.Zero,
		}
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos:                []domain.BemDireito{bem},
			Alienacoes: []domain.Alienacao{{
				NomeBem:        "Participacao societaria",
				CNPJ:           "11222333000144",
				ValorAlienacao: decimal.NewFromInt(90000),
			}},
		}
		_, warns := a.Analyze(d)
		assert.NotNil(t, findWarning(warns, "alienacao encontrada"))
	})

	t.Run("profit declared inside the asset entry", func(t *testing.T) {
		lucro := decimal.NewFromInt(12000)
		bem := soldProperty()
		bem.LucroPrejuizo = &lucro
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos:                []domain.BemDireito{bem},
		}
		_, warns := a.Analyze(d)
		w := findWarning(warns, "lucro/prejuizo informado")
		require.NotNil(t, w)
		assert.Equal(t, domain.RiskLow, w.Risco)
	})

	t.Run("foreign stock going to zero is informational", func(t *testing.T) {
		bem := domain.BemDireito{
			Grupo:            domain.AssetOutrosBens,
			Codigo:           "12",
			Discriminacao:    "100 acoes AAPL em US$ na corretora",
			SituacaoAnterior: decimal.NewFromInt(50000),
			SituacaoAtual:    decimal.Zero,
		}
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos:                []domain.BemDireito{bem},
		}
		_, warns := a.Analyze(d)
		w := findWarning(warns, "acao estrangeira zerada")
		require.NotNil(t, w)
		assert.True(t, w.Informativo)
	})

	t.Run("fixed income and balances going to zero are exempt", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{
					Grupo:            domain.AssetOutrosBens,
					Discriminacao:    "CDB Banco Alfa pos-fixado",
					SituacaoAnterior: decimal.NewFromInt(60000),
					SituacaoAtual:    decimal.Zero,
				},
				{
					Grupo:            domain.AssetPoupanca,
					SituacaoAnterior: decimal.NewFromInt(40000),
					SituacaoAtual:    decimal.Zero,
				},
			},
		}
		_, warns := a.Analyze(d)
		assert.Empty(t, warns)
	})

	t.Run("large unexplained increase", func(t *testing.T) {
		bem := domain.BemDireito{
			Grupo:            domain.AssetImoveis,
			Discriminacao:    "Terreno em Cotia",
			SituacaoAnterior: decimal.NewFromInt(100000),
			SituacaoAtual:    decimal.NewFromInt(400000),
		}
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(900000),
			BensDireitos:                []domain.BemDireito{bem},
		}
		_, warns := a.Analyze(d)
		w := findWarning(warns, "grande aumento em bem")
		require.NotNil(t, w)
		assert.Equal(t, domain.RiskLow, w.Risco)
	})
}

func TestPatrimonyFlow(t *testing.T) {
	a := newConsistencyAnalyzer()

	t.Run("explained growth", func(t *testing.T) {
		// Income 100000 sits in the 80% living-expense tier: 20000 available.
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetPoupanca, SituacaoAnterior: decimal.NewFromInt(40000), SituacaoAtual: decimal.NewFromInt(50000)},
			},
		}
		flow := a.PatrimonyFlow(d)
		require.NotNil(t, flow)
		assert.True(t, flow.DespesasVidaEstimadas.Equal(decimal.NewFromInt(80000)))
		assert.True(t, flow.RecursosDisponiveis.Equal(decimal.NewFromInt(20000)))
		assert.True(t, flow.VariacaoPatrimonial.Equal(decimal.NewFromInt(10000)))
		assert.True(t, flow.Saldo.Equal(decimal.NewFromInt(10000)))
		assert.True(t, flow.Explicado)
	})

	t.Run("unexplained growth", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			BensDireitos: []domain.BemDireito{
				{Grupo: domain.AssetPoupanca, SituacaoAtual: decimal.NewFromInt(90000)},
			},
		}
		flow := a.PatrimonyFlow(d)
		require.NotNil(t, flow)
		assert.False(t, flow.Explicado)
		assert.True(t, flow.Saldo.IsNegative())
	})
}
