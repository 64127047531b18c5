package analysis

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

func newDeductionAnalyzer() *DeductionAnalyzer {
	return NewDeductionAnalyzer(rules.NewRuleTable2025())
}

func medicalDeclaration(renda, medicas int64) *domain.Declaration {
	return &domain.Declaration{
		TotalRendimentosTributaveis: decimal.NewFromInt(renda),
		Deducoes: []domain.Deducao{
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromInt(medicas), CNPJPrestador: "11222333000144"},
		},
	}
}

func findInconsistency(incs []domain.Inconsistency, tipo domain.InconsistencyType) *domain.Inconsistency {
	for i := range incs {
		if incs[i].Tipo == tipo {
			return &incs[i]
		}
	}
	return nil
}

func TestCheckMedicalExpenses(t *testing.T) {
	a := newDeductionAnalyzer()

	t.Run("exactly fifteen percent passes", func(t *testing.T) {
		incs, _ := a.Analyze(medicalDeclaration(100000, 15000))
		assert.Nil(t, findInconsistency(incs, domain.IncDespesasMedicasAltas))
	})

	t.Run("thirty-five percent is high risk", func(t *testing.T) {
		incs, _ := a.Analyze(medicalDeclaration(100000, 35000))
		inc := findInconsistency(incs, domain.IncDespesasMedicasAltas)
		require.NotNil(t, inc)
		assert.Equal(t, domain.RiskHigh, inc.Risco)
		require.NotNil(t, inc.ValorEsperado)
		assert.True(t, inc.ValorEsperado.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("twenty-five percent is medium risk", func(t *testing.T) {
		incs, _ := a.Analyze(medicalDeclaration(100000, 25000))
		inc := findInconsistency(incs, domain.IncDespesasMedicasAltas)
		require.NotNil(t, inc)
		assert.Equal(t, domain.RiskMedium, inc.Risco)
	})

	t.Run("eighteen percent is low risk", func(t *testing.T) {
		incs, _ := a.Analyze(medicalDeclaration(100000, 18000))
		inc := findInconsistency(incs, domain.IncDespesasMedicasAltas)
		require.NotNil(t, inc)
		assert.Equal(t, domain.RiskLow, inc.Risco)
	})

	t.Run("no income means no ratio to judge", func(t *testing.T) {
		incs, _ := a.Analyze(medicalDeclaration(0, 20000))
		assert.Nil(t, findInconsistency(incs, domain.IncDespesasMedicasAltas))
	})
}

func TestCheckEducationLimit(t *testing.T) {
	a := newDeductionAnalyzer()

	t.Run("over the household cap", func(t *testing.T) {
		// Holder plus two dependents: cap is 3 x 3561.50 = 10684.50.
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			Dependentes: []domain.Dependente{
				{CPF: "11111111111"}, {CPF: "22222222222"},
			},
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionDespesasEducacao, Valor: decimal.NewFromInt(12000)},
			},
		}
		incs, _ := a.Analyze(d)
		inc := findInconsistency(incs, domain.IncDespesasEducacaoLimite)
		require.NotNil(t, inc)
		assert.Equal(t, domain.RiskHigh, inc.Risco)
		require.NotNil(t, inc.ValorEsperado)
		assert.True(t, inc.ValorEsperado.Equal(decimal.NewFromFloat(10684.50)))
	})

	t.Run("exactly at the cap passes", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(100000),
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionDespesasEducacao, Valor: decimal.NewFromFloat(3561.50)},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Nil(t, findInconsistency(incs, domain.IncDespesasEducacaoLimite))
	})
}

func TestCheckDuplicateDependents(t *testing.T) {
	a := newDeductionAnalyzer()

	t.Run("repeated CPF yields one critical finding", func(t *testing.T) {
		d := &domain.Declaration{
			Dependentes: []domain.Dependente{
				{CPF: "11111111111"},
				{CPF: "11111111111"},
				{CPF: "22222222222"},
			},
		}
		incs, _ := a.Analyze(d)
		inc := findInconsistency(incs, domain.IncDependenteDuplicado)
		require.NotNil(t, inc)
		assert.Equal(t, domain.RiskCritical, inc.Risco)
		assert.Contains(t, inc.Descricao, "11111111111")
	})

	t.Run("triplicate still yields a single finding", func(t *testing.T) {
		d := &domain.Declaration{
			Dependentes: []domain.Dependente{
				{CPF: "11111111111"},
				{CPF: "11111111111"},
				{CPF: "11111111111"},
			},
		}
		incs, _ := a.Analyze(d)
		count := 0
		for _, inc := range incs {
			if inc.Tipo == domain.IncDependenteDuplicado {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("distinct dependents pass", func(t *testing.T) {
		d := &domain.Declaration{
			Dependentes: []domain.Dependente{
				{CPF: "11111111111"}, {CPF: "22222222222"},
			},
		}
		incs, _ := a.Analyze(d)
		assert.Nil(t, findInconsistency(incs, domain.IncDependenteDuplicado))
	})
}

func TestCheckUnverifiedMedical(t *testing.T) {
	a := newDeductionAnalyzer()

	t.Run("large expense without provider identity", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(200000),
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromInt(6000)},
			},
		}
		_, warns := a.Analyze(d)
		require.NotEmpty(t, warns)
		assert.Contains(t, warns[0].Mensagem, "sem CNPJ/CPF do prestador")
		assert.Equal(t, domain.RiskMedium, warns[0].Risco)
	})

	t.Run("identified provider passes", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(200000),
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromInt(6000), CNPJPrestador: "11222333000144"},
			},
		}
		_, warns := a.Analyze(d)
		for _, w := range warns {
			assert.NotContains(t, w.Mensagem, "sem CNPJ/CPF")
		}
	})
}

func TestCheckRoundValues(t *testing.T) {
	a := newDeductionAnalyzer()

	t.Run("two or more round values are reported once", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(200000),
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionOutros, Valor: decimal.NewFromInt(1000)},
				{Tipo: domain.DeductionOutros, Valor: decimal.NewFromInt(2500)},
				{Tipo: domain.DeductionOutros, Valor: decimal.NewFromFloat(734.28)},
			},
		}
		_, warns := a.Analyze(d)
		var found *domain.Warning
		for i := range warns {
			if warns[i].Informativo {
				found = &warns[i]
			}
		}
		require.NotNil(t, found)
		assert.Contains(t, found.Mensagem, "valores redondos")
		assert.Contains(t, found.Mensagem, "R$ 1000.00")
	})

	t.Run("a single round value is not worth noting", func(t *testing.T) {
		d := &domain.Declaration{
			TotalRendimentosTributaveis: decimal.NewFromInt(200000),
			Deducoes: []domain.Deducao{
				{Tipo: domain.DeductionOutros, Valor: decimal.NewFromInt(1000)},
				{Tipo: domain.DeductionOutros, Valor: decimal.NewFromFloat(734.28)},
			},
		}
		_, warns := a.Analyze(d)
		for _, w := range warns {
			assert.NotContains(t, w.Mensagem, "valores redondos")
		}
	})
}

func TestCheckMedicalOutliers(t *testing.T) {
	a := newDeductionAnalyzer()

	d := &domain.Declaration{
		TotalRendimentosTributaveis: decimal.NewFromInt(900000),
		Deducoes: []domain.Deducao{
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromFloat(101.11), CNPJPrestador: "1"},
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromFloat(110.22), CNPJPrestador: "1"},
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromFloat(120.33), CNPJPrestador: "1"},
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromFloat(130.44), CNPJPrestador: "1"},
			{Tipo: domain.DeductionDespesasMedicas, Valor: decimal.NewFromFloat(4999.55), CNPJPrestador: "1"},
		},
	}
	_, warns := a.Analyze(d)
	var found bool
	for _, w := range warns {
		if w.Informativo && strings.Contains(w.Mensagem, "destoa das demais") {
			found = true
		}
	}
	assert.True(t, found, "expected an outlier warning")
}
