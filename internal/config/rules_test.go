package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRuleTable(t *testing.T) {
	path := writeRuleTable(t, `
ano_exercicio: 2026
limite_educacao_pessoa: 3700.00
`)
	table, err := LoadRuleTable(path)
	require.NoError(t, err)

	assert.Equal(t, 2026, table.AnoExercicio)
	assert.True(t, table.LimiteEducacaoPessoa.Equal(decimal.NewFromFloat(3700)))
	// Unstated fields keep the compiled-in values.
	assert.True(t, table.LimiteSimplificada.Equal(decimal.NewFromFloat(16754.34)))
	assert.Len(t, table.Brackets, 5)
}

func TestLoadRuleTableReplacesBrackets(t *testing.T) {
	path := writeRuleTable(t, `
ano_exercicio: 2026
brackets:
  - {base: 0, rate: 0, parcela: 0}
  - {base: 30000, rate: 0.10, parcela: 3000}
`)
	table, err := LoadRuleTable(path)
	require.NoError(t, err)
	require.Len(t, table.Brackets, 2)
	assert.True(t, table.MarginalRate(decimal.NewFromInt(40000)).Equal(decimal.NewFromFloat(0.10)))
}

func TestLoadRuleTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			"missing year",
			`{ano_exercicio: 0}`,
			"ano de exercicio",
		},
		{
			"nonzero first bracket",
			"ano_exercicio: 2026\nbrackets:\n  - {base: 100, rate: 0, parcela: 0}\n",
			"comecar em zero",
		},
		{
			"descending brackets",
			"ano_exercicio: 2026\nbrackets:\n  - {base: 0, rate: 0, parcela: 0}\n  - {base: 50000, rate: 0.1, parcela: 0}\n  - {base: 40000, rate: 0.2, parcela: 0}\n",
			"bases crescentes",
		},
		{
			"rate out of range",
			"ano_exercicio: 2026\nbrackets:\n  - {base: 0, rate: 1.5, parcela: 0}\n",
			"fora de [0, 1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRuleTable(writeRuleTable(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadRuleTableMissingFile(t *testing.T) {
	_, err := LoadRuleTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
