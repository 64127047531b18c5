package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/marcosgabbardo/irpf-analyzer/internal/rules"
)

// LoadRuleTable loads a rule table for another tax year from a YAML file.
// Fields left out of the file keep the compiled-in 2025 values, so a table
// for a new year only needs to state what changed.
func LoadRuleTable(filename string) (*rules.RuleTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", filename, err)
	}

	table := rules.NewRuleTable2025()
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to parse rule table: %w", err)
	}

	if err := validateRuleTable(table); err != nil {
		return nil, fmt.Errorf("rule table validation failed: %w", err)
	}
	return table, nil
}

func validateRuleTable(t *rules.RuleTable) error {
	if t.AnoExercicio <= 0 {
		return fmt.Errorf("ano de exercicio e obrigatorio")
	}
	if len(t.Brackets) == 0 {
		return fmt.Errorf("tabela progressiva vazia")
	}
	if !t.Brackets[0].Base.IsZero() {
		return fmt.Errorf("primeira faixa deve comecar em zero")
	}
	for i := 1; i < len(t.Brackets); i++ {
		if !t.Brackets[i].Base.GreaterThan(t.Brackets[i-1].Base) {
			return fmt.Errorf("faixas devem ter bases crescentes (faixa %d)", i)
		}
	}
	for i, b := range t.Brackets {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("aliquota da faixa %d fora de [0, 1)", i)
		}
	}
	if !t.RendaMaximaValida.GreaterThan(t.RendaMinimaValida) {
		return fmt.Errorf("intervalo de renda valida invertido")
	}
	return nil
}
