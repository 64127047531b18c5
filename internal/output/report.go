package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

// ReportGenerator renders an analysis result in various formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes the report in the specified format.
func GenerateReport(w io.Writer, decl *domain.Declaration, result *domain.AnalysisResult, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.GenerateConsoleReport(w, decl, result)
	case "json":
		return generator.GenerateJSONReport(w, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

var riskLevelNames = map[domain.RiskLevel]string{
	domain.RiskLow:      "BAIXO",
	domain.RiskMedium:   "MEDIO",
	domain.RiskHigh:     "ALTO",
	domain.RiskCritical: "CRITICO",
}

// GenerateConsoleReport writes the full human-readable report.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, decl *domain.Declaration, result *domain.AnalysisResult) error {
	fmt.Fprintln(w, "=================================================================================")
	fmt.Fprintln(w, "ANALISE DE DECLARACAO IRPF")
	fmt.Fprintln(w, "=================================================================================")
	fmt.Fprintf(w, "Contribuinte: %s (CPF %s)\n", decl.Contribuinte.Nome, decl.Contribuinte.CPFMascarado())
	fmt.Fprintf(w, "Exercicio %d (ano-calendario %d), declaracao %s\n",
		decl.AnoExercicio, decl.AnoCalendario, decl.Regime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SCORE DE RISCO")
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "Score: %d/100 (%s)\n", result.RiskScore.Score, riskLevelNames[result.RiskScore.Level])
	for _, f := range result.RiskScore.Fatores {
		fmt.Fprintf(w, "  - %s\n", f)
	}
	fmt.Fprintln(w)

	if len(result.Inconsistencies) > 0 {
		fmt.Fprintf(w, "INCONSISTENCIAS (%d)\n", len(result.Inconsistencies))
		fmt.Fprintln(w, strings.Repeat("=", 20))
		for i, inc := range result.Inconsistencies {
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, riskLevelNames[inc.Risco], inc.Descricao)
			if inc.ValorDeclarado != nil {
				fmt.Fprintf(w, "   Declarado: %s\n", FormatCurrency(*inc.ValorDeclarado))
			}
			if inc.ValorEsperado != nil {
				fmt.Fprintf(w, "   Esperado:  %s\n", FormatCurrency(*inc.ValorEsperado))
			}
			if inc.Recomendacao != "" {
				fmt.Fprintf(w, "   Recomendacao: %s\n", inc.Recomendacao)
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "ALERTAS (%d)\n", len(result.Warnings))
		fmt.Fprintln(w, strings.Repeat("=", 20))
		for i, warn := range result.Warnings {
			marcador := riskLevelNames[warn.Risco]
			if warn.Informativo {
				marcador = "INFO"
			}
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, marcador, warn.Mensagem)
		}
		fmt.Fprintln(w)
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintf(w, "OPORTUNIDADES DE OTIMIZACAO (%d)\n", len(result.Suggestions))
		fmt.Fprintln(w, strings.Repeat("=", 20))
		for i, s := range result.Suggestions {
			fmt.Fprintf(w, "%d. [prioridade %d] %s\n", i+1, s.Prioridade, s.Titulo)
			fmt.Fprintf(w, "   %s\n", s.Descricao)
			if s.EconomiaPotencial != nil {
				fmt.Fprintf(w, "   Economia potencial: %s\n", FormatCurrency(*s.EconomiaPotencial))
			}
		}
		fmt.Fprintln(w)
	}

	if result.PatrimonyFlow != nil {
		rg.writePatrimonyFlow(w, result.PatrimonyFlow)
	}

	return nil
}

func (rg *ReportGenerator) writePatrimonyFlow(w io.Writer, flow *domain.PatrimonyFlow) {
	fmt.Fprintln(w, "FLUXO PATRIMONIAL")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "Patrimonio anterior:       %s\n", FormatCurrency(flow.PatrimonioAnterior))
	fmt.Fprintf(w, "Patrimonio atual:          %s\n", FormatCurrency(flow.PatrimonioAtual))
	fmt.Fprintf(w, "Variacao patrimonial:      %s\n", FormatCurrency(flow.VariacaoPatrimonial))
	fmt.Fprintf(w, "Renda declarada:           %s\n", FormatCurrency(flow.RendaDeclarada))
	fmt.Fprintf(w, "Despesas de vida estimadas: %s\n", FormatCurrency(flow.DespesasVidaEstimadas))
	fmt.Fprintf(w, "Recursos disponiveis:      %s\n", FormatCurrency(flow.RecursosDisponiveis))
	fmt.Fprintf(w, "Saldo:                     %s\n", FormatCurrency(flow.Saldo))
	if flow.Explicado {
		fmt.Fprintln(w, "Variacao patrimonial explicada pela renda declarada.")
	} else {
		fmt.Fprintln(w, "ATENCAO: variacao patrimonial NAO explicada pela renda declarada.")
	}
	fmt.Fprintln(w)
}

// GenerateJSONReport writes the analysis result as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, result *domain.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// FormatCurrency formats a decimal amount in Brazilian currency notation
// (R$ 1.234.567,89).
func FormatCurrency(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercentage formats a decimal as a percentage with two places.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
