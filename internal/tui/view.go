package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcosgabbardo/irpf-analyzer/internal/output"
)

func viewportNew(width, height int) viewport.Model {
	return viewport.New(width, height)
}

// View renders the application (required by tea.Model interface).
func (m Model) View() string {
	if m.err != nil {
		return AppStyle.Render(
			ErrorStyle.Render("Erro: "+m.err.Error()) +
				"\n\n" + StatusBarStyle.Render("q para sair"))
	}
	if m.loading || !m.ready || m.result == nil {
		return AppStyle.Render(m.loadingMessage)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(ContentStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render("tab/setas: navegar  •  ↑/↓: rolar  •  q: sair"))
	return AppStyle.Render(b.String())
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render(" Analise IRPF ")
	score := m.result.RiskScore
	badge := RiskStyle(score.Level).Render(
		fmt.Sprintf("risco %d/100 (%s)", score.Score, score.Level))
	sub := SubtitleStyle.Render(fmt.Sprintf("%s  •  exercicio %d",
		m.decl.Contribuinte.CPFMascarado(), m.decl.AnoExercicio))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge) + "\n" + sub
}

func (m Model) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTabContent() string {
	switch m.activeTab {
	case TabInconsistencias:
		return m.renderInconsistencies()
	case TabAlertas:
		return m.renderWarnings()
	case TabSugestoes:
		return m.renderSuggestions()
	case TabPatrimonio:
		return m.renderPatrimonyFlow()
	default:
		return m.renderSummary()
	}
}

func (m Model) renderSummary() string {
	var b strings.Builder
	score := m.result.RiskScore
	fmt.Fprintf(&b, "Score de risco: %s\n\n",
		RiskStyle(score.Level).Render(fmt.Sprintf("%d/100 (%s)", score.Score, score.Level)))
	b.WriteString("Fatores:\n")
	for _, f := range score.Fatores {
		fmt.Fprintf(&b, "  • %s\n", f)
	}
	fmt.Fprintf(&b, "\nInconsistencias: %d (criticas: %d, altas: %d)\n",
		m.result.TotalInconsistencies(), m.result.CriticalCount(), m.result.HighCount())
	fmt.Fprintf(&b, "Alertas: %d\n", len(m.result.Warnings))
	fmt.Fprintf(&b, "Sugestoes: %d\n", len(m.result.Suggestions))
	return b.String()
}

func (m Model) renderInconsistencies() string {
	if len(m.result.Inconsistencies) == 0 {
		return "Nenhuma inconsistencia encontrada."
	}
	var b strings.Builder
	for i, inc := range m.result.Inconsistencies {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1,
			RiskStyle(inc.Risco).Render("["+strings.ToUpper(string(inc.Risco))+"]"),
			inc.Descricao)
		if inc.ValorDeclarado != nil {
			fmt.Fprintf(&b, "   Declarado: %s\n", output.FormatCurrency(*inc.ValorDeclarado))
		}
		if inc.ValorEsperado != nil {
			fmt.Fprintf(&b, "   Esperado:  %s\n", output.FormatCurrency(*inc.ValorEsperado))
		}
		if inc.Recomendacao != "" {
			fmt.Fprintf(&b, "   %s\n", SubtitleStyle.Render(inc.Recomendacao))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderWarnings() string {
	if len(m.result.Warnings) == 0 {
		return "Nenhum alerta."
	}
	var b strings.Builder
	for i, w := range m.result.Warnings {
		marcador := RiskStyle(w.Risco).Render("[" + strings.ToUpper(string(w.Risco)) + "]")
		if w.Informativo {
			marcador = SubtitleStyle.Render("[INFO]")
		}
		fmt.Fprintf(&b, "%d. %s %s\n\n", i+1, marcador, w.Mensagem)
	}
	return b.String()
}

func (m Model) renderSuggestions() string {
	if len(m.result.Suggestions) == 0 {
		return "Nenhuma oportunidade de otimizacao identificada."
	}
	var b strings.Builder
	for i, s := range m.result.Suggestions {
		fmt.Fprintf(&b, "%d. [prioridade %d] %s\n   %s\n", i+1, s.Prioridade, s.Titulo, s.Descricao)
		if s.EconomiaPotencial != nil {
			fmt.Fprintf(&b, "   Economia potencial: %s\n", output.FormatCurrency(*s.EconomiaPotencial))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPatrimonyFlow() string {
	flow := m.result.PatrimonyFlow
	if flow == nil {
		return "Sem dados patrimoniais."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Patrimonio anterior:        %s\n", output.FormatCurrency(flow.PatrimonioAnterior))
	fmt.Fprintf(&b, "Patrimonio atual:           %s\n", output.FormatCurrency(flow.PatrimonioAtual))
	fmt.Fprintf(&b, "Variacao patrimonial:       %s\n", output.FormatCurrency(flow.VariacaoPatrimonial))
	fmt.Fprintf(&b, "Renda declarada:            %s\n", output.FormatCurrency(flow.RendaDeclarada))
	fmt.Fprintf(&b, "Despesas de vida estimadas: %s\n", output.FormatCurrency(flow.DespesasVidaEstimadas))
	fmt.Fprintf(&b, "Recursos disponiveis:       %s\n", output.FormatCurrency(flow.RecursosDisponiveis))
	fmt.Fprintf(&b, "Saldo:                      %s\n\n", output.FormatCurrency(flow.Saldo))
	if flow.Explicado {
		b.WriteString("Variacao patrimonial explicada pela renda declarada.\n")
	} else {
		b.WriteString(ErrorStyle.Render("Variacao patrimonial NAO explicada pela renda declarada.") + "\n")
	}
	return b.String()
}
