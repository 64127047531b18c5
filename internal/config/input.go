package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

// InputParser handles parsing of declaration input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a declaration from a YAML or JSON file. JSON is a subset
// of YAML, so one decoder covers both.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Declaration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a declaration from raw bytes.
func (ip *InputParser) Parse(data []byte) (*domain.Declaration, error) {
	var decl domain.Declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.normalize(&decl)

	if err := ip.ValidateDeclaration(&decl); err != nil {
		return nil, fmt.Errorf("declaration validation failed: %w", err)
	}
	return &decl, nil
}

// normalize strips formatting from identity fields so the analyzers can
// compare them directly.
func (ip *InputParser) normalize(decl *domain.Declaration) {
	decl.Contribuinte.CPF = stripNonDigits(decl.Contribuinte.CPF)
	for i := range decl.Dependentes {
		decl.Dependentes[i].CPF = stripNonDigits(decl.Dependentes[i].CPF)
	}
	for i := range decl.Deducoes {
		decl.Deducoes[i].CPFBeneficiario = stripNonDigits(decl.Deducoes[i].CPFBeneficiario)
		decl.Deducoes[i].CNPJPrestador = stripNonDigits(decl.Deducoes[i].CNPJPrestador)
		decl.Deducoes[i].CPFPrestador = stripNonDigits(decl.Deducoes[i].CPFPrestador)
	}
	for i := range decl.Rendimentos {
		if decl.Rendimentos[i].FontePagadora != nil {
			decl.Rendimentos[i].FontePagadora.CNPJCPF = stripNonDigits(decl.Rendimentos[i].FontePagadora.CNPJCPF)
		}
	}
	for i := range decl.Alienacoes {
		decl.Alienacoes[i].CNPJ = stripNonDigits(decl.Alienacoes[i].CNPJ)
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateDeclaration validates the loaded declaration.
func (ip *InputParser) ValidateDeclaration(decl *domain.Declaration) error {
	if decl.Contribuinte.CPF == "" {
		return fmt.Errorf("CPF do contribuinte e obrigatorio")
	}
	if len(decl.Contribuinte.CPF) != 11 {
		return fmt.Errorf("CPF do contribuinte deve ter 11 digitos, tem %d", len(decl.Contribuinte.CPF))
	}
	if decl.AnoExercicio <= 0 {
		return fmt.Errorf("ano de exercicio e obrigatorio")
	}
	if decl.AnoCalendario > 0 && decl.AnoCalendario != decl.AnoExercicio-1 {
		return fmt.Errorf("ano-calendario (%d) deve ser o ano anterior ao exercicio (%d)",
			decl.AnoCalendario, decl.AnoExercicio)
	}
	switch decl.Regime {
	case domain.RegimeCompleta, domain.RegimeSimplificada:
	default:
		return fmt.Errorf("regime invalido: %q (use completa ou simplificada)", decl.Regime)
	}

	for i, r := range decl.Rendimentos {
		if err := ip.validateRendimento(&r); err != nil {
			return fmt.Errorf("rendimento %d: %w", i, err)
		}
	}
	for i, d := range decl.Deducoes {
		if err := ip.validateDeducao(&d); err != nil {
			return fmt.Errorf("deducao %d: %w", i, err)
		}
	}
	for i, b := range decl.BensDireitos {
		if err := ip.validateBemDireito(&b); err != nil {
			return fmt.Errorf("bem/direito %d: %w", i, err)
		}
	}
	for i, al := range decl.Alienacoes {
		if err := ip.validateAlienacao(&al); err != nil {
			return fmt.Errorf("alienacao %d: %w", i, err)
		}
	}
	for i, dep := range decl.Dependentes {
		if dep.CPF != "" && len(dep.CPF) != 11 {
			return fmt.Errorf("dependente %d: CPF deve ter 11 digitos, tem %d", i, len(dep.CPF))
		}
	}

	if decl.TotalRendimentosTributaveis.LessThan(decimal.Zero) {
		return fmt.Errorf("total de rendimentos tributaveis nao pode ser negativo")
	}
	if decl.TotalRendimentosIsentos.LessThan(decimal.Zero) {
		return fmt.Errorf("total de rendimentos isentos nao pode ser negativo")
	}
	if decl.TotalRendimentosExclusivos.LessThan(decimal.Zero) {
		return fmt.Errorf("total de rendimentos exclusivos nao pode ser negativo")
	}
	if decl.ImpostoDevido.LessThan(decimal.Zero) {
		return fmt.Errorf("imposto devido nao pode ser negativo")
	}
	if decl.ImpostoPago.LessThan(decimal.Zero) {
		return fmt.Errorf("imposto pago nao pode ser negativo")
	}

	return nil
}

func (ip *InputParser) validateRendimento(r *domain.Rendimento) error {
	if !r.Tipo.Valid() {
		return fmt.Errorf("tipo de rendimento invalido: %q", r.Tipo)
	}
	if r.ValorAnual.LessThan(decimal.Zero) {
		return fmt.Errorf("valor anual nao pode ser negativo")
	}
	if r.ImpostoRetido.LessThan(decimal.Zero) {
		return fmt.Errorf("imposto retido nao pode ser negativo")
	}
	if r.ContribuicaoPrevidenciaria.LessThan(decimal.Zero) {
		return fmt.Errorf("contribuicao previdenciaria nao pode ser negativa")
	}
	return nil
}

func (ip *InputParser) validateDeducao(d *domain.Deducao) error {
	if !d.Tipo.Valid() {
		return fmt.Errorf("tipo de deducao invalido: %q", d.Tipo)
	}
	if d.Valor.LessThan(decimal.Zero) {
		return fmt.Errorf("valor nao pode ser negativo")
	}
	return nil
}

func (ip *InputParser) validateAlienacao(a *domain.Alienacao) error {
	if a.NomeBem == "" {
		return fmt.Errorf("nome do bem alienado e obrigatorio")
	}
	if a.ValorAlienacao.LessThan(decimal.Zero) {
		return fmt.Errorf("valor de alienacao nao pode ser negativo")
	}
	if a.CustoAquisicao.LessThan(decimal.Zero) {
		return fmt.Errorf("custo de aquisicao nao pode ser negativo")
	}
	if a.ImpostoDevido.LessThan(decimal.Zero) {
		return fmt.Errorf("imposto devido da alienacao nao pode ser negativo")
	}
	return nil
}

func (ip *InputParser) validateBemDireito(b *domain.BemDireito) error {
	if !b.Grupo.Valid() {
		return fmt.Errorf("grupo de bem invalido: %q", b.Grupo)
	}
	if b.SituacaoAnterior.LessThan(decimal.Zero) || b.SituacaoAtual.LessThan(decimal.Zero) {
		return fmt.Errorf("situacao de bem nao pode ser negativa")
	}
	return nil
}
