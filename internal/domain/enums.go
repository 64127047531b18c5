package domain

// DeclarationRegime is the filing mode chosen by the taxpayer.
type DeclarationRegime string

const (
	RegimeCompleta     DeclarationRegime = "completa"
	RegimeSimplificada DeclarationRegime = "simplificada"
)

// IncomeType classifies a Rendimento entry.
type IncomeType string

const (
	IncomeTrabalhoAssalariado    IncomeType = "trabalho_assalariado"
	IncomeTrabalhoNaoAssalariado IncomeType = "trabalho_nao_assalariado"
	IncomeAlugueis               IncomeType = "alugueis"
	IncomeLucrosDividendos       IncomeType = "lucros_dividendos"
	IncomeGanhoCapital           IncomeType = "ganho_capital"
	IncomeRendimentosIsentos     IncomeType = "rendimentos_isentos"
	IncomeTributacaoExclusiva    IncomeType = "tributacao_exclusiva"
	IncomeRendimentosExterior    IncomeType = "rendimentos_exterior"
	IncomeOutros                 IncomeType = "outros"
)

// Valid reports whether the value is one of the known income types.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeTrabalhoAssalariado, IncomeTrabalhoNaoAssalariado, IncomeAlugueis,
		IncomeLucrosDividendos, IncomeGanhoCapital, IncomeRendimentosIsentos,
		IncomeTributacaoExclusiva, IncomeRendimentosExterior, IncomeOutros:
		return true
	}
	return false
}

// DeductionType classifies a Deducao entry.
type DeductionType string

const (
	DeductionPrevidenciaOficial DeductionType = "previdencia_oficial"
	DeductionPrevidenciaPrivada DeductionType = "previdencia_privada"
	DeductionDependentes        DeductionType = "dependentes"
	DeductionDespesasMedicas    DeductionType = "despesas_medicas"
	DeductionDespesasEducacao   DeductionType = "despesas_educacao"
	DeductionPensaoAlimenticia  DeductionType = "pensao_alimenticia"
	DeductionLivroCaixa         DeductionType = "livro_caixa"
	DeductionOutros             DeductionType = "outros"
)

// Valid reports whether the value is one of the known deduction types.
func (t DeductionType) Valid() bool {
	switch t {
	case DeductionPrevidenciaOficial, DeductionPrevidenciaPrivada, DeductionDependentes,
		DeductionDespesasMedicas, DeductionDespesasEducacao, DeductionPensaoAlimenticia,
		DeductionLivroCaixa, DeductionOutros:
		return true
	}
	return false
}

// AssetGroup is the two-digit "grupo de bens e direitos" code used by the
// Receita Federal asset schedule.
type AssetGroup string

const (
	AssetImoveis                  AssetGroup = "01"
	AssetVeiculos                 AssetGroup = "02"
	AssetParticipacoesSocietarias AssetGroup = "03"
	AssetAplicacoesFinanceiras    AssetGroup = "04"
	AssetPoupanca                 AssetGroup = "05"
	AssetDepositosVista           AssetGroup = "06"
	AssetFundos                   AssetGroup = "07"
	AssetCriptoativos             AssetGroup = "08"
	AssetOutrosBens               AssetGroup = "99"
)

// Valid reports whether the value is one of the known asset group codes.
func (g AssetGroup) Valid() bool {
	switch g {
	case AssetImoveis, AssetVeiculos, AssetParticipacoesSocietarias,
		AssetAplicacoesFinanceiras, AssetPoupanca, AssetDepositosVista,
		AssetFundos, AssetCriptoativos, AssetOutrosBens:
		return true
	}
	return false
}

// IsFinancial reports whether the group is held at a financial institution
// and therefore shows up in bank reporting (e-Financeira).
func (g AssetGroup) IsFinancial() bool {
	switch g {
	case AssetAplicacoesFinanceiras, AssetPoupanca, AssetDepositosVista, AssetFundos:
		return true
	}
	return false
}

// DependentType classifies a Dependente entry.
type DependentType string

const (
	DependentConjuge                   DependentType = "conjuge"
	DependentCompanheiro               DependentType = "companheiro"
	DependentFilhoEnteadoAte21         DependentType = "filho_enteado_ate_21"
	DependentFilhoEnteadoUniversitario DependentType = "filho_enteado_universitario"
	DependentFilhoEnteadoIncapaz       DependentType = "filho_enteado_incapaz"
	DependentIrmaoNetoBisneto          DependentType = "irmao_neto_bisneto"
	DependentPaisAvosBisavos           DependentType = "pais_avos_bisavos"
	DependentMenorPobre                DependentType = "menor_pobre"
	DependentIncapazTutelado           DependentType = "incapaz_tutelado"
)

// RiskLevel classifies the severity of a finding and the overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "baixo"
	RiskMedium   RiskLevel = "medio"
	RiskHigh     RiskLevel = "alto"
	RiskCritical RiskLevel = "critico"
)

// InconsistencyType identifies the category of an Inconsistency finding.
type InconsistencyType string

const (
	IncPatrimonioVsRenda      InconsistencyType = "patrimonio_vs_renda"
	IncValorZeradoSuspeito    InconsistencyType = "valor_zerado_suspeito"
	IncDespesasMedicasAltas   InconsistencyType = "despesas_medicas_altas"
	IncDespesasEducacaoLimite InconsistencyType = "despesas_educacao_limite"
	IncDependenteDuplicado    InconsistencyType = "dependente_duplicado"
	IncDeducaoSemComprovante  InconsistencyType = "deducao_sem_comprovante"
	IncPensaoDesproporcional  InconsistencyType = "pensao_desproporcional"
)
