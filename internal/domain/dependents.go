package domain

import "time"

// Dependente is a single dependent entry of the declaration.
type Dependente struct {
	Tipo           DependentType `yaml:"tipo" json:"tipo"`
	CPF            string        `yaml:"cpf" json:"cpf"`
	Nome           string        `yaml:"nome,omitempty" json:"nome,omitempty"`
	DataNascimento *time.Time    `yaml:"data_nascimento,omitempty" json:"data_nascimento,omitempty"`

	// PossuiRendimentos marks dependents with income of their own, which
	// must be added to the holder's declaration.
	PossuiRendimentos bool `yaml:"possui_rendimentos" json:"possui_rendimentos"`
}
