package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

// GenerateID gera os IDs curtos usados em elenco, atendimentos e execuções do snapshot
func GenerateID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id: %w", err)
	}
	return id, nil
}

// MustGenerateID é para scripts e seeds, onde falhar na geração encerra a execução
func MustGenerateID() string {
	id, err := GenerateID()
	if err != nil {
		panic(err)
	}
	return id
}
