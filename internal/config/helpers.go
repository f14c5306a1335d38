package config

import "strings"

// trimAll remove espaços e itens vazios de listas vindas de variáveis separadas por vírgula
func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}
