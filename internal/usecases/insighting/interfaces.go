package insighting

import (
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

// Classifier define a interface do classificador de status usado pelas agregações
type Classifier interface {
	// Classify retorna a categoria canônica do registro
	Classify(deal domain.Deal) domain.Classification
}
