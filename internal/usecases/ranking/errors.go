package ranking

import "errors"

var ErrInvalidMonth = errors.New("mês inválido")
