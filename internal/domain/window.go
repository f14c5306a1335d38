package domain

import (
	"errors"
	"time"
)

// ErrInvalidWindow é retornado quando a data final é anterior à inicial
var ErrInvalidWindow = errors.New("janela inválida: data final anterior à data inicial")

// Window é um intervalo [Start, End] inclusivo nas duas pontas
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains inclui registros exatamente em Start ou End
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DurationDays arredonda para cima a duração da janela em dias
func (w Window) DurationDays() int {
	d := w.End.Sub(w.Start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Span retorna a menor janela que cobre as duas
func (w Window) Span(other Window) Window {
	span := w
	if other.Start.Before(span.Start) {
		span.Start = other.Start
	}
	if other.End.After(span.End) {
		span.End = other.End
	}
	return span
}
