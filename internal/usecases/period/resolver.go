// Package period converte tokens de período em janelas concretas e calcula a janela
// imediatamente anterior de mesma duração.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/sales-ops-api/internal/domain"
)

const (
	Today    = "today"
	Week     = "week"
	Biweekly = "biweekly"
	Month    = "month"
	Quarter  = "quarter"
	Semester = "semester"
	Year     = "year"
	Custom   = "custom"
)

const day = 24 * time.Hour

var (
	ErrUnknownPeriod = errors.New("período desconhecido")
	ErrMissingBounds = errors.New("período custom exige data inicial e final")
)

// Resolver guarda apenas configuração imutável (fuso e início da semana)
type Resolver struct {
	location  *time.Location
	weekStart time.Weekday
}

func NewResolver(location *time.Location, weekStart time.Weekday) *Resolver {
	if location == nil {
		location = time.UTC
	}
	return &Resolver{
		location:  location,
		weekStart: weekStart,
	}
}

func (r *Resolver) Location() *time.Location {
	return r.location
}

// Resolve calcula a janela do token contendo a referência
func (r *Resolver) Resolve(token string, reference time.Time) (domain.Window, error) {
	ref := reference.In(r.location)

	switch strings.ToLower(strings.TrimSpace(token)) {
	case Today:
		return domain.Window{Start: startOfDay(ref), End: endOfDay(ref)}, nil
	case Week:
		offset := (int(ref.Weekday()) - int(r.weekStart) + 7) % 7
		start := startOfDay(ref).AddDate(0, 0, -offset)
		return domain.Window{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}, nil
	case Biweekly:
		return domain.Window{Start: startOfDay(ref.AddDate(0, 0, -14)), End: endOfDay(ref)}, nil
	case Month:
		start := firstOfMonth(ref)
		return domain.Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case Quarter:
		firstMonth := time.Month((int(ref.Month())-1)/3*3 + 1)
		start := time.Date(ref.Year(), firstMonth, 1, 0, 0, 0, 0, r.location)
		return domain.Window{Start: start, End: start.AddDate(0, 3, 0).Add(-time.Nanosecond)}, nil
	case Semester:
		return domain.Window{Start: firstOfMonth(ref).AddDate(0, -6, 0), End: endOfDay(ref)}, nil
	case Year:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, r.location)
		return domain.Window{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}, nil
	case Custom:
		return domain.Window{}, ErrMissingBounds
	default:
		return domain.Window{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, token)
	}
}

// Custom normaliza limites explícitos para dias inteiros no fuso configurado, usando a data
// de calendário de cada limite. Limites invertidos são rejeitados.
func (r *Resolver) Custom(start, end time.Time) (domain.Window, error) {
	window := domain.Window{
		Start: r.calendarDay(start),
		End:   r.calendarDay(end).AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
	if err := window.Validate(); err != nil {
		return domain.Window{}, err
	}
	return window, nil
}

// ResolveFilters usa limites explícitos quando o período é custom ou quando só as datas são informadas.
// Sem token e sem datas não há período padrão.
func (r *Resolver) ResolveFilters(filters domain.DashboardFilters) (domain.Window, error) {
	token := strings.ToLower(strings.TrimSpace(filters.Period))

	if token == Custom || (token == "" && (filters.StartDate != nil || filters.EndDate != nil)) {
		if filters.StartDate == nil || filters.EndDate == nil {
			return domain.Window{}, ErrMissingBounds
		}
		return r.Custom(*filters.StartDate, *filters.EndDate)
	}

	if token == "" {
		return domain.Window{}, fmt.Errorf("%w: período não informado", ErrUnknownPeriod)
	}

	reference := filters.Reference
	if reference.IsZero() {
		reference = time.Now()
	}

	return r.Resolve(token, reference)
}

// Previous depende só da duração da janela, nunca do token que a gerou.
// previousEnd = start - 1 dia; previousStart = previousEnd - duração em dias.
func Previous(window domain.Window) domain.Window {
	durationDays := window.DurationDays()
	previousEnd := window.Start.Add(-day)
	previousStart := previousEnd.Add(-time.Duration(durationDays) * day)

	return domain.Window{Start: previousStart, End: previousEnd}
}

// ParseWeekday aceita nomes em inglês ou português
func ParseWeekday(value string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sunday", "domingo":
		return time.Sunday, nil
	case "monday", "segunda":
		return time.Monday, nil
	case "tuesday", "terca", "terça":
		return time.Tuesday, nil
	case "wednesday", "quarta":
		return time.Wednesday, nil
	case "thursday", "quinta":
		return time.Thursday, nil
	case "friday", "sexta":
		return time.Friday, nil
	case "saturday", "sabado", "sábado":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("dia da semana inválido: %q", value)
	}
}

func (r *Resolver) calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.location)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
