package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

func newTestResolver() *Resolver {
	return NewResolver(time.UTC, time.Sunday)
}

func TestResolver_Resolve(t *testing.T) {
	resolver := newTestResolver()
	// Quarta-feira, 14 de fevereiro de 2024, 15h30
	reference := time.Date(2024, 2, 14, 15, 30, 0, 0, time.UTC)
	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	}

	tests := []struct {
		name          string
		token         string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{"today", Today, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 14)},
		{"week começando no domingo", Week, time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 17)},
		{"biweekly", Biweekly, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 14)},
		{"month bissexto", Month, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 29)},
		{"quarter", Quarter, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), endOf(2024, 3, 31)},
		{"semester", Semester, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 14)},
		{"year", Year, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), endOf(2024, 12, 31)},
		{"token com maiúsculas", " MONTH ", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), endOf(2024, 2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := resolver.Resolve(tt.token, reference)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, window.Start)
			assert.Equal(t, tt.expectedEnd, window.End)
			assert.True(t, window.Contains(reference))
		})
	}
}

func TestResolver_WeekStartMonday(t *testing.T) {
	resolver := NewResolver(time.UTC, time.Monday)
	// Domingo: a semana começa na segunda anterior
	reference := time.Date(2024, 2, 18, 10, 0, 0, 0, time.UTC)

	window, err := resolver.Resolve(Week, reference)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, 7, window.DurationDays())
}

func TestResolver_UsesConfiguredLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	resolver := NewResolver(saoPaulo, time.Sunday)
	// 01h UTC do dia 1º ainda é dia 31 em Brasília
	reference := time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)

	window, err := resolver.Resolve(Month, reference)
	require.NoError(t, err)
	assert.Equal(t, time.January, window.Start.Month())
	assert.True(t, window.Contains(reference))
}

func TestResolver_Errors(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve("fortnight", time.Now())
	assert.True(t, errors.Is(err, ErrUnknownPeriod))

	_, err = resolver.Resolve(Custom, time.Now())
	assert.True(t, errors.Is(err, ErrMissingBounds))

	_, err = resolver.Custom(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.Is(err, domain.ErrInvalidWindow))
}

func TestResolver_Custom(t *testing.T) {
	resolver := newTestResolver()

	window, err := resolver.Custom(
		time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), window.End)
	assert.Equal(t, 10, window.DurationDays())

	// Mesmo dia nas duas pontas é válido
	sameDay, err := resolver.Custom(window.Start, window.Start)
	require.NoError(t, err)
	assert.Equal(t, 1, sameDay.DurationDays())
}

func TestResolver_ResolveFilters(t *testing.T) {
	resolver := newTestResolver()
	reference := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	_, err := resolver.ResolveFilters(domain.DashboardFilters{Reference: reference})
	assert.True(t, errors.Is(err, ErrUnknownPeriod), "sem token e sem datas não existe período padrão")

	_, err = resolver.ResolveFilters(domain.DashboardFilters{Period: "  ", Reference: reference})
	assert.True(t, errors.Is(err, ErrUnknownPeriod))

	window, err := resolver.ResolveFilters(domain.DashboardFilters{Period: "MONTH", Reference: reference})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), window.Start)

	window, err = resolver.ResolveFilters(domain.DashboardFilters{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 5, window.DurationDays(), "datas sem token viram custom")

	_, err = resolver.ResolveFilters(domain.DashboardFilters{Period: Custom, StartDate: &start})
	assert.True(t, errors.Is(err, ErrMissingBounds))
}

func TestPrevious(t *testing.T) {
	resolver := newTestResolver()
	reference := time.Date(2024, 2, 14, 15, 30, 0, 0, time.UTC)

	windows := make([]domain.Window, 0)
	for _, token := range []string{Today, Week, Biweekly, Month, Quarter, Semester, Year} {
		window, err := resolver.Resolve(token, reference)
		require.NoError(t, err)
		windows = append(windows, window)
	}
	custom, err := resolver.Custom(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	windows = append(windows, custom)

	for _, window := range windows {
		previous := Previous(window)

		assert.True(t, previous.End.Before(window.Start), "janela anterior não pode sobrepor a atual")
		assert.Equal(t, window.DurationDays(), previous.DurationDays())

		// Aplicado duas vezes continua sem sobreposição
		beforePrevious := Previous(previous)
		assert.True(t, beforePrevious.End.Before(window.Start))
		assert.True(t, beforePrevious.End.Before(previous.Start))
		assert.Equal(t, window.DurationDays(), beforePrevious.DurationDays())
	}
}

func TestPrevious_ExactBounds(t *testing.T) {
	window := domain.Window{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	previous := Previous(window)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), previous.End)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), previous.Start)
}

func TestParseWeekday(t *testing.T) {
	weekday, err := ParseWeekday("segunda")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekday)

	weekday, err = ParseWeekday("")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, weekday)

	_, err = ParseWeekday("feriado")
	assert.Error(t, err)
}
