package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/classifying"
	"github.com/vfg2006/sales-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
	"go.uber.org/mock/gomock"
)

var (
	reference = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	january   = domain.Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
	}
	adminScope = domain.Scope{RoleID: domain.RoleAdmin}
)

func stringPtr(s string) *string {
	return &s
}

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockDealRepository, *mocks.MockRosterRepository) {
	dealRepo := mocks.NewMockDealRepository(ctrl)
	rosterRepo := mocks.NewMockRosterRepository(ctrl)

	service := NewService(
		dealRepo,
		rosterRepo,
		period.NewResolver(time.UTC, time.Sunday),
		insighting.NewAggregator(classifying.New(classifying.DefaultTaxonomy())),
	)

	return service, dealRepo, rosterRepo
}

func monthFilters() domain.DashboardFilters {
	return domain.DashboardFilters{Period: period.Month, Reference: reference}
}

func TestService_GetMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, _ := newTestService(ctrl)

	dealRepo.EXPECT().
		ListDeals(gomock.Any(), january, adminScope).
		Return([]domain.Deal{
			{Source: domain.SourceAttendance, RawStatus: "Venda", Value: 5000, OccurredAt: reference},
			{Source: domain.SourceAttendance, RawStatus: "No-show", OccurredAt: reference},
		}, nil)

	response, err := service.GetMetrics(context.Background(), monthFilters(), adminScope)
	require.NoError(t, err)

	assert.Equal(t, january, response.Window)
	assert.Equal(t, 2, response.Metrics.TotalCount)
	assert.Equal(t, 0.5, response.Metrics.AttendanceRate)
	assert.Equal(t, 1.0, response.Metrics.ConversionRate)
	assert.Equal(t, 5000.0, response.Metrics.AverageTicket)
}

func TestService_GetMetricsErrors(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.DashboardFilters
		setup   func(dealRepo *mocks.MockDealRepository)
		target  error
	}{
		{
			name:    "Período desconhecido não consulta o banco",
			filters: domain.DashboardFilters{Period: "decade", Reference: reference},
			setup:   func(*mocks.MockDealRepository) {},
			target:  period.ErrUnknownPeriod,
		},
		{
			name:    "Sem período e sem datas não usa padrão",
			filters: domain.DashboardFilters{Reference: reference},
			setup:   func(*mocks.MockDealRepository) {},
			target:  period.ErrUnknownPeriod,
		},
		{
			name: "Janela custom invertida",
			filters: domain.DashboardFilters{
				Period:    period.Custom,
				StartDate: &january.End,
				EndDate:   &january.Start,
			},
			setup:  func(*mocks.MockDealRepository) {},
			target: domain.ErrInvalidWindow,
		},
		{
			name:    "Erro do repositório é propagado",
			filters: monthFilters(),
			setup: func(dealRepo *mocks.MockDealRepository) {
				dealRepo.EXPECT().ListDeals(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errDatabase)
			},
			target: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, dealRepo, _ := newTestService(ctrl)
			tt.setup(dealRepo)

			response, err := service.GetMetrics(context.Background(), tt.filters, adminScope)
			assert.Nil(t, response)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

var errDatabase = errors.New("conexão recusada")

func TestService_GetFunnel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, _ := newTestService(ctrl)

	deals := make([]domain.Deal, 0, 10)
	statuses := []string{"No-show", "No-show", "Venda", "Venda", "Venda", "Negociando", "Negociando", "Pagamento agendado", "Sem interesse", "Sem interesse"}
	for _, status := range statuses {
		deals = append(deals, domain.Deal{Source: domain.SourceAttendance, RawStatus: status, OccurredAt: reference})
	}

	dealRepo.EXPECT().ListDeals(gomock.Any(), january, adminScope).Return(deals, nil)

	response, err := service.GetFunnel(context.Background(), monthFilters(), adminScope)
	require.NoError(t, err)

	won, ok := response.Funnel.Stage(domain.StageWon)
	require.True(t, ok)
	assert.Equal(t, 3, won.Count)
	assert.Equal(t, domain.StageAttended, won.Baseline)
	assert.InDelta(t, 0.375, won.ConversionRate, 0.0001)
	assert.Equal(t, 1, response.Funnel.PaymentScheduledCount)
}

func TestService_GetRanking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, rosterRepo := newTestService(ctrl)

	scope := domain.Scope{RoleID: domain.RoleSupervisor, TeamIDs: []string{"t1"}}

	dealRepo.EXPECT().
		ListDeals(gomock.Any(), january, scope).
		Return([]domain.Deal{
			{Source: domain.SourceAttendance, Closer: stringPtr("A"), RawStatus: "Venda", Value: 100, OccurredAt: reference},
			{Source: domain.SourceAttendance, Closer: stringPtr("B"), RawStatus: "Venda", Value: 300, OccurredAt: reference},
			{Source: domain.SourceAttendance, Closer: stringPtr("C"), RawStatus: "Venda", Value: 900, OccurredAt: reference},
		}, nil)

	rosterRepo.EXPECT().
		GetRoster(gomock.Any()).
		Return(&domain.Roster{
			Closers: []domain.Entity{
				{ID: "A", Name: "Ana", Active: true},
				{ID: "B", Name: "Bruno", Active: true},
				{ID: "C", Name: "Carla", Active: false},
			},
		}, nil)

	response, err := service.GetRanking(context.Background(), monthFilters(), scope)
	require.NoError(t, err)

	assert.Equal(t, domain.GroupByCloser, response.GroupBy)
	require.Len(t, response.Ranking, 2)
	assert.Equal(t, "B", response.Ranking[0].EntityID)
	assert.Equal(t, "A", response.Ranking[1].EntityID)
}

func TestService_GetRankingByTeam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, rosterRepo := newTestService(ctrl)

	dealRepo.EXPECT().
		ListDeals(gomock.Any(), january, adminScope).
		Return([]domain.Deal{
			{Source: domain.SourcePipeline, Closer: stringPtr("c1"), StageCode: "won", Value: 700, OccurredAt: reference},
			{Source: domain.SourcePipeline, Closer: stringPtr("c2"), StageCode: "won", Value: 200, OccurredAt: reference},
		}, nil)

	rosterRepo.EXPECT().
		GetRoster(gomock.Any()).
		Return(&domain.Roster{
			Closers: []domain.Entity{
				{ID: "c1", Active: true, TeamID: stringPtr("t2")},
				{ID: "c2", Active: true, TeamID: stringPtr("t1")},
			},
			Teams: []domain.Entity{
				{ID: "t1", Name: "Alpha", Active: true},
				{ID: "t2", Name: "Beta", Active: true},
			},
		}, nil)

	filters := monthFilters()
	filters.GroupBy = domain.GroupByTeam

	response, err := service.GetRanking(context.Background(), filters, adminScope)
	require.NoError(t, err)

	require.Len(t, response.Ranking, 2)
	assert.Equal(t, "t2", response.Ranking[0].EntityID)
	assert.Equal(t, 700.0, response.Ranking[0].Revenue)
}

func TestService_GetRankingRosterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, rosterRepo := newTestService(ctrl)

	dealRepo.EXPECT().ListDeals(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.Deal{}, nil).AnyTimes()
	rosterRepo.EXPECT().GetRoster(gomock.Any()).Return(nil, errDatabase)

	_, err := service.GetRanking(context.Background(), monthFilters(), adminScope)
	assert.ErrorIs(t, err, errDatabase)
}

func TestService_GetComparison(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, dealRepo, _ := newTestService(ctrl)

	previous := period.Previous(january)
	inPrevious := previous.Start.Add(48 * time.Hour)

	dealRepo.EXPECT().
		ListDeals(gomock.Any(), january.Span(previous), adminScope).
		Return([]domain.Deal{
			{Source: domain.SourceAttendance, RawStatus: "Venda", Value: 3000, OccurredAt: reference},
			{Source: domain.SourceAttendance, RawStatus: "Venda", Value: 2000, OccurredAt: inPrevious},
		}, nil)

	response, err := service.GetComparison(context.Background(), monthFilters(), adminScope)
	require.NoError(t, err)

	assert.Equal(t, january, response.Window)
	assert.Equal(t, previous, response.PreviousWindow)

	revenue := response.Comparison[domain.MetricRevenue]
	assert.Equal(t, 3000.0, revenue.Current)
	assert.Equal(t, 2000.0, revenue.Previous)
	assert.InDelta(t, 50.0, revenue.Change, 0.0001)
}
