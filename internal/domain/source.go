package domain

import "time"

// AttendanceRecord representa o registro legado de atendimento, com status em texto livre
type AttendanceRecord struct {
	ID          string
	Closer      *string
	SDR         *string
	TeamID      *string
	OriginID    *string
	OriginLabel *string
	Status      string
	Value       *float64
	CallDate    time.Time
}

// PipelineDeal representa o registro do pipeline, com código de etapa explícito
type PipelineDeal struct {
	ID             string
	Closer         *string
	SDR            *string
	TeamID         *string
	OriginID       *string
	OriginLabel    *string
	Stage          string
	Status         string
	PotentialValue *float64
	CreatedAt      time.Time
}

// ToDeal adapta o atendimento legado. A data da call é o instante de janela.
func (a AttendanceRecord) ToDeal() Deal {
	return Deal{
		ID:          a.ID,
		Source:      SourceAttendance,
		Closer:      a.Closer,
		SDR:         a.SDR,
		TeamID:      a.TeamID,
		OriginID:    a.OriginID,
		OriginLabel: a.OriginLabel,
		RawStatus:   a.Status,
		Value:       valueOrZero(a.Value),
		OccurredAt:  a.CallDate,
	}
}

// ToDeal adapta o negócio do pipeline. A data de criação é o instante de janela.
func (p PipelineDeal) ToDeal() Deal {
	rawStatus := p.Status
	if rawStatus == "" {
		rawStatus = p.Stage
	}

	return Deal{
		ID:          p.ID,
		Source:      SourcePipeline,
		Closer:      p.Closer,
		SDR:         p.SDR,
		TeamID:      p.TeamID,
		OriginID:    p.OriginID,
		OriginLabel: p.OriginLabel,
		RawStatus:   rawStatus,
		StageCode:   p.Stage,
		Value:       valueOrZero(p.PotentialValue),
		OccurredAt:  p.CreatedAt,
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
