package domain

// Category é a categoria canônica compartilhada pelos dois esquemas de origem
type Category string

const (
	CategoryNoShow      Category = "no_show"
	CategoryNegotiating Category = "negotiating"
	CategoryWon         Category = "won"
	CategoryRefunded    Category = "refunded"
	CategoryOther       Category = "other"
)

// Detail refina a categoria sem alterá-la (ex.: pagamento agendado continua Negotiating)
type Detail string

const (
	DetailNone             Detail = ""
	DetailPaymentScheduled Detail = "payment_scheduled"
	DetailLostSoft         Detail = "lost_soft"
	DetailLostHard         Detail = "lost_hard"
)

type Classification struct {
	Category Category `json:"category"`
	Detail   Detail   `json:"detail,omitempty"`
}

// Attended indica se o registro conta como comparecimento (tudo que não é no-show)
func (c Classification) Attended() bool {
	return c.Category != CategoryNoShow
}
