package dto

import "github.com/shopspring/decimal"

// SetterTotalsDTO actividad agregada de setters con sus ratios.
type SetterTotalsDTO struct {
	Reports                    int `json:"reports"`
	Conversations              int `json:"conversations"`
	FollowUps                  int `json:"follow_ups"`
	Offers                     int `json:"offers"`
	Appointments               int `json:"appointments"`
	OfferRate                  int `json:"offer_rate"`
	AppointmentsFromOffersRate int `json:"appointments_from_offers_rate"`
	BookingRate                int `json:"booking_rate"`
}

// SetterRowDTO fila por día o por persona.
type SetterRowDTO struct {
	Key string `json:"key"`
	SetterTotalsDTO
}

// CloserTotalsDTO actividad agregada de closers con sus ratios.
type CloserTotalsDTO struct {
	Reports   int `json:"reports"`
	Scheduled int `json:"scheduled"`
	Calls     int `json:"calls"`
	Offers    int `json:"offers"`
	Deposits  int `json:"deposits"`
	Closes    int `json:"closes"`
	ShowRate  int `json:"show_rate"`
	OfferRate int `json:"offer_rate"`
	CloseRate int `json:"close_rate"`
}

// CloserRowDTO fila por día o por persona.
type CloserRowDTO struct {
	Key string `json:"key"`
	CloserTotalsDTO
}

// CloserSummaryDTO actividad de un closer cruzada con sus ventas.
type CloserSummaryDTO struct {
	Name      string          `json:"name"`
	Calls     int             `json:"calls"`
	Closes    int             `json:"closes"`
	CloseRate int             `json:"close_rate"`
	Sales     int             `json:"sales"`
	Revenue   decimal.Decimal `json:"revenue"`
	NetCash   decimal.Decimal `json:"net_cash"`
}

// SectionsDTO bloques visibles según los filtros de persona.
type SectionsDTO struct {
	ShowSetters      bool `json:"show_setters"`
	ShowClosers      bool `json:"show_closers"`
	ShowLeaderboards bool `json:"show_leaderboards"`
}

// ReportsDashboardResponse dashboard de actividad diaria.
type ReportsDashboardResponse struct {
	Preset         string      `json:"preset"`
	Window         WindowDTO   `json:"window"`
	PreviousWindow WindowDTO   `json:"previous_window"`
	Sections       SectionsDTO `json:"sections"`

	Setters         SetterTotalsDTO `json:"setters"`
	SettersPrevious SetterTotalsDTO `json:"setters_previous"`
	SetterDaily     []SetterRowDTO  `json:"setter_daily"`
	SetterByPerson  []SetterRowDTO  `json:"setter_by_person"`

	Closers         CloserTotalsDTO    `json:"closers"`
	ClosersPrevious CloserTotalsDTO    `json:"closers_previous"`
	CloserDaily     []CloserRowDTO     `json:"closer_daily"`
	CloserByPerson  []CloserRowDTO     `json:"closer_by_person"`
	CloserSummary   []CloserSummaryDTO `json:"closer_summary"`

	CloserLeaderboard []PerformerDTO `json:"closer_leaderboard"`
	SetterLeaderboard []PerformerDTO `json:"setter_leaderboard"`
}
