package models

type DashboardStats struct {
	EventsTotal       int     `json:"events_total"`
	RunnersTotal      int     `json:"runners_total"`
	TeamsTotal        int     `json:"teams_total"`
	ParticipatesTotal int     `json:"participates_total"`
	RoundsTotal       int     `json:"rounds_total"`
	DonationsTotal    float64 `json:"donations_total"`
	ActiveEventID     *int    `json:"active_event_id,omitempty"`
}
