package models

import "time"

// Appointment is a scheduled session. Date carries the full start time, Time
// keeps the "HH:MM" the trainer entered for secondary ordering.
type Appointment struct {
	ID          string    `json:"id"`
	TrainerID   string    `json:"trainer_id"`
	ClientID    string    `json:"client_id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
}

type NewAppointment struct {
	ClientID    string `json:"client_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}
