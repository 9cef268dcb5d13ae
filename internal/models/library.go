package models

import "time"

type TrainingFolder struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Video struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id"`
	FolderID  string    `json:"folder_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
