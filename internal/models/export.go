package model

import "time"

// ExportSnapshot is the downloadable backup document, the only durable
// interchange format the system defines.
type ExportSnapshot struct {
	User          *User          `json:"user"`
	Tasks         []Task         `json:"tasks"`
	Notifications []Notification `json:"notifications"`
	ExportDate    time.Time      `json:"export_date"`
}
