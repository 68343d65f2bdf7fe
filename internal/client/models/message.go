package models

import "time"

// MessageLog is one row of the delivery log.
type MessageLog struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	CreatedAt   time.Time `json:"createdAt"`
	IsSent      bool      `json:"isSent"`
	Message     string    `json:"message"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	PhoneNumber string    `json:"phoneNumber"`
}
