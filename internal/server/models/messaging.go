package models

import "time"

type Connection struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

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
