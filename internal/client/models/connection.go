package models

import "time"

// Connection describes the paired messaging-account session. The relay
// answers GET /connections with an empty body or null when nothing is paired.
type Connection struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QRCode is the body of GET /whatsapp/generate-qr. QRCode is a data URL.
type QRCode struct {
	QRCode string `json:"qrCode"`
}
