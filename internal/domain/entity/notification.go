package entity

import "time"

// Tipos de notificación.
const (
	NotificationShipmentStatus = "shipment_status"
	NotificationShipmentRoute  = "shipment_route"
	NotificationInvoicePayment = "invoice_payment"
	NotificationGeneral        = "general"
)

// Tipos de dispositivo.
const (
	DeviceAndroid = "android"
	DeviceIOS     = "ios"
)

// Notification notificación enviada a un usuario (historial visible en la app).
type Notification struct {
	ID      string
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]string
	IsRead  bool
	SentAt  time.Time
	ReadAt  *time.Time
}

// UserDevice token push de un dispositivo del usuario.
type UserDevice struct {
	ID        string
	UserID    string
	Token     string
	Type      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
