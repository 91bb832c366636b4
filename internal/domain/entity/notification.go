package entity

import "time"

// Variantes de notificación (toast).
const (
	NotificationDefault     = "default"
	NotificationSuccess     = "success"
	NotificationDestructive = "destructive"
)

// Notification aviso dirigido a un usuario.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}
