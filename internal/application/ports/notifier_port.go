package ports

import "context"

// Toast aviso breve que se muestra al usuario tras una acción.
type Toast struct {
	Title       string
	Description string
	Variant     string // default | success | destructive
}

// Notifier puerto de salida para avisos al usuario.
// Es fire-and-forget: los casos de uso lo llaman después de cambiar el estado
// y un fallo al notificar nunca revierte la operación.
type Notifier interface {
	Notify(ctx context.Context, userID string, t Toast)
}
