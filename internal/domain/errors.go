package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSessionExpired     = errors.New("sesión expirada o inexistente")
	ErrRoleImmutable      = errors.New("el rol no puede cambiar durante la sesión")
	ErrInvalidTransition  = errors.New("transición de estado de pedido inválida")
	ErrSessionCorrupted   = errors.New("blob de sesión corrupto")
	ErrNotReady           = errors.New("almacén de sesión no inicializado")
)
