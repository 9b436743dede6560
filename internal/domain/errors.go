package domain

import "errors"

// Errores de negocio esperados; los handlers los traducen a mensajes para el usuario.
var (
	ErrEmptySubmission   = errors.New("el reporte debe incluir al menos una actividad")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrEmptyMessage      = errors.New("el mensaje no puede estar vacío")
	ErrNotFound          = errors.New("registro no encontrado")
	ErrVersionConflict   = errors.New("el registro fue modificado por otra operación")
)
