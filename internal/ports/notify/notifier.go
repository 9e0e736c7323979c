package notify

import (
	"context"
	"errors"
)

// ErrPermissionDenied: la facility rechazó el envío (permiso revocado,
// credenciales inválidas). El caller debe degradar a log y no reintentar
// en cada tick.
var ErrPermissionDenied = errors.New("notification permission denied")

// Notification es un aviso visible para el usuario.
// Tag identifica el aviso para de-duplicación; la de-dup es responsabilidad
// de la facility, no de este core.
type Notification struct {
	Title string
	Body  string
	Tag   string
}

// Notifier entrega una notificación. Fire-and-forget: un error indica que
// el envío no se aceptó, no hay confirmación de lectura.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
