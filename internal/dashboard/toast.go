package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// ToastLifetime is how long a notification stays visible.
const ToastLifetime = 5 * time.Second

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification. It has no dismissal action.
type Toast struct {
	ID        string
	Kind      ToastKind
	Message   string
	ExpiresAt time.Time
}

func newToast(kind ToastKind, message string, now time.Time) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		ExpiresAt: now.Add(ToastLifetime),
	}
}

// pruneToasts drops expired toasts in place.
func pruneToasts(toasts []Toast, now time.Time) []Toast {
	live := toasts[:0]
	for _, t := range toasts {
		if now.Before(t.ExpiresAt) {
			live = append(live, t)
		}
	}
	return live
}
