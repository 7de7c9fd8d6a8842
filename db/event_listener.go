package db

// EventListener is notified on every slot-store operation. Backends call it
// synchronously, so implementations should be cheap.
type EventListener interface {
	OnIO(write bool)
}

// SelectiveListener lets callers subscribe to the events they care about and
// ignore the rest.
type SelectiveListener struct {
	OnIOCb func(write bool)
}

func (l *SelectiveListener) OnIO(write bool) {
	if l.OnIOCb != nil {
		l.OnIOCb(write)
	}
}
