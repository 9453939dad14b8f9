package expire_reservations

import "context"

type ExpirePendingUseCase interface {
	Execute(ctx context.Context) (int64, error)
}

type Metrics interface {
	AddBookingsExpired(trigger string, count int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
