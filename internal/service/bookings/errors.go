package bookings

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotConfirm возвращается, когда бронирование нельзя подтвердить
	ErrCannotConfirm = errors.New("reservation cannot be confirmed")

	// ErrCannotReject возвращается, когда бронирование нельзя отклонить
	ErrCannotReject = errors.New("reservation cannot be rejected")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование нельзя завершить
	ErrCannotComplete = errors.New("reservation cannot be completed")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
