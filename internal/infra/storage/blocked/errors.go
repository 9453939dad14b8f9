package blocked

import "errors"

var (
	// ErrLockTimeout возвращается, когда блокировка строк не получена за
	// отведенное БД время
	ErrLockTimeout = errors.New("blocked.repository: lock wait timeout")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blocked.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blocked.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blocked.repository: failed to scan row")
)
