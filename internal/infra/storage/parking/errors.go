package parking

import "errors"

var (
	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("parking.repository: parking lot not found")

	// ErrDuplicateCode возвращается при попытке создать парковку с занятым кодом
	ErrDuplicateCode = errors.New("parking.repository: parking code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("parking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("parking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("parking.repository: failed to scan row")
)
