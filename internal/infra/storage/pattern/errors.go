package pattern

import "errors"

var (
	// ErrPatternNotFound возвращается, когда у репетитора нет ни одного шаблона
	ErrPatternNotFound = errors.New("pattern.repository: pattern not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pattern.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pattern.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pattern.repository: failed to scan row")
)
