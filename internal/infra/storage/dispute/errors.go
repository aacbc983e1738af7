package dispute

import "errors"

var (
	// ErrDisputeNotFound возвращается, когда спор не найден
	ErrDisputeNotFound = errors.New("dispute.repository: dispute not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dispute.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dispute.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dispute.repository: failed to scan row")
)
