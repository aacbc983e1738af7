package paymentservice

// FundOperation тип денежной операции над эскроу-записью
type FundOperation string

const (
	OperationRelease        FundOperation = "release_to_tutor"
	OperationRefund         FundOperation = "refund_to_learner"
	OperationReturnToWallet FundOperation = "return_to_tutor_account"
)

// MoveFundsRequest запрос на перевод удержанных средств
type MoveFundsRequest struct {
	HeldFundID int64         `json:"held_fund_id"`
	Operation  FundOperation `json:"operation"`
	Reference  string        `json:"reference"` // номер спора или причина отмены
}

// MoveFundsResponse ответ платёжного сервиса
type MoveFundsResponse struct {
	HeldFundID int64  `json:"held_fund_id"`
	Status     string `json:"status"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
