package enums

type TransactionType string

const (
	TransactionTypeCableTV TransactionType = "cable_tv"
)

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)
