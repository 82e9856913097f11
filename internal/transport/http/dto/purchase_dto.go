package dto

// PurchaseRequest keys are camelCase: this is the wire contract the SPA
// already speaks.
type PurchaseRequest struct {
	PackageID       string `json:"packageId"`
	SmartCardNumber string `json:"smartCardNumber"`
	CustomerName    string `json:"customerName,omitempty"`
	Reference       string `json:"reference"`
}

type PurchaseResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     int64               `json:"balance"`
}
