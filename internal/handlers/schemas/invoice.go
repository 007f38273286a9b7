package schemas

import "github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/models"

// InvoiceRequest — структурированный счет от внешнего экстрактора
// (PDF и LLM-разбор остаются за границей этого сервиса).
type InvoiceRequest struct {
	InvoiceNumber string  `json:"invoice_number" validate:"required"`
	IssueDate     string  `json:"issue_date"`
	SupplierName  string  `json:"supplier_name"`
	Amount        float32 `json:"amount"`
	OrderNumber   string  `json:"order_number"`
	Attachment    []byte  `json:"attachment,omitempty"`
}

func (req InvoiceRequest) ToRecord() *models.ProcessingRecord {
	return &models.ProcessingRecord{
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.IssueDate,
		Supplier:      req.SupplierName,
		Amount:        req.Amount,
		Attachment:    req.Attachment,
	}
}

type InvoiceResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}
