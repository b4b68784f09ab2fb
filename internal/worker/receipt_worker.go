package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the PDF ticket and, when
// the customer left an email at checkout, sends it as an attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"saborpos/internal/infra"
	"saborpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptPayload is the job envelope sent to QueueReceipt.
type ReceiptPayload struct {
	SaleID        string `json:"sale_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type ReceiptWorker struct {
	sales       repository.SaleRepository
	mailer      *infra.Mailer
	storeName   string
	storagePath string
}

func NewReceiptWorker(sales repository.SaleRepository, mailer *infra.Mailer, storeName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{
		sales:       sales,
		mailer:      mailer,
		storeName:   storeName,
		storagePath: storagePath,
	}
}

// Process renders the receipt PDF and emails it when an address was captured.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale id")
		return
	}

	sale, err := w.sales.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storeName, w.storagePath)
	if err != nil {
		log.Error().Err(err).Int("ticket", sale.TicketNumber).Msg("receipt_worker: pdf generation failed")
		return
	}
	log.Info().Int("ticket", sale.TicketNumber).Str("path", pdfPath).Msg("receipt_worker: receipt generated")

	if payload.CustomerEmail == "" {
		return
	}

	subject := fmt.Sprintf("%s - Receipt #%d", w.storeName, sale.TicketNumber)
	body := fmt.Sprintf("Thank you for your purchase. Your receipt #%d is attached.", sale.TicketNumber)
	if err := w.mailer.SendReceipt(payload.CustomerEmail, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.CustomerEmail).Msg("receipt_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.CustomerEmail).Int("ticket", sale.TicketNumber).Msg("receipt_worker: receipt emailed")
}
