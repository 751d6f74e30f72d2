package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"keluarga/internal/core"
)

// TransactionAppendedMessage announces a row confirmed written to the
// external ledger store. Consumers mirror it into local storage.
type TransactionAppendedMessage struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // ISO-8601, empty when missing
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      int64   `json:"amount"`
	GoldGrams   float64 `json:"gold_grams"`
	Timestamp   int64   `json:"timestamp"`
}

// NewTransactionAppendedMessage builds a message with a fresh uuid.
func NewTransactionAppendedMessage(tx core.Transaction) *TransactionAppendedMessage {
	return &TransactionAppendedMessage{
		ID:          uuid.NewString(),
		Date:        tx.Date.String(),
		Type:        string(tx.Type),
		Description: tx.Description,
		Amount:      tx.Amount.Rupiah,
		GoldGrams:   tx.GoldGrams,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// Transaction reconstructs the bucketed ledger entry carried by the message.
func (m *TransactionAppendedMessage) Transaction() core.Transaction {
	return core.Transaction{
		Date:        core.ParseDate(m.Date),
		Type:        core.TransactionType(m.Type),
		Description: m.Description,
		Amount:      core.Money{Rupiah: m.Amount},
		GoldGrams:   m.GoldGrams,
	}.Bucketed()
}

func (m *TransactionAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionAppendedMessageFromJSON(data []byte) (*TransactionAppendedMessage, error) {
	var m TransactionAppendedMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
