package dto

import "time"

// CreateAllocationRequest body para POST /api/stock/allocations.
type CreateAllocationRequest struct {
	SlipNumber string `json:"slip_number"`
	AgentID    string `json:"agent_id"`
	PackID     string `json:"pack_id"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// CreateTransferRequest body para POST /api/stock/transfers (agente solicita).
// Exactamente uno de ToAgentID / ToMarketID debe venir informado.
type CreateTransferRequest struct {
	ToAgentID  string `json:"to_agent_id,omitempty"`
	ToMarketID string `json:"to_market_id,omitempty"`
	PackID     string `json:"pack_id"`
	Quantity   int64  `json:"quantity"`
	Reason     string `json:"reason,omitempty"`
}

// CreateReturnRequest body para POST /api/stock/returns (agente presenta).
type CreateReturnRequest struct {
	PackID     string `json:"pack_id"`
	Quantity   int64  `json:"quantity"`
	ReasonCode string `json:"reason_code"` // damaged, expired, refused...
}

// CreateAdjustmentRequest body para POST /api/stock/adjustments (admin/manager).
type CreateAdjustmentRequest struct {
	AgentID    string `json:"agent_id"`
	PackID     string `json:"pack_id"`
	Quantity   int64  `json:"quantity"` // con signo
	ReasonCode string `json:"reason_code"`
	Notes      string `json:"notes,omitempty"`
}

// LedgerEntryResponse una entrada del ledger en el histórico de auditoría.
type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	MovementType string    `json:"movement_type"`
	AgentID      string    `json:"agent_id"`
	MarketID     string    `json:"market_id,omitempty"`
	ProductID    string    `json:"product_id"`
	PackID       string    `json:"pack_id"`
	Quantity     int64     `json:"quantity"`
	BalanceAfter int64     `json:"balance_after"`
	SourceRef    string    `json:"source_ref"`
	CreatedAt    time.Time `json:"created_at"`
}

// BalanceResponse saldo actual de un scope.
type BalanceResponse struct {
	AgentID  string `json:"agent_id"`
	PackID   string `json:"pack_id"`
	MarketID string `json:"market_id,omitempty"`
	Quantity int64  `json:"quantity"`
}
