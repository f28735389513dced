package entity

import "time"

// Estados de una solicitud de traslado.
const (
	TransferPending   = "pending"
	TransferApproved  = "approved"
	TransferRejected  = "rejected"
	TransferCompleted = "completed"
)

// Estados de una devolución.
const (
	ReturnPending  = "pending"
	ReturnReceived = "received"
	ReturnRejected = "rejected"
)

// Allocation representa una asignación de stock al agente (entrada desde
// bodega central). Se procesa al crearse: genera el movimiento "allocation".
type Allocation struct {
	ID         string
	SlipNumber string // número de planilla física firmada en la entrega
	AgentID    string
	PackID     string
	Quantity   int64
	Notes      string
	CreatedBy  string
	Processed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transfer representa una solicitud de traslado de stock entre agentes, o de
// un agente hacia el scope de un mercado. Sigue el ciclo
// pending -> approved|rejected; al aprobarse se ejecuta y queda completed.
type Transfer struct {
	ID         string
	FromAgent  string
	ToAgent    string // vacío si el destino es un mercado
	ToMarketID string // vacío si el destino es otro agente
	PackID     string
	Quantity   int64
	Reason     string
	Status     string
	ApproverID string
	Processed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Return representa una devolución presentada por un agente
// (producto dañado, vencido, rechazado por el cliente).
// pending -> received|rejected; al recibirse genera el movimiento "return".
type Return struct {
	ID         string
	AgentID    string
	PackID     string
	Quantity   int64
	ReasonCode string // damaged, expired, refused...
	Status     string
	Processed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Adjustment representa un ajuste de auditoría sobre el stock de un agente.
// Quantity lleva signo: positivo entrada, negativo salida.
type Adjustment struct {
	ID         string
	AgentID    string
	PackID     string
	Quantity   int64
	ReasonCode string
	Notes      string
	ActorID    string
	Processed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
