package entity

import "time"

// Tipos de movimiento del ledger de stock.
const (
	MovementAllocation = "allocation" // asignación de bodega central al agente
	MovementTransfer   = "transfer"   // traslado entre agentes o hacia un mercado
	MovementSale       = "sale"       // venta al cliente final
	MovementReturn     = "return"     // devolución recibida por el agente
	MovementAdjustment = "adjustment" // ajuste de auditoría (+/-)
)

// ValidMovementType verifica que el tipo sea uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementAllocation, MovementTransfer, MovementSale, MovementReturn, MovementAdjustment:
		return true
	}
	return false
}

// MovementScope identifica un saldo independiente: agente x pack, opcionalmente
// acotado a un mercado. MarketID vacío = stock global del agente para ese pack.
type MovementScope struct {
	AgentID  string
	PackID   string
	MarketID string
}

// StockLedgerEntry es un registro inmutable del ledger de stock: nunca se
// actualiza ni se elimina después de creado. BalanceAfter encadena con la
// entrada anterior del mismo scope: BalanceAfter(N) = BalanceAfter(N-1) + Quantity.
// Las correcciones se registran como movimientos nuevos (adjustment), jamás editando.
type StockLedgerEntry struct {
	ID           string
	MovementType string
	AgentID      string
	MarketID     string // vacío cuando el movimiento no aplica a un mercado
	ProductID    string // denormalizado desde el pack para reportes
	PackID       string
	Quantity     int64 // con signo: positivo entrada, negativo salida
	BalanceAfter int64
	SourceRef    string // ID del registro de negocio que originó el movimiento
	ActorID      string // usuario que ejecutó la operación
	CreatedAt    time.Time
}

// Scope devuelve la clave de saldo a la que pertenece la entrada.
func (e *StockLedgerEntry) Scope() MovementScope {
	return MovementScope{AgentID: e.AgentID, PackID: e.PackID, MarketID: e.MarketID}
}

// StockBalance es el saldo materializado de un scope. Se actualiza bajo
// bloqueo de fila en la misma transacción que inserta la entrada del ledger,
// de modo que siempre coincide con el BalanceAfter más reciente del scope.
type StockBalance struct {
	AgentID   string
	PackID    string
	MarketID  string
	Quantity  int64
	UpdatedAt time.Time
}
