package repository

import (
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// PriceListRepository define el puerto de persistencia para listas de precios.
type PriceListRepository interface {
	Create(entry *entity.PriceListEntry) error
	GetByID(id string) (*entity.PriceListEntry, error)
	// FindEffective devuelve la entrada activa vigente en asOf para el
	// (pack, mercado), preferencia: EffectiveFrom más reciente, luego la
	// creada más recientemente. nil si no hay ninguna.
	FindEffective(packID, marketID string, asOf time.Time) (*entity.PriceListEntry, error)
	// HasActiveOverlap indica si existe una entrada activa para el
	// (pack, mercado) cuya ventana se solape con [from, to]. to nil = abierta.
	HasActiveOverlap(packID, marketID string, from time.Time, to *time.Time) (bool, error)
	ListByPack(packID string, limit, offset int) ([]*entity.PriceListEntry, error)
	// Deactivate cambia status a inactive. Las entradas nunca se borran.
	Deactivate(id string) error
}
