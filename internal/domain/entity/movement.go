package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// ValidMovementType indica si el tipo es uno de los soportados.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement representa un movimiento de inventario (entrada o salida).
// Una vez asignado ResultingBalance el movimiento es inmutable en cantidad,
// tipo y fecha; solo los metadatos (notas, referencia, verificación) admiten
// actualización. Las correcciones se hacen con un movimiento de reversa.
type Movement struct {
	ID                string
	ProductID         string
	ProductName       string // resuelto por JOIN en lecturas; no se persiste
	UserID            string // actor que registró el movimiento
	Type              string // entry | exit
	Quantity          int64  // siempre positivo; el signo lo da Type
	Date              time.Time
	Notes             string
	ReferenceDocument string // factura, orden, nota de ajuste, etc.
	ResultingBalance  int64  // saldo inmediatamente después de aplicar el movimiento
	Verified          bool
	VerifiedBy        string
	VerifiedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Change devuelve el delta con signo que este movimiento aplica al stock.
func (m *Movement) Change() int64 {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
