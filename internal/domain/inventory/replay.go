// Package inventory contiene servicios de dominio puros del motor de inventario.
package inventory

import "github.com/stockline/stockline-api/internal/domain/entity"

// ReplayBalance recalcula el saldo autoritativo de un producto plegando su
// historial completo de movimientos en orden de fecha ascendente, partiendo
// de cero. El ledger es la fuente de verdad: el resultado es el valor que
// deben reflejar tanto Product.Stock como el snapshot.
func ReplayBalance(movements []*entity.Movement) int64 {
	var balance int64
	for _, m := range movements {
		balance += m.Change()
	}
	return balance
}
