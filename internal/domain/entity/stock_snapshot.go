package entity

import "time"

// StockSnapshot es la fila cacheada de saldo actual por producto (única por producto).
// Es una vista materializada del ledger de movimientos, no la fuente de verdad:
// puede divergir transitoriamente de Product.Stock hasta que el reconciliador
// la repare. Se crea con upsert en el primer movimiento del producto.
type StockSnapshot struct {
	ProductID    string // clave única
	CurrentStock int64
	LastUpdate   time.Time
}
