package domain

import "time"

// Acciones conocidas de un trade. El bot puede escribir otros tags de
// ciclo de vida, solo BUY/SELL cuentan como ejecución.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Trade es un registro histórico escrito por el bot multi-agente.
// Los campos puntero son NULL en la base hasta que el productor los fija:
// profit y exit_price se escriben una sola vez, al cerrar el trade.
type Trade struct {
	ID         int64
	Timestamp  time.Time
	Symbol     string
	Action     string
	Entry      *float64
	StopLoss   *float64
	TakeProfit *float64
	ExitPrice  *float64
	Profit     *float64
	Reason     string
	Reflection string
	AgentName  string
	Confidence *float64
}

// IsClosed devuelve true si el trade ya realizó su resultado.
// Invariante del productor: profit es NULL si y solo si el trade sigue abierto.
func (t Trade) IsClosed() bool {
	return t.Profit != nil
}

// IsExecution devuelve true si la acción es una ejecución real (BUY/SELL),
// no un tag de ciclo de vida.
func (t Trade) IsExecution() bool {
	return t.Action == ActionBuy || t.Action == ActionSell
}

// HasReflection devuelve true si el agente dejó una reflexión post-trade.
func (t Trade) HasReflection() bool {
	return t.Reflection != ""
}
