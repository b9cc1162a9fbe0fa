package domain

import "time"

// EquityPoint es un punto de la curva de equity: el profit acumulado
// hasta el timestamp del trade cerrado correspondiente.
// Ley de suma de prefijos: Cumulative[k] = Cumulative[k-1] + profit[k].
type EquityPoint struct {
	Timestamp  time.Time
	Cumulative float64
}
