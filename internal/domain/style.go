package domain

// StyleTag es la decoración que el renderer aplica a una celda de profit.
// La decisión es una función pura del valor; cómo se pinta (ANSI, CSS...)
// es cosa de cada capa de presentación.
type StyleTag int

const (
	StyleDefault StyleTag = iota
	StyleProfit
	StyleLoss
)

// ProfitStyle decide el estilo de una celda de profit: verde si gana,
// rojo si pierde, neutro en cero o desconocido (trade abierto).
func ProfitStyle(profit *float64) StyleTag {
	switch {
	case profit == nil:
		return StyleDefault
	case *profit > 0:
		return StyleProfit
	case *profit < 0:
		return StyleLoss
	default:
		return StyleDefault
	}
}
