package domain

import "errors"

// ErrDataUnavailable marca que el store no está accesible o la query falló.
// La presentación lo mapea a un placeholder ("no data yet") en vez de tumbar
// el loop de refresco. Un resultado vacío NO es un error: se representa como
// secuencia vacía.
var ErrDataUnavailable = errors.New("data unavailable")
