// Package compliance reduce el historial de adherencia de todas las
// medicaciones de un usuario a un resumen de dos buckets.
package compliance

import "health-companion/internal/domain/medications"

// Summary son los contadores de dosis registradas. No se deriva porcentaje
// acá: con cero entradas ambos contadores quedan en 0 y la capa de
// presentación debe evitar dividir por cero.
type Summary struct {
	Taken  int `json:"taken"`
	Missed int `json:"missed"`
}

// Aggregate recorre cada entrada por día de cada medicación: true suma a
// Taken, false a Missed. El orden de iteración es irrelevante (mapa por
// fecha, sin semántica de orden). Registros malformados se saltean para no
// bloquear el cómputo del resto.
func Aggregate(meds []medications.Medication) Summary {
	var s Summary
	for _, m := range meds {
		if m.Malformed() {
			continue
		}
		for _, taken := range m.Taken {
			if taken {
				s.Taken++
			} else {
				s.Missed++
			}
		}
	}
	return s
}
