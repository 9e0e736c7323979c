package medications

import "time"

const (
	// DateLayout es la clave de calendario usada en Taken y en start/end.
	// Fechas "naive": sin timezone persistida, igual que el resto del sistema.
	DateLayout = "2006-01-02"

	// TimeLayout es el formato de horario de dosis (24h, minuto exacto).
	TimeLayout = "15:04"
)

// TakenState es el estado tri-valuado de una dosis para un día dado.
// "unrecorded" (sin entrada) es distinto de "not_taken" (registrado como
// no tomado); la UI debe diferenciarlos.
type TakenState string

const (
	TakenStateTaken      TakenState = "taken"
	TakenStateNotTaken   TakenState = "not_taken"
	TakenStateUnrecorded TakenState = "unrecorded"
)

// Medication representa un tratamiento del usuario con su horario de dosis
// y el historial de adherencia por día.
type Medication struct {
	ID          string
	OwnerUserID string

	Name      string
	StartDate string   // YYYY-MM-DD
	EndDate   string   // YYYY-MM-DD (end >= start recomendado, no forzado)
	Timings   []string // HH:MM, en el orden que cargó el usuario
	Frequency string   // descriptor libre, no se interpreta
	Remarks   string

	// Taken mapea fecha (YYYY-MM-DD) -> tomado/no tomado.
	// Nunca es nil: mapa vacío = sin registros todavía.
	// Solo crece o sobreescribe entradas por día; una entrada no se borra
	// salvo eliminando la medicación completa.
	Taken map[string]bool

	CreatedAt time.Time
}

// Malformed indica un registro corrupto (sin nombre o sin horarios).
// El matcher y el agregador lo saltean en vez de abortar el lote.
func (m Medication) Malformed() bool {
	return m.Name == "" || len(m.Timings) == 0
}

// TakenOn devuelve el estado tri-valuado de la dosis para una fecha.
func (m Medication) TakenOn(date string) TakenState {
	v, ok := m.Taken[date]
	if !ok {
		return TakenStateUnrecorded
	}
	if v {
		return TakenStateTaken
	}
	return TakenStateNotTaken
}

// DueAt indica si clock (HH:MM) coincide con algún horario configurado.
// Igualdad exacta de string a resolución de minuto, sin ventana de
// tolerancia: si el chequeo no corre durante ese minuto, la coincidencia
// se pierde en silencio.
func (m Medication) DueAt(clock string) bool {
	if m.Malformed() {
		return false
	}
	for _, t := range m.Timings {
		if t == clock {
			return true
		}
	}
	return false
}
