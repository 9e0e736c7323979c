package preferences

// Preferences son las preferencias persistidas del usuario. Antes vivían en
// un cache global mutable del cliente; acá son estado explícito del store,
// cargado on demand.
type Preferences struct {
	UserID           string
	RemindersEnabled bool
	Theme            string // light | dark
}

// Defaults es lo que vale para un usuario sin fila persistida.
func Defaults(userID string) Preferences {
	return Preferences{
		UserID:           userID,
		RemindersEnabled: true,
		Theme:            "light",
	}
}
