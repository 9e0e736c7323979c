package auth

// Claims representa la información extraída del token del proveedor de identidad.
type Claims struct {
	UserID string
	Email  string
}
