package ports

// Caller identidad autenticada de quien invoca un caso de uso.
// Staff ve y modifica todo; un cliente solo lee lo suyo.
type Caller struct {
	UserID string
	Staff  bool
}

// CanRead indica si el llamador puede leer un recurso del dueño dado.
func (c Caller) CanRead(ownerID string) bool {
	return c.Staff || (ownerID != "" && ownerID == c.UserID)
}
