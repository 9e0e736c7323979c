package healthrecords

import "time"

// HealthRecord representa un documento de salud del usuario (estudio,
// receta, informe) ya subido al storage externo; acá solo se guarda la URL.
type HealthRecord struct {
	ID          string
	OwnerUserID string

	Title   string
	Kind    Kind
	FileURL string

	// Summary lo completa el analizador de documentos; vacío hasta entonces.
	Summary        string
	AnalysisStatus AnalysisStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
