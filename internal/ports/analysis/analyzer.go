package analysis

import "context"

// Analyzer resume un documento clínico a partir de su URL.
// La implementación (proveedor de AI, polling, reintentos) vive en adapters.
type Analyzer interface {
	Summarize(ctx context.Context, fileURL string) (string, error)
}
