package healthrecords

// Kind clasifica el documento de salud.
type Kind string

const (
	KindReport       Kind = "report"
	KindPrescription Kind = "prescription"
	KindScan         Kind = "scan"
	KindOther        Kind = "other"
)

func validKind(k Kind) bool {
	switch k {
	case KindReport, KindPrescription, KindScan, KindOther:
		return true
	}
	return false
}

// AnalysisStatus es el estado del resumen asistido por AI.
type AnalysisStatus string

const (
	AnalysisNone    AnalysisStatus = "none"
	AnalysisPending AnalysisStatus = "pending"
	AnalysisDone    AnalysisStatus = "done"
	AnalysisFailed  AnalysisStatus = "failed"
)
