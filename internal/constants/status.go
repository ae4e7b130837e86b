package constants

// Agent status values published by the status service.
const (
	StatusSurveying  = "surveying"
	StatusLocalising = "localising"
)
