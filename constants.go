package scrapemachine

const (
	// Query window defaults
	DefaultHorizonDays = 7

	// PreviewPath is where dry-run output lands, overwritten each run.
	PreviewPath = "preview.html"

	// Subject line for the availability report; the verb count is filled per run.
	SubjectFormat = "Court availability: %d free slots"
)
