package insight

// ReportKind selects which report a composer builds.
type ReportKind string

const (
	ReportProduct ReportKind = "product"
	ReportCompany ReportKind = "company"
	ReportFull    ReportKind = "full"
)

// ReportSection is a plain structured text block, independent of whatever
// rendering or pagination turns sections into a file.
type ReportSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ReportState bundles the latest engine state available to the composer.
type ReportState struct {
	Product     *ProductProfile
	Fingerprint FingerprintVector
	HistorySize int
}
