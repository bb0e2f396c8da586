package intel

import (
	"fmt"

	"geodrive/internal/domain/insight"
)

// ReportComposer assembles structured report sections from current engine
// state for export. Sections are plain title/body blocks, independent of the
// pagination mechanism that turns them into a file.
type ReportComposer struct{}

// NewReportComposer creates a report composer.
func NewReportComposer() *ReportComposer {
	return &ReportComposer{}
}

// Compose builds the ordered section list for a report kind. The product and
// company sections are omitted entirely when no product context is loaded; a
// full report never requires one.
func (c *ReportComposer) Compose(kind insight.ReportKind, state insight.ReportState) []insight.ReportSection {
	switch kind {
	case insight.ReportProduct:
		if section, ok := productSection(state); ok {
			return []insight.ReportSection{section}
		}
		return nil

	case insight.ReportCompany:
		if section, ok := companySection(state); ok {
			return []insight.ReportSection{section}
		}
		return nil

	case insight.ReportFull:
		sections := []insight.ReportSection{
			{
				Title: "Full Dashboard Snapshot",
				Body:  fmt.Sprintf("Full dashboard snapshot covering %d activity feed entries.", state.HistorySize),
			},
		}
		if section, ok := productSection(state); ok {
			sections = append(sections, section)
		}
		if section, ok := companySection(state); ok {
			sections = append(sections, section)
		}
		return sections

	default:
		return nil
	}
}

func productSection(state insight.ReportState) (insight.ReportSection, bool) {
	if state.Product == nil {
		return insight.ReportSection{}, false
	}
	return insight.ReportSection{
		Title: "Product Overview",
		Body: fmt.Sprintf(
			"%s: %.1f%% positive sentiment across %d reviews.",
			state.Product.ModelName,
			state.Product.SentimentSummary.PositivePercent,
			state.Product.TotalReviews,
		),
	}, true
}

func companySection(state insight.ReportState) (insight.ReportSection, bool) {
	if state.Product == nil || state.Product.Company == "" {
		return insight.ReportSection{}, false
	}
	return insight.ReportSection{
		Title: "Company Overview",
		Body: fmt.Sprintf(
			"%s: %d reviews on record.",
			state.Product.Company,
			state.Product.TotalReviews,
		),
	}, true
}
