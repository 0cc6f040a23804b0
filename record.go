package nbsharvest

import (
	"context"
	"strings"
	"time"
)

// Unknown is the sentinel value for scalar fields whose value could not be
// determined from the source text. It is also used as the source URL of
// records whose origin could not be resolved from download metadata.
const Unknown = "unknown"

// Status is the reported stage of an NBS project.
type Status string

// Status values.
const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOngoing    Status = "ongoing"
	StatusUnknown    Status = Unknown
)

// ParseStatus normalizes a raw value to a Status. Comparison is
// case-insensitive; anything outside the closed set becomes StatusUnknown.
func ParseStatus(s string) Status {
	switch v := Status(strings.ToLower(strings.TrimSpace(s))); v {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusOngoing, StatusUnknown:
		return v
	}
	return StatusUnknown
}

// Scale is the geographic scope of an NBS project.
type Scale string

// Scale values.
const (
	ScaleSite         Scale = "site"
	ScaleNeighborhood Scale = "neighborhood"
	ScaleCity         Scale = "city"
	ScaleWatershed    Scale = "watershed"
	ScaleRegional     Scale = "regional"
	ScaleUnknown      Scale = Unknown
)

// ParseScale normalizes a raw value to a Scale. Comparison is
// case-insensitive; anything outside the closed set becomes ScaleUnknown.
func ParseScale(s string) Scale {
	switch v := Scale(strings.ToLower(strings.TrimSpace(s))); v {
	case ScaleSite, ScaleNeighborhood, ScaleCity, ScaleWatershed, ScaleRegional, ScaleUnknown:
		return v
	}
	return ScaleUnknown
}

// EnvContext is the broad environmental setting of an NBS project.
type EnvContext string

// EnvContext values.
const (
	EnvUrban        EnvContext = "urban"
	EnvCoastal      EnvContext = "coastal"
	EnvWetland      EnvContext = "wetland"
	EnvForest       EnvContext = "forest"
	EnvAgricultural EnvContext = "agricultural"
	EnvUnknown      EnvContext = Unknown
)

// ParseEnvContext normalizes a raw value to an EnvContext. Comparison is
// case-insensitive; anything outside the closed set becomes EnvUnknown.
func ParseEnvContext(s string) EnvContext {
	switch v := EnvContext(strings.ToLower(strings.TrimSpace(s))); v {
	case EnvUrban, EnvCoastal, EnvWetland, EnvForest, EnvAgricultural, EnvUnknown:
		return v
	}
	return EnvUnknown
}

// Record is the canonical validated output for one case-study page.
// The 13 canonical fields are always populated; list fields are ordered,
// lower-cased and de-duplicated. A record is created once by the pipeline
// and never mutated afterwards.
type Record struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	Summary               string     `json:"summary"`
	Status                Status     `json:"status"`
	LocationName          string     `json:"location_name"`
	Country               string     `json:"country"`
	Scale                 Scale      `json:"scale"`
	SolutionTypes         []string   `json:"solution_types"`
	ChallengesAddressed   []string   `json:"challenges_addressed"`
	HealthLinkagesPrimary []string   `json:"health_linkages_primary"`
	Impacts               []string   `json:"impacts"`
	Governance            string     `json:"governance"`
	SourceURL             string     `json:"url_source"`
	EnvironmentalContext  EnvContext `json:"environmental_context"`

	// Provenance, attached by the processor rather than the validator.
	DataSource  string    `json:"data_source"`
	SourceFile  string    `json:"source_file"`
	ContentHash string    `json:"content_hash"`
	ProcessedAt time.Time `json:"processed_date"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	return nil
}

// FieldNames lists the canonical schema fields followed by the provenance
// fields, in dataset column order.
func FieldNames() []string {
	return []string{
		"title",
		"summary",
		"status",
		"location_name",
		"country",
		"scale",
		"solution_types",
		"challenges_addressed",
		"health_linkages_primary",
		"impacts",
		"governance",
		"url_source",
		"environmental_context",
		"data_source",
		"source_file",
		"processed_date",
	}
}

// FieldDescriptions maps each dataset column to its human-readable
// meaning. It is written next to every exported dataset.
func FieldDescriptions() map[string]string {
	return map[string]string{
		"title":                   "Project name as given in the source",
		"summary":                 "2-4 sentence description of project purpose, actions, and context",
		"status":                  "Current stage (planned|in-progress|completed|ongoing|unknown)",
		"location_name":           "City/region/named site where the NBS is located",
		"country":                 "Country where the NBS is located",
		"scale":                   "Geographic scale (site|neighborhood|city|watershed|regional)",
		"solution_types":          "Broad categories of NBS used",
		"challenges_addressed":    "Main problems the project aims to solve",
		"health_linkages_primary": "Direct health outcomes linked to the NBS",
		"impacts":                 "Documented outcomes (environmental, social, or economic)",
		"governance":              "Who is responsible for implementation/maintenance",
		"url_source":              "Link to original project page or source",
		"environmental_context":   "Broad context (urban|coastal|wetland|forest|agricultural)",
		"data_source":             "Source platform (oppla or unacity)",
		"source_file":             "Original HTML file processed",
		"processed_date":          "Date and time of data extraction",
	}
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID         *string `json:"id"`
	SourceURL  *string `json:"sourceUrl"`
	DataSource *string `json:"dataSource"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordService represents a durable store of accumulated records.
// CreateRecord must be durable by the time it returns; that is the
// checkpoint boundary the pipeline relies on.
type RecordService interface {
	// CreateRecord persists a new record. Returns ECONFLICT if a record
	// with the same source URL already exists, unless the URL is the
	// "unknown" sentinel.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecords retrieves records matching the filter, oldest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// SourceURLs returns the set of source URLs already recorded.
	// The "unknown" sentinel is never included.
	SourceURLs(ctx context.Context) (map[string]bool, error)
}
