package types

// ListProjectsQuery is the query of the project listing. Absent parameters
// stay nil.
type ListProjectsQuery struct {
	SerialSince *int64 `query:"serial_since" validate:"omitempty,gte=0"`
	Serial      *int64 `query:"serial" validate:"omitempty,gte=0"`
	Page        *int64 `query:"page" validate:"omitempty,gte=1"`
}

// JournalQuery selects a replay window either by Unix timestamp or by
// serial. Exactly one must be set; the handler enforces that. Since is
// capped at the last second of year 9999.
type JournalQuery struct {
	Since  *int64 `query:"since" validate:"omitempty,gte=0,lte=253402300799"`
	Serial *int64 `query:"serial" validate:"omitempty,gte=0"`
}
