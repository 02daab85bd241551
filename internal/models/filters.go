package models

// CourseFilter narrows course listings.
type CourseFilter struct {
	Priority *int
	Search   string
	Page     int
	PageSize int
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	CourseID  string
	DayOfWeek *int
	Type      string
	Page      int
	PageSize  int
}

// ConstraintFilter narrows constraint listings.
type ConstraintFilter struct {
	Type     string
	Page     int
	PageSize int
}
