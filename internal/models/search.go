package models

// SearchResult is the outcome of a hall-ticket lookup. It is composed on demand and never stored.
type SearchResult struct {
	Student         Student    `json:"student"`
	Seat            Seat       `json:"seat"`
	Classroom       Classroom  `json:"classroom"`
	NearbyLandmarks []Landmark `json:"nearbyLandmarks"`
	Exam            *Exam      `json:"exam,omitempty"`
}
