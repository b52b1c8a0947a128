package catalog

import "fmt"

// IssueKind classifies a referential problem in the reference data.
type IssueKind string

const (
	IssueDuplicateHallTicket IssueKind = "duplicate_hall_ticket"
	IssueDuplicateAllocation IssueKind = "duplicate_allocation"
	IssueRepeatedExam        IssueKind = "repeated_exam"
	IssueDanglingSeat        IssueKind = "dangling_seat"
	IssueUnknownExam         IssueKind = "unknown_exam"
	IssueIncompleteGrid      IssueKind = "incomplete_grid"
)

// Issue is one finding from the build-time audit.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.Subject, i.Detail)
}
