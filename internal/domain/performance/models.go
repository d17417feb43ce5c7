package performance

import "time"

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusCompleted = "completed"
)

var Statuses = []string{StatusDraft, StatusSubmitted, StatusCompleted}

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	ReviewerID   string    `json:"reviewerId"`
	Period       string    `json:"period"`
	Rating       int       `json:"rating"`
	Goals        string    `json:"goals,omitempty"`
	Strengths    string    `json:"strengths,omitempty"`
	Improvements string    `json:"improvements,omitempty"`
	Comments     string    `json:"comments,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r Review) Key() string {
	return r.ID
}

type Input struct {
	EmployeeID   string `json:"employeeId,omitempty"`
	Period       string `json:"period,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	Goals        string `json:"goals,omitempty"`
	Strengths    string `json:"strengths,omitempty"`
	Improvements string `json:"improvements,omitempty"`
	Comments     string `json:"comments,omitempty"`
	Status       string `json:"status,omitempty"`
}
