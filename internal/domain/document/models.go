package document

import (
	"net/url"
	"time"
)

var Categories = []string{"Policy", "Forms", "Benefits", "Training", "Reports", "Other"}

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

var Statuses = []string{StatusPending, StatusVerified, StatusRejected}

type Document struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType,omitempty"`
	FileSize    int64      `json:"fileSize"`
	Status      string     `json:"status"`
	VerifiedBy  string     `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

func (d Document) Key() string {
	return d.ID
}

// Patch carries the editable metadata of a document. Empty fields are left
// untouched by the backend.
type Patch struct {
	Title       string `json:"title,omitempty"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByCategory map[string]int `json:"byCategory"`
}

type Filter struct {
	Type   string
	Status string
}

func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Type != "" {
		values.Set("type", f.Type)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	return values
}

func (f Filter) Match(d Document) bool {
	if f.Type != "" && d.Type != f.Type && d.Category != f.Type {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return true
}

// Summarize counts documents per status and category.
func Summarize(docs []Document) Stats {
	stats := Stats{ByStatus: map[string]int{}, ByCategory: map[string]int{}}
	for _, d := range docs {
		stats.Total++
		stats.ByStatus[d.Status]++
		stats.ByCategory[d.Category]++
	}
	return stats
}
