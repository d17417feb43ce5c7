package dashboard

type Stats struct {
	TotalEmployees  int `json:"totalEmployees"`
	ActiveEmployees int `json:"activeEmployees"`
	PendingLeaves   int `json:"pendingLeaves"`
	PendingReviews  int `json:"pendingReviews"`
	TodayAttendance int `json:"todayAttendance"`
	PendingDocs     int `json:"pendingDocuments"`
}
