package data

import (
	"hrportal/internal/domain/performance"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

func (s *Store) ListReviews() []performance.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.list(nil)
}

func (s *Store) MyReviews(p requestctx.Principal) ([]performance.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return nil, err
	}
	return s.reviews.list(func(r performance.Review) bool { return r.EmployeeID == acct.User.EmployeeID }), nil
}

func (s *Store) CreateReview(p requestctx.Principal, in performance.Input) (performance.Review, error) {
	v := validation.New()
	v.Required("employeeId", in.EmployeeID)
	v.Required("period", in.Period)
	v.IntRange("rating", in.Rating, performance.MinRating, performance.MaxRating)
	v.Enum("status", in.Status, performance.Statuses)
	if v.HasIssues() {
		return performance.Review{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees.get(in.EmployeeID); !ok {
		return performance.Review{}, ErrEmployeeNotFound
	}
	now := s.now()
	review := performance.Review{
		ID:           s.newID(),
		EmployeeID:   in.EmployeeID,
		EmployeeName: s.employeeName(in.EmployeeID),
		ReviewerID:   p.UserID,
		Period:       in.Period,
		Rating:       in.Rating,
		Goals:        in.Goals,
		Strengths:    in.Strengths,
		Improvements: in.Improvements,
		Comments:     in.Comments,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if review.Status == "" {
		review.Status = performance.StatusDraft
	}
	s.reviews.put(review.ID, review)
	return review, nil
}

func (s *Store) UpdateReview(id string, in performance.Input) (performance.Review, error) {
	v := validation.New()
	if in.Rating != 0 {
		v.IntRange("rating", in.Rating, performance.MinRating, performance.MaxRating)
	}
	v.Enum("status", in.Status, performance.Statuses)
	if v.HasIssues() {
		return performance.Review{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews.get(id)
	if !ok {
		return performance.Review{}, ErrReviewNotFound
	}
	if in.Rating != 0 {
		review.Rating = in.Rating
	}
	setIfPresent(&review.Period, in.Period)
	setIfPresent(&review.Goals, in.Goals)
	setIfPresent(&review.Strengths, in.Strengths)
	setIfPresent(&review.Improvements, in.Improvements)
	setIfPresent(&review.Comments, in.Comments)
	setIfPresent(&review.Status, in.Status)
	review.UpdatedAt = s.now()
	s.reviews.put(review.ID, review)
	return review, nil
}
