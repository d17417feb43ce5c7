package data

import (
	"hrportal/internal/domain/document"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

type UploadInput struct {
	Title       string
	Category    string
	Type        string
	Description string
	FileName    string
	ContentType string
	FileSize    int64
}

func (s *Store) ListDocuments(f document.Filter) []document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents.list(f.Match)
}

func (s *Store) MyDocuments(p requestctx.Principal) ([]document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return nil, err
	}
	return s.documents.list(func(d document.Document) bool { return d.EmployeeID == acct.User.EmployeeID }), nil
}

func (s *Store) UploadDocument(p requestctx.Principal, in UploadInput) (document.Document, error) {
	v := validation.New()
	v.Required("title", in.Title)
	v.Required("file", in.FileName)
	v.Enum("category", in.Category, document.Categories)
	if v.HasIssues() {
		return document.Document{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return document.Document{}, err
	}
	doc := document.Document{
		ID:          s.newID(),
		EmployeeID:  acct.User.EmployeeID,
		Title:       in.Title,
		Category:    in.Category,
		Type:        in.Type,
		Description: in.Description,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		FileSize:    in.FileSize,
		Status:      document.StatusPending,
		UploadedAt:  s.now(),
	}
	if doc.Category == "" {
		doc.Category = "Other"
	}
	if doc.Type == "" {
		doc.Type = doc.Category
	}
	s.documents.put(doc.ID, doc)
	return doc, nil
}

func (s *Store) UpdateDocument(p requestctx.Principal, id string, in document.Patch) (document.Document, error) {
	v := validation.New()
	v.Enum("category", in.Category, document.Categories)
	v.Enum("status", in.Status, document.Statuses)
	if v.HasIssues() {
		return document.Document{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents.get(id)
	if !ok {
		return document.Document{}, ErrDocumentNotFound
	}
	acct, err := s.caller(p)
	if err != nil {
		return document.Document{}, err
	}
	if !isManager(p.Role) {
		if doc.EmployeeID != acct.User.EmployeeID {
			return document.Document{}, ErrAccessDenied
		}
		if in.Status != "" {
			return document.Document{}, forbidden("Only HR can change document status")
		}
	}
	setIfPresent(&doc.Title, in.Title)
	setIfPresent(&doc.Category, in.Category)
	setIfPresent(&doc.Type, in.Type)
	setIfPresent(&doc.Description, in.Description)
	setIfPresent(&doc.Status, in.Status)
	s.documents.put(doc.ID, doc)
	return doc, nil
}

func (s *Store) VerifyDocument(p requestctx.Principal, id string) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents.get(id)
	if !ok {
		return document.Document{}, ErrDocumentNotFound
	}
	now := s.now()
	doc.Status = document.StatusVerified
	doc.VerifiedBy = p.UserID
	doc.VerifiedAt = &now
	s.documents.put(doc.ID, doc)
	return doc, nil
}

func (s *Store) DeleteDocument(p requestctx.Principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents.get(id)
	if !ok {
		return ErrDocumentNotFound
	}
	acct, err := s.caller(p)
	if err != nil {
		return err
	}
	if !isManager(p.Role) && doc.EmployeeID != acct.User.EmployeeID {
		return ErrAccessDenied
	}
	s.documents.delete(id)
	return nil
}

// DocumentStats summarizes every document for HR and admins, and only the
// caller's own documents for everyone else.
func (s *Store) DocumentStats(p requestctx.Principal) (document.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isManager(p.Role) {
		return document.Summarize(s.documents.list(nil)), nil
	}
	acct, err := s.caller(p)
	if err != nil {
		return document.Stats{}, err
	}
	return document.Summarize(s.documents.list(func(d document.Document) bool {
		return d.EmployeeID == acct.User.EmployeeID
	})), nil
}
