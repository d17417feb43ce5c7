package portal

import (
	"context"
	"net/http"
	"net/url"

	"hrportal/internal/client"
	"hrportal/internal/domain/document"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/store"
)

func (p *Portal) FetchDocuments(ctx context.Context, filter document.Filter) ([]document.Document, error) {
	return dispatch(ctx, p, p.documents, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) ([]document.Document, error) {
			return p.documentAPI.List(ctx, cred, filter.Values())
		},
		func(m *store.Mutator[document.Document], list []document.Document) {
			m.ReplaceAll(All, list)
		})
}

func (p *Portal) FetchMyDocuments(ctx context.Context) ([]document.Document, error) {
	return dispatch(ctx, p, p.documents, OpFetchMine,
		func(ctx context.Context, cred httpclient.Credential) ([]document.Document, error) {
			return p.documentAPI.ListAt(ctx, cred, "my-documents", nil)
		},
		func(m *store.Mutator[document.Document], list []document.Document) {
			m.ReplaceAll(Mine, list)
		})
}

// UploadDocument sends the file as multipart form data. The new document
// lands in both collections.
func (p *Portal) UploadDocument(ctx context.Context, form DocumentForm) (document.Document, error) {
	fields, err := form.form()
	if err != nil {
		return document.Document{}, err
	}
	body := &httpclient.Multipart{
		Fields:      fields,
		FileField:   "file",
		FileName:    form.File.Name,
		ContentType: form.File.ContentType,
		File:        form.File.Content,
	}
	return dispatch(ctx, p, p.documents, OpCreate,
		func(ctx context.Context, cred httpclient.Credential) (document.Document, error) {
			return p.documentAPI.Upload(ctx, cred, "", body)
		},
		func(m *store.Mutator[document.Document], d document.Document) {
			m.Append(d, All, Mine)
		})
}

func (p *Portal) UpdateDocument(ctx context.Context, id string, patch document.Patch) (document.Document, error) {
	return dispatch(ctx, p, p.documents, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (document.Document, error) {
			return p.documentAPI.Update(ctx, cred, id, patch)
		},
		func(m *store.Mutator[document.Document], d document.Document) {
			m.ReplaceByKey(d, All, Mine)
		})
}

func (p *Portal) VerifyDocument(ctx context.Context, id string) (document.Document, error) {
	return dispatch(ctx, p, p.documents, OpVerify,
		func(ctx context.Context, cred httpclient.Credential) (document.Document, error) {
			return p.documentAPI.Do(ctx, cred, http.MethodPost, url.PathEscape(id)+"/verify", nil)
		},
		func(m *store.Mutator[document.Document], d document.Document) {
			m.ReplaceByKey(d, All, Mine)
		})
}

func (p *Portal) DeleteDocument(ctx context.Context, id string) error {
	_, err := dispatch(ctx, p, p.documents, OpDelete,
		func(ctx context.Context, cred httpclient.Credential) (struct{}, error) {
			return struct{}{}, p.documentAPI.Delete(ctx, cred, id)
		},
		func(m *store.Mutator[document.Document], _ struct{}) {
			m.Remove(id, All, Mine)
		})
	return err
}

func (p *Portal) FetchDocumentStats(ctx context.Context) (document.Stats, error) {
	return fetchValue(ctx, p, p.documentStats, OpStats, func(ctx context.Context, cred httpclient.Credential) (document.Stats, error) {
		return client.Call[document.Stats](ctx, p.caller, cred, http.MethodGet, client.Documents.Path+"/stats/overview", nil, nil)
	})
}
