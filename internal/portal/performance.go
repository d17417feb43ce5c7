package portal

import (
	"context"

	"hrportal/internal/domain/performance"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/store"
)

func (p *Portal) FetchReviews(ctx context.Context) ([]performance.Review, error) {
	return dispatch(ctx, p, p.reviews, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) ([]performance.Review, error) {
			return p.performanceAPI.List(ctx, cred, nil)
		},
		func(m *store.Mutator[performance.Review], list []performance.Review) {
			m.ReplaceAll(All, list)
		})
}

func (p *Portal) FetchMyReviews(ctx context.Context) ([]performance.Review, error) {
	return dispatch(ctx, p, p.reviews, OpFetchMine,
		func(ctx context.Context, cred httpclient.Credential) ([]performance.Review, error) {
			return p.performanceAPI.ListAt(ctx, cred, "my-reviews", nil)
		},
		func(m *store.Mutator[performance.Review], list []performance.Review) {
			m.ReplaceAll(Mine, list)
		})
}

func (p *Portal) CreateReview(ctx context.Context, form ReviewForm) (performance.Review, error) {
	in, err := form.input(true)
	if err != nil {
		return performance.Review{}, err
	}
	return dispatch(ctx, p, p.reviews, OpCreate,
		func(ctx context.Context, cred httpclient.Credential) (performance.Review, error) {
			return p.performanceAPI.Create(ctx, cred, in)
		},
		func(m *store.Mutator[performance.Review], r performance.Review) {
			m.Append(r, All)
		})
}

func (p *Portal) UpdateReview(ctx context.Context, id string, form ReviewForm) (performance.Review, error) {
	in, err := form.input(false)
	if err != nil {
		return performance.Review{}, err
	}
	return dispatch(ctx, p, p.reviews, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (performance.Review, error) {
			return p.performanceAPI.Update(ctx, cred, id, in)
		},
		func(m *store.Mutator[performance.Review], r performance.Review) {
			m.ReplaceByKey(r, All, Mine)
		})
}
