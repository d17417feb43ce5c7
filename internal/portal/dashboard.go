package portal

import (
	"context"
	"net/http"

	"hrportal/internal/client"
	"hrportal/internal/domain/dashboard"
	"hrportal/internal/platform/httpclient"
)

func (p *Portal) FetchDashboard(ctx context.Context) (dashboard.Stats, error) {
	return fetchValue(ctx, p, p.dashboard, OpFetchAll, func(ctx context.Context, cred httpclient.Credential) (dashboard.Stats, error) {
		return client.Call[dashboard.Stats](ctx, p.caller, cred, http.MethodGet, client.Dashboard.Path+"/stats", nil, nil)
	})
}
