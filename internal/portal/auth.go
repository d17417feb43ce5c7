package portal

import (
	"context"
	"errors"
	"net/http"

	"hrportal/internal/client"
	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/session"
)

// Login exchanges credentials for a token. A failure leaves the auth slice
// failed with the backend message and no session.
func (p *Portal) Login(ctx context.Context, form LoginForm) (auth.User, error) {
	if err := form.Validate(); err != nil {
		return auth.User{}, err
	}
	return p.authenticate(ctx, OpLogin, "auth/login", form)
}

func (p *Portal) Register(ctx context.Context, form RegisterForm) (auth.User, error) {
	if err := form.Validate(); err != nil {
		return auth.User{}, err
	}
	return p.authenticate(ctx, OpRegister, "auth/register", form)
}

func (p *Portal) authenticate(ctx context.Context, op, path string, payload any) (auth.User, error) {
	tk := p.auth.Begin(op)
	// Login and registration never carry a token, even a stale restored one.
	result, err := client.Call[auth.AuthResult](ctx, p.caller, httpclient.Credential{}, http.MethodPost, path, nil, payload)
	if err != nil {
		if !p.auth.Fail(tk, httpclient.Message(err)) {
			return auth.User{}, stale(err)
		}
		return auth.User{}, err
	}
	// A stale completion must not replace the session a newer one started.
	if !p.auth.Resolve(tk, result.User) {
		return result.User, ErrSuperseded
	}
	if err := p.session.Start(result.User, result.Token); err != nil {
		p.logger.Warn("persist token failed", "err", err)
	}
	return result.User, nil
}

// FetchProfile loads the signed-in user. A failure forgets the token, the
// same as an explicit logout. A superseded fetch leaves the session alone.
func (p *Portal) FetchProfile(ctx context.Context) (auth.User, error) {
	done := p.session.Track()
	defer done()
	user, err := fetchValue(ctx, p, p.auth, OpProfile, func(ctx context.Context, cred httpclient.Credential) (auth.User, error) {
		return p.authAPI.Do(ctx, cred, http.MethodGet, "profile", nil)
	})
	if errors.Is(err, ErrSuperseded) {
		return user, err
	}
	if err != nil {
		if endErr := p.session.End(); endErr != nil {
			p.logger.Warn("clear token failed", "err", endErr)
		}
		return auth.User{}, err
	}
	p.session.Confirm(user)
	return user, nil
}

// RestoreSession turns a token persisted by an earlier run back into an
// authenticated session. Expired tokens are dropped without a request.
func (p *Portal) RestoreSession(ctx context.Context) (auth.User, error) {
	if user, ok := p.session.User(); ok {
		return user, nil
	}
	if !p.session.HasToken() {
		return auth.User{}, session.ErrNotAuthenticated
	}
	if p.session.TokenExpired(p.now()) {
		if err := p.session.End(); err != nil {
			p.logger.Warn("clear token failed", "err", err)
		}
		return auth.User{}, session.ErrNotAuthenticated
	}
	return p.FetchProfile(ctx)
}

func (p *Portal) UpdateProfile(ctx context.Context, form ProfileForm) (auth.User, error) {
	if err := form.Validate(); err != nil {
		return auth.User{}, err
	}
	user, err := fetchValue(ctx, p, p.auth, OpUpdateProfile, func(ctx context.Context, cred httpclient.Credential) (auth.User, error) {
		return p.authAPI.Do(ctx, cred, http.MethodPut, "profile", form)
	})
	if err == nil {
		p.session.Confirm(user)
	}
	return user, err
}

// UploadProfilePicture sends an image under 2MB as the avatar part of a
// profile update.
func (p *Portal) UploadProfilePicture(ctx context.Context, file File) (auth.User, error) {
	if err := file.validatePicture(); err != nil {
		return auth.User{}, err
	}
	form := &httpclient.Multipart{
		FileField:   "avatar",
		FileName:    file.Name,
		ContentType: file.ContentType,
		File:        file.Content,
	}
	user, err := fetchValue(ctx, p, p.auth, OpUploadPicture, func(ctx context.Context, cred httpclient.Credential) (auth.User, error) {
		return p.authAPI.UploadWith(ctx, cred, http.MethodPut, "profile", form)
	})
	if err == nil {
		p.session.Confirm(user)
	}
	return user, err
}

func (p *Portal) ChangePassword(ctx context.Context, form ChangePasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	tk := p.auth.Begin(OpChangePassword)
	_, err := client.Call[map[string]string](ctx, p.caller, p.session.Credential(), http.MethodPut, "auth/change-password", nil, form)
	if err != nil {
		p.auth.Fail(tk, httpclient.Message(err))
		return err
	}
	p.auth.Settle(tk)
	return nil
}

// Logout tells the backend, then drops the session and every cache whether
// or not the backend answered.
func (p *Portal) Logout(ctx context.Context) error {
	tk := p.auth.Begin(OpLogout)
	if p.session.HasToken() {
		if _, err := client.Call[map[string]string](ctx, p.caller, p.session.Credential(), http.MethodPost, "auth/logout", nil, nil); err != nil {
			p.logger.Debug("logout request failed", "err", err)
		}
	}
	err := p.session.End()
	p.Reset()
	p.auth.Settle(tk)
	return err
}
