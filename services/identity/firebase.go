// Package identitysvc resolves bearer ID tokens against the hosted identity
// provider.
package identitysvc

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/auth"
)

type firebaseVerifier struct {
	client *fbauth.Client
	log    core.Logger
}

var _ auth.Verifier = (*firebaseVerifier)(nil)

func NewFirebaseVerifier(ctx context.Context, conf *core.Config, log core.Logger) (auth.Verifier, error) {
	var opts []option.ClientOption
	if conf.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing identity app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing identity client")
	}
	return &firebaseVerifier{client: client, log: log}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (auth.User, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.log.Debug("rejected id token", err)
		return auth.User{}, auth.ErrUnauthenticated
	}
	return userFromToken(token), nil
}

func userFromToken(token *fbauth.Token) auth.User {
	usr := auth.User{ID: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		usr.Name = name
	}
	if email, ok := token.Claims["email"].(string); ok {
		usr.Email = email
	}
	// roles is a custom claim set at account provisioning time
	if raw, ok := token.Claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				usr.Roles = append(usr.Roles, role)
			}
		}
	}
	return usr
}
