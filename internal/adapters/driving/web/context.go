package web

import (
	"context"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

type credentialKey struct{}

type requestIDKey struct{}

func withCredential(ctx context.Context, cred domain.Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// credentialFrom returns the forwarded credential, or the empty credential.
func credentialFrom(ctx context.Context) domain.Credential {
	cred, _ := ctx.Value(credentialKey{}).(domain.Credential)
	return cred
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// requestIDFrom returns the id assigned to the current request.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
