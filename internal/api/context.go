package api

import (
	"context"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFromContext(ctx context.Context) *User {
	v := ctx.Value(ctxKeyUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*User)
	return u
}
