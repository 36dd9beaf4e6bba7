package service

import (
	"context"
	"iter"
	"strings"

	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/view"
)

// RenderUsers renders users as an HTML unordered list with one
// "{name}, {age} years old" item per user. An empty sequence renders as
// "<ul></ul>". Names are HTML-escaped.
func RenderUsers(ctx context.Context, users iter.Seq[domain.UserBase]) (string, error) {
	var sb strings.Builder
	if err := view.UserList(users).Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// BaseUsers projects persisted users onto their base shape, in order.
func BaseUsers(users []domain.UserWithID) iter.Seq[domain.UserBase] {
	return func(yield func(domain.UserBase) bool) {
		for _, u := range users {
			if !yield(u.UserBase) {
				return
			}
		}
	}
}
