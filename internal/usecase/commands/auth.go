package commands

import (
	"context"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/pkg/jwt"
	"venue-reservations/internal/pkg/password"
	"venue-reservations/internal/usecase/queries"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAuthenticationFailed = errs.New("authentication failed")

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService, clock: clk}
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password and deactivated account all collapse into the same failure so the
// response does not leak which one it was.
func (c *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (string, *queries.AuthorizedUserView, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	var u *user.User
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err = tx.Users().FindByEmail(ctx, addr.String())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAuthenticationFailed
			}
			return err
		}
		if !u.IsActive() {
			return ErrAuthenticationFailed
		}
		if err := password.ComparePassword(u.PasswordHash(), rawPassword); err != nil {
			return ErrAuthenticationFailed
		}
		return tx.Users().UpdateLastLogin(ctx, u.ID(), c.clock.Now())
	})
	if err != nil {
		return "", nil, err
	}

	token, err := c.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, errs.Wrap(err, "failed to generate token")
	}
	return token, toAuthorizedView(u), nil
}

func (c *authCommandsImpl) GetCurrentUser(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var u *user.User
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		u, err = tx.Users().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAuthorizedView(u), nil
}

func toAuthorizedView(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          u.ID(),
		Email:       u.Email().String(),
		Role:        u.Role().String(),
		DisplayName: u.DisplayName(),
		IsActive:    u.IsActive(),
	}
}
