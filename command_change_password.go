package catalog

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type ChangePasswordMessage struct {
	Identifier      string `json:"username" example:"jdoe" doc:"Username or email of the account"`
	CurrentPassword string `json:"old_password" example:"hunter2" doc:"Current password"`
	NewPassword     string `json:"new_password" example:"correct-horse" doc:"Replacement password"`
}

func (e ChangePasswordMessage) Type() string { return "user.change_password" }

type ChangePasswordHandler struct {
	auth   Authenticator
	logger Logger
}

// NewChangePasswordHandler creates a handler with sane defaults.
func NewChangePasswordHandler(auth Authenticator) *ChangePasswordHandler {
	return &ChangePasswordHandler{
		auth:   auth,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the handler.
func (h *ChangePasswordHandler) WithLogger(logger Logger) *ChangePasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, event ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryInternal,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, event ChangePasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.auth.ChangePassword(ctx, event.Identifier, event.CurrentPassword, event.NewPassword)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to change password")
	}

	h.logger.Info("password changed", "identifier", event.Identifier)

	return nil
}
