package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-myself-vault/internal/app"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/internal/session"
	"github.com/MKhiriev/go-myself-vault/internal/validators"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
)

var userMessages = []struct {
	err error
	msg string
}{
	{crypto.ErrTamperedOrWrongPassword, app.MsgTamperedOrWrongPassword},
	{crypto.ErrCorruptPayload, app.MsgCorruptPayload},
	{pack.ErrInvalidFormat, app.MsgInvalidFormat},
	{pack.ErrEmptyPassword, app.MsgEmptyPassword},
	{vault.ErrWrongPassword, app.MsgWrongPassword},
	{vault.ErrEmptyPassword, app.MsgEmptyPassword},
	{vault.ErrPasswordNotSet, app.MsgPasswordNotSet},
	{vault.ErrAlreadyInitialized, app.MsgAlreadyInitialized},
	{vault.ErrLocked, app.MsgVaultLocked},
	{service.ErrEmptyPassword, app.MsgEmptyPassword},
	{service.ErrIdentityMismatch, app.MsgIdentityMismatch},
	{service.ErrMissingIdentityAnchor, app.MsgMissingIdentityAnchor},
	{service.ErrImportCancelled, app.MsgImportCancelled},
	{service.ErrSelfConflict, app.MsgSelfConflict},
	{service.ErrNameCollision, app.MsgNameCollision},
	{service.ErrRemarkRequired, app.MsgRemarkRequired},
	{service.ErrStorageWriteFailure, app.MsgStorageWriteFailure},
	{service.ErrContactNotFound, app.MsgContactNotFound},
	{service.ErrDeleteNotConfirmed, app.MsgDeleteNotConfirmed},
	{service.ErrInvalidLegacyDiary, app.MsgInvalidLegacyDiary},
	{service.ErrUnknownImportMode, app.MsgUnknownImportMode},
	{session.ErrSessionExpired, app.MsgSessionExpired},
	{validators.ErrInvalidInput, app.MsgInvalidInput},
	{ErrPasswordMismatch, app.MsgPasswordMismatch},
	{ErrUsage, app.MsgUsage},
	{ErrUnknownCommand, app.MsgUsage},
	{context.Canceled, app.MsgCancelled},
}

// UserMessage returns the text shown to the user for err. Sentinels are
// matched in table order.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return app.MsgInternalError
}
