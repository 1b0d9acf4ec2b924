// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"

	"github.com/MKhiriev/go-pin-vault/internal/app"
	"github.com/MKhiriev/go-pin-vault/internal/service"
)

// Process exit codes.
const (
	exitFailure        = 1
	exitInvalidInput   = 2
	exitAuthentication = 3
)

var errorMessageMap = map[error]string{
	service.ErrDuplicateUser:  app.MsgUserAlreadyExists,
	service.ErrAuthentication: app.MsgInvalidCredentials,
	service.ErrUserNotFound:   app.MsgUserNotFound,
	service.ErrItemNotFound:   app.MsgItemNotFound,
	service.ErrSessionActive:  app.MsgSessionActive,
	service.ErrStorage:        app.MsgStorageFailure,
	service.ErrInternal:       app.MsgInternalError,

	errSecretsDoNotMatch: app.MsgSecretsDoNotMatch,
	errGenerationFailed:  app.MsgGenerationFailed,
}

var errorExitCodeMap = map[error]int{
	service.ErrValidation:     exitInvalidInput,
	service.ErrAuthentication: exitAuthentication,
	errSecretsDoNotMatch:      exitInvalidInput,
	errInvalidItemID:          exitInvalidInput,
}

// userMessage returns the text shown to the user for err. Validation errors
// keep their detail since it names the offending field and never carries a
// secret. Errors the vault does not know about, such as cobra argument
// errors, are shown as they are.
func userMessage(err error) string {
	if errors.Is(err, service.ErrValidation) {
		return err.Error()
	}
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

func exitCode(err error) int {
	for target, code := range errorExitCodeMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return exitFailure
}
