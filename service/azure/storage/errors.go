package azurestorage

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Storage error codes that a fresh token can fix. Permission errors such as
// AuthorizationPermissionMismatch are not retried.
var authErrorCodes = map[string]bool{
	"AuthenticationFailed":       true,
	"InvalidAuthenticationInfo":  true,
	"ExpiredAuthenticationToken": true,
	"InvalidAuthenticationToken": true,
}

// IsAuthError reports whether err looks like an expired or rejected
// credential.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return true
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusUnauthorized:
			return true
		case http.StatusForbidden:
			return authErrorCodes[respErr.ErrorCode]
		}
	}
	return false
}
