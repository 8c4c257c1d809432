// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding patterns, ensuring consistent error
handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
	"github.com/taibuivan/weavepost/internal/platform/constants"
	"github.com/taibuivan/weavepost/internal/platform/ctxutil"
	"github.com/taibuivan/weavepost/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are ignored, so a client-supplied "author" never reaches a handler.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ParseForm parses an application/x-www-form-urlencoded body.

Returns:
  - error: validate.ErrInvalidForm if the body is not a valid form
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxRequestBodyBytes)
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
RequiredSubject returns the username asserted by the verified bearer token.

Returns:
  - string: token subject
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredSubject(request *http.Request) (string, error) {
	subject := ctxutil.GetSubject(request.Context())
	if subject == "" {
		return "", apperr.Unauthorized("Not authenticated")
	}
	return subject, nil
}
