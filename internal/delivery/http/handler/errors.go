package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthcare-portal/pkg/apperror"
	"healthcare-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

// writeError reports usecase errors with their own status and message.
// Anything else is logged and answered with a generic 500.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		response.Error(w, apperror.HTTPStatus(appErr), appErr.Message, nil)
		return
	}

	log.Errorf("%s: %+v", fallback, err)
	response.InternalServerError(w, fallback)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
