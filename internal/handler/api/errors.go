package api

import (
	"errors"
	"net/http"
	"strings"

	"StratLab/internal/indicators"
	xhttp "StratLab/pkg/http"
)

// calcAppError maps a dispatch failure onto the HTTP error model.
// Unknown indicators are 404; the other codes are client errors.
func calcAppError(err error) *xhttp.AppError {
	var ce *indicators.CalcError
	if !errors.As(err, &ce) {
		return xhttp.InternalError("indicator calculation failed").WithError(err)
	}
	if ce.Code == indicators.CodeLookup {
		return xhttp.NewAppError("ERR_LOOKUP", "name", ce.Message, http.StatusNotFound).
			WithParam("indicator", ce.Indicator).
			WithError(err)
	}
	appErr := xhttp.NewAppError("ERR_"+strings.ToUpper(string(ce.Code)), "", ce.Message, http.StatusBadRequest).
		WithParam("indicator", ce.Indicator).
		WithError(err)
	if len(ce.Missing) > 0 {
		appErr.WithParam("missing", ce.Missing)
	}
	return appErr
}
