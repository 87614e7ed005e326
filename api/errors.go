package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmcleod/lockbox/wallet"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wallet.ErrUnknownType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wallet.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		// Transport and driver failures surface as bad gateway: the
		// wallet itself performs no retries.
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
