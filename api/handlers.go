package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/jmcleod/lockbox/wallet"
)

func toCredentialResponse(name string, v wallet.Value) CredentialResponse {
	resp := CredentialResponse{Name: name}
	switch v.Kind() {
	case wallet.KindBinary:
		resp.Kind = KindBinary
		resp.Value = base64.StdEncoding.EncodeToString(v.Bytes())
	default:
		resp.Kind = KindText
		resp.Value = v.Text()
	}
	return resp
}

func (a *API) handleListNames(w http.ResponseWriter, r *http.Request) {
	names, err := a.wallet.ListNames(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, ListNamesResponse{Names: names})
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, err := a.wallet.Get(r.Context(), name)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCredentialResponse(name, v))
}

func (a *API) handleContains(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	found, err := a.wallet.Contains(r.Context(), name)
	if err != nil {
		mapError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *API) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var value wallet.Value
	switch req.Kind {
	case KindText:
		value = wallet.Text(req.Value)
	case KindBinary:
		raw, err := base64.StdEncoding.DecodeString(req.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64 value")
			return
		}
		value = wallet.Binary(raw)
	default:
		writeError(w, http.StatusBadRequest, wallet.ErrUnknownType.Error())
		return
	}

	if err := a.wallet.Put(r.Context(), name, value); err != nil {
		mapError(w, err)
		return
	}

	a.audit.log(AuditCredentialStored, r,
		slog.String("name", name), slog.String("kind", req.Kind))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := a.wallet.Remove(r.Context(), name); err != nil {
		mapError(w, err)
		return
	}

	a.audit.log(AuditCredentialRemoved, r, slog.String("name", name))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	all, err := a.wallet.GetAll(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}

	creds := make([]CredentialResponse, 0, len(all))
	for name, v := range all {
		creds = append(creds, toCredentialResponse(name, v))
	}
	// Map iteration order is random; a stable export is friendlier to
	// diffing and backups.
	sort.Slice(creds, func(i, j int) bool { return creds[i].Name < creds[j].Name })

	a.audit.log(AuditWalletExported, r, slog.Int("count", len(creds)))
	writeJSON(w, http.StatusOK, ExportResponse{Credentials: creds})
}
