package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/server/users"
)

// errorResponse mirrors the relay's error envelope. Message is either a
// string or, for validation failures, a list of strings.
type errorResponse struct {
	Code    string `json:"code"`
	Message any    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, message any) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeServiceError maps store and service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Registro não encontrado")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "Registro já existe")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Não autorizado")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "Acesso negado")
	case errors.Is(err, common.ErrNotConnected):
		writeError(w, http.StatusConflict, "not_connected", "Nenhuma conexão ativa")
	case errors.Is(err, users.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, "validation", []string{"As senhas não correspondem"})
	default:
		writeError(w, http.StatusInternalServerError, "internal", "Erro interno")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
