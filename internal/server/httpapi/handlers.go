package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
	"github.com/dmitrijs2005/gzapadmin/internal/server/relay"
	"github.com/dmitrijs2005/gzapadmin/internal/server/users"
)

const (
	defaultPage  = 1
	defaultLimit = 4
	maxLimit     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	users  *users.Service
	store  *relay.Store
	logger logging.Logger
}

func NewHandler(us *users.Service, store *relay.Store, logger logging.Logger) *Handler {
	return &Handler{users: us, store: store, logger: logger.With("module", "httpapi")}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type resetRequest struct {
	Username string `json:"username" validate:"required"`
}

type activeRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type companyRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	CNPJ string `json:"cnpj" validate:"required,len=14,numeric"`
}

type userRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	CompanyID       string `json:"companyId"`
	TargetUserID    string `json:"targetUserId"`
}

func (u userRequest) input() models.UserInput {
	return models.UserInput{
		Email:           u.Email,
		Name:            u.Name,
		Username:        u.Username,
		Password:        u.Password,
		ConfirmPassword: u.ConfirmPassword,
		CompanyID:       u.CompanyID,
		TargetUserID:    u.TargetUserID,
	}
}

type qrResponse struct {
	QRCode string `json:"qrCode"`
}

type resendResponse struct {
	Resent int `json:"resent"`
}

// bind decodes and validates the body, writing a 400 on failure.
func bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeBody(r, v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Corpo da requisição inválido")
		return false
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Field()+": "+fe.Tag())
			}
			writeError(w, http.StatusBadRequest, "validation", msgs)
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return false
	}
	return true
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !bind(w, r, &req) {
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Usuário ou senha inválidos")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !bind(w, r, &req) {
		return
	}
	if err := h.users.ResetPassword(r.Context(), req.Username); err != nil {
		writeServiceError(w, err)
		return
	}
	h.logger.Info(r.Context(), "password reset", "username", req.Username)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UserFromContext(r.Context()))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !bind(w, r, &req) {
		return
	}
	me := UserFromContext(r.Context())
	if err := h.users.Update(r.Context(), me.ID, req.input(), false); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Connection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.store.Connection(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (h *Handler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	qr, err := h.store.GenerateQR(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qrResponse{QRCode: qr})
}

func (h *Handler) LogoutSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (h *Handler) MessageLog(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page", defaultPage)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "page inválido")
		return
	}
	limit, ok := queryInt(r, "limit", defaultLimit)
	if !ok || limit > maxLimit {
		writeError(w, http.StatusBadRequest, "bad_request", "limit inválido")
		return
	}

	logs, err := h.store.MessageLog(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) ResendFailed(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ResendFailed(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resendResponse{Resent: n})
}

func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.Companies(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if !bind(w, r, &req) {
		return
	}
	c, err := h.store.CreateCompany(r.Context(), models.CompanyInput{Name: req.Name, CNPJ: req.CNPJ})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if !bind(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.store.UpdateCompany(r.Context(), id, models.CompanyInput{Name: req.Name, CNPJ: req.CNPJ}); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !bind(w, r, &req) {
		return
	}
	u, err := h.users.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !bind(w, r, &req) {
		return
	}
	if req.TargetUserID == "" {
		writeError(w, http.StatusBadRequest, "validation", []string{"targetUserId: required"})
		return
	}
	if err := h.users.Update(r.Context(), req.TargetUserID, req.input(), true); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if !bind(w, r, &req) {
		return
	}
	if err := h.users.SetActive(r.Context(), chi.URLParam(r, "id"), *req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
