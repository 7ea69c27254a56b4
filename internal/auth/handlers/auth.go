package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"slicesite/internal/auth/service"
	"slicesite/internal/common/httpx"
	"slicesite/internal/domain"
)

type AuthHandler struct {
	service service.AuthServiceInterface
}

func NewAuthHandler(s service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: s}
}

func (ah *AuthHandler) RegisterRoutes(r *mux.Router, mw *Middleware) {
	r.HandleFunc("/auth/register", ah.Register).Methods("POST")
	r.HandleFunc("/auth/token", ah.Token).Methods("POST")
	r.HandleFunc("/auth/users/me", mw.RequireUser(ah.Me)).Methods("GET")
}

func (ah *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	user, err := ah.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			httpx.WriteProblem(w, http.StatusBadRequest, "email_taken",
				"The user with this email already exists in the system.")
			return
		}
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_registration", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, domain.NewUserResponse(user))
}

// Token implements the password login. The body is form-encoded with
// username/password fields, the OAuth2 shape the original API exposes.
func (ah *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_form", "Invalid form body")
		return
	}
	email := r.PostFormValue("username") // username is the email
	password := r.PostFormValue("password")

	token, err := ah.service.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.WriteProblem(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect email or password")
		case errors.Is(err, domain.ErrInactiveUser):
			httpx.WriteProblem(w, http.StatusBadRequest, "inactive_user", "Inactive user")
		default:
			httpx.WriteProblem(w, http.StatusInternalServerError, "auth_error", "failed to log in")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (ah *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	httpx.WriteJSON(w, http.StatusOK, domain.NewUserResponse(user))
}
