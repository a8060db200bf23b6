package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carevault/apiserver/config"
	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/internal/session"
	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	sessionCookieName = "carevault_session"
)

// AuthHandler provides JWT authentication endpoints and middleware.
type AuthHandler struct {
	userService  *services.UserService
	revoker      session.Revoker
	secret       []byte
	tokenTTL     time.Duration
	cookieSecure bool
	logger       *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, revoker session.Revoker, cfg config.AuthConfig, logger *zap.Logger) *AuthHandler {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if revoker == nil {
		revoker = session.NewMemoryRevoker()
	}
	return &AuthHandler{
		userService:  userService,
		revoker:      revoker,
		secret:       []byte(cfg.JWTSecret),
		tokenTTL:     ttl,
		cookieSecure: cfg.CookieSecure,
		logger:       logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	gates := handler.Gates()

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(gates.Auth).Post("/logout", handler.Logout)
	r.With(gates.Auth).Get("/user", handler.Me)
}

// Gates returns the authentication chains for the other routers.
func (h *AuthHandler) Gates() Gates {
	return Gates{
		Auth: func(next http.Handler) http.Handler {
			return h.Authenticate(Require(Authenticated)(next))
		},
		Manager: func(next http.Handler) http.Handler {
			return h.Authenticate(Require(RoleIs(types.RoleManager))(next))
		},
	}
}

// Authenticate resolves the caller from a bearer token or the session
// cookie and attaches the user to the request context.
func (h *AuthHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := requestToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := parseToken(tokenString, h.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		revoked, err := h.revoker.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			writeServiceError(w, r, h.logger, "check session", err)
			return
		}
		if revoked {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, err := strconv.Atoi(claims.Subject)
		if err != nil || userID < 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := h.userService.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeServiceError(w, r, h.logger, "load user", err)
			return
		}

		ctx := withUser(r.Context(), user)
		ctx = context.WithValue(ctx, contextTokenKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Register creates a new account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), services.Registration{
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "create user", err)
		return
	}

	h.signIn(w, r, http.StatusCreated, user)
}

// Login verifies credentials and returns a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, "authenticate", err)
		return
	}

	h.signIn(w, r, http.StatusOK, user)
}

// Logout revokes the presented token and clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(contextTokenKey).(*jwt.RegisteredClaims)
	if ok && claims.ExpiresAt != nil {
		if err := h.revoker.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			writeServiceError(w, r, h.logger, "revoke session", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, status int, user types.User) {
	token, expiresAt, err := h.issueToken(user.ID)
	if err != nil {
		writeServiceError(w, r, h.logger, "create token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, status, AuthResponse{Token: token, User: user})
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

func (h *AuthHandler) issueToken(userID int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(h.tokenTTL)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func parseToken(tokenString string, secret []byte) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" || claims.ID == "" {
		return nil, errors.New("missing claims")
	}
	return claims, nil
}

// requestToken prefers the Authorization header and falls back to the
// session cookie.
func requestToken(r *http.Request) (string, error) {
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errors.New("invalid authorization")
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", errors.New("invalid authorization")
		}
		return token, nil
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", errors.New("missing authorization")
}
