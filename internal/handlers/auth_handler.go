package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/logger"
	"github.com/jodijonatan/cashnote/internal/middleware"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/oauth"
	"github.com/jodijonatan/cashnote/internal/services"
)

// GoogleSignIn is the part of the Google authorization-code flow the handler drives.
type GoogleSignIn interface {
	AuthURL() (string, error)
	ValidState(state string) bool
	Exchange(ctx context.Context, code string) (*oauth.GoogleUser, error)
}

// Redirect error codes appended to FRONTEND_URL/login.
const (
	oauthErrNoCode       = "no_code"
	oauthErrInvalidState = "invalid_state"
	oauthErrTokenFailed  = "token_failed"
	oauthErrAuthFailed   = "auth_failed"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
	tokens       *middleware.TokenIssuer
	google       GoogleSignIn
	frontendURL  string
}

// NewAuthHandler creates a new AuthHandler. A nil google disables Google sign-in.
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer, tokens *middleware.TokenIssuer, google GoogleSignIn, frontendURL string) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		auditService: auditService,
		tokens:       tokens,
		google:       google,
		frontendURL:  frontendURL,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse wraps the authenticated user.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with name, email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input or email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "REGISTER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: toUserResponse(user)})
}

// GoogleLogin redirects to the Google consent page
// @Summary     Start Google sign-in
// @Description Redirects the browser to Google's consent page
// @Tags        auth
// @Success     307 "Redirect to Google"
// @Failure     500 {object} ErrorResponse "Google sign-in is not configured"
// @Router      /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		respondWithError(c, apperrors.ErrOAuthNotConfigured)
		return
	}
	authURL, err := h.google.AuthURL()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes Google sign-in and hands a token to the frontend
// @Summary     Google sign-in callback
// @Description Exchanges the authorization code, finds or creates the user and redirects to FRONTEND_URL/login with a token or an error code
// @Tags        auth
// @Param       code  query string true "Authorization code"
// @Param       state query string true "State issued by /auth/google"
// @Success     302 "Redirect to the frontend"
// @Failure     500 {object} ErrorResponse "Google sign-in is not configured"
// @Router      /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		respondWithError(c, apperrors.ErrOAuthNotConfigured)
		return
	}
	log := logger.FromContext(c)

	code := c.Query("code")
	if code == "" {
		h.redirectToLogin(c, "error", oauthErrNoCode)
		return
	}
	if !h.google.ValidState(c.Query("state")) {
		h.redirectToLogin(c, "error", oauthErrInvalidState)
		return
	}

	profile, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Warnw("google sign-in failed", "error", err)
		reason := oauthErrAuthFailed
		if errors.Is(err, oauth.ErrTokenExchange) {
			reason = oauthErrTokenFailed
		}
		h.redirectToLogin(c, "error", reason)
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(profile.Email, profile.Name)
	if err != nil {
		log.Errorw("google sign-in user lookup failed", "error", err)
		h.redirectToLogin(c, "error", oauthErrAuthFailed)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		log.Errorw("google sign-in token generation failed", "error", err)
		h.redirectToLogin(c, "error", oauthErrAuthFailed)
		return
	}

	h.auditService.Log(user.ID, "GOOGLE_LOGIN", "user", user.ID, c.ClientIP(), nil)
	h.redirectToLogin(c, "token", token)
}

func (h *AuthHandler) redirectToLogin(c *gin.Context, key, value string) {
	c.Redirect(http.StatusFound, h.frontendURL+"/login?"+url.Values{key: {value}}.Encode())
}
