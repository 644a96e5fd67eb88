package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"dossiervault/config"
	"dossiervault/db"
	"dossiervault/models"
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
)

// --- Signup ---

// SignupRequest defines the expected body for registering a new account.
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// SignupHandler registers a new profile.
// @Summary      Create an Account
// @Description  Registers a new user profile. The profile ID returned here is the address other users reference when naming you as a recipient or guardian of their dossiers.
// @Description
// @Description  The password is hashed with bcrypt before storage and is never returned by any endpoint. Email addresses are unique (case-insensitive).
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        account body SignupRequest true "Account details. Password must be at least 8 characters."
// @Success      201  {object}  ProfileResponse "Account created. The response contains the new profile, including its ID."
// @Failure      400  {object}  utils.APIError "Bad Request: missing or invalid fields, or an account with that email already exists."
// @Failure      500  {object}  utils.APIError "Internal Server Error: the password could not be hashed or the profile could not be stored."
// @Router       /auth/signup [post]
func SignupHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	hash, err := utils.HashPassword(req.Password, cfg.BcryptCost)
	if err != nil {
		utils.GinInternalServerError(c, "Failed to process password.")
		return
	}

	profile := models.Profile{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		// ID and timestamps are set by db.CreateProfile
	}

	created, err := database.CreateProfile(profile)
	if err != nil {
		// CreateProfile only fails on duplicate email
		utils.GinBadRequest(c, err.Error())
		return
	}

	log.Printf("INFO: New account created: %s (%s)", created.ID, created.Email)
	c.JSON(http.StatusCreated, toProfileResponse(created))
}

// --- Login ---

// LoginRequest defines the expected body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// LoginHandler exchanges email and password for a JWT.
// @Summary      Log In
// @Description  Verifies your email and password and returns a signed bearer token. Send the token on subsequent requests in the `Authorization: Bearer <token>` header.
// @Description
// @Description  The same generic error is returned whether the email is unknown or the password is wrong, so callers cannot probe which addresses have accounts.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "Login credentials."
// @Success      200  {object}  LoginResponse "Login succeeded. The response contains the bearer token."
// @Failure      400  {object}  utils.APIError "Bad Request: the request body is malformed or missing required fields."
// @Failure      401  {object}  utils.APIError "Unauthorized: the email or password is incorrect."
// @Failure      500  {object}  utils.APIError "Internal Server Error: the token could not be generated."
// @Router       /auth/login [post]
func LoginHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	profile, found := database.GetProfileByEmail(strings.TrimSpace(req.Email))
	if !found || !utils.CheckPasswordHash(req.Password, profile.PasswordHash) {
		utils.GinUnauthorized(c, "Invalid email or password.")
		return
	}

	token, err := utils.GenerateJWT(&profile, cfg)
	if err != nil {
		utils.GinInternalServerError(c, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// --- Logout ---

// LogoutHandler ends the current session.
// @Summary      Log Out
// @Description  Ends the current session. Tokens are stateless, so nothing is revoked server-side; clients should discard the token. The endpoint exists so clients have a uniform auth lifecycle and so a revocation list can be added later without changing the API.
// @Tags         Auth
// @Security     BearerAuth
// @Success      204  "Logged out. No content is returned."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Router       /auth/logout [post]
func LogoutHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	if userID, exists := c.Get("userID"); exists {
		log.Printf("INFO: User %v logged out", userID)
	}
	c.Status(http.StatusNoContent)
}
