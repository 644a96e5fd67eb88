package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"dossiervault/config"
	"dossiervault/db"
	"dossiervault/models"
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
)

// ProfileResponse is the outward view of a profile. The stored password hash
// never leaves the server.
type ProfileResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	CreationDate     time.Time `json:"creation_date"`
	LastModifiedDate time.Time `json:"last_modified_date"`
}

func toProfileResponse(p models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		CreationDate:     p.CreationDate,
		LastModifiedDate: p.LastModifiedDate,
	}
}

// authUserID extracts the authenticated user's ID placed in the context by
// the auth middleware. The bool is false only on a wiring mistake (handler
// mounted without the middleware).
func authUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.GinInternalServerError(c, "User ID not found in context. Middleware issue?")
		return "", false
	}
	userIDStr, ok := userID.(string)
	if !ok || userIDStr == "" {
		utils.GinInternalServerError(c, "Invalid User ID format in context.")
		return "", false
	}
	return userIDStr, true
}

// --- Get Current Profile ---

// GetProfileMeHandler retrieves the profile of the currently authenticated user.
// @Summary      Get Your Own Profile
// @Description  Retrieves the profile details for the user who is currently logged in. The server identifies you from the bearer token.
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse "Your profile details."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      404  {object}  utils.APIError "Not Found: no profile matches your token. This happens when the account was deleted while the token was still valid."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /profiles/me [get]
func GetProfileMeHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	profile, found := database.GetProfileByID(userID)
	if !found {
		utils.GinNotFound(c, "Authenticated user profile not found.")
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// --- Update Profile ---

// UpdateProfileRequest defines the fields allowed for updating a profile.
// Email and password cannot be changed here.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// UpdateProfileMeHandler updates the profile of the currently authenticated user.
// @Summary      Update Your Own Profile
// @Description  Updates the first and last name on your own profile. Email and password cannot be changed through this endpoint.
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile body UpdateProfileRequest true "The profile fields to update. Both 'first_name' and 'last_name' are required."
// @Success      200  {object}  ProfileResponse "The complete updated profile."
// @Failure      400  {object}  utils.APIError "Bad Request: missing required fields or malformed JSON."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      404  {object}  utils.APIError "Not Found: no profile matches your token."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /profiles/me [put]
func UpdateProfileMeHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	existing, found := database.GetProfileByID(userID)
	if !found {
		utils.GinNotFound(c, "Authenticated user profile not found.")
		return
	}

	updated := models.Profile{
		ID:           existing.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        existing.Email,
		PasswordHash: existing.PasswordHash,
		CreationDate: existing.CreationDate,
		// LastModifiedDate is set by db.UpdateProfile
	}

	saved, err := database.UpdateProfile(userID, updated)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to update profile: %v", err))
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(saved))
}

// --- Delete Profile ---

// DeleteProfileMeHandler deletes the account of the currently authenticated user.
// @Summary      Delete Your Own Profile
// @Description  Permanently deletes your account. This action is irreversible.
// @Description
// @Description  Dossiers you own are NOT deleted: recipients and guardians keep their view of them, and the release machinery keeps running. Deleting your account without checking in is, in effect, the final missed check-in.
// @Tags         Profiles
// @Security     BearerAuth
// @Success      204  "Account deleted. No content is returned."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      404  {object}  utils.APIError "Not Found: no profile matches your token."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /profiles/me [delete]
func DeleteProfileMeHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	err := database.DeleteProfile(userID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			utils.GinNotFound(c, "Authenticated user profile not found.")
		} else {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to delete profile: %v", err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Search Profiles ---

// SearchProfilesResponse defines the structure for the paginated profile search results.
type SearchProfilesResponse struct {
	Data  []ProfileResponse `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// SearchProfilesHandler searches for profiles based on query parameters.
// @Summary      Search User Profiles
// @Description  Searches registered profiles so you can find the IDs to use when naming recipients and guardians.
// @Description
// @Description  Filters (`email`, `first_name`, `last_name`) are case-insensitive substring matches and combine with AND. Results are paginated: `page` starts at 1, `limit` defaults to 20 and is capped at 100.
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Param        email       query     string  false  "Filter profiles where email contains this text (case-insensitive)." example(user@example.com)
// @Param        first_name  query     string  false  "Filter profiles where first name contains this text (case-insensitive)." example(Ada)
// @Param        last_name   query     string  false  "Filter profiles where last name contains this text (case-insensitive)." example(Lovelace)
// @Param        page        query     int     false  "Page number for results (starts at 1)." minimum(1) default(1)
// @Param        limit       query     int     false  "Number of profiles per page." minimum(1) maximum(100) default(20)
// @Success      200  {object}  SearchProfilesResponse "Matching profiles plus pagination details."
// @Failure      400  {object}  utils.APIError "Bad Request: 'page' and 'limit' must be positive integers."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /profiles [get]
func SearchProfilesHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	emailQuery := c.Query("email")
	firstNameQuery := c.Query("first_name")
	lastNameQuery := c.Query("last_name")
	pageQuery := c.DefaultQuery("page", "1")
	limitQuery := c.DefaultQuery("limit", "20")

	page, errPage := strconv.Atoi(pageQuery)
	limit, errLimit := strconv.Atoi(limitQuery)

	if errPage != nil || errLimit != nil || page < 1 || limit < 1 {
		utils.GinBadRequest(c, "Invalid 'page' or 'limit' query parameter. Must be positive integers.")
		return
	}
	if limit > 100 {
		limit = 100
	}

	allProfiles := database.GetAllProfiles()

	filtered := make([]models.Profile, 0)
	for _, profile := range allProfiles {
		match := true
		if emailQuery != "" && !strings.Contains(strings.ToLower(profile.Email), strings.ToLower(emailQuery)) {
			match = false
		}
		if firstNameQuery != "" && !strings.Contains(strings.ToLower(profile.FirstName), strings.ToLower(firstNameQuery)) {
			match = false
		}
		if lastNameQuery != "" && !strings.Contains(strings.ToLower(profile.LastName), strings.ToLower(lastNameQuery)) {
			match = false
		}
		if match {
			filtered = append(filtered, profile)
		}
	}

	total := len(filtered)

	// Stable order for pagination: email (case-insensitive), then ID.
	sort.SliceStable(filtered, func(i, j int) bool {
		e1 := strings.ToLower(filtered[i].Email)
		e2 := strings.ToLower(filtered[j].Email)
		if e1 != e2 {
			return e1 < e2
		}
		return filtered[i].ID < filtered[j].ID
	})

	startIndex := (page - 1) * limit
	endIndex := startIndex + limit
	if startIndex >= total {
		c.JSON(http.StatusOK, SearchProfilesResponse{
			Data:  []ProfileResponse{},
			Total: total,
			Page:  page,
			Limit: limit,
		})
		return
	}
	if endIndex > total {
		endIndex = total
	}

	data := make([]ProfileResponse, 0, endIndex-startIndex)
	for _, p := range filtered[startIndex:endIndex] {
		data = append(data, toProfileResponse(p))
	}

	c.JSON(http.StatusOK, SearchProfilesResponse{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
