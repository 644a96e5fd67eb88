package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dossiervault/config"
	"dossiervault/db"
	"dossiervault/dossier"
	"dossiervault/models"
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
)

// respondDossierError maps a typed dossier error onto the matching HTTP
// status and includes the machine-readable code in the body. Errors that do
// not carry a kind are treated as server faults.
func respondDossierError(c *gin.Context, err error) {
	kind, ok := dossier.KindOf(err)
	if !ok {
		utils.GinInternalServerError(c, err.Error())
		return
	}
	status := http.StatusInternalServerError
	switch kind {
	case dossier.KindValidation:
		status = http.StatusBadRequest
	case dossier.KindStateConflict:
		status = http.StatusConflict
	case dossier.KindNotFound:
		status = http.StatusNotFound
	case dossier.KindAuthorization:
		status = http.StatusForbidden
	}
	code, _ := dossier.CodeOf(err)
	utils.GinErrorWithCode(c, status, string(code), err.Error())
}

// parseDossierID reads the numeric dossier id from the given path parameter.
// The bool is false when the parameter is not a positive integer; a 400 has
// already been written in that case.
func parseDossierID(c *gin.Context, param string) (uint64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid dossier ID '%s'. Must be a positive integer.", raw))
		return 0, false
	}
	return id, true
}

// --- Create Dossier ---

// CreateDossierRequest defines the expected body for registering a dossier.
type CreateDossierRequest struct {
	Name                   string   `json:"name" binding:"required"`
	Description            string   `json:"description"`
	CheckInIntervalSeconds int64    `json:"check_in_interval_seconds" binding:"required"`
	Recipients             []string `json:"recipients" binding:"required"`
	FileHashes             []string `json:"file_hashes" binding:"required"`
	Guardians              []string `json:"guardians"`
	GuardianThreshold      int      `json:"guardian_threshold"`
}

// CreateDossierHandler registers a new dossier for the authenticated owner.
// @Summary      Register a Dossier
// @Description  Registers a new dossier: a named bundle of encrypted-file hashes, the recipients allowed to decrypt it after release, and an optional guardian set that must co-sign the release.
// @Description
// @Description  The dossier starts `active` with a fresh check-in. IDs are sequential per owner, starting at 1.
// @Description
// @Description  Constraints enforced atomically (on any failure nothing is stored):
// @Description  *   `check_in_interval_seconds`: between 1 hour (3600) and 30 days (2592000).
// @Description  *   `recipients`: 1 to 20 profile IDs, no duplicates, no empty strings.
// @Description  *   `file_hashes`: 1 to 100 non-empty strings.
// @Description  *   `guardians` (optional): up to 20 profile IDs, no duplicates, and never the owner.
// @Description  *   `guardian_threshold`: required confirmations for release. With guardians it must be between 1 and the guardian count; without guardians it must be 0 (or omitted).
// @Description  *   At most 50 dossiers per owner.
// @Tags         Dossiers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        dossier body CreateDossierRequest true "The dossier to register."
// @Success      201  {object}  models.Dossier "Dossier registered. The response contains the stored record, including its ID."
// @Failure      400  {object}  utils.APIError "Bad Request: one of the constraints above was violated. The 'code' field identifies which."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /dossiers [post]
func CreateDossierHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req CreateDossierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	id, err := database.CreateDossier(userID, dossier.CreateInput{
		Name:                   req.Name,
		Description:            req.Description,
		CheckInIntervalSeconds: req.CheckInIntervalSeconds,
		Recipients:             req.Recipients,
		FileHashes:             req.FileHashes,
		Guardians:              req.Guardians,
		GuardianThreshold:      req.GuardianThreshold,
	})
	if err != nil {
		respondDossierError(c, err)
		return
	}

	created, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back created dossier: %v", err))
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --- Query Dossiers ---

// GetDossiersResponse defines the structure for the paginated dossier list results.
type GetDossiersResponse struct {
	Data  []db.DossierEntry `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// GetDossiersHandler retrieves a list of dossiers based on query parameters.
// @Summary      List and Search Dossiers
// @Description  Retrieves dossiers visible to you, with filtering, sorting, and pagination.
// @Description
// @Description  *   `scope`: `owned` (dossiers you registered), `guardian` (you are a guardian), `recipient` (you are a recipient), or `all` (default, deduplicated union).
// @Description  *   `content_query`: filter on the dossier record's JSON fields. Each parameter is `path operator value` (e.g. `status equals "paused"`, `guardian_threshold greaterthanorequals 2`); chain conditions by alternating them with `and` / `or` parameters.
// @Description  *   `sort_by`: `creation_date` (default) or `last_check_in`.
// @Description  *   `order`: `asc` or `desc` (default).
// @Description  *   `page` (starts at 1) and `limit` (default 20, max 100).
// @Tags         Dossiers
// @Produce      json
// @Security     BearerAuth
// @Param        scope         query     string  false  "Which relationship to list by." Enums(owned, guardian, recipient, all) default(all)
// @Param        content_query query     []string false "Filter on record fields (path operator value)." collectionFormat(multi) example(status equals "active")
// @Param        sort_by       query     string  false  "Field to sort results by." Enums(creation_date, last_check_in) default(creation_date)
// @Param        order         query     string  false  "Sorting direction." Enums(asc, desc) default(desc)
// @Param        page          query     int     false  "Page number for pagination (starts at 1)." minimum(1) default(1)
// @Param        limit         query     int     false  "Number of dossiers per page." minimum(1) maximum(100) default(20)
// @Success      200  {object}  GetDossiersResponse "Matching dossiers with their owner IDs, plus pagination details."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid scope, sort, order, page, limit, or content_query syntax."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      500  {object}  utils.APIError "Internal Server Error."
// @Router       /dossiers [get]
func GetDossiersHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	scope := c.DefaultQuery("scope", "all")
	contentQuery := c.QueryArray("content_query")
	sortBy := c.DefaultQuery("sort_by", "creation_date")
	order := c.DefaultQuery("order", "desc")
	pageQuery := c.DefaultQuery("page", "1")
	limitQuery := c.DefaultQuery("limit", "20")

	page, errPage := strconv.Atoi(pageQuery)
	limit, errLimit := strconv.Atoi(limitQuery)
	if errPage != nil || errLimit != nil || page < 1 {
		utils.GinBadRequest(c, "Invalid 'page' or 'limit' query parameter. Must be positive integers.")
		return
	}

	params := db.QueryDossiersParams{
		AuthUserID:   userID,
		Scope:        scope,
		ContentQuery: contentQuery,
		SortBy:       sortBy,
		Order:        order,
		Page:         page,
		Limit:        limit,
	}

	entries, total, err := database.QueryDossiers(params)
	if err != nil {
		if strings.Contains(err.Error(), "invalid content_query") ||
			strings.Contains(err.Error(), "invalid scope value") ||
			strings.Contains(err.Error(), "invalid sort_by value") ||
			strings.Contains(err.Error(), "invalid order value") {
			utils.GinBadRequest(c, err.Error())
		} else {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to query dossiers: %v", err))
		}
		return
	}

	c.JSON(http.StatusOK, GetDossiersResponse{
		Data:  entries,
		Total: total,
		Page:  page,
		Limit: params.Limit,
	})
}

// --- Get Dossier by ID ---

// GetDossierByIDHandler retrieves a single owned dossier.
// @Summary      Get One of Your Dossiers
// @Description  Retrieves the full record of a dossier you own. IDs are scoped to the owner, so another user's dossier 3 is invisible here; use the guardian view for dossiers guarding for others.
// @Tags         Dossiers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace." example(1)
// @Success      200  {object}  models.Dossier "The dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: the ID in the path is not a positive integer."
// @Failure      401  {object}  utils.APIError "Unauthorized: your access token is missing, invalid, or expired."
// @Failure      404  {object}  utils.APIError "Not Found: you own no dossier with that ID."
// @Router       /dossiers/{id} [get]
func GetDossierByIDHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		respondDossierError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

// --- Lifecycle Operations ---

// DossierActionResponse reports the outcome of a single-dossier lifecycle action.
type DossierActionResponse struct {
	ID     uint64               `json:"id"`
	Status models.DossierStatus `json:"status"`
}

// lifecycleAction runs one owner-scoped lifecycle transition and responds
// with the resulting status. The action functions all share the same shape.
func lifecycleAction(c *gin.Context, database *db.Database, action func(owner string, id uint64) error) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}

	if err := action(userID, id); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, DossierActionResponse{ID: d.ID, Status: d.Status})
}

// CheckInHandler records a proof-of-life check-in on one dossier.
// @Summary      Check In
// @Description  Records a check-in on one active dossier, restarting its countdown. This is the heartbeat that keeps the dossier encrypted: miss the interval plus the 1-hour grace period and the dossier becomes eligible for release.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace."
// @Success      200  {object}  DossierActionResponse "Check-in recorded."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found: you own no dossier with that ID."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is paused, released, or disabled. The 'code' field names the state."
// @Router       /dossiers/{id}/checkin [post]
func CheckInHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	lifecycleAction(c, database, database.CheckIn)
}

// PauseHandler suspends a dossier's countdown.
// @Summary      Pause a Dossier
// @Description  Pauses an active dossier. A paused dossier never expires and cannot be edited; resume it to restart the countdown from the moment of resumption.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace."
// @Success      200  {object}  DossierActionResponse "Dossier paused."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: already paused, released, or disabled."
// @Router       /dossiers/{id}/pause [post]
func PauseHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	lifecycleAction(c, database, database.Pause)
}

// ResumeHandler reactivates a paused dossier.
// @Summary      Resume a Dossier
// @Description  Reactivates a paused dossier with a fresh check-in, so the countdown restarts from now rather than from the pre-pause check-in.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace."
// @Success      200  {object}  DossierActionResponse "Dossier active again."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: already active, released, or disabled."
// @Router       /dossiers/{id}/resume [post]
func ResumeHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	lifecycleAction(c, database, database.Resume)
}

// ReleaseHandler releases a dossier ahead of its deadline.
// @Summary      Release a Dossier Immediately
// @Description  Marks a dossier as released without waiting for the countdown. Works from the active or paused state. This is one-way: a released dossier can never go back to ticking.
// @Description
// @Description  If the dossier has guardians, recipients still cannot decrypt until the confirmation threshold is met; release only stops the clock.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace."
// @Success      200  {object}  DossierActionResponse "Dossier released."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: already released or disabled."
// @Router       /dossiers/{id}/release [post]
func ReleaseHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	lifecycleAction(c, database, database.Release)
}

// DisableHandler permanently disables a dossier.
// @Summary      Permanently Disable a Dossier
// @Description  Permanently disables a dossier. This is the kill switch: a disabled dossier stays encrypted forever, regardless of missed check-ins, release, or guardian confirmations. It works from any state except disabled itself, including after release. There is no undo.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "The dossier ID within your namespace."
// @Success      200  {object}  DossierActionResponse "Dossier permanently disabled."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: already disabled."
// @Router       /dossiers/{id}/disable [post]
func DisableHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	lifecycleAction(c, database, database.PermanentlyDisable)
}

// --- Batch Lifecycle Operations ---

// BatchActionResponse reports how many dossiers a batch operation touched.
type BatchActionResponse struct {
	Affected int `json:"affected"`
}

// batchAction runs one owner-wide batch operation and responds with the
// number of dossiers affected.
func batchAction(c *gin.Context, action func(owner string) (int, error)) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	n, err := action(userID)
	if err != nil {
		respondDossierError(c, err)
		return
	}
	c.JSON(http.StatusOK, BatchActionResponse{Affected: n})
}

// CheckInAllHandler checks in every active dossier the caller owns.
// @Summary      Check In Everywhere
// @Description  Records a check-in on every active dossier you own, in one atomic operation. Paused, released, and disabled dossiers are skipped, and skipping is not an error: owning only paused dossiers yields `affected: 0`. Owning no dossiers at all is a 404.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  BatchActionResponse "Number of dossiers checked in."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found: you own no dossiers."
// @Router       /checkin-all [post]
func CheckInAllHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	batchAction(c, database.CheckInAll)
}

// PauseAllHandler pauses every active dossier the caller owns.
// @Summary      Pause Everything
// @Description  Pauses every active dossier you own in one atomic operation. Fails with 409 when there is nothing to pause.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  BatchActionResponse "Number of dossiers paused."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      409  {object}  utils.APIError "Conflict: no active dossiers to pause."
// @Router       /pause-all [post]
func PauseAllHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	batchAction(c, database.PauseAll)
}

// ResumeAllHandler resumes every paused dossier the caller owns.
// @Summary      Resume Everything
// @Description  Resumes every paused dossier you own in one atomic operation, each with a fresh check-in. Fails with 409 when there is nothing to resume.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  BatchActionResponse "Number of dossiers resumed."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      409  {object}  utils.APIError "Conflict: no paused dossiers to resume."
// @Router       /resume-all [post]
func ResumeAllHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	batchAction(c, database.ResumeAll)
}

// --- Edit Operations ---

// UpdateIntervalRequest defines the body for changing a dossier's check-in interval.
type UpdateIntervalRequest struct {
	CheckInIntervalSeconds int64 `json:"check_in_interval_seconds" binding:"required"`
}

// UpdateIntervalHandler changes a dossier's check-in interval.
// @Summary      Change the Check-In Interval
// @Description  Sets a new check-in interval on an active dossier. The interval must be between 1 hour (3600 seconds) and 30 days (2592000 seconds). The last check-in timestamp is not changed, so shortening the interval can make the next deadline arrive sooner.
// @Tags         Dossiers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                    true "The dossier ID within your namespace."
// @Param        interval body  UpdateIntervalRequest  true "The new interval in seconds."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID or interval out of bounds."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/interval [put]
func UpdateIntervalHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}

	var req UpdateIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := database.UpdateInterval(userID, id, req.CheckInIntervalSeconds); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, d)
}

// AddFileHashesRequest defines the body for attaching file hashes.
type AddFileHashesRequest struct {
	FileHashes []string `json:"file_hashes" binding:"required"`
}

// AddFileHashesHandler appends file hashes to a dossier.
// @Summary      Attach File Hashes
// @Description  Appends one or more file hashes to an active dossier, preserving order. The batch is all-or-nothing: an empty hash or blowing the 100-hash cap rejects the whole request and attaches nothing.
// @Tags         Dossiers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int                   true "The dossier ID within your namespace."
// @Param        hashes body  AddFileHashesRequest  true "One or more hashes to attach."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID, empty batch, an empty hash, or the 100-hash cap would be exceeded."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/files [post]
func AddFileHashesHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}

	var req AddFileHashesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := database.AddFileHashes(userID, id, req.FileHashes); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, d)
}

// --- Recipients ---

// AddRecipientHandler grants a profile recipient access to a dossier.
// @Summary      Add a Recipient
// @Description  Adds a profile to the dossier's recipient list. Recipients are the parties allowed to decrypt the payload once the dossier is released (and any guardian threshold is met). At most 20 recipients per dossier.
// @Tags         Recipients
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int     true "The dossier ID within your namespace."
// @Param        profile_id  path  string  true "The recipient's profile ID."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID, empty profile ID, duplicate recipient, or the 20-recipient cap is reached."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/recipients/{profile_id} [put]
func AddRecipientHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	recipientID := c.Param("profile_id")

	if err := database.AddRecipient(userID, id, recipientID); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, d)
}

// RemoveRecipientHandler revokes a profile's recipient access.
// @Summary      Remove a Recipient
// @Description  Removes a profile from the dossier's recipient list. The last recipient cannot be removed: a dossier always names at least one party who could eventually decrypt it. Removal does not preserve the order of the remaining list.
// @Tags         Recipients
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int     true "The dossier ID within your namespace."
// @Param        profile_id  path  string  true "The recipient's profile ID."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID, the profile is not a recipient, or it is the last recipient."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/recipients/{profile_id} [delete]
func RemoveRecipientHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	recipientID := c.Param("profile_id")

	if err := database.RemoveRecipient(userID, id, recipientID); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(userID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, d)
}
