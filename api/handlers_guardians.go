package api

import (
	"fmt"
	"net/http"

	"dossiervault/config"
	"dossiervault/db"
	"dossiervault/dossier"
	"dossiervault/models"
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
)

// --- Owner-Side Guardian Management ---

// AddGuardianHandler appoints a profile as guardian of a dossier.
// @Summary      Add a Guardian
// @Description  Appoints a profile as a guardian of the dossier. Guardians co-sign the release: once the dossier is released (by deadline or explicitly), recipients cannot decrypt until enough guardians have confirmed.
// @Description
// @Description  Appointing the first guardian bumps the confirmation threshold from 0 to 1 automatically. Later additions leave the threshold alone. The owner cannot be their own guardian, and a dossier holds at most 20 guardians.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int     true "The dossier ID within your namespace."
// @Param        profile_id  path  string  true "The guardian's profile ID."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID, empty or duplicate guardian, the owner's own ID, or the 20-guardian cap is reached."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/guardians/{profile_id} [put]
func AddGuardianHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	guardianID := c.Param("profile_id")

	if err := database.AddGuardian(userID, id, guardianID); err != nil {
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

// RemoveGuardianHandler dismisses a guardian from a dossier.
// @Summary      Remove a Guardian
// @Description  Dismisses a guardian. Any confirmation they had recorded is discarded, and if the threshold now exceeds the remaining guardian count it is clamped down to it (to 0 when the last guardian leaves). Unlike most edits, removal is also allowed while the dossier is paused, so a compromised guardian can be cut out without reactivating the countdown.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int     true "The dossier ID within your namespace."
// @Param        profile_id  path  string  true "The guardian's profile ID."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID or the profile is not a guardian."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is released or disabled."
// @Router       /dossiers/{id}/guardians/{profile_id} [delete]
func RemoveGuardianHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	guardianID := c.Param("profile_id")

	if err := database.RemoveGuardian(userID, id, guardianID); err != nil {
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

// UpdateThresholdRequest defines the body for changing the confirmation threshold.
type UpdateThresholdRequest struct {
	GuardianThreshold *int `json:"guardian_threshold" binding:"required"`
}

// UpdateThresholdHandler changes how many guardian confirmations a release needs.
// @Summary      Set the Guardian Threshold
// @Description  Sets the number of guardian confirmations required before recipients can decrypt a released dossier. With guardians present the threshold must be between 1 and the guardian count; without guardians it must be exactly 0.
// @Tags         Guardians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int                     true "The dossier ID within your namespace."
// @Param        threshold body  UpdateThresholdRequest  true "The new threshold."
// @Success      200  {object}  models.Dossier "The updated dossier record."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID or threshold out of range for the current guardian count."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Failure      409  {object}  utils.APIError "Conflict: the dossier is not active."
// @Router       /dossiers/{id}/threshold [put]
func UpdateThresholdHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}

	var req UpdateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := database.UpdateThreshold(userID, id, *req.GuardianThreshold); err != nil {
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

// GuardiansResponse is the owner's view of a dossier's guardian setup.
type GuardiansResponse struct {
	Guardians         []string `json:"guardians"`
	GuardianThreshold int      `json:"guardian_threshold"`
	ConfirmationCount int      `json:"confirmation_count"`
}

// GetGuardiansHandler lists a dossier's guardians from the owner's side.
// @Summary      List a Dossier's Guardians
// @Description  Returns the guardian list, the confirmation threshold, and how many guardians have confirmed so far. The owner can see the count but not which specific guardians confirmed.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true "The dossier ID within your namespace."
// @Success      200  {object}  GuardiansResponse "The guardian setup."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found."
// @Router       /dossiers/{id}/guardians [get]
func GetGuardiansHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
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

	guardians := d.Guardians
	if guardians == nil {
		guardians = []string{}
	}
	c.JSON(http.StatusOK, GuardiansResponse{
		Guardians:         guardians,
		GuardianThreshold: d.GuardianThreshold,
		ConfirmationCount: d.ConfirmationCount,
	})
}

// --- Guardian-Side Views ---

// DossierRefsResponse lists references into other owners' namespaces.
type DossierRefsResponse struct {
	Data  []models.DossierRef `json:"data"`
	Total int                 `json:"total"`
}

// GuardianDossiersHandler lists the dossiers the caller guards.
// @Summary      List Dossiers You Guard
// @Description  Lists every dossier, across all owners, on which you are a guardian. References are sorted by owner ID, then dossier ID. Use the guardian status endpoint to inspect an individual entry.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DossierRefsResponse "References to the dossiers you guard."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Router       /guardian/dossiers [get]
func GuardianDossiersHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	refs := database.GuardianDossiers(userID)
	if refs == nil {
		refs = []models.DossierRef{}
	}
	c.JSON(http.StatusOK, DossierRefsResponse{Data: refs, Total: len(refs)})
}

// RecipientDossiersHandler lists the dossiers addressed to the caller.
// @Summary      List Dossiers Addressed to You
// @Description  Lists every dossier, across all owners, on which you are a recipient. References are sorted by owner ID, then dossier ID. Poll the vault status endpoint to learn when one becomes decryptable.
// @Tags         Recipients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DossierRefsResponse "References to the dossiers addressed to you."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Router       /recipient/dossiers [get]
func RecipientDossiersHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	refs := database.RecipientDossiers(userID)
	if refs == nil {
		refs = []models.DossierRef{}
	}
	c.JSON(http.StatusOK, DossierRefsResponse{Data: refs, Total: len(refs)})
}

// GuardianStatusResponse is a guardian's view of one dossier they guard.
type GuardianStatusResponse struct {
	OwnerID           string               `json:"owner_id"`
	ID                uint64               `json:"id"`
	Name              string               `json:"name"`
	Status            models.DossierStatus `json:"status"`
	GuardianThreshold int                  `json:"guardian_threshold"`
	ConfirmationCount int                  `json:"confirmation_count"`
	ThresholdMet      bool                 `json:"threshold_met"`
	HasConfirmed      bool                 `json:"has_confirmed"`
}

// guardianView loads the dossier at (owner, id) after verifying the caller
// guards it. On failure a response has already been written.
func guardianView(c *gin.Context, database *db.Database, ownerID string, id uint64, caller string) (models.Dossier, bool) {
	isGuardian, err := database.IsGuardian(ownerID, id, caller)
	if err != nil {
		respondDossierError(c, err)
		return models.Dossier{}, false
	}
	if !isGuardian {
		utils.GinErrorWithCode(c, http.StatusForbidden, string(dossier.CodeNotAGuardian),
			"You are not a guardian of this dossier.")
		return models.Dossier{}, false
	}

	d, err := database.GetDossier(ownerID, id)
	if err != nil {
		respondDossierError(c, err)
		return models.Dossier{}, false
	}
	return d, true
}

func toGuardianStatus(ownerID string, d models.Dossier, caller string) GuardianStatusResponse {
	return GuardianStatusResponse{
		OwnerID:           ownerID,
		ID:                d.ID,
		Name:              d.Name,
		Status:            d.Status,
		GuardianThreshold: d.GuardianThreshold,
		ConfirmationCount: d.ConfirmationCount,
		ThresholdMet:      d.ConfirmationCount >= d.GuardianThreshold,
		HasConfirmed:      d.Confirmations[caller],
	}
}

// GuardianStatusHandler shows a guarded dossier from the guardian's side.
// @Summary      Guardian View of a Dossier
// @Description  Shows the state of a dossier you guard: its lifecycle status, the confirmation threshold, how many confirmations have been recorded, whether the threshold is met, and whether your own confirmation is among them. File hashes and the recipient list are not exposed to guardians.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path  string  true "The owner's profile ID."
// @Param        id        path  int     true "The dossier ID within the owner's namespace."
// @Success      200  {object}  GuardianStatusResponse "The guardian view."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid dossier ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      403  {object}  utils.APIError "Forbidden: you are not a guardian of this dossier."
// @Failure      404  {object}  utils.APIError "Not Found: no such dossier."
// @Router       /guardian/dossiers/{owner_id}/{id} [get]
func GuardianStatusHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	ownerID := c.Param("owner_id")

	d, ok := guardianView(c, database, ownerID, id, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toGuardianStatus(ownerID, d, userID))
}

// ConfirmReleaseHandler records the caller's release confirmation.
// @Summary      Confirm a Release
// @Description  Records your confirmation that the dossier's release is legitimate. Once the number of confirmations reaches the threshold, recipients of a released dossier can decrypt.
// @Description
// @Description  Confirming is allowed while the dossier is active, paused, or released (guardians often confirm only after the owner goes silent), but not once it is permanently disabled. Confirming twice is an error and does not double-count.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path  string  true "The owner's profile ID."
// @Param        id        path  int     true "The dossier ID within the owner's namespace."
// @Success      200  {object}  GuardianStatusResponse "Confirmation recorded; the response shows the updated counts."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid dossier ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      403  {object}  utils.APIError "Forbidden: you are not a guardian of this dossier."
// @Failure      404  {object}  utils.APIError "Not Found: no such dossier."
// @Failure      409  {object}  utils.APIError "Conflict: you already confirmed, or the dossier is permanently disabled."
// @Router       /guardian/dossiers/{owner_id}/{id}/confirm [post]
func ConfirmReleaseHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	ownerID := c.Param("owner_id")

	if err := database.ConfirmRelease(ownerID, id, userID); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(ownerID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, toGuardianStatus(ownerID, d, userID))
}

// RevokeConfirmationHandler withdraws the caller's release confirmation.
// @Summary      Revoke a Confirmation
// @Description  Withdraws your previously recorded confirmation, for example after the owner resurfaces and the release no longer looks legitimate. Revoking can push a met threshold back below the line, keeping the payload sealed. Once the dossier is released or disabled the confirmation record is frozen and revoking is rejected.
// @Tags         Guardians
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path  string  true "The owner's profile ID."
// @Param        id        path  int     true "The dossier ID within the owner's namespace."
// @Success      200  {object}  GuardianStatusResponse "Confirmation withdrawn; the response shows the updated counts."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid dossier ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      403  {object}  utils.APIError "Forbidden: you are not a guardian of this dossier."
// @Failure      404  {object}  utils.APIError "Not Found: no such dossier."
// @Failure      409  {object}  utils.APIError "Conflict: you had not confirmed, or the dossier is released or disabled."
// @Router       /guardian/dossiers/{owner_id}/{id}/revoke [post]
func RevokeConfirmationHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	ownerID := c.Param("owner_id")

	if err := database.RevokeConfirmation(ownerID, id, userID); err != nil {
		respondDossierError(c, err)
		return
	}

	d, err := database.GetDossier(ownerID, id)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to read back dossier: %v", err))
		return
	}
	c.JSON(http.StatusOK, toGuardianStatus(ownerID, d, userID))
}

// --- Vault Status (what a decrypting client polls) ---

// VaultOwnerResponse reports whether an owner has any dossiers registered.
type VaultOwnerResponse struct {
	OwnerID string `json:"owner_id"`
	Exists  bool   `json:"exists"`
}

// VaultOwnerHandler reports whether an owner exists in the vault.
// @Summary      Check a Vault Owner
// @Description  Reports whether the given profile ID has any dossiers registered. A decrypting client uses this to distinguish "owner unknown" from "dossier missing".
// @Tags         Vault
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path  string  true "The owner's profile ID."
// @Success      200  {object}  VaultOwnerResponse "Whether the owner has dossiers."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Router       /vault/{owner_id} [get]
func VaultOwnerHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	ownerID := c.Param("owner_id")
	c.JSON(http.StatusOK, VaultOwnerResponse{
		OwnerID: ownerID,
		Exists:  database.OwnerExists(ownerID),
	})
}

// VaultStatusResponse answers the one question a decrypting client asks.
type VaultStatusResponse struct {
	OwnerID       string `json:"owner_id"`
	ID            uint64 `json:"id"`
	StayEncrypted bool   `json:"stay_encrypted"`
}

// VaultStatusHandler reports whether a dossier's payload must stay encrypted.
// @Summary      Vault Status of a Dossier
// @Description  The release predicate. Answers whether the dossier's payload must remain encrypted right now:
// @Description
// @Description  *   Permanently disabled: always stay encrypted.
// @Description  *   Released: decryptable once the guardian threshold is met (immediately, if there are no guardians).
// @Description  *   Paused: always stay encrypted.
// @Description  *   Active: stay encrypted until the check-in interval plus a 1-hour grace period has elapsed since the last check-in; after that, same guardian gate as released.
// @Description
// @Description  Asking about the decision never changes it; the dossier record is not modified by this endpoint.
// @Tags         Vault
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path  string  true "The owner's profile ID."
// @Param        id        path  int     true "The dossier ID within the owner's namespace."
// @Success      200  {object}  VaultStatusResponse "The encryption decision."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid dossier ID."
// @Failure      401  {object}  utils.APIError "Unauthorized."
// @Failure      404  {object}  utils.APIError "Not Found: no such owner or dossier."
// @Router       /vault/{owner_id}/{id}/status [get]
func VaultStatusHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	id, ok := parseDossierID(c, "id")
	if !ok {
		return
	}
	ownerID := c.Param("owner_id")

	stay, err := database.ShouldStayEncrypted(ownerID, id)
	if err != nil {
		respondDossierError(c, err)
		return
	}

	c.JSON(http.StatusOK, VaultStatusResponse{
		OwnerID:       ownerID,
		ID:            id,
		StayEncrypted: stay,
	})
}
