package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dossiervault/config"
	"dossiervault/db"
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJWTSecret is a fixed secret for generating tokens during tests.
const testJWTSecret = "test-integration-secret-key-needs-to-be-long-enough"

// setupTestServer initializes a Gin engine with routes and a temporary database.
// It returns the configured router, the database instance, the test config, and a cleanup function.
func setupTestServer(t *testing.T) (*gin.Engine, *db.Database, *config.Config, func()) {
	gin.SetMode(gin.TestMode)

	tempDir, err := os.MkdirTemp("", "dossiervault_api_test_")
	require.NoError(t, err, "Failed to create temp directory for test vault")

	cfg := &config.Config{
		DbFilePath:    filepath.Join(tempDir, "test_api_vault.json"),
		SaveInterval:  1 * time.Hour, // Debounce never fires during a test run
		EnableBackup:  false,
		JwtSecret:     testJWTSecret,
		TokenLifetime: 1 * time.Hour,
		BcryptCost:    4, // Minimum bcrypt cost for faster tests
	}

	database, err := db.NewDatabase(cfg)
	require.NoError(t, err, "Failed to initialize test database")

	// Setup router exactly like in main.go
	router := gin.Default()
	router.RedirectTrailingSlash = false

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", func(c *gin.Context) { SignupHandler(c, database, cfg) })
		authGroup.POST("/login", func(c *gin.Context) { LoginHandler(c, database, cfg) })
	}

	authMiddleware := utils.AuthMiddleware(cfg)
	router.POST("/auth/logout", authMiddleware, func(c *gin.Context) { LogoutHandler(c, database, cfg) })

	profileGroup := router.Group("/profiles")
	profileGroup.Use(authMiddleware)
	{
		profileGroup.GET("/me", func(c *gin.Context) { GetProfileMeHandler(c, database, cfg) })
		profileGroup.PUT("/me", func(c *gin.Context) { UpdateProfileMeHandler(c, database, cfg) })
		profileGroup.DELETE("/me", func(c *gin.Context) { DeleteProfileMeHandler(c, database, cfg) })
		profileGroup.GET("", func(c *gin.Context) { SearchProfilesHandler(c, database, cfg) })
	}

	dossierGroup := router.Group("/dossiers")
	dossierGroup.Use(authMiddleware)
	{
		dossierGroup.POST("", func(c *gin.Context) { CreateDossierHandler(c, database, cfg) })
		dossierGroup.GET("", func(c *gin.Context) { GetDossiersHandler(c, database, cfg) })
		dossierGroup.GET("/:id", func(c *gin.Context) { GetDossierByIDHandler(c, database, cfg) })
		dossierGroup.POST("/:id/checkin", func(c *gin.Context) { CheckInHandler(c, database, cfg) })
		dossierGroup.POST("/:id/pause", func(c *gin.Context) { PauseHandler(c, database, cfg) })
		dossierGroup.POST("/:id/resume", func(c *gin.Context) { ResumeHandler(c, database, cfg) })
		dossierGroup.POST("/:id/release", func(c *gin.Context) { ReleaseHandler(c, database, cfg) })
		dossierGroup.POST("/:id/disable", func(c *gin.Context) { DisableHandler(c, database, cfg) })
		dossierGroup.PUT("/:id/interval", func(c *gin.Context) { UpdateIntervalHandler(c, database, cfg) })
		dossierGroup.POST("/:id/files", func(c *gin.Context) { AddFileHashesHandler(c, database, cfg) })
		dossierGroup.PUT("/:id/recipients/:profile_id", func(c *gin.Context) { AddRecipientHandler(c, database, cfg) })
		dossierGroup.DELETE("/:id/recipients/:profile_id", func(c *gin.Context) { RemoveRecipientHandler(c, database, cfg) })
		dossierGroup.GET("/:id/guardians", func(c *gin.Context) { GetGuardiansHandler(c, database, cfg) })
		dossierGroup.PUT("/:id/guardians/:profile_id", func(c *gin.Context) { AddGuardianHandler(c, database, cfg) })
		dossierGroup.DELETE("/:id/guardians/:profile_id", func(c *gin.Context) { RemoveGuardianHandler(c, database, cfg) })
		dossierGroup.PUT("/:id/threshold", func(c *gin.Context) { UpdateThresholdHandler(c, database, cfg) })
	}

	router.POST("/checkin-all", authMiddleware, func(c *gin.Context) { CheckInAllHandler(c, database, cfg) })
	router.POST("/pause-all", authMiddleware, func(c *gin.Context) { PauseAllHandler(c, database, cfg) })
	router.POST("/resume-all", authMiddleware, func(c *gin.Context) { ResumeAllHandler(c, database, cfg) })

	guardianGroup := router.Group("/guardian")
	guardianGroup.Use(authMiddleware)
	{
		guardianGroup.GET("/dossiers", func(c *gin.Context) { GuardianDossiersHandler(c, database, cfg) })
		guardianGroup.GET("/dossiers/:owner_id/:id", func(c *gin.Context) { GuardianStatusHandler(c, database, cfg) })
		guardianGroup.POST("/dossiers/:owner_id/:id/confirm", func(c *gin.Context) { ConfirmReleaseHandler(c, database, cfg) })
		guardianGroup.POST("/dossiers/:owner_id/:id/revoke", func(c *gin.Context) { RevokeConfirmationHandler(c, database, cfg) })
	}

	router.GET("/recipient/dossiers", authMiddleware, func(c *gin.Context) { RecipientDossiersHandler(c, database, cfg) })

	vaultGroup := router.Group("/vault")
	vaultGroup.Use(authMiddleware)
	{
		vaultGroup.GET("/:owner_id", func(c *gin.Context) { VaultOwnerHandler(c, database, cfg) })
		vaultGroup.GET("/:owner_id/:id/status", func(c *gin.Context) { VaultStatusHandler(c, database, cfg) })
	}

	cleanup := func() {
		if err := database.Close(); err != nil {
			t.Logf("Warning: Error closing test database: %v", err)
		}
		if err := os.RemoveAll(tempDir); err != nil {
			t.Logf("Warning: Failed to remove temp directory %s: %v", tempDir, err)
		}
	}

	return router, database, cfg, cleanup
}

// performRequest executes an HTTP request against the test router.
func performRequest(router *gin.Engine, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		panic(fmt.Sprintf("Failed to create request: %v", err))
	}
	if body != nil && method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// marshalJSONBody marshals data to a JSON bytes buffer for a request body.
func marshalJSONBody(t *testing.T, data interface{}) *bytes.Buffer {
	bodyBytes, err := json.Marshal(data)
	require.NoError(t, err, "Failed to marshal JSON body for request")
	return bytes.NewBuffer(bodyBytes)
}

// createTestUserAndLogin signs up and logs in a new user.
// Returns the user's ID and auth token.
func createTestUserAndLogin(t *testing.T, router *gin.Engine, email, password, firstName, lastName string) (userID, token string) {
	signupPayload := gin.H{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}
	signupRR := performRequest(router, "POST", "/auth/signup", marshalJSONBody(t, signupPayload), "")
	require.Equal(t, http.StatusCreated, signupRR.Code, "Signup should return 201 Created")
	var signupResp map[string]interface{}
	err := json.Unmarshal(signupRR.Body.Bytes(), &signupResp)
	require.NoError(t, err)
	userID = signupResp["id"].(string)
	require.NotEmpty(t, userID)

	loginPayload := gin.H{"email": email, "password": password}
	loginRR := performRequest(router, "POST", "/auth/login", marshalJSONBody(t, loginPayload), "")
	require.Equal(t, http.StatusOK, loginRR.Code, "Login failed during test user creation")
	var loginResp map[string]string
	err = json.Unmarshal(loginRR.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	token = loginResp["token"]
	require.NotEmpty(t, token)

	return userID, token
}

// createTestDossier registers a dossier via the API and returns its ID.
func createTestDossier(t *testing.T, router *gin.Engine, token string, payload gin.H) uint64 {
	rr := performRequest(router, "POST", "/dossiers", marshalJSONBody(t, payload), token)
	require.Equal(t, http.StatusCreated, rr.Code, "Dossier creation failed: %s", rr.Body.String())
	var resp map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return uint64(resp["id"].(float64))
}

// basicDossierPayload builds a minimal valid creation body.
func basicDossierPayload(recipientID string) gin.H {
	return gin.H{
		"name":                      "test dossier",
		"description":               "a test",
		"check_in_interval_seconds": 3600,
		"recipients":                []string{recipientID},
		"file_hashes":               []string{"sha256:0011"},
	}
}

// --- Authentication Endpoint Tests ---

func TestAuthEndpoints(t *testing.T) {
	router, database, _, cleanup := setupTestServer(t)
	defer cleanup()

	var userToken string

	t.Run("Signup Success", func(t *testing.T) {
		signupPayload := gin.H{
			"email":      "test.signup@example.com",
			"password":   "password123",
			"first_name": "Test",
			"last_name":  "Signup",
		}
		rr := performRequest(router, "POST", "/auth/signup", marshalJSONBody(t, signupPayload), "")
		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody map[string]interface{}
		err := json.Unmarshal(rr.Body.Bytes(), &responseBody)
		require.NoError(t, err)
		assert.Equal(t, "test.signup@example.com", responseBody["email"])
		assert.Equal(t, "Test", responseBody["first_name"])
		assert.NotEmpty(t, responseBody["id"])
		assert.NotContains(t, responseBody, "password_hash", "Password hash should not be in signup response")

		profile, found := database.GetProfileByEmail("test.signup@example.com")
		assert.True(t, found, "User should exist in database after signup")
		assert.NotEmpty(t, profile.PasswordHash, "Password hash should be stored in database")
		assert.True(t, utils.CheckPasswordHash("password123", profile.PasswordHash))
	})

	t.Run("Signup Duplicate Email", func(t *testing.T) {
		signupPayload := gin.H{
			"email":      "test.signup@example.com",
			"password":   "anotherpassword",
			"first_name": "Duplicate",
			"last_name":  "User",
		}
		rr := performRequest(router, "POST", "/auth/signup", marshalJSONBody(t, signupPayload), "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "already exists")
	})

	t.Run("Signup Short Password", func(t *testing.T) {
		signupPayload := gin.H{
			"email":      "short.pw@example.com",
			"password":   "short",
			"first_name": "Short",
			"last_name":  "Password",
		}
		rr := performRequest(router, "POST", "/auth/signup", marshalJSONBody(t, signupPayload), "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Login Success", func(t *testing.T) {
		loginPayload := gin.H{"email": "test.signup@example.com", "password": "password123"}
		rr := performRequest(router, "POST", "/auth/login", marshalJSONBody(t, loginPayload), "")
		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody map[string]string
		err := json.Unmarshal(rr.Body.Bytes(), &responseBody)
		require.NoError(t, err)
		assert.NotEmpty(t, responseBody["token"])
		userToken = responseBody["token"]
	})

	t.Run("Login Wrong Password", func(t *testing.T) {
		loginPayload := gin.H{"email": "test.signup@example.com", "password": "wrongpassword"}
		rr := performRequest(router, "POST", "/auth/login", marshalJSONBody(t, loginPayload), "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid email or password")
	})

	t.Run("Login Unknown Email", func(t *testing.T) {
		loginPayload := gin.H{"email": "nobody@example.com", "password": "password123"}
		rr := performRequest(router, "POST", "/auth/login", marshalJSONBody(t, loginPayload), "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid email or password")
	})

	t.Run("Logout Success", func(t *testing.T) {
		require.NotEmpty(t, userToken)
		rr := performRequest(router, "POST", "/auth/logout", nil, userToken)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Logout No Token", func(t *testing.T) {
		rr := performRequest(router, "POST", "/auth/logout", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

// --- Dossier Endpoint Tests ---

func TestDossierEndpoints(t *testing.T) {
	router, database, _, cleanup := setupTestServer(t)
	defer cleanup()

	ownerID, ownerToken := createTestUserAndLogin(t, router, "dossier.owner@example.com", "ownerPass1", "Dossier", "Owner")
	recipientID, _ := createTestUserAndLogin(t, router, "dossier.recipient@example.com", "recipPass1", "Dossier", "Recipient")
	otherID, otherToken := createTestUserAndLogin(t, router, "dossier.other@example.com", "otherPass1", "Other", "User")

	var dossierID uint64

	t.Run("Create Dossier Success", func(t *testing.T) {
		rr := performRequest(router, "POST", "/dossiers", marshalJSONBody(t, basicDossierPayload(recipientID)), ownerToken)
		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var resp map[string]interface{}
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, float64(1), resp["id"], "First dossier should get ID 1")
		assert.Equal(t, "active", resp["status"])
		assert.Equal(t, float64(0), resp["guardian_threshold"])
		assert.NotEmpty(t, resp["last_check_in"])
		dossierID = uint64(resp["id"].(float64))
	})

	t.Run("Create Dossier Interval Too Short", func(t *testing.T) {
		payload := basicDossierPayload(recipientID)
		payload["check_in_interval_seconds"] = 60
		rr := performRequest(router, "POST", "/dossiers", marshalJSONBody(t, payload), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_INTERVAL")
	})

	t.Run("Create Dossier No Recipients", func(t *testing.T) {
		payload := basicDossierPayload(recipientID)
		payload["recipients"] = []string{}
		rr := performRequest(router, "POST", "/dossiers", marshalJSONBody(t, payload), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Create Dossier Owner As Guardian", func(t *testing.T) {
		payload := basicDossierPayload(recipientID)
		payload["guardians"] = []string{ownerID}
		rr := performRequest(router, "POST", "/dossiers", marshalJSONBody(t, payload), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Get Dossier By ID Success", func(t *testing.T) {
		rr := performRequest(router, "GET", fmt.Sprintf("/dossiers/%d", dossierID), nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "test dossier", resp["name"])
	})

	t.Run("Get Dossier Owner Scoped", func(t *testing.T) {
		// Another user asking for ID 1 hits their own empty namespace
		rr := performRequest(router, "GET", fmt.Sprintf("/dossiers/%d", dossierID), nil, otherToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Get Dossier Invalid ID", func(t *testing.T) {
		rr := performRequest(router, "GET", "/dossiers/abc", nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Lifecycle CheckIn Pause Resume", func(t *testing.T) {
		base := fmt.Sprintf("/dossiers/%d", dossierID)

		rr := performRequest(router, "POST", base+"/checkin", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = performRequest(router, "POST", base+"/pause", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"paused"`)

		// Check-in while paused is a state conflict
		rr = performRequest(router, "POST", base+"/checkin", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "PAUSED")

		// Pausing twice is a state conflict
		rr = performRequest(router, "POST", base+"/pause", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_PAUSED")

		rr = performRequest(router, "POST", base+"/resume", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"active"`)

		rr = performRequest(router, "POST", base+"/resume", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_ACTIVE")
	})

	t.Run("Update Interval", func(t *testing.T) {
		base := fmt.Sprintf("/dossiers/%d", dossierID)

		rr := performRequest(router, "PUT", base+"/interval", marshalJSONBody(t, gin.H{"check_in_interval_seconds": 7200}), ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "7200")

		rr = performRequest(router, "PUT", base+"/interval", marshalJSONBody(t, gin.H{"check_in_interval_seconds": 59}), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_INTERVAL")
	})

	t.Run("Add File Hashes", func(t *testing.T) {
		base := fmt.Sprintf("/dossiers/%d", dossierID)

		rr := performRequest(router, "POST", base+"/files", marshalJSONBody(t, gin.H{"file_hashes": []string{"sha256:2233", "sha256:4455"}}), ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		d, err := database.GetDossier(ownerID, dossierID)
		require.NoError(t, err)
		assert.Equal(t, []string{"sha256:0011", "sha256:2233", "sha256:4455"}, d.FileHashes)

		// A batch containing an empty hash attaches nothing
		rr = performRequest(router, "POST", base+"/files", marshalJSONBody(t, gin.H{"file_hashes": []string{"sha256:6677", ""}}), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "EMPTY_HASH")

		d, err = database.GetDossier(ownerID, dossierID)
		require.NoError(t, err)
		assert.Len(t, d.FileHashes, 3, "Failed batch should not attach anything")
	})

	t.Run("Recipients Add Remove", func(t *testing.T) {
		base := fmt.Sprintf("/dossiers/%d", dossierID)

		rr := performRequest(router, "PUT", base+"/recipients/"+otherID, nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		// Duplicate add
		rr = performRequest(router, "PUT", base+"/recipients/"+otherID, nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "DUPLICATE_RECIPIENT")

		rr = performRequest(router, "DELETE", base+"/recipients/"+otherID, nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		// The last recipient cannot be removed
		rr = performRequest(router, "DELETE", base+"/recipients/"+recipientID, nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "CANNOT_REMOVE_LAST_RECIPIENT")
	})

	t.Run("Query Dossiers Scopes And Filters", func(t *testing.T) {
		// Second dossier, paused, to give the query something to split on
		secondID := createTestDossier(t, router, ownerToken, basicDossierPayload(recipientID))
		rr := performRequest(router, "POST", fmt.Sprintf("/dossiers/%d/pause", secondID), nil, ownerToken)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = performRequest(router, "GET", "/dossiers?scope=owned&order=asc", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		var listResp struct {
			Data  []json.RawMessage `json:"data"`
			Total int               `json:"total"`
		}
		err := json.Unmarshal(rr.Body.Bytes(), &listResp)
		require.NoError(t, err)
		assert.Equal(t, 2, listResp.Total)

		// Content filter on status
		rr = performRequest(router, "GET", "/dossiers?content_query=status+equals+%22paused%22", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		err = json.Unmarshal(rr.Body.Bytes(), &listResp)
		require.NoError(t, err)
		assert.Equal(t, 1, listResp.Total)

		// Invalid scope
		rr = performRequest(router, "GET", "/dossiers?scope=shared", nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid scope value")

		// Invalid sort field
		rr = performRequest(router, "GET", "/dossiers?sort_by=name", nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid sort_by value")

		// The recipient sees both through the recipient scope
		recipientToken := loginExistingUser(t, router, "dossier.recipient@example.com", "recipPass1")
		rr = performRequest(router, "GET", "/dossiers?scope=recipient", nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		err = json.Unmarshal(rr.Body.Bytes(), &listResp)
		require.NoError(t, err)
		assert.Equal(t, 2, listResp.Total)
	})

	t.Run("Batch Operations", func(t *testing.T) {
		// otherID owns nothing: checkin-all is a 404
		rr := performRequest(router, "POST", "/checkin-all", nil, otherToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "NO_DOSSIERS")

		// Owner has one active (ID 1) and one paused (ID 2)
		rr = performRequest(router, "POST", "/checkin-all", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"affected":1`)

		rr = performRequest(router, "POST", "/pause-all", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"affected":1`)

		// Everything is paused now, so pause-all has nothing to do
		rr = performRequest(router, "POST", "/pause-all", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "NOTHING_TO_DO")

		rr = performRequest(router, "POST", "/resume-all", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"affected":2`)
	})

	t.Run("Release And Disable", func(t *testing.T) {
		base := fmt.Sprintf("/dossiers/%d", dossierID)

		rr := performRequest(router, "POST", base+"/release", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"released"`)

		rr = performRequest(router, "POST", base+"/release", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_RELEASED")

		// Edits are rejected after release
		rr = performRequest(router, "PUT", base+"/interval", marshalJSONBody(t, gin.H{"check_in_interval_seconds": 7200}), ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)

		// Disable still works after release
		rr = performRequest(router, "POST", base+"/disable", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"disabled"`)

		rr = performRequest(router, "POST", base+"/disable", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_DISABLED")

		// No escape from disabled
		rr = performRequest(router, "POST", base+"/resume", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "PERMANENTLY_DISABLED")
	})
}

// loginExistingUser logs in an already registered user and returns a token.
func loginExistingUser(t *testing.T, router *gin.Engine, email, password string) string {
	loginPayload := gin.H{"email": email, "password": password}
	loginRR := performRequest(router, "POST", "/auth/login", marshalJSONBody(t, loginPayload), "")
	require.Equal(t, http.StatusOK, loginRR.Code)
	var loginResp map[string]string
	err := json.Unmarshal(loginRR.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	return loginResp["token"]
}

// --- Guardian and Vault Endpoint Tests ---

func TestGuardianEndpoints(t *testing.T) {
	router, _, _, cleanup := setupTestServer(t)
	defer cleanup()

	ownerID, ownerToken := createTestUserAndLogin(t, router, "g.owner@example.com", "ownerPass1", "Gwen", "Owner")
	recipientID, recipientToken := createTestUserAndLogin(t, router, "g.recipient@example.com", "recipPass1", "Rex", "Recipient")
	guardianID, guardianToken := createTestUserAndLogin(t, router, "g.guardian@example.com", "guardPass1", "Gail", "Guardian")
	guardian2ID, guardian2Token := createTestUserAndLogin(t, router, "g.guardian2@example.com", "guardPass2", "Glen", "Guardian")

	dossierID := createTestDossier(t, router, ownerToken, basicDossierPayload(recipientID))
	base := fmt.Sprintf("/dossiers/%d", dossierID)
	guardianBase := fmt.Sprintf("/guardian/dossiers/%s/%d", ownerID, dossierID)
	vaultStatus := fmt.Sprintf("/vault/%s/%d/status", ownerID, dossierID)

	t.Run("Add Guardians", func(t *testing.T) {
		// First guardian pulls the threshold from 0 to 1
		rr := performRequest(router, "PUT", base+"/guardians/"+guardianID, nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"guardian_threshold":1`)

		rr = performRequest(router, "PUT", base+"/guardians/"+guardian2ID, nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"guardian_threshold":1`, "Second guardian should not move the threshold")

		// The owner cannot guard their own dossier
		rr = performRequest(router, "PUT", base+"/guardians/"+ownerID, nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "OWNER_CANNOT_BE_GUARDIAN")

		// Duplicates are rejected
		rr = performRequest(router, "PUT", base+"/guardians/"+guardianID, nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "DUPLICATE_GUARDIAN")
	})

	t.Run("Update Threshold", func(t *testing.T) {
		rr := performRequest(router, "PUT", base+"/threshold", marshalJSONBody(t, gin.H{"guardian_threshold": 2}), ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"guardian_threshold":2`)

		// Threshold above the guardian count is rejected
		rr = performRequest(router, "PUT", base+"/threshold", marshalJSONBody(t, gin.H{"guardian_threshold": 3}), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_THRESHOLD")
	})

	t.Run("Owner Guardian View", func(t *testing.T) {
		rr := performRequest(router, "GET", base+"/guardians", nil, ownerToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp GuardiansResponse
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{guardianID, guardian2ID}, resp.Guardians)
		assert.Equal(t, 2, resp.GuardianThreshold)
		assert.Equal(t, 0, resp.ConfirmationCount)
	})

	t.Run("Guardian Status View", func(t *testing.T) {
		rr := performRequest(router, "GET", guardianBase, nil, guardianToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp GuardianStatusResponse
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, ownerID, resp.OwnerID)
		assert.False(t, resp.HasConfirmed)
		assert.False(t, resp.ThresholdMet)

		// Non-guardians are turned away
		rr = performRequest(router, "GET", guardianBase, nil, recipientToken)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "NOT_A_GUARDIAN")
	})

	t.Run("Reverse Index Listings", func(t *testing.T) {
		rr := performRequest(router, "GET", "/guardian/dossiers", nil, guardianToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		var refs DossierRefsResponse
		err := json.Unmarshal(rr.Body.Bytes(), &refs)
		require.NoError(t, err)
		assert.Equal(t, 1, refs.Total)
		assert.Equal(t, ownerID, refs.Data[0].Owner)

		rr = performRequest(router, "GET", "/recipient/dossiers", nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		err = json.Unmarshal(rr.Body.Bytes(), &refs)
		require.NoError(t, err)
		assert.Equal(t, 1, refs.Total)

		// Someone with no roles gets an empty list, not an error
		rr = performRequest(router, "GET", "/guardian/dossiers", nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		err = json.Unmarshal(rr.Body.Bytes(), &refs)
		require.NoError(t, err)
		assert.Equal(t, 0, refs.Total)
	})

	t.Run("Vault Owner Lookup", func(t *testing.T) {
		rr := performRequest(router, "GET", "/vault/"+ownerID, nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"exists":true`)

		rr = performRequest(router, "GET", "/vault/"+recipientID, nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"exists":false`, "A user with no dossiers is not a vault owner")
	})

	t.Run("Confirm Revoke And Release Gate", func(t *testing.T) {
		// Fresh dossier: stays encrypted
		rr := performRequest(router, "GET", vaultStatus, nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stay_encrypted":true`)

		// Owner releases; threshold 2, zero confirmations: still sealed
		rr = performRequest(router, "POST", base+"/release", nil, ownerToken)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = performRequest(router, "GET", vaultStatus, nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stay_encrypted":true`)

		// First confirmation: one short of the threshold
		rr = performRequest(router, "POST", guardianBase+"/confirm", nil, guardianToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"threshold_met":false`)

		// Confirming twice is rejected
		rr = performRequest(router, "POST", guardianBase+"/confirm", nil, guardianToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_CONFIRMED")

		// A non-guardian cannot confirm
		rr = performRequest(router, "POST", guardianBase+"/confirm", nil, recipientToken)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		// Second confirmation meets the threshold and unseals the payload
		rr = performRequest(router, "POST", guardianBase+"/confirm", nil, guardian2Token)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"threshold_met":true`)

		rr = performRequest(router, "GET", vaultStatus, nil, recipientToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stay_encrypted":false`)

		// Revoking after release is frozen out
		rr = performRequest(router, "POST", guardianBase+"/revoke", nil, guardianToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "ALREADY_RELEASED")
	})

	t.Run("Vault Status Unknown Dossier", func(t *testing.T) {
		rr := performRequest(router, "GET", fmt.Sprintf("/vault/%s/99/status", ownerID), nil, recipientToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
