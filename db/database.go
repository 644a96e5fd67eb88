package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"dossiervault/config"
	"dossiervault/dossier"
	"dossiervault/models"
	"dossiervault/utils"
)

// Database holds all application data and manages concurrent access.
// models.State is embedded so its fields (Profiles, Owners, the reverse
// indices, Mu) are reachable directly; the fields added here belong to the
// persistence logic rather than the data itself.
type Database struct {
	models.State
	config      *config.Config
	keeper      *dossier.Keeper
	saveTimer   *time.Timer // Timer for debounced saving
	savePending bool        // Flag to indicate if a save is queued
	saveMutex   sync.Mutex  // Mutex specifically for the save timer logic
}

// NewDatabase creates and initializes a new Database instance.
// It attempts to load existing data from the configured vault file.
func NewDatabase(cfg *config.Config) (*Database, error) {
	db := &Database{
		State: models.State{
			Profiles:       make(map[string]models.Profile),
			Owners:         make(map[string]*models.OwnerDossiers),
			GuardianIndex:  make(map[string][]models.DossierRef),
			RecipientIndex: make(map[string][]models.DossierRef),
		},
		config: cfg,
	}

	log.Printf("INFO: Initializing vault with file: %s", cfg.DbFilePath)
	err := db.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ERROR: Vault load failed with critical error: %v", err)
			return nil, err
		}
	}

	db.keeper = dossier.NewKeeper(&db.State, dossier.LogRecorder{})

	return db, nil
}

// Keeper exposes the dossier engine for callers that manage locking
// themselves (tests mostly). Handlers should use the Database wrappers.
func (db *Database) Keeper() *dossier.Keeper {
	return db.keeper
}

// Load reads the vault state from the JSON file specified in the configuration.
// A missing file initializes an empty vault; a file that exists but cannot be
// parsed is treated as critical and returned to the caller.
func (db *Database) Load() error {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	fileData, err := os.ReadFile(db.config.DbFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: Vault file '%s' not found. Initializing empty vault.", db.config.DbFilePath)
			db.resetMaps()
			return nil
		}
		log.Printf("ERROR: Failed to read vault file '%s': %v. Proceeding with empty state.", db.config.DbFilePath, err)
		db.resetMaps()
		return nil
	}

	err = json.Unmarshal(fileData, &db.State)
	if err != nil {
		log.Printf("CRITICAL: Failed to parse JSON data from vault file '%s': %v.", db.config.DbFilePath, err)
		db.ensureMaps()
		return err
	}

	db.ensureMaps()

	log.Printf("INFO: Successfully loaded vault from %s. Profiles: %d, Owners: %d",
		db.config.DbFilePath, len(db.State.Profiles), len(db.State.Owners))

	return nil
}

// resetMaps replaces every map with a fresh empty one. Callers hold Mu.
func (db *Database) resetMaps() {
	db.State.Profiles = make(map[string]models.Profile)
	db.State.Owners = make(map[string]*models.OwnerDossiers)
	db.State.GuardianIndex = make(map[string][]models.DossierRef)
	db.State.RecipientIndex = make(map[string][]models.DossierRef)
}

// ensureMaps initializes any map left nil by unmarshalling. Callers hold Mu.
func (db *Database) ensureMaps() {
	if db.State.Profiles == nil {
		db.State.Profiles = make(map[string]models.Profile)
	}
	if db.State.Owners == nil {
		db.State.Owners = make(map[string]*models.OwnerDossiers)
	}
	if db.State.GuardianIndex == nil {
		db.State.GuardianIndex = make(map[string][]models.DossierRef)
	}
	if db.State.RecipientIndex == nil {
		db.State.RecipientIndex = make(map[string][]models.DossierRef)
	}
}

// persist saves the current vault state to the JSON file.
// This is the actual file writing logic, called by the debounced mechanism.
func (db *Database) persist() error {
	db.State.Mu.RLock()
	jsonData, err := json.MarshalIndent(&db.State, "", "  ")
	db.State.Mu.RUnlock()
	if err != nil {
		log.Printf("ERROR: Failed to marshal vault state to JSON: %v", err)
		return err
	}

	tempFilePath := db.config.DbFilePath + ".tmp"
	backupFilePath := db.config.DbFilePath + ".bak"

	// Write to a temporary file first so a crash never truncates the vault.
	err = os.WriteFile(tempFilePath, jsonData, 0644)
	if err != nil {
		log.Printf("ERROR: Failed to write temporary vault file '%s': %v", tempFilePath, err)
		return err
	}

	if db.config.EnableBackup {
		if _, err := os.Stat(db.config.DbFilePath); err == nil {
			err = os.Rename(db.config.DbFilePath, backupFilePath)
			if err != nil {
				log.Printf("WARN: Failed to rename '%s' to '%s' for backup: %v. Proceeding with save.", db.config.DbFilePath, backupFilePath, err)
			} else {
				log.Printf("DEBUG: Created backup file: %s", backupFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: Error checking status of vault file '%s' before backup: %v", db.config.DbFilePath, err)
		}
	}

	err = os.Rename(tempFilePath, db.config.DbFilePath)
	if err != nil {
		log.Printf("ERROR: Failed to atomically rename temporary file '%s' to '%s': %v", tempFilePath, db.config.DbFilePath, err)
		_ = os.Remove(tempFilePath)
		return err
	}

	log.Printf("INFO: Successfully saved vault state to %s", db.config.DbFilePath)
	return nil
}

// requestSave is called after every write operation to trigger a debounced save.
func (db *Database) requestSave() {
	db.saveMutex.Lock()
	defer db.saveMutex.Unlock()

	// Instant save if interval is zero or negative
	if db.config.SaveInterval <= 0 {
		go func() {
			if err := db.persist(); err != nil {
				log.Printf("ERROR: Immediate persist failed: %v", err)
			}
		}()
		return
	}

	// If a timer is already running, stop it (reset the debounce period)
	if db.saveTimer != nil {
		db.saveTimer.Stop()
	}

	db.savePending = true

	db.saveTimer = time.AfterFunc(db.config.SaveInterval, func() {
		db.saveMutex.Lock()
		if !db.savePending {
			db.saveMutex.Unlock()
			return
		}
		db.savePending = false
		db.saveMutex.Unlock()

		log.Printf("INFO: Debounced save interval elapsed. Persisting vault...")
		if err := db.persist(); err != nil {
			log.Printf("ERROR: Debounced persist failed: %v", err)
		}
	})
}

// Close ensures any pending save operation is completed before shutdown.
func (db *Database) Close() error {
	var needsFinalPersist bool

	db.saveMutex.Lock()
	if db.saveTimer != nil {
		db.saveTimer.Stop()
		db.saveTimer = nil
	}
	if db.savePending {
		needsFinalPersist = true
		db.savePending = false
	}
	db.saveMutex.Unlock()

	if needsFinalPersist {
		log.Printf("INFO: Performing final persist operation on close...")
		if err := db.persist(); err != nil {
			log.Printf("ERROR: Final persist operation failed during close: %v", err)
			return err
		}
	}

	return nil
}

// --- CRUD Methods: Profiles ---

// CreateProfile adds a new profile to the vault.
// It checks for email uniqueness (case-insensitive).
func (db *Database) CreateProfile(profile models.Profile) (models.Profile, error) {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	for _, existingProfile := range db.State.Profiles {
		if strings.EqualFold(existingProfile.Email, profile.Email) {
			return models.Profile{}, fmt.Errorf("email '%s' already exists", profile.Email)
		}
	}

	if profile.ID == "" {
		profile.ID = utils.GenerateDashlessUUID()
	}
	now := time.Now().UTC()
	if profile.CreationDate.IsZero() {
		profile.CreationDate = now
	}
	profile.LastModifiedDate = now

	db.State.Profiles[profile.ID] = profile
	log.Printf("INFO: Created Profile ID: %s, Email: %s", profile.ID, profile.Email)

	db.requestSave()

	return profile, nil
}

// GetProfileByID retrieves a profile by its ID.
func (db *Database) GetProfileByID(id string) (models.Profile, bool) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()

	profile, found := db.State.Profiles[id]
	return profile, found
}

// GetProfileByEmail retrieves a profile by its email address (case-insensitive).
func (db *Database) GetProfileByEmail(email string) (models.Profile, bool) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()

	for _, profile := range db.State.Profiles {
		if strings.EqualFold(profile.Email, email) {
			return profile, true
		}
	}
	return models.Profile{}, false
}

// UpdateProfile updates an existing profile.
// Email changes are rejected when the new address belongs to another profile.
func (db *Database) UpdateProfile(id string, updatedProfile models.Profile) (models.Profile, error) {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	existingProfile, found := db.State.Profiles[id]
	if !found {
		return models.Profile{}, fmt.Errorf("profile with ID '%s' not found", id)
	}

	updatedProfile.ID = existingProfile.ID
	updatedProfile.CreationDate = existingProfile.CreationDate
	updatedProfile.LastModifiedDate = time.Now().UTC()
	if !strings.EqualFold(existingProfile.Email, updatedProfile.Email) {
		for _, p := range db.State.Profiles {
			if p.ID != id && strings.EqualFold(p.Email, updatedProfile.Email) {
				return models.Profile{}, fmt.Errorf("cannot update profile, email '%s' already exists for another user", updatedProfile.Email)
			}
		}
	}

	db.State.Profiles[id] = updatedProfile
	log.Printf("INFO: Updated Profile ID: %s", id)

	db.requestSave()

	return updatedProfile, nil
}

// DeleteProfile removes a profile by its ID. The profile's dossiers stay in
// the vault so recipients and guardians keep access to anything released.
func (db *Database) DeleteProfile(id string) error {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	_, found := db.State.Profiles[id]
	if !found {
		return fmt.Errorf("profile with ID '%s' not found", id)
	}

	delete(db.State.Profiles, id)
	log.Printf("INFO: Deleted Profile ID: %s", id)

	db.requestSave()

	return nil
}

// GetAllProfiles retrieves all profiles for listing and searching.
func (db *Database) GetAllProfiles() []models.Profile {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()

	profiles := make([]models.Profile, 0, len(db.State.Profiles))
	for _, profile := range db.State.Profiles {
		profiles = append(profiles, profile)
	}
	return profiles
}

// --- Dossier Operations ---
//
// Every wrapper below takes the state lock, delegates to the keeper, and
// schedules a save when the mutation succeeded.

// CreateDossier registers a new dossier for the owner and returns its ID.
func (db *Database) CreateDossier(owner string, in dossier.CreateInput) (uint64, error) {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	id, err := db.keeper.Create(owner, in)
	if err != nil {
		return 0, err
	}
	db.requestSave()
	return id, nil
}

// GetDossier returns a copy of one dossier record.
func (db *Database) GetDossier(owner string, id uint64) (models.Dossier, error) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.Get(owner, id)
}

// ListDossierIDs returns the ids of every dossier the owner has, in order.
func (db *Database) ListDossierIDs(owner string) []uint64 {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.DossierIDs(owner)
}

// ListDossiers returns copies of every dossier the owner has, in id order.
func (db *Database) ListDossiers(owner string) []models.Dossier {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()

	ids := db.keeper.DossierIDs(owner)
	out := make([]models.Dossier, 0, len(ids))
	for _, id := range ids {
		d, err := db.keeper.Get(owner, id)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// CheckIn refreshes the dead-man timer on a single dossier.
func (db *Database) CheckIn(owner string, id uint64) error {
	return db.write(func() error { return db.keeper.CheckIn(owner, id) })
}

// CheckInAll refreshes every active dossier the owner has.
func (db *Database) CheckInAll(owner string) (int, error) {
	return db.writeCount(func() (int, error) { return db.keeper.CheckInAll(owner) })
}

// Pause suspends the dead-man timer on a dossier.
func (db *Database) Pause(owner string, id uint64) error {
	return db.write(func() error { return db.keeper.Pause(owner, id) })
}

// Resume reactivates a paused dossier and restarts its timer.
func (db *Database) Resume(owner string, id uint64) error {
	return db.write(func() error { return db.keeper.Resume(owner, id) })
}

// PauseAll suspends every active dossier the owner has.
func (db *Database) PauseAll(owner string) (int, error) {
	return db.writeCount(func() (int, error) { return db.keeper.PauseAll(owner) })
}

// ResumeAll reactivates every paused dossier the owner has.
func (db *Database) ResumeAll(owner string) (int, error) {
	return db.writeCount(func() (int, error) { return db.keeper.ResumeAll(owner) })
}

// Release marks a dossier as released ahead of its timer.
func (db *Database) Release(owner string, id uint64) error {
	return db.write(func() error { return db.keeper.Release(owner, id) })
}

// PermanentlyDisable puts a dossier in its terminal locked state.
func (db *Database) PermanentlyDisable(owner string, id uint64) error {
	return db.write(func() error { return db.keeper.PermanentlyDisable(owner, id) })
}

// UpdateInterval changes the check-in interval on an active dossier.
func (db *Database) UpdateInterval(owner string, id uint64, seconds int64) error {
	return db.write(func() error { return db.keeper.UpdateInterval(owner, id, seconds) })
}

// AddFileHashes appends file hashes to an active dossier.
func (db *Database) AddFileHashes(owner string, id uint64, hashes []string) error {
	return db.write(func() error { return db.keeper.AddFileHashes(owner, id, hashes) })
}

// AddRecipient grants a profile access to the dossier once it decrypts.
func (db *Database) AddRecipient(owner string, id uint64, addr string) error {
	return db.write(func() error { return db.keeper.AddRecipient(owner, id, addr) })
}

// RemoveRecipient revokes a recipient from the dossier.
func (db *Database) RemoveRecipient(owner string, id uint64, addr string) error {
	return db.write(func() error { return db.keeper.RemoveRecipient(owner, id, addr) })
}

// AddGuardian appoints a release guardian on the dossier.
func (db *Database) AddGuardian(owner string, id uint64, guardian string) error {
	return db.write(func() error { return db.keeper.AddGuardian(owner, id, guardian) })
}

// RemoveGuardian removes a guardian and renormalizes the threshold.
func (db *Database) RemoveGuardian(owner string, id uint64, guardian string) error {
	return db.write(func() error { return db.keeper.RemoveGuardian(owner, id, guardian) })
}

// UpdateThreshold changes how many guardian confirmations a release needs.
func (db *Database) UpdateThreshold(owner string, id uint64, threshold int) error {
	return db.write(func() error { return db.keeper.UpdateThreshold(owner, id, threshold) })
}

// ConfirmRelease records a guardian's release confirmation.
func (db *Database) ConfirmRelease(owner string, id uint64, caller string) error {
	return db.write(func() error { return db.keeper.ConfirmRelease(owner, id, caller) })
}

// RevokeConfirmation withdraws a guardian's earlier confirmation.
func (db *Database) RevokeConfirmation(owner string, id uint64, caller string) error {
	return db.write(func() error { return db.keeper.RevokeConfirmation(owner, id, caller) })
}

// ShouldStayEncrypted evaluates the release predicate for one dossier.
func (db *Database) ShouldStayEncrypted(owner string, id uint64) (bool, error) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.ShouldStayEncrypted(owner, id)
}

// GuardianDossiers lists every dossier the address guards, sorted by owner then id.
func (db *Database) GuardianDossiers(addr string) []models.DossierRef {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.DossiersWhereGuardian(addr)
}

// RecipientDossiers lists every dossier the address will receive, sorted by owner then id.
func (db *Database) RecipientDossiers(addr string) []models.DossierRef {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.DossiersWhereRecipient(addr)
}

// OwnerExists reports whether the owner has at least one dossier.
func (db *Database) OwnerExists(owner string) bool {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.OwnerExists(owner)
}

// IsGuardian reports whether addr is a guardian on the given dossier.
func (db *Database) IsGuardian(owner string, id uint64, addr string) (bool, error) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()
	return db.keeper.IsGuardian(owner, id, addr)
}

// write runs a keeper mutation under the write lock and schedules a save on success.
func (db *Database) write(fn func() error) error {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	db.requestSave()
	return nil
}

// writeCount is write for batch mutations that report how many records changed.
func (db *Database) writeCount(fn func() (int, error)) (int, error) {
	db.State.Mu.Lock()
	defer db.State.Mu.Unlock()

	n, err := fn()
	if err != nil {
		return 0, err
	}
	db.requestSave()
	return n, nil
}
