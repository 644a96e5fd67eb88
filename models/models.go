package models

import (
	"sync"
	"time"
)

// Profile represents a user account. Profile IDs double as the addresses
// referenced by dossier recipient and guardian lists.
type Profile struct {
	ID               string    `json:"id"` // Unique ID (UUID, dashless)
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`              // Unique, used for login
	PasswordHash     string    `json:"password_hash"`      // Store hash, include in JSON persistence.
	CreationDate     time.Time `json:"creation_date"`      // UTC
	LastModifiedDate time.Time `json:"last_modified_date"` // UTC
}

// DossierStatus is the lifecycle state of a dossier. Released and Disabled
// are one-way: no operation ever moves a dossier out of them, and Disabled
// overrides everything else in the encryption decision.
type DossierStatus string

const (
	StatusActive   DossierStatus = "active"
	StatusPaused   DossierStatus = "paused"
	StatusReleased DossierStatus = "released"
	StatusDisabled DossierStatus = "disabled"
)

// Dossier is one registered bundle of encrypted-file references plus the
// recipients allowed to decrypt it once released.
type Dossier struct {
	ID          uint64        `json:"id"` // Sequential within the owner's namespace
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      DossierStatus `json:"status"`

	CheckInIntervalSeconds int64     `json:"check_in_interval_seconds"`
	LastCheckIn            time.Time `json:"last_check_in"` // UTC; set at creation, refreshed by check-in and resume

	FileHashes []string `json:"file_hashes"` // Opaque references (content-addressed hashes), insertion order
	Recipients []string `json:"recipients"`  // Profile IDs; at least 1 while the dossier is editable
	Guardians  []string `json:"guardians"`   // Profile IDs; never contains the owner

	GuardianThreshold int             `json:"guardian_threshold"`
	Confirmations     map[string]bool `json:"confirmations,omitempty"` // guardian ID -> confirmed
	ConfirmationCount int             `json:"confirmation_count"`

	CreationDate time.Time `json:"creation_date"` // UTC
}

// CheckInInterval returns the check-in interval as a duration.
func (d *Dossier) CheckInInterval() time.Duration {
	return time.Duration(d.CheckInIntervalSeconds) * time.Second
}

// OwnerDossiers holds one owner's dossier collection. IDs are sequential
// starting at 1, and records are never deleted (released/disabled are
// terminal states, not removal), so Records[i] always holds ID i+1.
type OwnerDossiers struct {
	NextID  uint64     `json:"next_id"`
	Records []*Dossier `json:"records"`
}

// DossierRef identifies a dossier from outside its owner's namespace.
// Reverse indices keep refs sorted by owner ascending, then ID ascending.
type DossierRef struct {
	Owner string `json:"owner"`
	ID    uint64 `json:"id"`
}

// State holds all application data and manages concurrent access.
type State struct {
	Profiles map[string]Profile        `json:"profiles"` // Keyed by Profile ID (dashless)
	Owners   map[string]*OwnerDossiers `json:"owners"`   // Keyed by owner Profile ID

	// Reverse indices: address -> sorted refs of every dossier where the
	// address holds that role. Maintained in lockstep with the per-dossier
	// Guardians/Recipients lists, inside the same critical section.
	GuardianIndex  map[string][]DossierRef `json:"guardian_index"`
	RecipientIndex map[string][]DossierRef `json:"recipient_index"`

	// Mutex for thread-safe access to the maps
	Mu sync.RWMutex `json:"-"` // Exclude mutex from serialization (Exported)
}
