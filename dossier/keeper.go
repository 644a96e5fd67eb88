package dossier

import (
	"time"

	"dossiervault/models"
)

// Capacity and timing bounds for every dossier.
const (
	MinCheckInInterval = time.Hour
	MaxCheckInInterval = 30 * 24 * time.Hour

	// GracePeriod is the extra time allowed past the nominal interval
	// before a missed check-in is declared.
	GracePeriod = time.Hour

	MaxDossiersPerOwner = 50
	MaxFileHashes       = 100
	MaxRecipients       = 20
	MaxGuardians        = 20
)

// Keeper owns the dossier ledger: every record, both reverse indices, and
// all state transitions. It performs no locking of its own; callers must
// serialize mutating operations against the shared state (the db layer wraps
// every call in the state mutex), so each operation executes as one
// indivisible read-mutate-write unit.
type Keeper struct {
	state *models.State
	rec   Recorder
	now   func() time.Time
}

// NewKeeper creates a keeper over the given state, initializing any nil maps.
func NewKeeper(state *models.State, rec Recorder) *Keeper {
	if state.Owners == nil {
		state.Owners = make(map[string]*models.OwnerDossiers)
	}
	if state.GuardianIndex == nil {
		state.GuardianIndex = make(map[string][]models.DossierRef)
	}
	if state.RecipientIndex == nil {
		state.RecipientIndex = make(map[string][]models.DossierRef)
	}
	if rec == nil {
		rec = LogRecorder{}
	}
	return &Keeper{state: state, rec: rec, now: time.Now}
}

// SetNowFunc overrides the keeper's time source. Each operation reads the
// source exactly once, so a test clock yields deterministic transitions.
func (k *Keeper) SetNowFunc(now func() time.Time) {
	k.now = now
}

// CreateInput carries everything needed to register a dossier.
type CreateInput struct {
	Name                   string
	Description            string
	CheckInIntervalSeconds int64
	Recipients             []string
	FileHashes             []string
	Guardians              []string
	GuardianThreshold      int
}

// Create validates the input, assigns the owner's next sequential id, stores
// the record as active with a fresh check-in, and registers reverse-index
// entries for every recipient and guardian. Nothing is mutated on any
// validation failure.
func (k *Keeper) Create(owner string, in CreateInput) (uint64, error) {
	interval := time.Duration(in.CheckInIntervalSeconds) * time.Second
	if interval < MinCheckInInterval || interval > MaxCheckInInterval {
		return 0, newErr(CodeInvalidInterval, KindValidation,
			"check-in interval must be between %s and %s", MinCheckInInterval, MaxCheckInInterval)
	}

	set := k.state.Owners[owner]
	if set != nil && len(set.Records) >= MaxDossiersPerOwner {
		return 0, newErr(CodeCapacityExceeded, KindValidation,
			"owner already has the maximum of %d dossiers", MaxDossiersPerOwner)
	}

	if len(in.Recipients) == 0 || len(in.Recipients) > MaxRecipients {
		return 0, newErr(CodeInvalidRecipients, KindValidation,
			"recipient count must be between 1 and %d", MaxRecipients)
	}
	if len(in.FileHashes) == 0 || len(in.FileHashes) > MaxFileHashes {
		return 0, newErr(CodeInvalidFiles, KindValidation,
			"file hash count must be between 1 and %d", MaxFileHashes)
	}
	if len(in.Guardians) > MaxGuardians {
		return 0, newErr(CodeTooManyGuardians, KindValidation,
			"guardian count must not exceed %d", MaxGuardians)
	}

	if len(in.Guardians) > 0 {
		if in.GuardianThreshold <= 0 || in.GuardianThreshold > len(in.Guardians) {
			return 0, newErr(CodeInvalidThreshold, KindValidation,
				"threshold must be between 1 and %d", len(in.Guardians))
		}
		for i, g := range in.Guardians {
			if g == "" {
				return 0, newErr(CodeInvalidGuardianAddress, KindValidation, "guardian address must not be empty")
			}
			if g == owner {
				return 0, newErr(CodeInvalidGuardianAddress, KindValidation, "owner cannot be their own guardian")
			}
			for j := 0; j < i; j++ {
				if in.Guardians[j] == g {
					return 0, newErr(CodeDuplicateGuardian, KindValidation, "guardian %s listed twice", g)
				}
			}
		}
	} else if in.GuardianThreshold != 0 {
		return 0, newErr(CodeInvalidThreshold, KindValidation,
			"threshold must be 0 when no guardians are set")
	}

	for i, r := range in.Recipients {
		if r == "" {
			return 0, newErr(CodeInvalidAddress, KindValidation, "recipient address must not be empty")
		}
		for j := 0; j < i; j++ {
			if in.Recipients[j] == r {
				return 0, newErr(CodeDuplicateRecipient, KindValidation, "recipient %s listed twice", r)
			}
		}
	}
	for _, h := range in.FileHashes {
		if h == "" {
			return 0, newErr(CodeEmptyHash, KindValidation, "file hash must not be empty")
		}
	}

	if set == nil {
		set = &models.OwnerDossiers{NextID: 1}
		k.state.Owners[owner] = set
	}

	now := k.now().UTC()
	d := &models.Dossier{
		ID:                     set.NextID,
		Name:                   in.Name,
		Description:            in.Description,
		Status:                 models.StatusActive,
		CheckInIntervalSeconds: in.CheckInIntervalSeconds,
		LastCheckIn:            now,
		FileHashes:             append([]string(nil), in.FileHashes...),
		Recipients:             append([]string(nil), in.Recipients...),
		Guardians:              append([]string(nil), in.Guardians...),
		GuardianThreshold:      in.GuardianThreshold,
		Confirmations:          make(map[string]bool),
		CreationDate:           now,
	}
	set.NextID++
	set.Records = append(set.Records, d)

	ref := models.DossierRef{Owner: owner, ID: d.ID}
	for _, r := range d.Recipients {
		insertRef(k.state.RecipientIndex, r, ref)
	}
	for _, g := range d.Guardians {
		insertRef(k.state.GuardianIndex, g, ref)
	}

	k.rec.Record(Event{
		Type: EventDossierCreated, Actor: owner, Owner: owner, DossierID: d.ID,
		Detail: map[string]any{"name": d.Name, "guardians": len(d.Guardians), "recipients": len(d.Recipients)},
		At:     now,
	})
	return d.ID, nil
}

// get returns the live record for (owner, id). A slot whose recipient list is
// empty counts as nonexistent; recipient count is the existence sentinel, so
// an uninitialized slot and a never-created one are indistinguishable.
func (k *Keeper) get(owner string, id uint64) (*models.Dossier, error) {
	set := k.state.Owners[owner]
	if set == nil || id == 0 || id >= set.NextID {
		return nil, ErrNotFound(owner, id)
	}
	d := set.Records[id-1]
	if len(d.Recipients) == 0 {
		return nil, ErrNotFound(owner, id)
	}
	return d, nil
}

// Get returns a copy of the dossier at (owner, id).
func (k *Keeper) Get(owner string, id uint64) (models.Dossier, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return models.Dossier{}, err
	}
	return copyDossier(d), nil
}

// DossierIDs returns every dossier id registered under owner, ascending.
func (k *Keeper) DossierIDs(owner string) []uint64 {
	set := k.state.Owners[owner]
	if set == nil {
		return nil
	}
	ids := make([]uint64, 0, len(set.Records))
	for _, d := range set.Records {
		ids = append(ids, d.ID)
	}
	return ids
}

// OwnerExists reports whether owner has registered at least one dossier.
func (k *Keeper) OwnerExists(owner string) bool {
	set := k.state.Owners[owner]
	return set != nil && len(set.Records) > 0
}

// DossiersWhereGuardian returns every (owner, id) where addr is currently a
// guardian, sorted by owner then id.
func (k *Keeper) DossiersWhereGuardian(addr string) []models.DossierRef {
	return queryRefs(k.state.GuardianIndex, addr)
}

// DossiersWhereRecipient returns every (owner, id) where addr is currently a
// recipient, sorted by owner then id.
func (k *Keeper) DossiersWhereRecipient(addr string) []models.DossierRef {
	return queryRefs(k.state.RecipientIndex, addr)
}

// IsGuardianOfAny reports whether addr guards at least one dossier.
func (k *Keeper) IsGuardianOfAny(addr string) bool {
	return len(k.state.GuardianIndex[addr]) > 0
}

// IsRecipientOfAny reports whether addr receives at least one dossier.
func (k *Keeper) IsRecipientOfAny(addr string) bool {
	return len(k.state.RecipientIndex[addr]) > 0
}

func copyDossier(d *models.Dossier) models.Dossier {
	out := *d
	out.FileHashes = append([]string(nil), d.FileHashes...)
	out.Recipients = append([]string(nil), d.Recipients...)
	out.Guardians = append([]string(nil), d.Guardians...)
	out.Confirmations = make(map[string]bool, len(d.Confirmations))
	for g, v := range d.Confirmations {
		out.Confirmations[g] = v
	}
	return out
}

// containsAddr does a linear membership scan; list sizes are bounded small,
// so this stays O(n) on purpose.
func containsAddr(list []string, addr string) bool {
	for _, a := range list {
		if a == addr {
			return true
		}
	}
	return false
}

// removeAddr deletes addr from list with swap-with-last-and-pop semantics:
// order among the remaining entries is not preserved. This matches the
// externally visible removal behavior of the recipient/guardian lists.
func removeAddr(list []string, addr string) ([]string, bool) {
	for i, a := range list {
		if a == addr {
			last := len(list) - 1
			list[i] = list[last]
			return list[:last], true
		}
	}
	return list, false
}
