package dossier

import (
	"time"

	"dossiervault/models"
)

// Lifecycle transitions and the encryption decision.
//
// Guard precedence everywhere: permanently-disabled first, then released,
// then the active/paused requirement of the specific operation.

func errDisabled() *Error {
	return newErr(CodePermanentlyDisabled, KindStateConflict, "dossier is permanently disabled")
}

func errReleased() *Error {
	return newErr(CodeAlreadyReleased, KindStateConflict, "dossier has already been released")
}

// requireEditable rejects any edit unless the dossier is active.
func requireEditable(d *models.Dossier) error {
	switch d.Status {
	case models.StatusDisabled:
		return errDisabled()
	case models.StatusReleased:
		return errReleased()
	case models.StatusPaused:
		return newErr(CodeMustBeActiveToEdit, KindStateConflict, "dossier must be active to edit")
	}
	return nil
}

// CheckIn refreshes the liveness timer of an active dossier.
func (k *Keeper) CheckIn(owner string, id uint64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	switch d.Status {
	case models.StatusDisabled:
		return errDisabled()
	case models.StatusReleased:
		return errReleased()
	case models.StatusPaused:
		return newErr(CodePaused, KindStateConflict, "dossier is paused")
	}
	now := k.now().UTC()
	d.LastCheckIn = now
	k.rec.Record(Event{Type: EventCheckedIn, Actor: owner, Owner: owner, DossierID: id, At: now})
	return nil
}

// CheckInAll refreshes every active dossier of the owner, silently skipping
// paused, released and disabled ones. It fails only when the owner has no
// dossiers at all; having dossiers but none active is still a success.
func (k *Keeper) CheckInAll(owner string) (int, error) {
	set := k.state.Owners[owner]
	if set == nil || len(set.Records) == 0 {
		return 0, newErr(CodeNoDossiers, KindNotFound, "owner %s has no dossiers", owner)
	}
	now := k.now().UTC()
	updated := 0
	for _, d := range set.Records {
		if d.Status != models.StatusActive || len(d.Recipients) == 0 {
			continue
		}
		d.LastCheckIn = now
		updated++
	}
	k.rec.Record(Event{
		Type: EventCheckedInAll, Actor: owner, Owner: owner,
		Detail: map[string]any{"updated": updated}, At: now,
	})
	return updated, nil
}

// Pause suspends the liveness timer. A paused dossier never trips the
// missed-check-in clause of the encryption decision.
func (k *Keeper) Pause(owner string, id uint64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	switch d.Status {
	case models.StatusDisabled:
		return errDisabled()
	case models.StatusReleased:
		return errReleased()
	case models.StatusPaused:
		return newErr(CodeAlreadyPaused, KindStateConflict, "dossier is already paused")
	}
	d.Status = models.StatusPaused
	k.rec.Record(Event{Type: EventPaused, Actor: owner, Owner: owner, DossierID: id, At: k.now().UTC()})
	return nil
}

// Resume reactivates a paused dossier and refreshes its check-in, so the
// timer restarts from the resume instant rather than the pre-pause one.
func (k *Keeper) Resume(owner string, id uint64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	switch d.Status {
	case models.StatusDisabled:
		return errDisabled()
	case models.StatusReleased:
		return errReleased()
	case models.StatusActive:
		return newErr(CodeAlreadyActive, KindStateConflict, "dossier is already active")
	}
	now := k.now().UTC()
	d.Status = models.StatusActive
	d.LastCheckIn = now
	k.rec.Record(Event{Type: EventResumed, Actor: owner, Owner: owner, DossierID: id, At: now})
	return nil
}

// PauseAll pauses every active dossier of the owner. It fails with
// NothingToDo when no dossier was eligible.
func (k *Keeper) PauseAll(owner string) (int, error) {
	set := k.state.Owners[owner]
	affected := 0
	if set != nil {
		for _, d := range set.Records {
			if d.Status != models.StatusActive || len(d.Recipients) == 0 {
				continue
			}
			d.Status = models.StatusPaused
			affected++
		}
	}
	if affected == 0 {
		return 0, newErr(CodeNothingToDo, KindStateConflict, "no active dossiers to pause")
	}
	k.rec.Record(Event{
		Type: EventPausedAll, Actor: owner, Owner: owner,
		Detail: map[string]any{"affected": affected}, At: k.now().UTC(),
	})
	return affected, nil
}

// ResumeAll resumes every paused dossier of the owner, refreshing each
// check-in. It fails with NothingToDo when no dossier was eligible.
func (k *Keeper) ResumeAll(owner string) (int, error) {
	set := k.state.Owners[owner]
	now := k.now().UTC()
	affected := 0
	if set != nil {
		for _, d := range set.Records {
			if d.Status != models.StatusPaused || len(d.Recipients) == 0 {
				continue
			}
			d.Status = models.StatusActive
			d.LastCheckIn = now
			affected++
		}
	}
	if affected == 0 {
		return 0, newErr(CodeNothingToDo, KindStateConflict, "no paused dossiers to resume")
	}
	k.rec.Record(Event{
		Type: EventResumedAll, Actor: owner, Owner: owner,
		Detail: map[string]any{"affected": affected}, At: now,
	})
	return affected, nil
}

// Release flips the dossier to released, from either active or paused.
// Release alone does not guarantee decryptability: when guardians exist,
// ShouldStayEncrypted keeps gating on the confirmation threshold.
func (k *Keeper) Release(owner string, id uint64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	switch d.Status {
	case models.StatusDisabled:
		return errDisabled()
	case models.StatusReleased:
		return errReleased()
	}
	d.Status = models.StatusReleased
	k.rec.Record(Event{Type: EventReleased, Actor: owner, Owner: owner, DossierID: id, At: k.now().UTC()})
	return nil
}

// PermanentlyDisable moves the dossier to its terminal disabled state from
// any other state, including released. Irreversible; the dossier stays
// encrypted forever regardless of time or confirmations.
func (k *Keeper) PermanentlyDisable(owner string, id uint64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if d.Status == models.StatusDisabled {
		return newErr(CodeAlreadyDisabled, KindStateConflict, "dossier is already permanently disabled")
	}
	d.Status = models.StatusDisabled
	k.rec.Record(Event{Type: EventDisabled, Actor: owner, Owner: owner, DossierID: id, At: k.now().UTC()})
	return nil
}

// UpdateInterval changes the check-in interval of an active dossier.
func (k *Keeper) UpdateInterval(owner string, id uint64, seconds int64) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	interval := time.Duration(seconds) * time.Second
	if interval < MinCheckInInterval || interval > MaxCheckInInterval {
		return newErr(CodeInvalidInterval, KindValidation,
			"check-in interval must be between %s and %s", MinCheckInInterval, MaxCheckInInterval)
	}
	d.CheckInIntervalSeconds = seconds
	k.rec.Record(Event{
		Type: EventIntervalUpdated, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"interval_seconds": seconds}, At: k.now().UTC(),
	})
	return nil
}

// AddFileHash appends one opaque file reference.
func (k *Keeper) AddFileHash(owner string, id uint64, hash string) error {
	return k.AddFileHashes(owner, id, []string{hash})
}

// AddFileHashes appends several file references in order, all-or-nothing.
func (k *Keeper) AddFileHashes(owner string, id uint64, hashes []string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	if len(hashes) == 0 {
		return newErr(CodeInvalidFiles, KindValidation, "at least one file hash is required")
	}
	for _, h := range hashes {
		if h == "" {
			return newErr(CodeEmptyHash, KindValidation, "file hash must not be empty")
		}
	}
	if len(d.FileHashes)+len(hashes) > MaxFileHashes {
		return newErr(CodeMaxFilesReached, KindValidation,
			"dossier cannot hold more than %d file hashes", MaxFileHashes)
	}
	d.FileHashes = append(d.FileHashes, hashes...)
	k.rec.Record(Event{
		Type: EventFileHashAdded, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"added": len(hashes), "total": len(d.FileHashes)}, At: k.now().UTC(),
	})
	return nil
}

// AddRecipient adds an address to the recipient list and registers the
// reverse-index entry in the same operation.
func (k *Keeper) AddRecipient(owner string, id uint64, addr string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	if addr == "" {
		return newErr(CodeInvalidAddress, KindValidation, "recipient address must not be empty")
	}
	if len(d.Recipients) >= MaxRecipients {
		return newErr(CodeMaxRecipientsReached, KindValidation,
			"dossier cannot hold more than %d recipients", MaxRecipients)
	}
	if containsAddr(d.Recipients, addr) {
		return newErr(CodeDuplicateRecipient, KindValidation, "recipient %s already present", addr)
	}
	d.Recipients = append(d.Recipients, addr)
	insertRef(k.state.RecipientIndex, addr, models.DossierRef{Owner: owner, ID: id})
	k.rec.Record(Event{
		Type: EventRecipientAdded, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"recipient": addr}, At: k.now().UTC(),
	})
	return nil
}

// RemoveRecipient removes an address from the recipient list (swap-pop) and
// drops the reverse-index entry. The last recipient can never be removed:
// recipient count is the record's existence sentinel.
func (k *Keeper) RemoveRecipient(owner string, id uint64, addr string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	if !containsAddr(d.Recipients, addr) {
		return newErr(CodeRecipientNotFound, KindValidation, "recipient %s not present", addr)
	}
	if len(d.Recipients) == 1 {
		return newErr(CodeCannotRemoveLast, KindValidation, "cannot remove the last recipient")
	}
	d.Recipients, _ = removeAddr(d.Recipients, addr)
	removeRef(k.state.RecipientIndex, addr, owner, id)
	k.rec.Record(Event{
		Type: EventRecipientRemoved, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"recipient": addr}, At: k.now().UTC(),
	})
	return nil
}

// ShouldStayEncrypted is the point-in-time decryption decision for
// (owner, id). Pure: no side effects, safe to call arbitrarily often.
//
//  1. Permanently disabled: encrypted forever.
//  2. Released: gated only by the guardian quorum, if any.
//  3. Paused: encrypted while the timer is suspended.
//  4. Check-in still current (elapsed <= interval + grace): encrypted.
//  5. Check-in missed: gated by the guardian quorum, or released outright
//     when there are no guardians.
func (k *Keeper) ShouldStayEncrypted(owner string, id uint64) (bool, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return false, err
	}
	switch d.Status {
	case models.StatusDisabled:
		return true, nil
	case models.StatusReleased:
		return k.quorumPending(d), nil
	case models.StatusPaused:
		return true, nil
	}
	elapsed := k.now().UTC().Sub(d.LastCheckIn)
	if elapsed <= d.CheckInInterval()+GracePeriod {
		return true, nil
	}
	return k.quorumPending(d), nil
}

// quorumPending reports whether guardian confirmations still block release.
// Trivially false with no guardians.
func (k *Keeper) quorumPending(d *models.Dossier) bool {
	if len(d.Guardians) == 0 {
		return false
	}
	return d.ConfirmationCount < d.GuardianThreshold
}
