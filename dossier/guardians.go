package dossier

import (
	"dossiervault/models"
)

// Guardian quorum bookkeeping: membership, per-guardian confirmation flags,
// the confirmation counter, and threshold renormalization on membership
// change.

// AddGuardian appends a guardian to an editable dossier and registers the
// reverse-index entry. Adding the first guardian auto-sets the threshold
// to 1, keeping the (guardians empty) <=> (threshold 0) invariant.
func (k *Keeper) AddGuardian(owner string, id uint64, guardian string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	if len(d.Guardians) >= MaxGuardians {
		return newErr(CodeMaxGuardiansReached, KindValidation,
			"dossier cannot hold more than %d guardians", MaxGuardians)
	}
	if guardian == "" {
		return newErr(CodeInvalidGuardianAddress, KindValidation, "guardian address must not be empty")
	}
	if guardian == owner {
		return newErr(CodeOwnerCannotBeGuardian, KindValidation, "owner cannot be their own guardian")
	}
	if containsAddr(d.Guardians, guardian) {
		return newErr(CodeDuplicateGuardian, KindValidation, "guardian %s already present", guardian)
	}
	d.Guardians = append(d.Guardians, guardian)
	if d.GuardianThreshold == 0 {
		d.GuardianThreshold = 1
	}
	insertRef(k.state.GuardianIndex, guardian, models.DossierRef{Owner: owner, ID: id})
	k.rec.Record(Event{
		Type: EventGuardianAdded, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"guardian": guardian, "threshold": d.GuardianThreshold}, At: k.now().UTC(),
	})
	return nil
}

// RemoveGuardian drops a guardian (swap-pop), clears any confirmation they
// held, clamps the threshold to the new guardian count (0 when none remain)
// and removes the reverse-index entry. Removal carries no editable-state
// precondition: an owner may strip guardians from a paused or released
// dossier.
func (k *Keeper) RemoveGuardian(owner string, id uint64, guardian string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if !containsAddr(d.Guardians, guardian) {
		return newErr(CodeGuardianNotFound, KindValidation, "guardian %s not present", guardian)
	}
	if d.Confirmations[guardian] {
		delete(d.Confirmations, guardian)
		d.ConfirmationCount--
	}
	d.Guardians, _ = removeAddr(d.Guardians, guardian)
	if d.GuardianThreshold > len(d.Guardians) {
		d.GuardianThreshold = len(d.Guardians)
	}
	if len(d.Guardians) == 0 {
		d.GuardianThreshold = 0
	}
	removeRef(k.state.GuardianIndex, guardian, owner, id)
	k.rec.Record(Event{
		Type: EventGuardianRemoved, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"guardian": guardian, "threshold": d.GuardianThreshold}, At: k.now().UTC(),
	})
	return nil
}

// UpdateThreshold sets the confirmation threshold of an editable dossier.
func (k *Keeper) UpdateThreshold(owner string, id uint64, threshold int) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if err := requireEditable(d); err != nil {
		return err
	}
	if len(d.Guardians) > 0 {
		if threshold <= 0 || threshold > len(d.Guardians) {
			return newErr(CodeInvalidThreshold, KindValidation,
				"threshold must be between 1 and %d", len(d.Guardians))
		}
	} else if threshold != 0 {
		return newErr(CodeInvalidThreshold, KindValidation,
			"threshold must be 0 when no guardians are set")
	}
	d.GuardianThreshold = threshold
	k.rec.Record(Event{
		Type: EventThresholdUpdated, Actor: owner, Owner: owner, DossierID: id,
		Detail: map[string]any{"threshold": threshold}, At: k.now().UTC(),
	})
	return nil
}

// ConfirmRelease records the caller's release confirmation. Confirmation is
// allowed in any non-disabled state, including before the owner ever
// releases: pre-confirmations count toward the eventual threshold.
func (k *Keeper) ConfirmRelease(owner string, id uint64, caller string) error {
	d, err := k.get(owner, id)
	if err != nil {
		return err
	}
	if d.Status == models.StatusDisabled {
		return errDisabled()
	}
	if !containsAddr(d.Guardians, caller) {
		return newErr(CodeNotAGuardian, KindAuthorization, "caller is not a guardian of this dossier")
	}
	if d.Confirmations[caller] {
		return newErr(CodeAlreadyConfirmed, KindStateConflict, "caller has already confirmed release")
	}
	if d.Confirmations == nil {
		d.Confirmations = make(map[string]bool)
	}
	d.Confirmations[caller] = true
	d.ConfirmationCount++
	k.rec.Record(Event{
		Type: EventReleaseConfirmed, Actor: caller, Owner: owner, DossierID: id,
		Detail: map[string]any{"confirmations": d.ConfirmationCount, "threshold": d.GuardianThreshold},
		At:     k.now().UTC(),
	})
	return nil
}

// RevokeConfirmation withdraws the caller's confirmation. Blocked once the
// dossier is released: after release, confirmations are frozen.
func (k *Keeper) RevokeConfirmation(owner string, id uint64, caller string) error {
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
	if !containsAddr(d.Guardians, caller) {
		return newErr(CodeNotAGuardian, KindAuthorization, "caller is not a guardian of this dossier")
	}
	if !d.Confirmations[caller] {
		return newErr(CodeNotConfirmed, KindStateConflict, "caller has not confirmed release")
	}
	delete(d.Confirmations, caller)
	d.ConfirmationCount--
	k.rec.Record(Event{
		Type: EventConfirmationRevoked, Actor: caller, Owner: owner, DossierID: id,
		Detail: map[string]any{"confirmations": d.ConfirmationCount, "threshold": d.GuardianThreshold},
		At:     k.now().UTC(),
	})
	return nil
}

// IsGuardian reports whether addr is currently a guardian of (owner, id).
func (k *Keeper) IsGuardian(owner string, id uint64, addr string) (bool, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return false, err
	}
	return containsAddr(d.Guardians, addr), nil
}

// HasConfirmed reports whether addr has an outstanding confirmation.
func (k *Keeper) HasConfirmed(owner string, id uint64, addr string) (bool, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return false, err
	}
	return d.Confirmations[addr], nil
}

// ThresholdMet reports whether the quorum is satisfied. Trivially true when
// the dossier has no guardians.
func (k *Keeper) ThresholdMet(owner string, id uint64) (bool, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return false, err
	}
	return !k.quorumPending(d), nil
}

// ConfirmationCount returns the number of outstanding confirmations.
func (k *Keeper) ConfirmationCount(owner string, id uint64) (int, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return 0, err
	}
	return d.ConfirmationCount, nil
}

// Guardians returns a copy of the guardian list.
func (k *Keeper) Guardians(owner string, id uint64) ([]string, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), d.Guardians...), nil
}

// Threshold returns the current confirmation threshold.
func (k *Keeper) Threshold(owner string, id uint64) (int, error) {
	d, err := k.get(owner, id)
	if err != nil {
		return 0, err
	}
	return d.GuardianThreshold, nil
}
