package dossier

import (
	"fmt"
	"testing"
	"time"

	"dossiervault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupKeeper builds a keeper over fresh state with a controllable clock.
// Advance the returned *time.Time to move the keeper's notion of "now".
func setupKeeper(t *testing.T) (*Keeper, *MemoryRecorder, *time.Time) {
	t.Helper()
	rec := &MemoryRecorder{}
	k := NewKeeper(&models.State{}, rec)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	k.SetNowFunc(func() time.Time { return clock })
	return k, rec, &clock
}

// validInput returns a minimal valid creation input (1 recipient, 1 file, no guardians).
func validInput() CreateInput {
	return CreateInput{
		Name:                   "estate",
		Description:            "family papers",
		CheckInIntervalSeconds: 3600,
		Recipients:             []string{"recipient-1"},
		FileHashes:             []string{"QmHashOne"},
	}
}

func mustCreate(t *testing.T, k *Keeper, owner string, in CreateInput) uint64 {
	t.Helper()
	id, err := k.Create(owner, in)
	require.NoError(t, err, "Create failed during setup")
	return id
}

// checkInvariants asserts the numeric guardian invariants for one dossier.
func checkInvariants(t *testing.T, k *Keeper, owner string, id uint64) {
	t.Helper()
	d, err := k.Get(owner, id)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.ConfirmationCount, 0, "confirmation count must not be negative")
	assert.LessOrEqual(t, d.ConfirmationCount, len(d.Guardians), "confirmation count must not exceed guardian count")
	confirmed := 0
	for _, v := range d.Confirmations {
		if v {
			confirmed++
		}
	}
	assert.Equal(t, confirmed, d.ConfirmationCount, "counter must equal the number of set confirmation flags")
	if len(d.Guardians) == 0 {
		assert.Zero(t, d.GuardianThreshold, "threshold must be 0 with no guardians")
	} else {
		assert.GreaterOrEqual(t, d.GuardianThreshold, 1, "threshold must be at least 1 with guardians")
		assert.LessOrEqual(t, d.GuardianThreshold, len(d.Guardians), "threshold must not exceed guardian count")
	}
}

// --- Create ---

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	k, rec, _ := setupKeeper(t)

	id1 := mustCreate(t, k, "owner-a", validInput())
	id2 := mustCreate(t, k, "owner-a", validInput())
	id3 := mustCreate(t, k, "owner-b", validInput())

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
	assert.Equal(t, uint64(1), id3, "ids are sequential per owner namespace")
	assert.Equal(t, []uint64{1, 2}, k.DossierIDs("owner-a"))
	assert.Len(t, rec.Events(), 3, "each creation records one event")
}

func TestCreate_InitialRecordState(t *testing.T) {
	k, _, clock := setupKeeper(t)
	in := validInput()
	in.Guardians = []string{"guard-1", "guard-2"}
	in.GuardianThreshold = 2

	id := mustCreate(t, k, "owner-a", in)

	d, err := k.Get("owner-a", id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, d.Status)
	assert.Equal(t, *clock, d.LastCheckIn, "lastCheckIn is set to creation time")
	assert.Zero(t, d.ConfirmationCount)
	assert.Equal(t, 2, d.GuardianThreshold)
	checkInvariants(t, k, "owner-a", id)
}

func TestCreate_IntervalBounds(t *testing.T) {
	k, _, _ := setupKeeper(t)

	cases := []struct {
		name    string
		seconds int64
		wantErr bool
	}{
		{"below minimum", 3599, true},
		{"exactly minimum", 3600, false},
		{"exactly maximum", 30 * 24 * 3600, false},
		{"above maximum", 30*24*3600 + 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.CheckInIntervalSeconds = tc.seconds
			_, err := k.Create("owner-a", in)
			if tc.wantErr {
				assert.True(t, HasCode(err, CodeInvalidInterval), "expected InvalidInterval, got %v", err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	k, rec, _ := setupKeeper(t)

	cases := []struct {
		name   string
		mutate func(*CreateInput)
		code   ErrorCode
	}{
		{"no recipients", func(in *CreateInput) { in.Recipients = nil }, CodeInvalidRecipients},
		{"too many recipients", func(in *CreateInput) { in.Recipients = manyAddrs("r", MaxRecipients+1) }, CodeInvalidRecipients},
		{"no files", func(in *CreateInput) { in.FileHashes = nil }, CodeInvalidFiles},
		{"too many files", func(in *CreateInput) { in.FileHashes = manyAddrs("h", MaxFileHashes+1) }, CodeInvalidFiles},
		{"empty file hash", func(in *CreateInput) { in.FileHashes = []string{"ok", ""} }, CodeEmptyHash},
		{"too many guardians", func(in *CreateInput) {
			in.Guardians = manyAddrs("g", MaxGuardians+1)
			in.GuardianThreshold = 1
		}, CodeTooManyGuardians},
		{"zero threshold with guardians", func(in *CreateInput) { in.Guardians = []string{"g1"} }, CodeInvalidThreshold},
		{"threshold above guardian count", func(in *CreateInput) {
			in.Guardians = []string{"g1"}
			in.GuardianThreshold = 2
		}, CodeInvalidThreshold},
		{"nonzero threshold without guardians", func(in *CreateInput) { in.GuardianThreshold = 1 }, CodeInvalidThreshold},
		{"empty guardian address", func(in *CreateInput) {
			in.Guardians = []string{""}
			in.GuardianThreshold = 1
		}, CodeInvalidGuardianAddress},
		{"owner as guardian", func(in *CreateInput) {
			in.Guardians = []string{"owner-a"}
			in.GuardianThreshold = 1
		}, CodeInvalidGuardianAddress},
		{"duplicate guardian", func(in *CreateInput) {
			in.Guardians = []string{"g1", "g1"}
			in.GuardianThreshold = 1
		}, CodeDuplicateGuardian},
		{"duplicate recipient", func(in *CreateInput) { in.Recipients = []string{"r1", "r1"} }, CodeDuplicateRecipient},
		{"empty recipient", func(in *CreateInput) { in.Recipients = []string{""} }, CodeInvalidAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := k.Create("owner-a", in)
			require.Error(t, err)
			assert.True(t, HasCode(err, tc.code), "expected %s, got %v", tc.code, err)
		})
	}

	// No failed creation may leave partial state behind.
	assert.False(t, k.OwnerExists("owner-a"), "failed creations must not register the owner")
	assert.Empty(t, rec.Events(), "failed creations must not record events")
	assert.False(t, k.IsRecipientOfAny("r1"))
	assert.False(t, k.IsGuardianOfAny("g1"))
}

func TestCreate_CapacityExceeded(t *testing.T) {
	k, _, _ := setupKeeper(t)
	for i := 0; i < MaxDossiersPerOwner; i++ {
		mustCreate(t, k, "owner-a", validInput())
	}
	_, err := k.Create("owner-a", validInput())
	assert.True(t, HasCode(err, CodeCapacityExceeded), "expected CapacityExceeded, got %v", err)

	// Another owner is unaffected by the first owner's capacity.
	_, err = k.Create("owner-b", validInput())
	assert.NoError(t, err)
}

// --- Get / existence ---

func TestGet_NotFound(t *testing.T) {
	k, _, _ := setupKeeper(t)
	mustCreate(t, k, "owner-a", validInput())

	_, err := k.Get("owner-a", 2)
	assert.True(t, IsNotFound(err), "id past the sequence is not found")
	_, err = k.Get("owner-a", 0)
	assert.True(t, IsNotFound(err), "id 0 is never assigned")
	_, err = k.Get("owner-b", 1)
	assert.True(t, IsNotFound(err), "another owner's namespace is empty")
}

func TestGet_ReturnsCopy(t *testing.T) {
	k, _, _ := setupKeeper(t)
	in := validInput()
	in.Guardians = []string{"g1"}
	in.GuardianThreshold = 1
	id := mustCreate(t, k, "owner-a", in)

	d, err := k.Get("owner-a", id)
	require.NoError(t, err)
	d.Recipients[0] = "tampered"
	d.Guardians[0] = "tampered"
	d.Confirmations["g1"] = true

	fresh, err := k.Get("owner-a", id)
	require.NoError(t, err)
	assert.Equal(t, "recipient-1", fresh.Recipients[0], "mutating a returned copy must not affect the ledger")
	assert.Equal(t, "g1", fresh.Guardians[0])
	assert.False(t, fresh.Confirmations["g1"])
}

func TestOwnerExists(t *testing.T) {
	k, _, _ := setupKeeper(t)
	assert.False(t, k.OwnerExists("owner-a"))
	mustCreate(t, k, "owner-a", validInput())
	assert.True(t, k.OwnerExists("owner-a"))
}

func manyAddrs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}
