package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_MarshalsToMillisecondISO(t *testing.T) {
	ts := At(time.Date(2024, 1, 15, 14, 30, 45, 123456789, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15T14:30:45.123Z"`, string(data))
}

func TestTime_ForcesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := At(time.Date(2024, 1, 15, 16, 30, 45, 0, loc))

	assert.Equal(t, "2024-01-15T14:30:45.000Z", ts.ISO())
}

func TestTime_RoundTrip(t *testing.T) {
	orig := At(time.Date(2024, 6, 1, 8, 0, 0, 500*int(time.Millisecond), time.UTC))

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Time
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(orig.Time))
}

func TestTime_UnixMilliRoundTrip(t *testing.T) {
	orig := At(time.Now())
	assert.True(t, FromUnixMilli(orig.UnixMilli()).Equal(orig.Time))
}

func TestEnums_Validity(t *testing.T) {
	assert.True(t, TriageCritical.IsValid())
	assert.False(t, TriageLevel("Severe").IsValid())

	assert.True(t, StatusInTreatment.IsValid())
	assert.False(t, Status("Done").IsValid())

	assert.True(t, ShiftIncoming.IsValid())
	assert.False(t, ShiftType("night").IsValid())

	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("severe").IsValid())
}

func TestNewPatient_Validate(t *testing.T) {
	valid := NewPatient{Name: "Amal", Age: 30, TriageLevel: TriageStable}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		p    NewPatient
	}{
		{"empty name", NewPatient{Age: 30, TriageLevel: TriageStable}},
		{"negative age", NewPatient{Name: "A", Age: -1, TriageLevel: TriageStable}},
		{"age over 150", NewPatient{Name: "A", Age: 151, TriageLevel: TriageStable}},
		{"bad triage", NewPatient{Name: "A", Age: 30, TriageLevel: "Severe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestPatch_Validate(t *testing.T) {
	age := 200
	err := Patch{Age: &age}.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	bad := Status("Done")
	err = Patch{Status: &bad}.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	assert.NoError(t, Patch{}.Validate())
}

func TestPatch_ApplyLeavesIdentityAlone(t *testing.T) {
	created := At(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rec := PatientRecord{
		ID:        "p1",
		Name:      "Amal",
		Timestamp: created,
	}

	name := "Renamed"
	Patch{Name: &name}.Apply(&rec)

	assert.Equal(t, "p1", rec.ID)
	assert.True(t, rec.Timestamp.Equal(created.Time))
	assert.Equal(t, "Renamed", rec.Name)
}

func TestPatch_IsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())
	assert.True(t, Patch{StaffName: "nurse"}.IsZero()) // attribution only, no fields

	n := "x"
	assert.False(t, Patch{Name: &n}.IsZero())
	assert.False(t, Patch{Symptoms: []string{}}.IsZero())
}
