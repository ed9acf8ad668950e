package store

import (
	"context"
	"testing"
	"time"

	"github.com/triagedesk/triagedesk/internal/record"
)

func TestGetAll_NewestCreatedFirst(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		id, err := s.Create(ctx, waiting(name))
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		ids = append(ids, id)
		clock.Advance(time.Minute)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAll() = %d records, want 3", len(all))
	}
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("order = %q,%q,%q, want newest first", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestGetAll_EmptyStore(t *testing.T) {
	s, _ := newTestStore(t)

	all, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if all == nil {
		t.Error("GetAll() returned nil, want empty slice")
	}
	if len(all) != 0 {
		t.Errorf("GetAll() = %d records", len(all))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetByID(context.Background(), "no-such-id")
	if !IsNotFound(err) {
		t.Errorf("GetByID() error = %v, want not-found", err)
	}
}

func TestFindByTriageLevel(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	mk := func(name string, level record.TriageLevel) string {
		id, err := s.Create(ctx, record.NewPatient{Name: name, Age: 30, TriageLevel: level})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		clock.Advance(time.Minute)
		return id
	}
	mk("stable one", record.TriageStable)
	c1 := mk("critical one", record.TriageCritical)
	mk("urgent one", record.TriageUrgent)
	c2 := mk("critical two", record.TriageCritical)

	got, err := s.FindByTriageLevel(ctx, record.TriageCritical)
	if err != nil {
		t.Fatalf("FindByTriageLevel() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FindByTriageLevel() = %d records, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != c2 || got[1].ID != c1 {
		t.Errorf("order = %q,%q", got[0].Name, got[1].Name)
	}
}

func TestFindByStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, _ := s.Create(ctx, waiting("Amal"))
	s.Create(ctx, waiting("Basma"))

	st := record.StatusInTreatment
	if err := s.Update(ctx, id, record.Patch{Status: &st}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	inTreatment, err := s.FindByStatus(ctx, record.StatusInTreatment)
	if err != nil {
		t.Fatalf("FindByStatus() failed: %v", err)
	}
	if len(inTreatment) != 1 || inTreatment[0].ID != id {
		t.Errorf("FindByStatus() = %+v", inTreatment)
	}

	waitingRecs, err := s.FindByStatus(ctx, record.StatusWaiting)
	if err != nil {
		t.Fatalf("FindByStatus() failed: %v", err)
	}
	if len(waitingRecs) != 1 {
		t.Errorf("FindByStatus(Waiting) = %d records, want 1", len(waitingRecs))
	}
}

func TestFindByField(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, record.NewPatient{Name: "Amal", Age: 30, TriageLevel: record.TriageCritical})

	got, err := s.FindByField(ctx, "triageLevel", "Critical")
	if err != nil {
		t.Fatalf("FindByField() failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("FindByField() = %d records, want 1", len(got))
	}

	if _, err := s.FindByField(ctx, "age", "30"); !IsPersistence(err) {
		t.Errorf("FindByField(age) error = %v, want persistence kind", err)
	}
}

func TestSearch_MatchesNameConditionNotes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	feverName, _ := s.Create(ctx, record.NewPatient{Name: "Fevzi Fever", Age: 20, TriageLevel: record.TriageStable})
	feverCond, _ := s.Create(ctx, record.NewPatient{Name: "Basma", Age: 25, Condition: "High FEVER since Tuesday", TriageLevel: record.TriageUrgent})
	plain, _ := s.Create(ctx, waiting("Chris"))
	notes := "feverish overnight"
	if err := s.Update(ctx, plain, record.Patch{Notes: &notes}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	s.Create(ctx, record.NewPatient{Name: "Dara", Age: 40, Condition: "sprained ankle", TriageLevel: record.TriageStable})

	got, err := s.Search(ctx, "fever")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Search() = %d records, want 3", len(got))
	}
	found := map[string]bool{}
	for _, rec := range got {
		found[rec.ID] = true
	}
	for _, id := range []string{feverName, feverCond, plain} {
		if !found[id] {
			t.Errorf("expected match %s missing", id)
		}
	}
}

func TestSearch_DoesNotSearchFormFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, record.NewPatient{
		Name:          "Amal",
		Age:           30,
		MainComplaint: "fever and chills",
		TriageLevel:   record.TriageStable,
	})

	got, err := s.Search(ctx, "fever")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search() matched hospital-form fields: %d records", len(got))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Create(ctx, waiting("Amal"))

	got, err := s.Search(ctx, "zebra")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Search() = %v, want empty slice", got)
	}
}
