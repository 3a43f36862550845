package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/models"
)

func strPtr(v string) *string { return &v }

func baseTrainer() models.Trainer {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Trainer{
		ID:              "2c9c1c38-5c8e-4a8c-9a51-1e0d1b8a7f10",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@gym.test",
		Specializations: pq.StringArray{"Yoga"},
		Status:          models.TrainerStatusActive,
		Availability:    models.DefaultAvailability,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func decodePayload(t *testing.T, raw string) dto.TrainerPayload {
	t.Helper()
	var p dto.TrainerPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestReconcileTrainerSpecializationScenarios(t *testing.T) {
	cases := []struct {
		name    string
		stored  []string
		payload string
		want    []string
	}{
		{"payload list replaces stored list", []string{"Yoga", "Cardio"}, `{"specializations":["Pilates"]}`, []string{"Pilates"}},
		{"stored primary kept when payload has none", []string{"Yoga"}, `{"phone":"555-000-0000"}`, []string{"Yoga"}},
		{"stored list used when nothing supplied", []string{"Boxing", "HIIT"}, `{}`, []string{"Boxing", "HIIT"}},
		{"default when nothing usable", nil, `{}`, []string{models.DefaultSpecialization}},
		{"blank entries are ignored", nil, `{"specializations":["", "  "],"specialization":" "}`, []string{models.DefaultSpecialization}},
		{"singular moves to front of payload list", []string{"Yoga"}, `{"specialization":"Cardio","specializations":["Pilates","cardio"]}`, []string{"Cardio", "Pilates"}},
		{"singular alone is promoted in stored list", []string{"Yoga", "Cardio"}, `{"specialization":"Cardio"}`, []string{"Cardio", "Yoga"}},
		{"singular alone is inserted when new", []string{"Yoga"}, `{"specialization":"Spin"}`, []string{"Spin", "Yoga"}},
		{"payload list is trimmed and de-duplicated", nil, `{"specializations":[" Yoga ","yoga","Pilates"]}`, []string{"Yoga", "Pilates"}},
		{"null fields are ignored", []string{"Yoga"}, `{"specialization":null,"specializations":null}`, []string{"Yoga"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			existing := baseTrainer()
			existing.Specializations = tc.stored
			got := ReconcileTrainer(existing, decodePayload(t, tc.payload))
			if diff := cmp.Diff(tc.want, []string(got.Specializations)); diff != "" {
				t.Fatalf("specializations mismatch (-want +got):\n%s", diff)
			}
			assert.NotEmpty(t, got.Specialization())
		})
	}
}

func TestReconcileTrainerMergesPresentFieldsOnly(t *testing.T) {
	existing := baseTrainer()
	existing.Phone = strPtr("555 111 2222")
	existing.Bio = strPtr("Ten years coaching")
	existing.Certifications = models.CommaList{"CPR"}

	got := ReconcileTrainer(existing, decodePayload(t, `{"phone":"555-000-0000","last_name":null,"certifications":"CPR, NASM ,","hourly_rate":40}`))

	want := existing
	want.Phone = strPtr("555-000-0000")
	want.Certifications = models.CommaList{"CPR", "NASM"}
	rate := 40.0
	want.HourlyRate = &rate
	want.Specializations = pq.StringArray{"Yoga"}
	want.CertificateFiles = nil

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reconciled trainer mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileTrainerBlankOptionalClears(t *testing.T) {
	existing := baseTrainer()
	existing.Bio = strPtr("Old bio")
	hire := models.NewDate(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC))
	existing.HireDate = &hire

	got := ReconcileTrainer(existing, decodePayload(t, `{"bio":"  ","hire_date":"","first_name":""}`))
	assert.Nil(t, got.Bio)
	assert.Nil(t, got.HireDate)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestReconcileTrainerDoesNotMutateInput(t *testing.T) {
	existing := baseTrainer()
	existing.Specializations = pq.StringArray{"Yoga", "Cardio"}
	existing.CertificateFiles = pq.StringArray{"/uploads/certificates/a.pdf"}

	_ = ReconcileTrainer(existing, decodePayload(t, `{"specialization":"Cardio","certificate_files":[]}`))
	assert.Equal(t, pq.StringArray{"Yoga", "Cardio"}, existing.Specializations)
	assert.Equal(t, pq.StringArray{"/uploads/certificates/a.pdf"}, existing.CertificateFiles)
}

func TestReconcileTrainerIsIdempotent(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"specializations":["Pilates","Yoga"]}`,
		`{"specialization":"Boxing","phone":"(555) 123-4567"}`,
		`{"specialization":"yoga","specializations":["Pilates","YOGA"],"certificate_files":["a"," a ","b"]}`,
		`{"bio":"","status":"on_leave","certifications":["CPR","cpr"]}`,
	}
	for _, raw := range payloads {
		p := decodePayload(t, raw)
		first := ReconcileTrainer(baseTrainer(), p)
		second := ReconcileTrainer(first, p)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("payload %s not idempotent (-first +second):\n%s", raw, diff)
		}
	}
}

func TestReconcileTrainerNeverSerialisesNull(t *testing.T) {
	existing := baseTrainer()
	existing.Specializations = nil
	got := ReconcileTrainer(existing, decodePayload(t, `{"phone":null,"bio":"","profile_photo":null}`))

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	for key, value := range doc {
		assert.NotNil(t, value, "field %s serialised as null", key)
	}
	assert.Equal(t, models.DefaultSpecialization, doc["specialization"])
}

func TestRemovedFiles(t *testing.T) {
	got := removedFiles([]string{"a", "b", "c"}, []string{"c", "a", "d"})
	assert.Equal(t, []string{"b"}, got)
	assert.Empty(t, removedFiles(nil, []string{"a"}))
}
