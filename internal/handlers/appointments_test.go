package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blomoto/blomoto-server/internal/models"
)

func (env *testEnv) createAppointment(t *testing.T, status string) *models.Appointment {
	t.Helper()
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")
	svc := env.createService(t, "Oil Change")
	a := &models.Appointment{
		UserID: u.ID, GarageID: g.ID, ServiceID: svc.ID,
		AppointmentDate: mustTime(t, "2026-09-10T10:00:00Z"),
		Status:          status,
	}
	require.NoError(t, env.DB.Create(a).Error)
	return a
}

func TestCreateAppointmentDefaultsToScheduled(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")
	svc := env.createService(t, "Oil Change")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/appointments/create", map[string]interface{}{
		"user_id":          u.ID,
		"garage_id":        g.ID,
		"service_id":       svc.ID,
		"appointment_date": "2026-09-10T10:00:00Z",
		"description":      "engine light is on",
	})
	require.NoError(t, env.Appointments.CreateAppointment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.StatusScheduled, resp.Status)

	var stored models.Appointment
	require.NoError(t, env.DB.First(&stored, resp.ID).Error)
	require.Equal(t, models.StatusScheduled, stored.Status)
}

func TestCreateAppointmentRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")
	svc := env.createService(t, "Oil Change")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/appointments/create", map[string]interface{}{
		"user_id":          u.ID,
		"garage_id":        g.ID,
		"service_id":       svc.ID,
		"appointment_date": "2026-09-10T10:00:00Z",
		"status":           "postponed",
	})
	requireHTTPError(t, env.Appointments.CreateAppointment(c), http.StatusBadRequest)
}

func TestAppointmentStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAppointment(t, models.StatusScheduled)

	// scheduled -> completed is allowed.
	rec, c := env.doJSONRequestID(http.MethodPatch, "/api/v1/appointments/1/update", map[string]interface{}{
		"status": models.StatusCompleted,
	}, a.ID)
	require.NoError(t, env.Appointments.UpdateAppointment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// completed is terminal.
	_, cBack := env.doJSONRequestID(http.MethodPatch, "/api/v1/appointments/1/update", map[string]interface{}{
		"status": models.StatusScheduled,
	}, a.ID)
	requireHTTPError(t, env.Appointments.UpdateAppointment(cBack), http.StatusBadRequest)

	var stored models.Appointment
	require.NoError(t, env.DB.First(&stored, a.ID).Error)
	require.Equal(t, models.StatusCompleted, stored.Status)
}

func TestCancelScheduledAppointment(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAppointment(t, models.StatusScheduled)

	rec, c := env.doJSONRequestID(http.MethodPatch, "/api/v1/appointments/1/update", map[string]interface{}{
		"status": models.StatusCanceled,
	}, a.ID)
	require.NoError(t, env.Appointments.UpdateAppointment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.StatusCanceled, resp.Status)
}

func TestCreateAppointmentRequiresReferences(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/appointments/create", map[string]interface{}{
		"user_id":          1,
		"garage_id":        1,
		"service_id":       1,
		"appointment_date": "2026-09-10T10:00:00Z",
	})
	requireHTTPError(t, env.Appointments.CreateAppointment(c), http.StatusBadRequest)
}
