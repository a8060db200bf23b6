package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHRService(t *testing.T) (*HRActivityService, *fakeHRActivities, *memFiles, *recordingPublisher) {
	t.Helper()
	repo := &fakeHRActivities{}
	files := newMemFiles()
	events, pub := newTestEvents(t)
	users := newFakeUsers(manager, carer)
	return NewHRActivityService(repo, users, files, events, nil), repo, files, pub
}

func supervision(employeeID int) types.HRActivity {
	return types.HRActivity{
		Type:          types.HRSupervision,
		Outcome:       "Monthly supervision",
		EmployeeID:    employeeID,
		ScheduledDate: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestHRActivityService_Create(t *testing.T) {
	svc, repo, files, pub := newHRService(t)

	created, err := svc.Create(context.Background(), manager, supervision(carer.ID), textUpload("notes.pdf", "minutes"))

	require.NoError(t, err)
	assert.Equal(t, types.HRStatusPending, created.Status)
	assert.Equal(t, manager.ID, created.CreatedBy)
	require.NotNil(t, created.DocumentPath)
	assert.Contains(t, files.objects, *created.DocumentPath)
	assert.Len(t, repo.activities, 1)
	assert.Equal(t, []string{types.EventHRActivityCreated}, pub.names())
}

func TestHRActivityService_Create_UnknownEmployee(t *testing.T) {
	svc, repo, files, _ := newHRService(t)

	_, err := svc.Create(context.Background(), manager, supervision(404), textUpload("notes.pdf", "minutes"))

	assert.ErrorIs(t, err, ErrInvalidEmployee)
	assert.Empty(t, repo.activities)
	assert.Empty(t, files.objects)
}

func TestHRActivityService_Create_RemovesUploadOnFailure(t *testing.T) {
	svc, repo, files, _ := newHRService(t)
	repo.createErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), manager, supervision(carer.ID), textUpload("notes.pdf", "minutes"))

	assert.EqualError(t, err, "connection reset")
	assert.Empty(t, files.objects)
}

func TestHRActivityService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newHRService(t)

	activity := supervision(carer.ID)
	activity.Type = "appraisal"
	_, err := svc.Create(context.Background(), manager, activity, nil)
	requireValidation(t, err)

	activity = supervision(carer.ID)
	activity.Outcome = " "
	_, err = svc.Create(context.Background(), manager, activity, nil)
	requireValidation(t, err)
}

func TestHRActivityService_UpdateStatus(t *testing.T) {
	svc, _, _, _ := newHRService(t)
	created, err := svc.Create(context.Background(), manager, supervision(carer.ID), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), manager, created.ID, types.HRStatusPending)
	requireValidation(t, err)

	updated, err := svc.UpdateStatus(context.Background(), manager, created.ID, types.HRStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, types.HRStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), manager, created.ID, types.HRStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHRActivityService_OpenDocument(t *testing.T) {
	svc, _, _, _ := newHRService(t)

	withDoc, err := svc.Create(context.Background(), manager, supervision(carer.ID), textUpload("minutes.pdf", "agenda"))
	require.NoError(t, err)
	withoutDoc, err := svc.Create(context.Background(), manager, supervision(carer.ID), nil)
	require.NoError(t, err)

	file, err := svc.OpenDocument(context.Background(), withDoc.ID)
	require.NoError(t, err)
	defer file.Body.Close()
	data, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "agenda", string(data))
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "Monthly supervision.pdf", file.Name)

	_, err = svc.OpenDocument(context.Background(), withoutDoc.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
