package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users     map[int]types.User
	createErr error
}

func newFakeUsers(users ...types.User) *fakeUsers {
	f := &fakeUsers{users: map[int]types.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUsers) List(context.Context) ([]types.User, error) {
	out := make([]types.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, user types.User) (types.User, error) {
	if f.createErr != nil {
		return types.User{}, f.createErr
	}
	user.ID = len(f.users) + 1
	f.users[user.ID] = user
	return user, nil
}

type fakePeople struct {
	people map[int]types.YoungPerson
}

func newFakePeople(people ...types.YoungPerson) *fakePeople {
	f := &fakePeople{people: map[int]types.YoungPerson{}}
	for _, p := range people {
		f.people[p.ID] = p
	}
	return f
}

func (f *fakePeople) List(context.Context) ([]types.YoungPerson, error) {
	out := make([]types.YoungPerson, 0, len(f.people))
	for _, p := range f.people {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePeople) Get(_ context.Context, id int) (types.YoungPerson, error) {
	p, ok := f.people[id]
	if !ok {
		return types.YoungPerson{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakePeople) Create(_ context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	person.ID = len(f.people) + 1
	f.people[person.ID] = person
	return person, nil
}

func (f *fakePeople) Update(_ context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	if _, ok := f.people[person.ID]; !ok {
		return types.YoungPerson{}, store.ErrNotFound
	}
	f.people[person.ID] = person
	return person, nil
}

type fakeDocuments struct {
	docs      []types.Document
	lastQuery types.DocumentFilter
	createErr error
}

func (f *fakeDocuments) Create(_ context.Context, doc types.Document) (types.Document, error) {
	if f.createErr != nil {
		return types.Document{}, f.createErr
	}
	doc.ID = len(f.docs) + 1
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeDocuments) List(_ context.Context, filter types.DocumentFilter) ([]types.Document, error) {
	f.lastQuery = filter
	return f.docs, nil
}

func (f *fakeDocuments) Get(_ context.Context, id int) (types.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return types.Document{}, store.ErrNotFound
}

type fakeYPDocuments struct {
	docs []types.YPFolderDocument
}

func (f *fakeYPDocuments) Create(_ context.Context, doc types.YPFolderDocument) (types.YPFolderDocument, error) {
	doc.ID = len(f.docs) + 1
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeYPDocuments) ListByYoungPerson(_ context.Context, youngPersonID int, category string) ([]types.YPFolderDocument, error) {
	var out []types.YPFolderDocument
	for _, d := range f.docs {
		if d.YoungPersonID == youngPersonID && (category == "" || d.Category == category) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeYPDocuments) Get(_ context.Context, youngPersonID, id int) (types.YPFolderDocument, error) {
	for _, d := range f.docs {
		if d.ID == id && d.YoungPersonID == youngPersonID {
			return d, nil
		}
	}
	return types.YPFolderDocument{}, store.ErrNotFound
}

type fakeHRActivities struct {
	activities []types.HRActivity
	createErr  error
	updateErr  error
}

func (f *fakeHRActivities) Create(_ context.Context, activity types.HRActivity) (types.HRActivity, error) {
	if f.createErr != nil {
		return types.HRActivity{}, f.createErr
	}
	activity.ID = len(f.activities) + 1
	f.activities = append(f.activities, activity)
	return activity, nil
}

func (f *fakeHRActivities) Get(_ context.Context, id int) (types.HRActivity, error) {
	for _, a := range f.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return types.HRActivity{}, store.ErrNotFound
}

func (f *fakeHRActivities) List(context.Context) ([]types.HRActivityView, error) {
	out := make([]types.HRActivityView, 0, len(f.activities))
	for _, a := range f.activities {
		out = append(out, types.HRActivityView{HRActivity: a})
	}
	return out, nil
}

func (f *fakeHRActivities) UpdateStatus(_ context.Context, id int, status types.HRActivityStatus) (types.HRActivity, error) {
	if f.updateErr != nil {
		return types.HRActivity{}, f.updateErr
	}
	for i, a := range f.activities {
		if a.ID != id {
			continue
		}
		if a.Status != types.HRStatusPending {
			return types.HRActivity{}, store.ErrConflict
		}
		f.activities[i].Status = status
		return f.activities[i], nil
	}
	return types.HRActivity{}, store.ErrNotFound
}

type fakeTimesheets struct {
	sheets []types.Timesheet
}

func (f *fakeTimesheets) Create(_ context.Context, ts types.Timesheet) (types.Timesheet, error) {
	ts.ID = len(f.sheets) + 1
	f.sheets = append(f.sheets, ts)
	return ts, nil
}

func (f *fakeTimesheets) ListByUser(_ context.Context, userID int) ([]types.Timesheet, error) {
	var out []types.Timesheet
	for _, ts := range f.sheets {
		if ts.UserID == userID {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeTimesheets) ListAll(context.Context) ([]types.TimesheetView, error) {
	out := make([]types.TimesheetView, 0, len(f.sheets))
	for _, ts := range f.sheets {
		out = append(out, types.TimesheetView{Timesheet: ts, Username: "user"})
	}
	return out, nil
}

func (f *fakeTimesheets) Review(_ context.Context, id int, status types.TimesheetStatus, reviewerID int) (types.Timesheet, error) {
	for i, ts := range f.sheets {
		if ts.ID != id {
			continue
		}
		if ts.Status != types.TimesheetPending {
			return types.Timesheet{}, store.ErrConflict
		}
		f.sheets[i].Status = status
		f.sheets[i].ReviewedBy = &reviewerID
		return f.sheets[i], nil
	}
	return types.Timesheet{}, store.ErrNotFound
}

type fakeShiftLogs struct {
	created   []types.ShiftLog
	lastQuery types.ShiftLogFilter
	createErr error
}

func (f *fakeShiftLogs) Create(_ context.Context, entry types.ShiftLog) (types.ShiftLog, error) {
	if f.createErr != nil {
		return types.ShiftLog{}, f.createErr
	}
	entry.ID = len(f.created) + 1
	f.created = append(f.created, entry)
	return entry, nil
}

func (f *fakeShiftLogs) List(_ context.Context, filter types.ShiftLogFilter) ([]types.ShiftLog, error) {
	f.lastQuery = filter
	return f.created, nil
}

type memFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemFiles() *memFiles {
	return &memFiles{objects: map[string][]byte{}}
}

func (m *memFiles) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memFiles) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []types.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, data []byte, _ map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	var event types.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return "1", nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}

func newTestEvents(t *testing.T) (*Events, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return NewEvents(pub, "test.events", zap.NewNop()), pub
}

func textUpload(name, body string) *Upload {
	return &Upload{
		Filename:    name,
		ContentType: "text/plain",
		Size:        int64(len(body)),
		Body:        bytes.NewBufferString(body),
	}
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
