package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"github.com/lib/pq"
)

// memDB is a tiny in-memory stand-in for the Postgres repositories. It
// enforces the foreign keys the handlers rely on.
type memDB struct {
	mu         sync.Mutex
	users      []types.User
	people     []types.YoungPerson
	shiftLogs  []types.ShiftLog
	documents  []types.Document
	ypDocs     []types.YPFolderDocument
	activities []types.HRActivity
	timesheets []types.Timesheet
	tasks      []types.Task
	contacts   []types.HelpSupportContact
}

var errFKViolation = &pq.Error{Code: "23503"}

func (m *memDB) userExists(id int) bool {
	for _, u := range m.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (m *memDB) personExists(id int) bool {
	for _, p := range m.people {
		if p.ID == id {
			return true
		}
	}
	return false
}

type memUsers struct{ db *memDB }

func (r memUsers) GetByID(_ context.Context, id int) (types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r memUsers) GetByUsername(_ context.Context, username string) (types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r memUsers) List(context.Context) ([]types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := append([]types.User(nil), r.db.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r memUsers) Create(_ context.Context, user types.User) (types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == user.Username {
			return types.User{}, &pq.Error{Code: "23505"}
		}
	}
	user.ID = len(r.db.users) + 1
	user.CreatedAt = time.Now()
	r.db.users = append(r.db.users, user)
	return user, nil
}

type memPeople struct{ db *memDB }

func (r memPeople) List(context.Context) ([]types.YoungPerson, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]types.YoungPerson{}, r.db.people...), nil
}

func (r memPeople) Get(_ context.Context, id int) (types.YoungPerson, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.people {
		if p.ID == id {
			return p, nil
		}
	}
	return types.YoungPerson{}, store.ErrNotFound
}

func (r memPeople) Create(_ context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	person.ID = len(r.db.people) + 1
	person.CreatedAt = time.Now().UTC()
	person.UpdatedAt = person.CreatedAt
	r.db.people = append(r.db.people, person)
	return person, nil
}

func (r memPeople) Update(_ context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, p := range r.db.people {
		if p.ID == person.ID {
			person.UpdatedAt = time.Now().UTC()
			r.db.people[i] = person
			return person, nil
		}
	}
	return types.YoungPerson{}, store.ErrNotFound
}

type memShiftLogs struct{ db *memDB }

func (r memShiftLogs) Create(_ context.Context, entry types.ShiftLog) (types.ShiftLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !r.db.personExists(entry.YoungPersonID) {
		return types.ShiftLog{}, errFKViolation
	}
	entry.ID = len(r.db.shiftLogs) + 1
	r.db.shiftLogs = append(r.db.shiftLogs, entry)
	return entry, nil
}

func (r memShiftLogs) List(_ context.Context, filter types.ShiftLogFilter) ([]types.ShiftLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.ShiftLog{}
	for i := len(r.db.shiftLogs) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		entry := r.db.shiftLogs[i]
		if filter.YoungPersonID == 0 || entry.YoungPersonID == filter.YoungPersonID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memDocuments struct{ db *memDB }

func (r memDocuments) Create(_ context.Context, doc types.Document) (types.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	doc.ID = len(r.db.documents) + 1
	r.db.documents = append(r.db.documents, doc)
	return doc, nil
}

func (r memDocuments) List(_ context.Context, filter types.DocumentFilter) ([]types.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.Document{}
	for _, d := range r.db.documents {
		if (filter.Section == "" || d.Section == filter.Section) && (filter.Category == "" || d.Category == filter.Category) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memDocuments) Get(_ context.Context, id int) (types.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return types.Document{}, store.ErrNotFound
}

type memYPDocuments struct{ db *memDB }

func (r memYPDocuments) Create(_ context.Context, doc types.YPFolderDocument) (types.YPFolderDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	doc.ID = len(r.db.ypDocs) + 1
	r.db.ypDocs = append(r.db.ypDocs, doc)
	return doc, nil
}

func (r memYPDocuments) ListByYoungPerson(_ context.Context, youngPersonID int, category string) ([]types.YPFolderDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.YPFolderDocument{}
	for _, d := range r.db.ypDocs {
		if d.YoungPersonID == youngPersonID && (category == "" || d.Category == category) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memYPDocuments) Get(_ context.Context, youngPersonID, id int) (types.YPFolderDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.ypDocs {
		if d.ID == id && d.YoungPersonID == youngPersonID {
			return d, nil
		}
	}
	return types.YPFolderDocument{}, store.ErrNotFound
}

type memActivities struct{ db *memDB }

func (r memActivities) Create(_ context.Context, activity types.HRActivity) (types.HRActivity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !r.db.userExists(activity.EmployeeID) {
		return types.HRActivity{}, errFKViolation
	}
	activity.ID = len(r.db.activities) + 1
	r.db.activities = append(r.db.activities, activity)
	return activity, nil
}

func (r memActivities) Get(_ context.Context, id int) (types.HRActivity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return types.HRActivity{}, store.ErrNotFound
}

func (r memActivities) List(context.Context) ([]types.HRActivityView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.HRActivityView{}
	for _, a := range r.db.activities {
		view := types.HRActivityView{HRActivity: a}
		for _, u := range r.db.users {
			if u.ID == a.EmployeeID {
				summary := u.Summary()
				view.Employee = &summary
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (r memActivities) UpdateStatus(_ context.Context, id int, status types.HRActivityStatus) (types.HRActivity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, a := range r.db.activities {
		if a.ID != id {
			continue
		}
		if a.Status != types.HRStatusPending {
			return types.HRActivity{}, store.ErrConflict
		}
		r.db.activities[i].Status = status
		return r.db.activities[i], nil
	}
	return types.HRActivity{}, store.ErrNotFound
}

type memTimesheets struct{ db *memDB }

func (r memTimesheets) Create(_ context.Context, ts types.Timesheet) (types.Timesheet, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ts.ID = len(r.db.timesheets) + 1
	r.db.timesheets = append(r.db.timesheets, ts)
	return ts, nil
}

func (r memTimesheets) ListByUser(_ context.Context, userID int) ([]types.Timesheet, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.Timesheet{}
	for _, ts := range r.db.timesheets {
		if ts.UserID == userID {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (r memTimesheets) ListAll(context.Context) ([]types.TimesheetView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []types.TimesheetView{}
	for _, ts := range r.db.timesheets {
		view := types.TimesheetView{Timesheet: ts}
		for _, u := range r.db.users {
			if u.ID == ts.UserID {
				view.Username = u.Username
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (r memTimesheets) Review(_ context.Context, id int, status types.TimesheetStatus, reviewerID int) (types.Timesheet, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, ts := range r.db.timesheets {
		if ts.ID != id {
			continue
		}
		if ts.Status != types.TimesheetPending {
			return types.Timesheet{}, store.ErrConflict
		}
		now := time.Now().UTC()
		r.db.timesheets[i].Status = status
		r.db.timesheets[i].ReviewedBy = &reviewerID
		r.db.timesheets[i].ReviewedAt = &now
		return r.db.timesheets[i], nil
	}
	return types.Timesheet{}, store.ErrNotFound
}

type memTasks struct{ db *memDB }

func (r memTasks) Create(_ context.Context, task types.Task) (types.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if task.AssignedTo != nil && !r.db.userExists(*task.AssignedTo) {
		return types.Task{}, errFKViolation
	}
	task.ID = len(r.db.tasks) + 1
	r.db.tasks = append(r.db.tasks, task)
	return task, nil
}

func (r memTasks) List(context.Context) ([]types.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]types.Task{}, r.db.tasks...), nil
}

type memContacts struct{ db *memDB }

func (r memContacts) Create(_ context.Context, contact types.HelpSupportContact) (types.HelpSupportContact, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	contact.ID = len(r.db.contacts) + 1
	r.db.contacts = append(r.db.contacts, contact)
	return contact, nil
}

func (r memContacts) List(context.Context) ([]types.HelpSupportContact, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]types.HelpSupportContact{}, r.db.contacts...), nil
}

type memFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memFiles) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
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
		return nil, errors.New("missing object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}
