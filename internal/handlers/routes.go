package handlers

import "github.com/go-chi/chi/v5"

// API groups the resource handlers served under /api.
type API struct {
	Auth         *AuthHandler
	Users        *UserHandler
	YoungPeople  *YoungPersonHandler
	ShiftLogs    *ShiftLogHandler
	Documents    *DocumentHandler
	HRActivities *HRActivityHandler
	Timesheets   *TimesheetHandler
	Tasks        *TaskHandler
	Contacts     *ContactHandler
}

// Mount registers every resource router on r.
func (a API) Mount(r chi.Router) {
	gates := a.Auth.Gates()

	AuthRouter(r, a.Auth)
	r.Route("/users", func(r chi.Router) {
		UserRouter(r, a.Users, gates)
	})
	r.Route("/young-people", func(r chi.Router) {
		YoungPersonRouter(r, a.YoungPeople, gates)
	})
	r.Route("/shift-logs", func(r chi.Router) {
		ShiftLogRouter(r, a.ShiftLogs, gates)
	})
	r.Route("/documents", func(r chi.Router) {
		DocumentRouter(r, a.Documents, gates)
	})
	r.Route("/yp-folder", func(r chi.Router) {
		FolderRouter(r, a.Documents, gates)
	})
	r.Route("/hr-activities", func(r chi.Router) {
		HRActivityRouter(r, a.HRActivities, gates)
	})
	r.Route("/timesheets", func(r chi.Router) {
		TimesheetRouter(r, a.Timesheets, gates)
	})
	r.Route("/tasks", func(r chi.Router) {
		TaskRouter(r, a.Tasks, gates)
	})
	r.Route("/help-support-contacts", func(r chi.Router) {
		ContactRouter(r, a.Contacts, gates)
	})
}
