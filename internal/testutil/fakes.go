// Package testutil holds in-memory repositories and collaborators for
// service tests. They mimic the postgres repositories closely enough for the
// business rules: unique indexes, preloads and newest-first ordering.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"anoa.com/jobportal/internal/entity"
	appRepo "anoa.com/jobportal/internal/modules/application/repository"
	companyRepo "anoa.com/jobportal/internal/modules/company/repository"
	jobRepo "anoa.com/jobportal/internal/modules/job/repository"
	notifRepo "anoa.com/jobportal/internal/modules/notification/repository"
	userRepo "anoa.com/jobportal/internal/modules/user/repository"
	"anoa.com/jobportal/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	_ userRepo.UserRepository            = (*UserRepo)(nil)
	_ companyRepo.CompanyRepository      = (*CompanyRepo)(nil)
	_ jobRepo.JobRepository              = (*JobRepo)(nil)
	_ appRepo.ApplicationRepository      = (*ApplicationRepo)(nil)
	_ notifRepo.NotificationRepository   = (*NotificationRepo)(nil)
	_ storage.FileStorage                = (*Storage)(nil)
)

// Store is the shared in-memory database behind the fake repositories.
type Store struct {
	mu            sync.Mutex
	clock         time.Time
	users         map[uuid.UUID]entity.User
	companies     map[uuid.UUID]entity.Company
	jobs          map[uuid.UUID]entity.Job
	applications  map[uuid.UUID]entity.Application
	notifications map[uuid.UUID]entity.Notification
}

func NewStore() *Store {
	return &Store{
		clock:         time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		users:         map[uuid.UUID]entity.User{},
		companies:     map[uuid.UUID]entity.Company{},
		jobs:          map[uuid.UUID]entity.Job{},
		applications:  map[uuid.UUID]entity.Application{},
		notifications: map[uuid.UUID]entity.Notification{},
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// ---- users ----

type UserRepo struct{ S *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for _, u := range r.S.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.S.tick()
	user.UpdatedAt = user.CreatedAt
	user.Profile.UserID = user.ID

	stored := *user
	stored.Profile.Skills = cloneStrings(user.Profile.Skills)
	r.S.users[user.ID] = stored
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	u, ok := r.S.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Profile.Skills = cloneStrings(u.Profile.Skills)
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for _, u := range r.S.users {
		if u.Email == email {
			u.Profile.Skills = cloneStrings(u.Profile.Skills)
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	if _, ok := r.S.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, u := range r.S.users {
		if id != user.ID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UpdatedAt = r.S.tick()
	stored := *user
	stored.Profile.Skills = cloneStrings(user.Profile.Skills)
	r.S.users[user.ID] = stored
	return nil
}

// Count reports how many users exist.
func (r *UserRepo) Count() int {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return len(r.S.users)
}

// ---- companies ----

type CompanyRepo struct{ S *Store }

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for _, c := range r.S.companies {
		if c.Name == company.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = r.S.tick()
	company.UpdatedAt = company.CreatedAt
	r.S.companies[company.ID] = *company
	return nil
}

func (r *CompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	c, ok := r.S.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *CompanyRepo) FindByName(_ context.Context, name string) (*entity.Company, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for _, c := range r.S.companies {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *CompanyRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.Company, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	out := []entity.Company{}
	for _, c := range r.S.companies {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	if _, ok := r.S.companies[company.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, c := range r.S.companies {
		if id != company.ID && c.Name == company.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	company.UpdatedAt = r.S.tick()
	r.S.companies[company.ID] = *company
	return nil
}

// ---- jobs ----

type JobRepo struct{ S *Store }

func (r *JobRepo) Create(_ context.Context, job *entity.Job) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = r.S.tick()
	job.UpdatedAt = job.CreatedAt

	stored := *job
	stored.Company, stored.Creator, stored.Applications = nil, nil, nil
	stored.Requirements = cloneStrings(job.Requirements)
	r.S.jobs[job.ID] = stored
	return nil
}

// hydrate must be called with the lock held.
func (r *JobRepo) hydrate(j entity.Job, withApplicants bool) entity.Job {
	j.Requirements = cloneStrings(j.Requirements)
	if c, ok := r.S.companies[j.CompanyID]; ok {
		j.Company = &c
	}
	j.Applications = applicationsForJob(r.S, j.ID, withApplicants)
	return j
}

func (r *JobRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	j, ok := r.S.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	j = r.hydrate(j, false)
	return &j, nil
}

func (r *JobRepo) FindWithApplicants(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	j, ok := r.S.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	j = r.hydrate(j, true)
	return &j, nil
}

func (r *JobRepo) Search(_ context.Context, keyword string) ([]entity.Job, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := []entity.Job{}
	for _, j := range r.S.jobs {
		if kw == "" ||
			strings.Contains(strings.ToLower(j.Title), kw) ||
			strings.Contains(strings.ToLower(j.Description), kw) {
			j.Requirements = cloneStrings(j.Requirements)
			if c, ok := r.S.companies[j.CompanyID]; ok {
				j.Company = &c
			}
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *JobRepo) FindByCreator(_ context.Context, userID uuid.UUID) ([]entity.Job, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	out := []entity.Job{}
	for _, j := range r.S.jobs {
		if j.CreatedBy == userID {
			j.Requirements = cloneStrings(j.Requirements)
			if c, ok := r.S.companies[j.CompanyID]; ok {
				j.Company = &c
			}
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *JobRepo) AddViews(_ context.Context, id uuid.UUID, delta int) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	j, ok := r.S.jobs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	j.Views += delta
	r.S.jobs[id] = j
	return nil
}

// ---- applications ----

// applicationsForJob must be called with the lock held.
func applicationsForJob(s *Store, jobID uuid.UUID, withApplicants bool) []entity.Application {
	out := []entity.Application{}
	for _, a := range s.applications {
		if a.JobID != jobID {
			continue
		}
		if withApplicants {
			if u, ok := s.users[a.ApplicantID]; ok {
				a.Applicant = &u
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

type ApplicationRepo struct {
	S *Store
	// FailCreate, when set, is returned by Create without writing anything.
	FailCreate error
}

func (r *ApplicationRepo) Create(_ context.Context, application *entity.Application) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}
	for _, a := range r.S.applications {
		if a.JobID == application.JobID && a.ApplicantID == application.ApplicantID {
			return gorm.ErrDuplicatedKey
		}
	}
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.Status == "" {
		application.Status = entity.StatusPending
	}
	application.CreatedAt = r.S.tick()
	application.UpdatedAt = application.CreatedAt

	stored := *application
	stored.Job, stored.Applicant = nil, nil
	r.S.applications[application.ID] = stored
	return nil
}

func (r *ApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Application, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	a, ok := r.S.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if j, ok := r.S.jobs[a.JobID]; ok {
		a.Job = &j
	}
	return &a, nil
}

func (r *ApplicationRepo) FindByJobAndApplicant(_ context.Context, jobID, applicantID uuid.UUID) (*entity.Application, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for _, a := range r.S.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ApplicationRepo) FindByApplicant(_ context.Context, applicantID uuid.UUID) ([]entity.Application, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	out := []entity.Application{}
	for _, a := range r.S.applications {
		if a.ApplicantID != applicantID {
			continue
		}
		if j, ok := r.S.jobs[a.JobID]; ok {
			if c, ok := r.S.companies[j.CompanyID]; ok {
				j.Company = &c
			}
			a.Job = &j
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *ApplicationRepo) CountByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	var n int64
	for _, a := range r.S.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r *ApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	a, ok := r.S.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	a.UpdatedAt = r.S.tick()
	r.S.applications[id] = a
	return nil
}

// ---- notifications ----

type NotificationRepo struct{ S *Store }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.S.tick()
	r.S.notifications[n.ID] = *n
	return nil
}

func (r *NotificationRepo) GetByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, int64, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	all := []entity.Notification{}
	for _, n := range r.S.notifications {
		if n.UserID == userID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, k int) bool { return all[i].CreatedAt.After(all[k].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []entity.Notification{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *NotificationRepo) MarkAsRead(_ context.Context, id, userID uuid.UUID) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	n, ok := r.S.notifications[id]
	if !ok || n.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	r.S.notifications[id] = n
	return nil
}

func (r *NotificationRepo) MarkAllAsRead(_ context.Context, userID uuid.UUID) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	for id, n := range r.S.notifications {
		if n.UserID == userID {
			n.IsRead = true
			r.S.notifications[id] = n
		}
	}
	return nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()

	var count int64
	for _, n := range r.S.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// ---- storage ----

// Storage records uploads and deletions instead of talking to a media host.
type Storage struct {
	mu       sync.Mutex
	Uploaded map[string][]byte
	Deleted  []string
	FailWith error
}

func NewStorage() *Storage {
	return &Storage{Uploaded: map[string][]byte{}}
}

func (s *Storage) Upload(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return "", s.FailWith
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://files.test/%s/%d-%s", folder, len(s.Uploaded)+1, fileName)
	s.Uploaded[url] = buf.Bytes()
	return url, nil
}

func (s *Storage) Delete(_ context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deleted = append(s.Deleted, fileURL)
	delete(s.Uploaded, fileURL)
	return nil
}
