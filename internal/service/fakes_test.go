package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"productlab/studyhub/internal/model"
	"productlab/studyhub/internal/repository"
)

// memDB is an in-memory stand-in for PostgreSQL shared by the fake repositories.
// txMu plays the role of the study row lock.
type memDB struct {
	txMu sync.Mutex

	mu           sync.Mutex
	studies      map[int64]*model.Study
	signups      map[int64]*model.StudySignup
	waitlist     map[string]*model.WaitlistEntry
	nextStudyID  int64
	nextSignupID int64
	clock        time.Time
	calls        int
	failWith     error
}

func newMemDB() *memDB {
	return &memDB{
		studies:  make(map[int64]*model.Study),
		signups:  make(map[int64]*model.StudySignup),
		waitlist: make(map[string]*model.WaitlistEntry),
		clock:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// touch records a store access and advances the fake clock. Callers hold mu.
func (db *memDB) touch() (time.Time, error) {
	db.calls++
	db.clock = db.clock.Add(time.Second)
	return db.clock, db.failWith
}

func (db *memDB) accesses() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls
}

func (db *memDB) countFor(studyID int64) int64 {
	var n int64
	for _, su := range db.signups {
		if su.StudyID == studyID {
			n++
		}
	}
	return n
}

func (db *memDB) seedStudy(study model.Study) *model.Study {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextStudyID++
	study.ID = db.nextStudyID
	db.clock = db.clock.Add(time.Minute)
	study.CreatedAt = db.clock
	study.UpdatedAt = db.clock
	stored := study
	db.studies[study.ID] = &stored
	return &study
}

type fakeStudyRepo struct{ db *memDB }

func (r fakeStudyRepo) withCount(s *model.Study) model.Study {
	out := *s
	out.SignupsCount = r.db.countFor(s.ID)
	return out
}

func (r fakeStudyRepo) sorted(filter func(*model.Study) bool) []model.Study {
	var out []model.Study
	for _, s := range r.db.studies {
		if filter(s) {
			out = append(out, r.withCount(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeStudyRepo) Create(_ context.Context, study *model.Study) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now, err := r.db.touch()
	if err != nil {
		return err
	}
	r.db.nextStudyID++
	study.ID = r.db.nextStudyID
	study.CreatedAt, study.UpdatedAt = now, now
	stored := *study
	r.db.studies[study.ID] = &stored
	return nil
}

func (r fakeStudyRepo) GetByID(_ context.Context, id int64) (*model.Study, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	s, ok := r.db.studies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (r fakeStudyRepo) GetByIDWithCount(_ context.Context, id int64) (*model.Study, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	s, ok := r.db.studies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := r.withCount(s)
	return &out, nil
}

func (r fakeStudyRepo) ListWithCounts(_ context.Context) ([]model.Study, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	return r.sorted(func(*model.Study) bool { return true }), nil
}

func (r fakeStudyRepo) ListPublished(_ context.Context, today model.Date) ([]model.Study, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	return r.sorted(func(s *model.Study) bool { return s.VisibleOn(today) }), nil
}

func (r fakeStudyRepo) Update(_ context.Context, study *model.Study) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now, err := r.db.touch()
	if err != nil {
		return err
	}
	study.UpdatedAt = now
	stored := *study
	r.db.studies[study.ID] = &stored
	return nil
}

func (r fakeStudyRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return false, err
	}
	if _, ok := r.db.studies[id]; !ok {
		return false, nil
	}
	delete(r.db.studies, id)
	for sid, su := range r.db.signups {
		if su.StudyID == id {
			delete(r.db.signups, sid)
		}
	}
	return true, nil
}

type fakeSignupRepo struct{ db *memDB }

func (r fakeSignupRepo) Transaction(ctx context.Context, fn func(tx repository.SignupRepository) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()
	return fn(r)
}

func (r fakeSignupRepo) LockStudy(_ context.Context, studyID int64) (*model.Study, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	s, ok := r.db.studies[studyID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (r fakeSignupRepo) CountByStudyID(_ context.Context, studyID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return 0, err
	}
	return r.db.countFor(studyID), nil
}

func (r fakeSignupRepo) find(studyID int64, email string) *model.StudySignup {
	for _, su := range r.db.signups {
		if su.StudyID == studyID && su.Email == email {
			return su
		}
	}
	return nil
}

func (r fakeSignupRepo) GetByStudyAndEmail(_ context.Context, studyID int64, email string) (*model.StudySignup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	su := r.find(studyID, email)
	if su == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *su
	return &out, nil
}

// applyResubmission mirrors the columns the real upsert overwrites.
func applyResubmission(existing, next *model.StudySignup) {
	existing.FirstName = next.FirstName
	existing.LastName = next.LastName
	existing.Role = next.Role
	existing.CompanyName = next.CompanyName
	existing.CompanySize = next.CompanySize
	existing.YearsExperience = next.YearsExperience
	existing.Timezone = next.Timezone
	existing.Pronouns = next.Pronouns
}

func (r fakeSignupRepo) Upsert(_ context.Context, signup *model.StudySignup) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now, err := r.db.touch()
	if err != nil {
		return err
	}
	if existing := r.find(signup.StudyID, signup.Email); existing != nil {
		applyResubmission(existing, signup)
		*signup = *existing
		return nil
	}
	r.db.nextSignupID++
	signup.ID = r.db.nextSignupID
	signup.CreatedAt = now
	stored := *signup
	r.db.signups[signup.ID] = &stored
	return nil
}

func (r fakeSignupRepo) GetByID(_ context.Context, id int64) (*model.StudySignup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	su, ok := r.db.signups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *su
	return &out, nil
}

func (r fakeSignupRepo) ListByStudyID(_ context.Context, studyID int64) ([]model.StudySignup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return nil, err
	}
	var out []model.StudySignup
	for _, su := range r.db.signups {
		if su.StudyID == studyID {
			out = append(out, *su)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeSignupRepo) SetCalendlyScheduled(_ context.Context, id int64, scheduled bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.db.touch(); err != nil {
		return err
	}
	su, ok := r.db.signups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	su.CalendlyScheduled = scheduled
	return nil
}

type fakeWaitlistRepo struct{ db *memDB }

func (r fakeWaitlistRepo) Upsert(_ context.Context, entry *model.WaitlistEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now, err := r.db.touch()
	if err != nil {
		return err
	}
	if existing, ok := r.db.waitlist[entry.Email]; ok {
		existing.Role = entry.Role
		*entry = *existing
		return nil
	}
	entry.ID = int64(len(r.db.waitlist) + 1)
	entry.CreatedAt = now
	stored := *entry
	r.db.waitlist[entry.Email] = &stored
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []int64
	err    error
}

func (p *recordingPublisher) PublishSignupAccepted(_ context.Context, signup *model.StudySignup, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, signup.ID)
	return p.err
}

func (p *recordingPublisher) Close() {}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent chan sentMail
	err  error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan sentMail, 8)}
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return m.err
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func datePtr(y int, m time.Month, d int) *model.Date {
	date := model.NewDate(y, m, d)
	return &date
}
