package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	users    map[uint]*models.User
	schools  map[uint]*models.School
	students map[uint]*models.Student
	subjects map[uint]*models.Subject
	nextID   uint

	// failSchoolCreates / failStudentCreates make the next N inserts fail
	// with a duplicate-key error, simulating a code racing past the
	// advisory existence check.
	failSchoolCreates  int
	failStudentCreates int

	// failSubjectCreates makes the next N subject inserts fail with a
	// non-duplicate store error.
	failSubjectCreates int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:    make(map[uint]*models.User),
		schools:  make(map[uint]*models.School),
		students: make(map[uint]*models.Student),
		subjects: make(map[uint]*models.Subject),
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) User() repositories.UserRepository       { return &fakeUserRepo{f} }
func (f *fakeRepository) School() repositories.SchoolRepository   { return &fakeSchoolRepo{f} }
func (f *fakeRepository) Student() repositories.StudentRepository { return &fakeStudentRepo{f} }
func (f *fakeRepository) Subject() repositories.SubjectRepository { return &fakeSubjectRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.f.id()
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string, role models.UserRole) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Username == username && u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ===== SCHOOLS =====

type fakeSchoolRepo struct{ f *fakeRepository }

func (r *fakeSchoolRepo) Create(ctx context.Context, school *models.School) error {
	if r.f.failSchoolCreates > 0 {
		r.f.failSchoolCreates--
		return gorm.ErrDuplicatedKey
	}
	for _, s := range r.f.schools {
		if s.Code == school.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	school.ID = r.f.id()
	r.f.schools[school.ID] = school
	return nil
}

func (r *fakeSchoolRepo) GetByID(ctx context.Context, id uint) (*models.School, error) {
	if s, ok := r.f.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchoolRepo) GetByCode(ctx context.Context, code string) (*models.School, error) {
	for _, s := range r.f.schools {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchoolRepo) List(ctx context.Context) ([]*models.School, error) {
	out := make([]*models.School, 0, len(r.f.schools))
	for _, s := range r.f.schools {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSchoolRepo) Update(ctx context.Context, id uint, school *models.School) (int64, error) {
	existing, ok := r.f.schools[id]
	if !ok {
		return 0, nil
	}
	existing.Name = school.Name
	existing.StudyType = school.StudyType
	existing.Level = school.Level
	existing.GenderType = school.GenderType
	return 1, nil
}

func (r *fakeSchoolRepo) Delete(ctx context.Context, id uint) (int64, error) {
	if _, ok := r.f.schools[id]; !ok {
		return 0, nil
	}
	for sid, st := range r.f.students {
		if st.SchoolID == id {
			delete(r.f.students, sid)
		}
	}
	for sid, sub := range r.f.subjects {
		if sub.SchoolID == id {
			delete(r.f.subjects, sid)
		}
	}
	delete(r.f.schools, id)
	return 1, nil
}

func (r *fakeSchoolRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

// ===== STUDENTS =====

type fakeStudentRepo struct{ f *fakeRepository }

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.f.failStudentCreates > 0 {
		r.f.failStudentCreates--
		return gorm.ErrDuplicatedKey
	}
	for _, s := range r.f.students {
		if s.StudentCode == student.StudentCode {
			return gorm.ErrDuplicatedKey
		}
	}
	student.ID = r.f.id()
	r.f.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	if s, ok := r.f.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.StudentCode == code {
			if school, ok := r.f.schools[s.SchoolID]; ok {
				s.SchoolName = school.Name
			}
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.f.students {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	s, ok := r.f.students[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["full_name"].(string); ok {
		s.FullName = v
	}
	if v, ok := fields["grade"].(string); ok {
		s.Grade = v
	}
	if v, ok := fields["branch"].(string); ok {
		s.Branch = v
	}
	if v, ok := fields["room"].(string); ok {
		s.Room = v
	}
	if v, ok := fields["detailed_scores"].(string); ok {
		s.DetailedScores = []byte(v)
	}
	if v, ok := fields["daily_attendance"].(string); ok {
		s.DailyAttendance = []byte(v)
	}
	return 1, nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uint) (int64, error) {
	if _, ok := r.f.students[id]; !ok {
		return 0, nil
	}
	delete(r.f.students, id)
	return 1, nil
}

func (r *fakeStudentRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

// ===== SUBJECTS =====

type fakeSubjectRepo struct{ f *fakeRepository }

func (r *fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if r.f.failSubjectCreates > 0 {
		r.f.failSubjectCreates--
		return gorm.ErrInvalidData
	}
	for _, s := range r.f.subjects {
		if s.SchoolID == subject.SchoolID && s.Name == subject.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	subject.ID = r.f.id()
	r.f.subjects[subject.ID] = subject
	return nil
}

func (r *fakeSubjectRepo) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	if s, ok := r.f.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) ListBySchool(ctx context.Context, schoolID uint) ([]*models.Subject, error) {
	var out []*models.Subject
	for _, s := range r.f.subjects {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSubjectRepo) NamesBySchool(ctx context.Context, schoolID uint) ([]string, error) {
	subjects, _ := r.ListBySchool(ctx, schoolID)
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return names, nil
}

func (r *fakeSubjectRepo) Update(ctx context.Context, id uint, name string) (int64, error) {
	s, ok := r.f.subjects[id]
	if !ok {
		return 0, nil
	}
	s.Name = name
	return 1, nil
}

func (r *fakeSubjectRepo) Delete(ctx context.Context, id uint) (int64, error) {
	if _, ok := r.f.subjects[id]; !ok {
		return 0, nil
	}
	delete(r.f.subjects, id)
	return 1, nil
}
