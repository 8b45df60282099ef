package services

import (
	"context"
	"sync"
	"time"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// In-memory repository fakes. Each guards its maps with a mutex so the
// concurrency tests exercise the same uniqueness guarantees the database
// index provides.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	cp := *user
	cp.UpdatedAt = time.Now()
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCourseRepo struct {
	mu          sync.Mutex
	nextID      int64
	courses     map[int64]*models.Course
	lessons     *fakeLessonRepo
	enrollments *fakeEnrollmentRepo
	users       *fakeUserRepo
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[int64]*models.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) GetByIDWithDetails(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.users != nil {
		if u, err := r.users.GetByID(ctx, course.InstructorID); err == nil {
			course.Instructor = &models.CourseInstructor{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	if r.lessons != nil {
		course.Lessons, _ = r.lessons.GetByCourseID(ctx, id)
	}
	return course, nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courses := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		cp := *c
		courses = append(courses, &cp)
	}
	return courses, nil
}

func (r *fakeCourseRepo) GetByInstructorID(_ context.Context, instructorID int64) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var courses []*models.Course
	for _, c := range r.courses {
		if c.InstructorID == instructorID {
			cp := *c
			courses = append(courses, &cp)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	if r.enrollments == nil {
		return nil, nil
	}
	facts, err := r.enrollments.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	var courses []*models.Course
	for _, e := range facts {
		if c, err := r.GetByID(ctx, e.CourseID); err == nil {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) CountByInstructorID(_ context.Context, instructorID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.courses {
		if c.InstructorID == instructorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	cp := *course
	cp.UpdatedAt = time.Now()
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) DeleteCascade(ctx context.Context, id int64) error {
	r.mu.Lock()
	if _, ok := r.courses[id]; !ok {
		r.mu.Unlock()
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	r.mu.Unlock()

	if r.lessons != nil {
		r.lessons.deleteByCourseID(id)
	}
	if r.enrollments != nil {
		r.enrollments.deleteByCourseID(id)
	}
	return nil
}

type fakeLessonRepo struct {
	mu      sync.Mutex
	nextID  int64
	lessons map[int64]*models.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[int64]*models.Lesson)}
}

func (r *fakeLessonRepo) Create(_ context.Context, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	lesson.ID = r.nextID
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	cp := *lesson
	r.lessons[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) GetByID(_ context.Context, id int64) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, apperrors.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLessonRepo) GetByCourseID(_ context.Context, courseID int64) ([]*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lessons []*models.Lesson
	for id := int64(1); id <= r.nextID; id++ {
		if l, ok := r.lessons[id]; ok && l.CourseID == courseID {
			cp := *l
			lessons = append(lessons, &cp)
		}
	}
	return lessons, nil
}

func (r *fakeLessonRepo) Update(_ context.Context, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[lesson.ID]; !ok {
		return apperrors.ErrLessonNotFound
	}
	cp := *lesson
	cp.UpdatedAt = time.Now()
	r.lessons[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return apperrors.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}

func (r *fakeLessonRepo) deleteByCourseID(courseID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.lessons {
		if l.CourseID == courseID {
			delete(r.lessons, id)
		}
	}
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentRepo struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[enrollmentKey]*models.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{byKey: make(map[enrollmentKey]*models.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey{enrollment.StudentID, enrollment.CourseID}
	if _, ok := r.byKey[key]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	r.nextID++
	enrollment.ID = r.nextID
	enrollment.CreatedAt = time.Now()
	cp := *enrollment
	r.byKey[key] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byKey[enrollmentKey{studentID, courseID}]
	return ok, nil
}

func (r *fakeEnrollmentRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var enrollments []*models.Enrollment
	for key, e := range r.byKey {
		if key.studentID == studentID {
			cp := *e
			enrollments = append(enrollments, &cp)
		}
	}
	return enrollments, nil
}

func (r *fakeEnrollmentRepo) CountByCourseID(_ context.Context, courseID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for key := range r.byKey {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) deleteByCourseID(courseID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.byKey {
		if key.courseID == courseID {
			delete(r.byKey, key)
		}
	}
}
