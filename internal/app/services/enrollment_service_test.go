package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

type enrollmentTestEnv struct {
	users       *fakeUserRepo
	courses     *fakeCourseRepo
	enrollments *fakeEnrollmentRepo
	svc         EnrollmentService

	instructor *models.User
	student    *models.User
	course     *models.Course
}

func newEnrollmentTestEnv(t *testing.T) *enrollmentTestEnv {
	t.Helper()

	env := &enrollmentTestEnv{
		users:       newFakeUserRepo(),
		courses:     newFakeCourseRepo(),
		enrollments: newFakeEnrollmentRepo(),
	}
	env.courses.users = env.users
	env.courses.enrollments = env.enrollments

	env.instructor = &models.User{Name: "Ina Structor", Email: "ina@example.com", Password: "x", RoleType: models.RoleInstructor}
	if err := env.users.Create(context.Background(), env.instructor); err != nil {
		t.Fatalf("seeding instructor: %v", err)
	}
	env.student = &models.User{Name: "Stu Dent", Email: "stu@example.com", Password: "x", RoleType: models.RoleStudent}
	if err := env.users.Create(context.Background(), env.student); err != nil {
		t.Fatalf("seeding student: %v", err)
	}

	env.course = &models.Course{Title: "Intro to Databases", Description: "d", InstructorID: env.instructor.ID}
	if err := env.courses.Create(context.Background(), env.course); err != nil {
		t.Fatalf("seeding course: %v", err)
	}

	env.svc = NewEnrollmentService(env.enrollments, env.courses, zerolog.Nop())
	return env
}

func TestEnrollRecordsFact(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	enrollment, err := env.svc.Enroll(context.Background(), env.student.ID, env.course.ID)
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if enrollment.ID == 0 {
		t.Error("expected a persisted enrollment id")
	}
	if enrollment.StudentID != env.student.ID || enrollment.CourseID != env.course.ID {
		t.Errorf("unexpected enrollment fact: %+v", enrollment)
	}
}

func TestEnrollInMissingCourseIsNotFound(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	if _, err := env.svc.Enroll(context.Background(), env.student.ID, 999); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollRejectsCourseOwner(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	if _, err := env.svc.Enroll(context.Background(), env.instructor.ID, env.course.ID); !errors.Is(err, apperrors.ErrOwnCourseEnrollment) {
		t.Fatalf("expected ErrOwnCourseEnrollment, got %v", err)
	}
}

func TestEnrollTwiceRejectsSecondAttempt(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	if _, err := env.svc.Enroll(context.Background(), env.student.ID, env.course.ID); err != nil {
		t.Fatalf("first Enroll returned error: %v", err)
	}
	if _, err := env.svc.Enroll(context.Background(), env.student.ID, env.course.ID); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	count, _ := env.enrollments.CountByCourseID(context.Background(), env.course.ID)
	if count != 1 {
		t.Errorf("expected exactly 1 enrollment fact, got %d", count)
	}
}

// countingEnrollmentRepo tallies inserts so tests can tell the duplicate
// pre-check apart from the index-violation path.
type countingEnrollmentRepo struct {
	*fakeEnrollmentRepo
	creates int
}

func (r *countingEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.creates++
	return r.fakeEnrollmentRepo.Create(ctx, enrollment)
}

func TestEnrollDuplicateShortCircuitsBeforeInsert(t *testing.T) {
	env := newEnrollmentTestEnv(t)
	counting := &countingEnrollmentRepo{fakeEnrollmentRepo: env.enrollments}
	svc := NewEnrollmentService(counting, env.courses, zerolog.Nop())

	if _, err := svc.Enroll(context.Background(), env.student.ID, env.course.ID); err != nil {
		t.Fatalf("first Enroll returned error: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), env.student.ID, env.course.ID); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if counting.creates != 1 {
		t.Errorf("expected the duplicate to be rejected before insert, got %d inserts", counting.creates)
	}
}

func TestConcurrentEnrollYieldsExactlyOneFact(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Enroll(context.Background(), env.student.ID, env.course.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			duplicates++
		default:
			t.Errorf("unexpected error from concurrent Enroll: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful enrollment, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicate rejections, got %d", attempts-1, duplicates)
	}
	count, _ := env.enrollments.CountByCourseID(context.Background(), env.course.ID)
	if count != 1 {
		t.Errorf("expected exactly 1 recorded fact, got %d", count)
	}
}

func TestListForStudentReturnsEnrolledCourses(t *testing.T) {
	env := newEnrollmentTestEnv(t)

	second := &models.Course{Title: "Distributed Systems", Description: "d", InstructorID: env.instructor.ID}
	if err := env.courses.Create(context.Background(), second); err != nil {
		t.Fatalf("seeding second course: %v", err)
	}

	if _, err := env.svc.Enroll(context.Background(), env.student.ID, env.course.ID); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}

	courses, err := env.svc.ListForStudent(context.Background(), env.student.ID)
	if err != nil {
		t.Fatalf("ListForStudent returned error: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 enrolled course, got %d", len(courses))
	}
	if courses[0].ID != env.course.ID {
		t.Errorf("expected course %d, got %d", env.course.ID, courses[0].ID)
	}
}
