package services

// Services defined in this package:
// - AuthService: registration, login and profile retrieval
// - CourseService: course and lesson authoring with ownership checks
// - EnrollmentService: the student enrollment ledger
// - UserService: admin-side user management
