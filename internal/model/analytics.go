package model

// InstructorStats is the dashboard rollup for an instructor's own courses.
type InstructorStats struct {
	TotalCourses   int64   `json:"totalCourses"`
	TotalQuizzes   int64   `json:"totalQuizzes"`
	TotalStudents  int64   `json:"totalStudents"`
	AvgPerformance float64 `json:"avgPerformance"`
}

// StudentStats is the dashboard rollup for a student's own activity.
type StudentStats struct {
	EnrolledCourses  int64   `json:"enrolledCourses"`
	CoursesCompleted int64   `json:"coursesCompleted"`
	QuizzesCompleted int64   `json:"quizzesCompleted"`
	TotalQuizzes     int64   `json:"totalQuizzes"`
	OverallProgress  float64 `json:"overallProgress"`
}
