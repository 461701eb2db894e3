package services

import (
	"strconv"
	"time"

	"lms/models"
	analyticsModels "lms/models/analytics"
	courseModels "lms/models/course"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DayCount is one point of a per-day trend series.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// RangeCount is one bucket of the progress distribution histogram.
type RangeCount struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type CoursePopularity struct {
	CourseID        uint   `json:"course_id"`
	Title           string `json:"title"`
	EnrollmentCount int64  `json:"enrollment_count"`
}

type CourseProgressEntry struct {
	CourseID    uint    `json:"course_id"`
	CourseTitle string  `json:"course_title"`
	Progress    float64 `json:"progress"`
	Status      string  `json:"status"`
}

// AdminDashboard is the platform-wide aggregate view.
type AdminDashboard struct {
	TotalUsers       int64                 `json:"total_users"`
	ActiveUsers      int64                 `json:"active_users"`
	TotalCourses     int64                 `json:"total_courses"`
	TotalEnrollments int64                 `json:"total_enrollments"`
	CompletionRate   float64               `json:"completion_rate"`
	UserRoles        map[string]int64      `json:"user_roles"`
	CourseCategories map[string]int64      `json:"course_categories"`
	RecentActivities []models.UserActivity `json:"recent_activities"`
	PopularCourses   []CoursePopularity    `json:"popular_courses"`
	DailyLogins      []DayCount            `json:"daily_logins"`
	EnrollmentTrend  []DayCount            `json:"enrollment_trend"`
}

// UserDashboard is one learner's aggregate view.
type UserDashboard struct {
	EnrolledCourses   int64                 `json:"enrolled_courses"`
	CompletedCourses  int64                 `json:"completed_courses"`
	TotalLearningTime uint                  `json:"total_learning_time"`
	AverageProgress   float64               `json:"average_progress"`
	CourseProgress    []CourseProgressEntry `json:"course_progress"`
	RecentActivities  []models.UserActivity `json:"recent_activities"`
	LearningStreak    int                   `json:"learning_streak"`
}

// CourseDashboard is the per-course aggregate view.
type CourseDashboard struct {
	TotalEnrollments    int64            `json:"total_enrollments"`
	ActiveLearners      int64            `json:"active_learners"`
	CompletionRate      float64          `json:"completion_rate"`
	AverageRating       float64          `json:"average_rating"`
	EnrollmentTrend     []DayCount       `json:"enrollment_trend"`
	CompletionTrend     []DayCount       `json:"completion_trend"`
	StudentProgress     []RangeCount     `json:"student_progress"`
	RatingsDistribution map[string]int64 `json:"ratings_distribution"`
}

func windowStart(windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = 30
	}
	return time.Now().AddDate(0, 0, -windowDays)
}

func dailyCounts(db *gorm.DB, model interface{}, dateColumn, where string, args ...interface{}) []DayCount {
	rows := []DayCount{}
	db.Model(model).
		Select("DATE("+dateColumn+") as date, COUNT(*) as count").
		Where(where, args...).
		Group("DATE(" + dateColumn + ")").
		Order("date asc").
		Scan(&rows)
	return rows
}

// AdminDashboardStats composes the platform-wide view over a trailing window.
func AdminDashboardStats(db *gorm.DB, actor Identity, windowDays int) (*AdminDashboard, error) {
	if !actor.IsAdmin() {
		return nil, PermissionDenied("Access denied! Admin only.")
	}

	since := windowStart(windowDays)
	stats := &AdminDashboard{
		UserRoles:        map[string]int64{},
		CourseCategories: map[string]int64{},
	}

	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&stats.TotalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&stats.TotalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&stats.TotalEnrollments)

	db.Model(&models.UserActivity{}).Where("timestamp >= ?", since).Distinct("user_id").Count(&stats.ActiveUsers)

	var completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, courseModels.EnrollmentCompleted).
		Count(&completedEnrollments)
	if stats.TotalEnrollments > 0 {
		stats.CompletionRate = float64(completedEnrollments) / float64(stats.TotalEnrollments) * 100
	}

	var roleRows []struct {
		Role  string
		Count int64
	}
	db.Model(&models.User{}).Select("role, COUNT(*) as count").Where("is_deleted = ?", false).
		Group("role").Scan(&roleRows)
	for _, r := range roleRows {
		stats.UserRoles[r.Role] = r.Count
	}

	var categoryRows []struct {
		Name  string
		Count int64
	}
	db.Model(&courseModels.Course{}).
		Select("categories.name as name, COUNT(*) as count").
		Joins("JOIN categories ON categories.id = courses.category_id").
		Where("courses.is_deleted = ?", false).
		Group("categories.name").
		Scan(&categoryRows)
	for _, r := range categoryRows {
		stats.CourseCategories[r.Name] = r.Count
	}

	db.Order("timestamp desc").Limit(10).Find(&stats.RecentActivities)

	db.Model(&courseModels.Course{}).
		Select("courses.id as course_id, courses.title as title, COUNT(enrollments.id) as enrollment_count").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id AND enrollments.is_deleted = ?", false).
		Where("courses.is_deleted = ?", false).
		Group("courses.id, courses.title").
		Order("enrollment_count desc").
		Limit(5).
		Scan(&stats.PopularCourses)

	stats.DailyLogins = dailyCounts(db, &models.UserActivity{}, "timestamp",
		"action = ? AND timestamp >= ?", models.ActionLogin, since)
	stats.EnrollmentTrend = dailyCounts(db, &courseModels.Enrollment{}, "enrolled_at",
		"is_deleted = ? AND enrolled_at >= ?", false, since)

	return stats, nil
}

// UserStats composes one learner's view. Users see their own stats; admins see
// anyone's.
func UserStats(db *gorm.DB, actor Identity, targetUserID uint, windowDays int) (*UserDashboard, error) {
	if targetUserID == 0 {
		targetUserID = actor.UserID
	}
	if targetUserID != actor.UserID && !actor.IsAdmin() {
		return nil, PermissionDenied("You do not have permission to view stats for this user!")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&user).Error; err != nil {
		return nil, NotFound("User not found!")
	}

	stats := &UserDashboard{CourseProgress: []CourseProgressEntry{}}

	var enrollments []courseModels.Enrollment
	db.Where("user_id = ? AND is_deleted = ?", targetUserID, false).Find(&enrollments)

	stats.EnrolledCourses = int64(len(enrollments))
	progressSum := 0.0
	for _, e := range enrollments {
		if e.Status == courseModels.EnrollmentCompleted {
			stats.CompletedCourses++
		}
		progressSum += e.Progress

		var crs courseModels.Course
		db.Select("title").Where("id = ?", e.CourseID).First(&crs)
		stats.CourseProgress = append(stats.CourseProgress, CourseProgressEntry{
			CourseID:    e.CourseID,
			CourseTitle: crs.Title,
			Progress:    e.Progress,
			Status:      e.Status,
		})
	}
	if stats.EnrolledCourses > 0 {
		stats.AverageProgress = progressSum / float64(stats.EnrolledCourses)
	}

	var totalTime *uint
	db.Model(&analyticsModels.LearningMetric{}).Where("user_id = ?", targetUserID).
		Select("SUM(time_spent)").Scan(&totalTime)
	if totalTime != nil {
		stats.TotalLearningTime = *totalTime
	}

	stats.RecentActivities = RecentActivities(db, targetUserID, 10)
	stats.LearningStreak = learningStreak(db, targetUserID)

	return stats, nil
}

// learningStreak counts consecutive calendar days with activity, walking
// backward from today and stopping at the first gap of more than one day. The
// walk covers the full activity history, not just the dashboard window.
func learningStreak(db *gorm.DB, userID uint) int {
	var dates []string
	db.Model(&models.UserActivity{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("DATE(timestamp) as d", &dates)
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(dates))
	for _, ds := range dates {
		// Postgres may hand back a full timestamp representation.
		if len(ds) > 10 {
			ds = ds[:10]
		}
		d, err := time.Parse("2006-01-02", ds)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sortDaysDesc(days)

	today := now.BeginningOfDay()
	latest := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for _, day := range days {
		gap := int(latest.Sub(day).Hours() / 24)
		if gap <= 1 {
			streak++
			latest = day
		} else {
			break
		}
	}
	return streak
}

func sortDaysDesc(days []time.Time) {
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].After(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
}

// CourseStats composes the per-course view. Gated on read capability: the
// instructor, admins, and enrolled learners.
func CourseStats(db *gorm.DB, actor Identity, courseID uint, windowDays int) (*CourseDashboard, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, NotFound("Course not found!")
	}

	if !ResolveCapabilities(db, actor, &crs).Has(CapRead) {
		return nil, PermissionDenied("You do not have permission to view stats for this course!")
	}

	since := windowStart(windowDays)
	stats := &CourseDashboard{RatingsDistribution: map[string]int64{}}

	db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Count(&stats.TotalEnrollments)

	db.Model(&models.UserActivity{}).
		Where("course_id = ? AND timestamp >= ?", crs.ID, since).
		Where("user_id IN (?)", db.Model(&courseModels.Enrollment{}).Select("user_id").
			Where("course_id = ? AND is_deleted = ?", crs.ID, false)).
		Distinct("user_id").
		Count(&stats.ActiveLearners)

	var completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ? AND status = ?", crs.ID, false, courseModels.EnrollmentCompleted).
		Count(&completedEnrollments)
	if stats.TotalEnrollments > 0 {
		stats.CompletionRate = float64(completedEnrollments) / float64(stats.TotalEnrollments) * 100
	}

	var avgRating *float64
	db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Select("AVG(rating)").Scan(&avgRating)
	if avgRating != nil {
		stats.AverageRating = *avgRating
	}

	stats.EnrollmentTrend = dailyCounts(db, &courseModels.Enrollment{}, "enrolled_at",
		"course_id = ? AND is_deleted = ? AND enrolled_at >= ?", crs.ID, false, since)
	stats.CompletionTrend = dailyCounts(db, &courseModels.Enrollment{}, "completed_at",
		"course_id = ? AND is_deleted = ? AND completed_at IS NOT NULL AND completed_at >= ?", crs.ID, false, since)

	stats.StudentProgress = progressHistogram(db, crs.ID)

	var ratingRows []struct {
		Rating int
		Count  int64
	}
	db.Model(&courseModels.Review{}).Select("rating, COUNT(*) as count").
		Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Group("rating").Scan(&ratingRows)
	for _, r := range ratingRows {
		stats.RatingsDistribution[strconv.Itoa(r.Rating)] = r.Count
	}

	return stats, nil
}

// progressHistogram buckets every enrollment into one of five fixed ranges,
// evaluated in descending threshold order so each falls into exactly one.
func progressHistogram(db *gorm.DB, courseID uint) []RangeCount {
	var enrollments []courseModels.Enrollment
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&enrollments)

	buckets := map[string]int64{"0-25": 0, "26-50": 0, "51-75": 0, "76-99": 0, "100": 0}
	for _, e := range enrollments {
		switch {
		case e.Progress == 100:
			buckets["100"]++
		case e.Progress >= 76:
			buckets["76-99"]++
		case e.Progress >= 51:
			buckets["51-75"]++
		case e.Progress >= 26:
			buckets["26-50"]++
		default:
			buckets["0-25"]++
		}
	}

	ordered := []string{"0-25", "26-50", "51-75", "76-99", "100"}
	histogram := make([]RangeCount, 0, len(ordered))
	for _, r := range ordered {
		histogram = append(histogram, RangeCount{Range: r, Count: buckets[r]})
	}
	return histogram
}
