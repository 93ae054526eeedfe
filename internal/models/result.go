package models

// AnalysisResult is the fixed output contract of the resume analysis pipeline.
// Every code path through the analyzer yields a value of this shape; the match
// percentage stays a free-form string because the model is not guaranteed to
// return a strictly numeric value.
type AnalysisResult struct {
	JDMatch         string   `json:"jd_match"`
	MissingKeywords []string `json:"missing_keywords"`
	ProfileSummary  string   `json:"profile_summary"`
}

type AnalyzeResponse struct {
	JDMatch         string   `json:"jd_match"`
	MissingKeywords []string `json:"missing_keywords"`
	ProfileSummary  string   `json:"profile_summary"`
	ResumeFileName  string   `json:"resume_file_name"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message      string `json:"message"`
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type CreateReviewRequest struct {
	JobTitle        string   `json:"jobTitle"`
	JobDescription  string   `json:"jobDescription"`
	ResumeFileName  string   `json:"resumeFileName"`
	MatchScore      *int     `json:"matchScore"`
	MissingKeywords []string `json:"missingKeywords"`
	ProfileSummary  string   `json:"profileSummary"`
	Recommendations []string `json:"recommendations"`
}

type UpdateReviewRequest struct {
	JobTitle        *string  `json:"jobTitle"`
	JobDescription  *string  `json:"jobDescription"`
	ResumeFileName  *string  `json:"resumeFileName"`
	MatchScore      *int     `json:"matchScore"`
	MissingKeywords []string `json:"missingKeywords"`
	ProfileSummary  *string  `json:"profileSummary"`
	Recommendations []string `json:"recommendations"`
}

type ReviewListResponse struct {
	Reviews    []Review `json:"reviews"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	TotalPages int64    `json:"totalPages"`
}

type ReviewStats struct {
	TotalReviews  int64    `json:"totalReviews"`
	AverageScore  float64  `json:"averageScore"`
	BestScore     int      `json:"bestScore"`
	RecentReviews []Review `json:"recentReviews"`
}

type TrendingKeyword struct {
	Keyword      string  `json:"keyword"`
	Frequency    int     `json:"frequency"`
	AverageScore float64 `json:"averageScore"`
}

type SimilarReview struct {
	Review Review  `json:"review"`
	Score  float32 `json:"score"`
}

type ExportResponse struct {
	User       *User        `json:"user"`
	Reviews    []Review     `json:"reviews"`
	Stats      *ReviewStats `json:"stats"`
	ExportedAt string       `json:"exportedAt"`
}
