package models

// Application records that a user applied to a job
type Application struct {
	Username string `json:"username"`
	JobID    int64  `json:"job_id"`
}
