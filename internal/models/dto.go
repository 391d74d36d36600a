package models

// ===== AUTH REQUESTS / RESPONSES =====

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CodeLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type SchoolLoginResponse struct {
	Token  string  `json:"token"`
	School *School `json:"school"`
}

type StudentLoginResponse struct {
	Token   string   `json:"token"`
	Student *Student `json:"student"`
}

// ===== SCHOOL REQUESTS =====

type SchoolCreateRequest struct {
	Name       string      `json:"name" validate:"required,min=1,max=200"`
	StudyType  StudyType   `json:"study_type" validate:"required,oneof=morning evening"`
	Level      SchoolLevel `json:"level" validate:"required,oneof=primary middle secondary preparatory"`
	GenderType GenderType  `json:"gender_type" validate:"required,oneof=boys girls mixed"`
}

type SchoolUpdateRequest struct {
	Name       string      `json:"name" validate:"required,min=1,max=200"`
	StudyType  StudyType   `json:"study_type" validate:"required,oneof=morning evening"`
	Level      SchoolLevel `json:"level" validate:"required,oneof=primary middle secondary preparatory"`
	GenderType GenderType  `json:"gender_type" validate:"required,oneof=boys girls mixed"`
}

// ===== STUDENT REQUESTS =====

type StudentCreateRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Grade    string `json:"grade" validate:"required,max=100"`
	Branch   string `json:"branch" validate:"max=100"`
	Room     string `json:"room" validate:"required,max=100"`
}

// StudentUpdateRequest rewrites the student's profile. The embedded record
// blobs are optional; when omitted they are left untouched.
type StudentUpdateRequest struct {
	FullName        string                 `json:"full_name" validate:"required,min=1,max=200"`
	Grade           string                 `json:"grade" validate:"required,max=100"`
	Branch          string                 `json:"branch" validate:"max=100"`
	Room            string                 `json:"room" validate:"required,max=100"`
	DetailedScores  map[string]interface{} `json:"detailed_scores"`
	DailyAttendance map[string]interface{} `json:"daily_attendance"`
}

// StudentRecordsRequest replaces only the embedded academic records.
type StudentRecordsRequest struct {
	DetailedScores  map[string]interface{} `json:"detailed_scores"`
	DailyAttendance map[string]interface{} `json:"daily_attendance"`
}

// ===== SUBJECT REQUESTS =====

type SubjectCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type SubjectUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ===== GENERIC RESPONSES =====

type UpdatedResponse struct {
	Updated int64 `json:"updated"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
