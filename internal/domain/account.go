package domain

import "time"

// Account types. Each type lives in its own DynamoDB collection; an email is
// meant to identify at most one account across the lawyer and client collections.
const (
	RoleAdmin  = "Admin"
	RoleLawyer = "Lawyer"
	RoleClient = "Client"
)

// DefaultProfilePicture is stored when no picture was uploaded at registration.
const DefaultProfilePicture = "default.jpg"

// Account is a persisted user record (admin, lawyer or client). Role-specific
// fields are zero-valued for the roles they don't apply to.
type Account struct {
	AccountID      string    `json:"id" dynamodbav:"account_id"`
	FirstName      string    `json:"first_name" dynamodbav:"first_name"`
	LastName       string    `json:"last_name" dynamodbav:"last_name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          string    `json:"ph_number" dynamodbav:"ph_number"`
	Address        string    `json:"address" dynamodbav:"address"`
	PasswordHash   string    `json:"-" dynamodbav:"password_hash"`
	ProfilePicture string    `json:"profile_picture" dynamodbav:"profile_picture"`
	Verified       bool      `json:"verified" dynamodbav:"verified"`
	AccountType    string    `json:"account_type" dynamodbav:"account_type"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`

	// Lawyer only.
	Fees              float64  `json:"fees,omitempty" dynamodbav:"fees"`
	Specializations   []string `json:"specializations,omitempty" dynamodbav:"specializations"`
	YearsOfExperience int      `json:"years_of_experience,omitempty" dynamodbav:"years_of_experience"`
	Universities      string   `json:"universities,omitempty" dynamodbav:"universities"`
	Rating            float64  `json:"rating,omitempty" dynamodbav:"rating"`
	RatingCount       int      `json:"rating_count,omitempty" dynamodbav:"rating_count"`

	// Client only.
	Preferences string `json:"preferences,omitempty" dynamodbav:"preferences"`
}

// RegisterLawyerRequest carries the fields a lawyer supplies at initiation.
// The field set is closed; unknown JSON fields are rejected at decode time.
type RegisterLawyerRequest struct {
	FirstName         string   `json:"first_name" validate:"required"`
	LastName          string   `json:"last_name" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Password          string   `json:"password" validate:"required,min=8,max=72"`
	Phone             string   `json:"ph_number" validate:"omitempty,e164"`
	Address           string   `json:"address"`
	Fees              float64  `json:"fees" validate:"gte=0"`
	Specializations   []string `json:"specializations"`
	YearsOfExperience int      `json:"years_of_experience" validate:"gte=0"`
	Universities      string   `json:"universities"`
}

// RegisterClientRequest carries the fields a client supplies at initiation.
type RegisterClientRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Phone       string `json:"ph_number" validate:"omitempty,e164"`
	Address     string `json:"address"`
	Preferences string `json:"preferences"`
}

// RegisterAdminRequest is used by the trusted admin surface; no OTP step.
type RegisterAdminRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Phone     string `json:"ph_number"`
	Address   string `json:"address"`
}

// UpdateProfileRequest is a partial update of an account's own profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName         *string   `json:"first_name"`
	LastName          *string   `json:"last_name"`
	Phone             *string   `json:"ph_number"`
	Address           *string   `json:"address"`
	Fees              *float64  `json:"fees"`
	Specializations   *[]string `json:"specializations"`
	YearsOfExperience *int      `json:"years_of_experience"`
	Universities      *string   `json:"universities"`
	Preferences       *string   `json:"preferences"`
}
