package model

import "time"

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization,omitempty"`
	Title        string    `json:"title,omitempty"`
	Placeholder  bool      `json:"placeholder,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Track       string    `json:"track,omitempty"`
	Capacity    int       `json:"capacity"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Classification string    `json:"classification"`
	Department     string    `json:"department,omitempty"`
	Description    string    `json:"description,omitempty"`
	PIProfileID    string    `json:"pi_profile_id,omitempty"`
	PartnerID      *string   `json:"partner_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Opportunity struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	SponsorOrganization string    `json:"sponsor_organization"`
	Type                string    `json:"type,omitempty"`
	Description         string    `json:"description,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type Partner struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	OrganizationType string    `json:"organization_type,omitempty"`
	ContactName      string    `json:"contact_name,omitempty"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	Website          string    `json:"website,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RSVP struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Connection struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	RecipientID string    `json:"recipient_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ScanCode struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
