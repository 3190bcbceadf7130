package model

import (
	"strings"
	"time"
)

// MemberInput is a member record as submitted by the registration form.
type MemberInput struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"required,phone"`
	College        string `json:"college" validate:"required,min=2,max=255"`
	RollNo         string `json:"rollNo" validate:"max=64"`
	DietPreference string `json:"dietPreference" validate:"required,diet"`
}

// RegisterRequest is the JSON document sent in the "data" multipart field.
type RegisterRequest struct {
	TeamName      string        `json:"teamName" validate:"required,min=3,max=255"`
	Track         string        `json:"track" validate:"required,track"`
	Leader        MemberInput   `json:"leader"`
	Members       []MemberInput `json:"members" validate:"min=1,max=4,dive"`
	TransactionID string        `json:"transactionId" validate:"required,min=4,max=255"`
	Accommodation bool          `json:"accommodation"`
}

// Normalize trims every string field in place.
func (r *RegisterRequest) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.Track = strings.TrimSpace(r.Track)
	r.TransactionID = strings.TrimSpace(r.TransactionID)
	r.Leader.normalize()
	for i := range r.Members {
		r.Members[i].normalize()
	}
}

func (m *MemberInput) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.College = strings.TrimSpace(m.College)
	m.RollNo = strings.TrimSpace(m.RollNo)
	m.DietPreference = strings.TrimSpace(m.DietPreference)
}

// TeamSize returns leader plus members.
func (r *RegisterRequest) TeamSize() int {
	return 1 + len(r.Members)
}

// MembersData returns the stored member list, leader first.
func (r *RegisterRequest) MembersData() []Member {
	out := make([]Member, 0, r.TeamSize())
	out = append(out, r.Leader.toMember())
	for _, m := range r.Members {
		out = append(out, m.toMember())
	}
	return out
}

func (m MemberInput) toMember() Member {
	return Member{
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		College:        m.College,
		RollNo:         m.RollNo,
		DietPreference: m.DietPreference,
	}
}

// ProofFile is an uploaded payment screenshot.
type ProofFile struct {
	Filename string
	Data     []byte
}

// ApplicationResponse represents an application in API responses.
type ApplicationResponse struct {
	ID                   string        `json:"id"`
	LeaderUserID         string        `json:"leader_user_id"`
	TeamName             string        `json:"team_name"`
	Track                string        `json:"track"`
	MembersData          []Member      `json:"members_data"`
	TeamSize             int           `json:"team_size"`
	TransactionID        string        `json:"transaction_id"`
	PaymentScreenshotURL *string       `json:"payment_screenshot_url"`
	AccommodationNeeded  bool          `json:"accommodation_needed"`
	PaymentStatus        PaymentStatus `json:"payment_status"`
	State                State         `json:"state"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
	PaymentVerifiedAt    *time.Time    `json:"payment_verified_at"`
}

// NewApplicationResponse converts a stored team into its API form.
func NewApplicationResponse(t *Team) ApplicationResponse {
	members := []Member(t.MembersData)
	if members == nil {
		members = []Member{}
	}
	return ApplicationResponse{
		ID:                   t.ID.String(),
		LeaderUserID:         t.LeaderUserID,
		TeamName:             t.TeamName,
		Track:                t.Track,
		MembersData:          members,
		TeamSize:             len(members),
		TransactionID:        t.TransactionID,
		PaymentScreenshotURL: t.PaymentScreenshotURL,
		AccommodationNeeded:  t.AccommodationNeeded,
		PaymentStatus:        t.PaymentStatus,
		State:                StateFor(t.PaymentStatus),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
		PaymentVerifiedAt:    t.PaymentVerifiedAt,
	}
}

// NewApplicationList converts teams, never returning nil.
func NewApplicationList(teams []Team) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(teams))
	for i := range teams {
		out = append(out, NewApplicationResponse(&teams[i]))
	}
	return out
}

// ReviewEventResponse represents a review event in API responses.
type ReviewEventResponse struct {
	ActorEmail string        `json:"actor_email"`
	FromStatus PaymentStatus `json:"from_status"`
	ToStatus   PaymentStatus `json:"to_status"`
	Reason     *string       `json:"reason,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ApplicationDetail is an application with its review history.
type ApplicationDetail struct {
	ApplicationResponse
	ReviewEvents []ReviewEventResponse `json:"review_events"`
}

// NewApplicationDetail builds the detail view of t.
func NewApplicationDetail(t *Team, events []ReviewEvent) ApplicationDetail {
	out := ApplicationDetail{
		ApplicationResponse: NewApplicationResponse(t),
		ReviewEvents:        make([]ReviewEventResponse, 0, len(events)),
	}
	for _, e := range events {
		out.ReviewEvents = append(out.ReviewEvents, ReviewEventResponse{
			ActorEmail: e.ActorEmail,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Reason:     e.Reason,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

// SubmitResult is returned by submit and resubmit.
type SubmitResult struct {
	Application      ApplicationResponse `json:"application"`
	NotificationSent bool                `json:"notification_sent"`
}

// ReviewResult is returned by approve and reject.
// Changed is false when the application already had the requested status.
type ReviewResult struct {
	Application      ApplicationResponse `json:"application"`
	Changed          bool                `json:"changed"`
	NotificationSent bool                `json:"notification_sent"`
}

// RejectRequest is the optional body of a reject call.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Identity is the caller as seen by the resolver response.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ResolveResult is the caller's derived application state.
type ResolveResult struct {
	Authenticated bool                 `json:"authenticated"`
	IsAdmin       bool                 `json:"is_admin"`
	User          *Identity            `json:"user,omitempty"`
	State         State                `json:"state"`
	Application   *ApplicationResponse `json:"application"`
}

// Options describes the registration form constraints.
type Options struct {
	Tracks            []string `json:"tracks"`
	DietPreferences   []string `json:"diet_preferences"`
	MinTeamSize       int      `json:"min_team_size"`
	MaxTeamSize       int      `json:"max_team_size"`
	MaxProofSizeBytes int64    `json:"max_proof_size_bytes"`
	ProofContentTypes []string `json:"proof_content_types"`
	ResubmissionMode  string   `json:"resubmission_mode"`
}
