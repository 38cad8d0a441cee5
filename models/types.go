package models

// BoardStatus is the lifecycle phase of a board.
type BoardStatus string

// Board status constants
const (
	StatusRegistering    BoardStatus = "registering"
	StatusVoting         BoardStatus = "voting"
	StatusActionPlanning BoardStatus = "action-planning"
	StatusClosed         BoardStatus = "closed"
)

// Item category constants
const (
	CategoryGlad = "glad"
	CategoryMad  = "mad"
	CategorySad  = "sad"
)

// Action constants used by the PATCH/POST action payloads
const (
	ActionArchive   = "archive"
	ActionUnarchive = "unarchive"
	ActionStart     = "start"
	ActionStop      = "stop"
	ActionReveal    = "reveal"
	ActionHide      = "hide"
	ActionVote      = "vote"
	ActionUnvote    = "unvote"
)

// Domain types
//
// All timestamps are Unix milliseconds.

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// Public returns a copy of the user safe to send to clients.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type RetroItem struct {
	ID                string   `json:"id"`
	Content           string   `json:"content"`
	Category          string   `json:"category"`
	AuthorID          string   `json:"authorId"`
	AuthorName        string   `json:"authorName"`
	IsRevealed        bool     `json:"isRevealed"`
	CreatedAt         int64    `json:"createdAt"`
	Votes             []string `json:"votes"`
	ActionItem        string   `json:"actionItem,omitempty"`
	ResponsiblePerson string   `json:"responsiblePerson,omitempty"`
}

type Timer struct {
	StartTime       int64 `json:"startTime"`
	DurationMinutes int   `json:"durationMinutes"`
	IsActive        bool  `json:"isActive"`
}

type RetroBoard struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	CreatedBy       string      `json:"createdBy"`
	CreatedByUserID string      `json:"createdByUserId,omitempty"`
	CreatedAt       int64       `json:"createdAt"`
	Items           []RetroItem `json:"items"`
	Participants    []string    `json:"participants"`
	IsArchived      bool        `json:"isArchived"`
	ArchivedAt      *int64      `json:"archivedAt,omitempty"`
	ArchivedBy      string      `json:"archivedBy,omitempty"`
	Status          BoardStatus `json:"status"`
	Timer           *Timer      `json:"timer,omitempty"`
	Revision        int64       `json:"revision"`
}

type BoardSummary struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	CreatedBy        string      `json:"createdBy"`
	CreatedByUserID  string      `json:"createdByUserId,omitempty"`
	CreatedAt        int64       `json:"createdAt"`
	Status           BoardStatus `json:"status"`
	ParticipantCount int         `json:"participantCount"`
	ItemCount        int         `json:"itemCount"`
	IsArchived       bool        `json:"isArchived"`
	ArchivedAt       *int64      `json:"archivedAt,omitempty"`
	ArchivedBy       string      `json:"archivedBy,omitempty"`
}

// Request types
//
// Identity fields (userName, authorName, createdBy) are optional: the acting
// user comes from the session. When present they must name the session user.

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateBoardRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	CreatedBy string `json:"createdBy"`
}

type JoinBoardRequest struct {
	UserName string `json:"userName"`
}

type ArchiveRequest struct {
	Action   string `json:"action" validate:"required,oneof=archive unarchive"`
	UserName string `json:"userName"`
}

type DeleteBoardRequest struct {
	UserName string `json:"userName"`
}

type TimerRequest struct {
	Action          string `json:"action" validate:"required,oneof=start stop"`
	DurationMinutes int    `json:"durationMinutes" validate:"gte=0,lte=1440"`
}

type StatusRequest struct {
	Status   BoardStatus `json:"status" validate:"required"`
	UserName string      `json:"userName"`
}

type CreateItemRequest struct {
	Content    string `json:"content" validate:"required,max=2000"`
	Category   string `json:"category" validate:"required,oneof=glad mad sad"`
	AuthorName string `json:"authorName"`
}

type EditItemRequest struct {
	Content    string `json:"content" validate:"required,max=2000"`
	AuthorName string `json:"authorName"`
}

type DeleteItemRequest struct {
	AuthorName string `json:"authorName"`
}

type RevealRequest struct {
	Action     string `json:"action" validate:"required,oneof=reveal hide"`
	AuthorName string `json:"authorName"`
}

type ActionItemRequest struct {
	ActionItem        string `json:"actionItem" validate:"max=2000"`
	ResponsiblePerson string `json:"responsiblePerson" validate:"max=100"`
	UserName          string `json:"userName"`
}

type VoteRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=vote unvote"`
	UserName string `json:"userName"`
}

// Response types

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type VoteResponse struct {
	Item               RetroItem `json:"item"`
	UserVotesRemaining int       `json:"userVotesRemaining"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BoardEvent is pushed to event stream subscribers.
type BoardEvent struct {
	Type  string      `json:"type"`
	Board *RetroBoard `json:"board,omitempty"`
}

// Board event types
const (
	EventSnapshot = "snapshot"
	EventDeleted  = "deleted"
)

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
