package httpapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// validate runs ozzo validation and tags failures as common.ErrValidation.
func validate(v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Name, validation.Length(0, 100)),
		// bcrypt only reads the first 72 bytes
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

// loginRequest accepts both the OAuth2 password form (username, password)
// and a JSON body (email, password).
type loginRequest struct {
	Email    string `json:"email" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type albumRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r albumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
	)
}

type albumResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type photoRequest struct {
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

func (r photoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
	)
}

type photoResponse struct {
	ID          int64     `json:"id"`
	AlbumID     int64     `json:"album_id"`
	UserID      int64     `json:"user_id"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type messageRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

func (r messageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 4000)),
		validation.Field(&r.Type, validation.In(models.MessageTypeText, models.MessageTypeSticker, models.MessageTypeImage)),
	)
}

type messageResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (r taskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

type taskResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type eventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
}

func (r eventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.Length(1, 50)),
	)
}

type eventResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

type statsResponse struct {
	TotalUsers         int64  `json:"total_users"`
	TotalAlbums        int64  `json:"total_albums"`
	TotalPhotos        int64  `json:"total_photos"`
	TotalMessages      int64  `json:"total_messages"`
	TotalTasks         int64  `json:"total_tasks"`
	TotalEvents        int64  `json:"total_events"`
	CompletedTasks     int64  `json:"completed_tasks"`
	TaskCompletionRate string `json:"task_completion_rate"`
}

type discoveryResponse struct {
	TokenEndpoint        string   `json:"token_endpoint"`
	GrantTypesSupported  []string `json:"grant_types_supported"`
	AuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
}

type messageOnlyResponse struct {
	Message string `json:"message"`
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func newAlbumResponse(a *models.Album) albumResponse {
	return albumResponse{ID: a.ID, UserID: a.UserID, Name: a.Name, Description: a.Description, CreatedAt: a.CreatedAt}
}

func newPhotoResponse(p *models.Photo) photoResponse {
	return photoResponse{ID: p.ID, AlbumID: p.AlbumID, UserID: p.UserID, URL: p.URL, Description: p.Description, CreatedAt: p.CreatedAt}
}

func newMessageResponse(m *models.Message) messageResponse {
	return messageResponse{ID: m.ID, UserID: m.UserID, Content: m.Content, Type: m.Type, IsHidden: m.IsHidden, CreatedAt: m.CreatedAt}
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID: t.ID, UserID: t.UserID, Title: t.Title, Description: t.Description,
		Completed: t.Completed, CreatedAt: t.CreatedAt, CompletedAt: t.CompletedAt,
	}
}

func newEventResponse(e *models.Event) eventResponse {
	return eventResponse{
		ID: e.ID, UserID: e.UserID, Title: e.Title, Description: e.Description,
		Date: e.Date, Type: e.Type, CreatedAt: e.CreatedAt,
	}
}

func newStatsResponse(s *models.SystemStats) statsResponse {
	return statsResponse{
		TotalUsers:         s.TotalUsers,
		TotalAlbums:        s.TotalAlbums,
		TotalPhotos:        s.TotalPhotos,
		TotalMessages:      s.TotalMessages,
		TotalTasks:         s.TotalTasks,
		TotalEvents:        s.TotalEvents,
		CompletedTasks:     s.CompletedTasks,
		TaskCompletionRate: s.TaskCompletionRate(),
	}
}
