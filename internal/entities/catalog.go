package entities

import (
	"time"
)

// Role names seeded at migration time. Review import requires RoleUser to
// exist before any user is auto-created.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// Book is a catalog entry. The ID is assigned from the source dataset during
// import (no surrogate generation) so that review rows can reference it;
// books created through the API get a generated ID instead.
type Book struct {
	ID                      uint64    `gorm:"primaryKey" json:"id"`
	ISBN                    *string   `gorm:"size:20;index" json:"isbn,omitempty"`
	ISBN13                  float64   `gorm:"default:0" json:"isbn13"`
	Name                    *string   `gorm:"size:512;index" json:"name,omitempty"`
	OriginalPublicationYear float64   `gorm:"default:0" json:"original_publication_year"`
	OriginalTitle           *string   `gorm:"size:1000" json:"original_title,omitempty"`
	Title                   *string   `gorm:"size:1000" json:"title,omitempty"`
	LangCode                *string   `gorm:"size:20" json:"lang_code,omitempty"`
	ImageURL                *string   `gorm:"type:text" json:"image_url,omitempty"`
	SmallImageURL           *string   `gorm:"size:1000" json:"small_image_url,omitempty"`
	RatingCount             int       `gorm:"default:0" json:"rating_count"`
	RatingAvg               float64   `gorm:"default:0" json:"rating_avg"`
	Reviews                 []Review  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint64    `gorm:"index;not null" json:"book_id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	Rating    int       `json:"rating"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User holds credentials and role assignments. Like Book, the ID is taken
// from the source dataset when a user is auto-created during review import;
// users registered through the API get a generated ID.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Roles     []Role    `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`
}

// Token is an issued bearer token. Tokens are persisted so they can be
// revoked individually and validated against the database on each request.
type Token struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:512" json:"token"`
	UserID    uint64    `gorm:"index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Expired   bool      `gorm:"default:false" json:"expired"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportRun records one execution of the CSV import job. The RunAt timestamp
// is supplied by the caller so repeated runs stay distinguishable.
type ImportRun struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	RunAt           time.Time    `gorm:"index" json:"run_at"`
	Status          ImportStatus `gorm:"size:20;default:'pending'" json:"status"`
	BooksImported   int          `json:"books_imported"`
	ReviewsImported int          `json:"reviews_imported"`
	ReviewsSkipped  int          `json:"reviews_skipped"`
	UsersCreated    int          `json:"users_created"`
	Error           string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt       time.Time    `json:"started_at"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (Review) TableName() string {
	return "reviews"
}

func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Token) TableName() string {
	return "tokens"
}

func (ImportRun) TableName() string {
	return "import_runs"
}

// HasRole reports whether the user has been granted the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
