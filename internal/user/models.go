package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the local record kept for each external identity that has been
// issued a credential. Exactly one record exists per external subject id;
// the first-seen display name wins and is never updated afterwards.
type User struct {
	ID          uuid.UUID
	SubjectID   string
	DisplayName string
	Phone       string
	CreatedAt   time.Time
}
