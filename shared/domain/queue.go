package domain

import (
	"regexp"
	"time"
)

// QueueIdPattern is the character set accepted for queue identifiers.
// Routers reuse it so that every queue a user can create is reachable.
const QueueIdPattern = `[a-zA-Z0-9_-]+`

var queueIdRegex = regexp.MustCompile(`^` + QueueIdPattern + `$`)

// Top-level paths served by the application itself. A queue with one of
// these ids could never be reached through the HTML routes.
var reservedQueueIds = map[QueueId]struct{}{
	"api":     {},
	"health":  {},
	"ready":   {},
	"metrics": {},
	"static":  {},
}

type Queue struct {
	Id        QueueId   `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidQueueId reports whether id matches QueueIdPattern.
func ValidQueueId(id QueueId) bool {
	return queueIdRegex.MatchString(id)
}

func IsReservedQueueId(id QueueId) bool {
	_, ok := reservedQueueIds[id]
	return ok
}
