package recorder

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one half of an exchange. A recorded exchange is two turns, the
// user's question followed by the assistant's answer, ordered by CreatedAt.
type Turn struct {
	Id        string    `json:"id"`
	Owner     string    `json:"owner"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
