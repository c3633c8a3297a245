package user

import "fmt"

// Principal is the identity resolved from a verified access token.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("principal user id is required")
	}

	return nil
}
