package league

import (
	"fmt"
	"strings"
	"time"
)

// League is a group of players and events run by one organizer.
type League struct {
	ID          string
	Name        string
	Description string
	OwnerUserID string
	InviteCode  string
	CreatedAt   time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.OwnerUserID == "" {
		return fmt.Errorf("league owner is required")
	}
	if l.InviteCode == "" {
		return fmt.Errorf("league invite code is required")
	}

	return nil
}

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Membership links a player to a league. Join requests start pending and
// become accepted when the owner approves them or the invite code is used.
type Membership struct {
	LeagueID    string
	PlayerID    string
	Status      MembershipStatus
	Role        Role
	RequestedAt time.Time
	JoinedAt    time.Time
}

func (m Membership) Accepted() bool {
	return m.Status == MembershipAccepted
}

func (m Membership) Validate() error {
	if m.LeagueID == "" || m.PlayerID == "" {
		return fmt.Errorf("membership league id and player id are required")
	}
	switch m.Status {
	case MembershipPending, MembershipAccepted:
	default:
		return fmt.Errorf("invalid membership status: %s", m.Status)
	}
	switch m.Role {
	case RoleOwner, RoleMember:
	default:
		return fmt.Errorf("invalid membership role: %s", m.Role)
	}

	return nil
}
