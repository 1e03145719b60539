package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// SoftwareVersion is the platform a client licenses.
type SoftwareVersion string

const (
	SoftwareComputer SoftwareVersion = "computer"
	SoftwareAndroid  SoftwareVersion = "android"
)

// ParseSoftwareVersion parses the wire form of a software version.
func ParseSoftwareVersion(s string) (SoftwareVersion, error) {
	switch v := SoftwareVersion(strings.ToLower(strings.TrimSpace(s))); v {
	case SoftwareComputer, SoftwareAndroid:
		return v, nil
	}
	return "", ErrInvalidSoftwareVersion
}

// Client is a subscribing customer owned by exactly one agent.
type Client struct {
	ID               string
	ClientName       string
	OrganizationName string
	ActivityType     string
	Phone            string
	Address          string
	ActivationCode   string
	DeviceCount      int
	SoftwareVersion  SoftwareVersion
	Subscription     Subscription
	Notes            string
	AgentID          string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Status classifies the client's subscription at now.
func (c Client) Status(now time.Time) SubscriptionStatus {
	return Classify(now, c.Subscription.End)
}

// ActivationCodeLength is the length of generated activation codes.
const ActivationCodeLength = 6

const activationAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateActivationCode returns a random uppercase base36 code.
func GenerateActivationCode() (string, error) {
	var sb strings.Builder
	sb.Grow(ActivationCodeLength)

	limit := big.NewInt(int64(len(activationAlphabet)))
	for range ActivationCodeLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(activationAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// DispositionKind is what happens to an agent's clients when it is deleted.
type DispositionKind string

const (
	DispositionNone     DispositionKind = ""
	DispositionTransfer DispositionKind = "transfer"
	DispositionCascade  DispositionKind = "cascade"
)

// Disposition is the caller's explicit choice for the clients of a deleted
// agent. The zero value means no choice was made.
type Disposition struct {
	Kind          DispositionKind
	TargetAgentID string
}

// Transfer moves every client to target.
func Transfer(target string) Disposition {
	return Disposition{Kind: DispositionTransfer, TargetAgentID: target}
}

// CascadeDelete deletes every client.
func CascadeDelete() Disposition {
	return Disposition{Kind: DispositionCascade}
}

// ParseDisposition parses the wire form of a disposition.
func ParseDisposition(kind, target string) (Disposition, error) {
	switch DispositionKind(strings.ToLower(strings.TrimSpace(kind))) {
	case DispositionNone:
		return Disposition{}, nil
	case DispositionTransfer:
		return Transfer(strings.TrimSpace(target)), nil
	case DispositionCascade:
		return CascadeDelete(), nil
	}
	return Disposition{}, ErrInvalidDisposition
}
