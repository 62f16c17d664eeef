package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventStandingsUpdated  EventType = "standings-updated"
	EventPairingsGenerated EventType = "pairings-generated"
	EventScoresSaved       EventType = "scores-saved"
)
