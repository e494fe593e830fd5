package main

import (
	"strings"
	"testing"

	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestTopicFor(t *testing.T) {
	tests := []struct {
		eventType     domain.EventType
		aggregateType domain.AggregateType
		want          string
	}{
		{domain.EventPlayerCreated, domain.AggregatePlayer, "pokerledger.ledger.player.created"},
		{domain.EventSessionRecorded, domain.AggregateSession, "pokerledger.ledger.session.recorded"},
		{domain.EventSessionRevised, domain.AggregateSession, "pokerledger.ledger.session.revised"},
		{domain.EventSessionRemoved, domain.AggregateSession, "pokerledger.ledger.session.removed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			row := repository.OutboxRow{OutboxDraft: domain.OutboxDraft{
				AggregateType: tt.aggregateType,
				EventType:     tt.eventType,
			}}
			topic := topicFor(row)
			assert.Equal(t, tt.want, topic)
			// The aggregate segment appears exactly once.
			assert.Equal(t, 1, strings.Count(topic, string(tt.aggregateType)))
		})
	}
}
