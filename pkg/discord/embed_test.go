package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

func TestShortCode(t *testing.T) {
	assert.Equal(t, "0B9F6D1E", ShortCode("0b9f6d1e-6f0c-4a55-9d43-1f1a4f1c2b11"))
	assert.Equal(t, "ABCDEFGH", ShortCode("abcdefghijkl"))
	assert.Equal(t, "R1", ShortCode("r1"))
}

func TestBuildReservationEmbed(t *testing.T) {
	event := entities.Event{
		ID: "e1", Title: "Jazz", Location: "Lyon", Capacity: 40, Status: domain.EventPublished,
		Date: time.Date(2026, 7, 14, 20, 0, 0, 0, time.UTC),
	}
	r := entities.Reservation{
		ID: "0b9f6d1e-6f0c", EventID: "e1", UserID: "u1", Status: domain.ReservationConfirmed,
		UpdatedAt: time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC),
	}

	embed := BuildReservationEmbed(event, r, "Réservation", "Confirmée")
	assert.Equal(t, "Réservation", embed.Title)
	assert.Equal(t, 0x57F287, embed.Color)
	assert.Equal(t, "**Jazz**\n14/07/2026 22:00 • Lyon", embed.Description)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "0B9F6D1E", embed.Fields[0].Value)
	assert.Equal(t, "Confirmée", embed.Fields[1].Value)
	assert.Equal(t, "2026-07-01T08:00:00Z", embed.Timestamp)
}
