package discord

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/infrastructure/i18n"
)

type sentEmbed struct {
	channelID string
	embed     *discordgo.MessageEmbed
}

type fakeSender struct {
	mu   sync.Mutex
	sent chan sentEmbed
	err  error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent <- sentEmbed{channelID: channelID, embed: embed}
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ChannelID: channelID}, nil
}

func TestNotifier_PostsReservationChange(t *testing.T) {
	sender := &fakeSender{sent: make(chan sentEmbed, 1)}
	n := NewNotifier(sender, "123", i18n.NewTranslator("en"), "en")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Run(ctx)

	n.ReservationChanged(ctx,
		entities.Event{ID: "e1", Title: "Jazz", Capacity: 10, Status: domain.EventPublished},
		entities.Reservation{ID: "abcd1234-xyz", EventID: "e1", UserID: "u1", Status: domain.ReservationConfirmed},
	)

	select {
	case got := <-sender.sent:
		assert.Equal(t, "123", got.channelID)
		assert.Equal(t, `Reservation ABCD1234 for "Jazz": Confirmed`, got.embed.Title)
		require.Len(t, got.embed.Fields, 3)
		assert.Equal(t, "Confirmed", got.embed.Fields[1].Value)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
	}
}

func TestNotifier_SendFailureIsContained(t *testing.T) {
	sender := &fakeSender{sent: make(chan sentEmbed, 1), err: errors.New("rate limited")}
	n := NewNotifier(sender, "123", i18n.NewTranslator("fr"), "fr")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Run(ctx)

	n.ReservationChanged(ctx, entities.Event{ID: "e1"}, entities.Reservation{ID: "r1", Status: domain.ReservationPending})
	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification not attempted")
	}
}

func TestNotifier_DropsWhenQueueFull(t *testing.T) {
	n := NewNotifier(&fakeSender{sent: make(chan sentEmbed, 1)}, "123", i18n.NewTranslator("fr"), "fr")
	for range cap(n.queue) + 5 {
		n.ReservationChanged(context.Background(), entities.Event{}, entities.Reservation{ID: "r"})
	}
	assert.Len(t, n.queue, cap(n.queue))
}
