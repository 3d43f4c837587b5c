// Package discord posts reservation activity to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
	pkgdiscord "evenza/pkg/discord"
)

var _ output.ReservationNotifier = (*Notifier)(nil)

// ChannelSender is the part of *discordgo.Session the notifier uses.
type ChannelSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type notification struct {
	event       entities.Event
	reservation entities.Reservation
}

// Notifier queues reservation changes and posts them from Run. A full
// queue drops the notification; transitions never wait on Discord.
type Notifier struct {
	sender    ChannelSender
	channelID string
	tr        output.T
	locale    string
	timeout   time.Duration
	queue     chan notification
}

func NewNotifier(sender ChannelSender, channelID string, tr output.T, locale string) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		tr:        tr,
		locale:    locale,
		timeout:   10 * time.Second,
		queue:     make(chan notification, 256),
	}
}

// NewSession opens a REST-only Discord session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return s, nil
}

func (n *Notifier) ReservationChanged(_ context.Context, event entities.Event, r entities.Reservation) {
	select {
	case n.queue <- notification{event: event, reservation: r}:
	default:
		log.Warn().Str("reservation_id", r.ID).Msg("discord queue full, notification dropped")
	}
}

// Run delivers queued notifications until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.queue:
			n.send(ctx, msg)
		}
	}
}

func (n *Notifier) send(ctx context.Context, msg notification) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	status := n.tr.T(n.locale, "status_"+string(msg.reservation.Status), nil)
	title := n.tr.T(n.locale, "notify_reservation", map[string]any{
		"Code":   pkgdiscord.ShortCode(msg.reservation.ID),
		"Event":  msg.event.Title,
		"Status": status,
	})
	embed := pkgdiscord.BuildReservationEmbed(msg.event, msg.reservation, title, status)
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		log.Error().Err(err).Str("reservation_id", msg.reservation.ID).Msg("discord notification failed")
		return
	}
	log.Debug().Str("reservation_id", msg.reservation.ID).Str("channel_id", n.channelID).Msg("discord notification sent")
}
