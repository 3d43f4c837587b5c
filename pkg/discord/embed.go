// Package discord builds the Discord messages posted about reservations.
package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/pkg/tz"
)

const (
	embedColor = 0x5865F2
	footerText = "Evenza"
)

var statusColors = map[domain.ReservationStatus]int{
	domain.ReservationPending:   0xFEE75C,
	domain.ReservationConfirmed: 0x57F287,
	domain.ReservationRefused:   0xED4245,
	domain.ReservationCanceled:  0x99AAB5,
}

// ShortCode is the first block of a reservation id, enough to find it in a list.
func ShortCode(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func eventSummary(event entities.Event) string {
	return fmt.Sprintf("%s • %d places", event.Status, event.Capacity)
}

// BuildReservationEmbed describes a reservation change. title and
// statusLabel arrive already localized.
func BuildReservationEmbed(event entities.Event, r entities.Reservation, title, statusLabel string) *discordgo.MessageEmbed {
	color, ok := statusColors[r.Status]
	if !ok {
		color = embedColor
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s**", event.Title))
	if !event.Date.IsZero() {
		b.WriteString(fmt.Sprintf("\n%s", tz.Display(event.Date)))
	}
	if event.Location != "" {
		b.WriteString(fmt.Sprintf(" • %s", event.Location))
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Code", Value: ShortCode(r.ID), Inline: true},
			{Name: "Status", Value: statusLabel, Inline: true},
			{Name: "Event", Value: eventSummary(event), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
		Timestamp: r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
