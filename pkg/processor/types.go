package processor

import (
	"time"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

// Envelope carries the fields every inbound message has.
type Envelope struct {
	ProviderMessageID string
	From              string
	DisplayName       string
	Timestamp         time.Time
}

// InboundMessage is one of TextMessage, AudioMessage, ImageMessage or UnsupportedMessage.
type InboundMessage interface {
	Info() Envelope
	Kind() database.MessageKind
}

type TextMessage struct {
	Envelope Envelope
	Body     string
}

type AudioMessage struct {
	Envelope Envelope
	MediaID  string
	MimeType string
}

type ImageMessage struct {
	Envelope Envelope
	MediaID  string
	MimeType string
	Caption  string
}

// UnsupportedMessage is any other message type; the sender is told what is accepted.
type UnsupportedMessage struct {
	Envelope Envelope
	Type     string
}

func (m TextMessage) Info() Envelope        { return m.Envelope }
func (m AudioMessage) Info() Envelope       { return m.Envelope }
func (m ImageMessage) Info() Envelope       { return m.Envelope }
func (m UnsupportedMessage) Info() Envelope { return m.Envelope }

func (TextMessage) Kind() database.MessageKind        { return database.MessageKindText }
func (AudioMessage) Kind() database.MessageKind       { return database.MessageKindAudio }
func (ImageMessage) Kind() database.MessageKind       { return database.MessageKindImage }
func (UnsupportedMessage) Kind() database.MessageKind { return database.MessageKindOther }

// resolvedContent is the text form of an inbound message plus what went wrong getting it.
type resolvedContent struct {
	Text             string
	MediaUnavailable bool
	NotUnderstood    bool
	Unsupported      bool
}
