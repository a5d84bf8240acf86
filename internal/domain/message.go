package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageTypePublic  MessageType = "message"
	MessageTypePrivate MessageType = "private_message"
	MessageTypeStatus  MessageType = "status"
)

// BroadcastTarget in the "to" field marks a message visible to every viewer.
const BroadcastTarget = "Todos"

// Texts of the system-generated join/leave notices.
const (
	JoinedRoomText = "entra na sala..."
	LeftRoomText   = "sai da sala..."
)

// TimeLayout is the wall-clock format stored on every message.
const TimeLayout = "15:04:05"

type Message struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	From string             `bson:"from" json:"from"`
	To   string             `bson:"to" json:"to"`
	Text string             `bson:"text" json:"text"`
	Type MessageType        `bson:"type" json:"type"`
	Time string             `bson:"time" json:"time"`
}

func NewMessage(from, to, text string, messageType MessageType, now time.Time) *Message {
	return &Message{
		From: from,
		To:   to,
		Text: text,
		Type: messageType,
		Time: now.Format(TimeLayout),
	}
}

// NewStatusMessage builds a system join/leave notice broadcast to the room.
func NewStatusMessage(name, text string, now time.Time) *Message {
	return NewMessage(name, BroadcastTarget, text, MessageTypeStatus, now)
}

// VisibleTo reports whether viewer may read the message: broadcasts,
// messages addressed to the viewer and messages the viewer sent.
func (m *Message) VisibleTo(viewer string) bool {
	return m.To == BroadcastTarget || m.To == viewer || m.From == viewer
}
