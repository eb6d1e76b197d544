package proto

import "encoding/json"

// Inbound request types.
const (
	TypeCreateRoom    = "CREATE_ROOM"
	TypeJoinRoom      = "JOIN_ROOM"
	TypeLeaveRoom     = "LEAVE_ROOM"
	TypeSendMessage   = "SEND_MESSAGE"
	TypeUpdateProfile = "UPDATE_PROFILE"
	TypeGetRoomInfo   = "GET_ROOM_INFO"
	TypePing          = "PING"
)

// Outbound event types.
const (
	TypeConnected      = "CONNECTED"
	TypeRoomCreated    = "ROOM_CREATED"
	TypeRoomJoined     = "ROOM_JOINED"
	TypeUserJoined     = "USER_JOINED"
	TypeUserLeft       = "USER_LEFT"
	TypeNewMessage     = "NEW_MESSAGE"
	TypeRoomInfo       = "ROOM_INFO"
	TypeProfileUpdated = "PROFILE_UPDATED"
	TypeError          = "ERROR"
	TypePong           = "PONG"
)

// Inbound is the envelope for client requests. Payload fields sit flat next
// to the type discriminator, so the raw bytes are kept for typed decoding.
type Inbound struct {
	Type string
	raw  json.RawMessage
}

func (in *Inbound) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	in.Type = head.Type
	in.raw = append(in.raw[:0], data...)
	return nil
}

// Decode unmarshals the request's payload fields into v.
func (in *Inbound) Decode(v any) error {
	if len(in.raw) == 0 {
		return nil
	}
	return json.Unmarshal(in.raw, v)
}

// NewInbound builds an envelope from a typed payload. Used by clients and tests.
func NewInbound(msgType string, payload any) (Inbound, error) {
	body := map[string]any{"type": msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Inbound{}, err
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return Inbound{}, err
		}
		body["type"] = msgType
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return Inbound{}, err
	}
	return Inbound{Type: msgType, raw: raw}, nil
}

// MarshalJSON emits the flat request object.
func (in Inbound) MarshalJSON() ([]byte, error) {
	if len(in.raw) > 0 {
		return in.raw, nil
	}
	return json.Marshal(map[string]string{"type": in.Type})
}

// CreateRoomPayload carries a CREATE_ROOM request.
type CreateRoomPayload struct {
	RoomName string `json:"roomName"`
	HostName string `json:"hostName"`
	Language string `json:"language"`
}

// JoinRoomPayload carries a JOIN_ROOM request.
type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
	Language string `json:"language"`
}

// SendMessagePayload carries a SEND_MESSAGE request.
type SendMessagePayload struct {
	Text string `json:"text"`
}

// UpdateProfilePayload carries an UPDATE_PROFILE request; nil fields are
// left untouched.
type UpdateProfilePayload struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
}

// Outbound is the envelope for server events. Type sits flat next to the
// payload fields, matching the inbound shape.
type Outbound struct {
	Type      string           `json:"type"`
	UserID    string           `json:"userId,omitempty"`
	UserName  string           `json:"userName,omitempty"`
	RoomID    string           `json:"roomId,omitempty"`
	RoomCode  string           `json:"roomCode,omitempty"`
	Room      *RoomPayload     `json:"room,omitempty"`
	Members   []MemberPayload  `json:"members,omitempty"`
	Messages  []MessagePayload `json:"messages,omitempty"`
	User      *MemberPayload   `json:"user,omitempty"`
	IsUpdate  bool             `json:"isUpdate,omitempty"`
	// Message holds a *MessagePayload for NEW_MESSAGE and the error text
	// string for ERROR; the wire uses the same key for both.
	Message any    `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// RoomPayload is a room in wire responses.
type RoomPayload struct {
	ID        string `json:"id"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	HostID    string `json:"hostId"`
	CreatedAt string `json:"createdAt"`
}

// MemberPayload is a room member in wire responses.
type MemberPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	IsHost   bool   `json:"isHost"`
	JoinedAt string `json:"joinedAt"`
}

// MessagePayload is a chat message in wire responses.
type MessagePayload struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	Timestamp  string `json:"timestamp"`
}
