package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuangTrung1996/small100-chat-server/internal/proto"
)

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func sendWS(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()

	in, err := proto.NewInbound(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, in))
}

// readUntil skips events until one of the wanted type arrives.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()

	for {
		var out map[string]any
		require.NoError(t, wsjson.Read(ctx, conn, &out))
		if out["type"] == msgType {
			return out
		}
	}
}

func TestWSCreateRoomScenario(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ann := dialWS(t, ctx, ts)

	connected := readUntil(t, ctx, ann, proto.TypeConnected)
	assert.NotEmpty(t, connected["userId"])

	sendWS(t, ctx, ann, proto.TypeCreateRoom, proto.CreateRoomPayload{
		RoomName: "Trip",
		HostName: "Ann",
		Language: "en",
	})

	created := readUntil(t, ctx, ann, proto.TypeRoomCreated)
	code, _ := created["roomCode"].(string)
	assert.Len(t, code, 6)

	members, _ := created["members"].([]any)
	require.Len(t, members, 1)
	host := members[0].(map[string]any)
	assert.Equal(t, "Ann", host["name"])
	assert.Equal(t, true, host["isHost"])
}

func TestWSJoinSendAndDisconnectScenario(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ann := dialWS(t, ctx, ts)
	readUntil(t, ctx, ann, proto.TypeConnected)
	sendWS(t, ctx, ann, proto.TypeCreateRoom, proto.CreateRoomPayload{
		RoomName: "Trip", HostName: "Ann", Language: "en",
	})
	created := readUntil(t, ctx, ann, proto.TypeRoomCreated)
	code := created["roomCode"].(string)

	bo := dialWS(t, ctx, ts)
	readUntil(t, ctx, bo, proto.TypeConnected)
	sendWS(t, ctx, bo, proto.TypeJoinRoom, proto.JoinRoomPayload{
		RoomCode: code, UserName: "Bo", Language: "vi",
	})

	joined := readUntil(t, ctx, bo, proto.TypeRoomJoined)
	members, _ := joined["members"].([]any)
	assert.Len(t, members, 2)
	assert.Empty(t, joined["messages"])

	userJoined := readUntil(t, ctx, ann, proto.TypeUserJoined)
	assert.Equal(t, "Bo", userJoined["user"].(map[string]any)["name"])

	// Bo speaks; both members receive the message.
	sendWS(t, ctx, bo, proto.TypeSendMessage, proto.SendMessagePayload{Text: "hi"})
	for _, conn := range []*websocket.Conn{ann, bo} {
		ev := readUntil(t, ctx, conn, proto.TypeNewMessage)
		msg := ev["message"].(map[string]any)
		assert.Equal(t, "Bo", msg["senderName"])
		assert.Equal(t, "hi", msg["text"])
	}

	// Ann drops; Bo hears USER_LEFT and the room survives.
	ann.Close(websocket.StatusNormalClosure, "leaving")
	left := readUntil(t, ctx, bo, proto.TypeUserLeft)
	assert.Equal(t, "Ann", left["userName"])

	resp := doGet(t, ts, "/api/rooms/"+code)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	// Bo drops too; the room is destroyed and the code stops resolving.
	bo.Close(websocket.StatusNormalClosure, "leaving")
	require.Eventually(t, func() bool {
		r, err := stdhttp.Get(ts.URL + "/api/rooms/" + code)
		if err != nil {
			return false
		}
		defer r.Body.Close()
		return r.StatusCode == stdhttp.StatusNotFound
	}, 3*time.Second, 50*time.Millisecond)
}

func TestWSPingPong(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	readUntil(t, ctx, conn, proto.TypeConnected)

	sendWS(t, ctx, conn, proto.TypePing, nil)
	readUntil(t, ctx, conn, proto.TypePong)
}

func TestWSInvalidJSONAndUnknownType(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	readUntil(t, ctx, conn, proto.TypeConnected)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("not json")))
	errEv := readUntil(t, ctx, conn, proto.TypeError)
	assert.Equal(t, "INVALID_JSON", errEv["code"])

	sendWS(t, ctx, conn, "SHOUT", nil)
	errEv = readUntil(t, ctx, conn, proto.TypeError)
	assert.Equal(t, "INVALID_MESSAGE_TYPE", errEv["code"])

	// The session is still usable afterwards.
	sendWS(t, ctx, conn, proto.TypePing, nil)
	readUntil(t, ctx, conn, proto.TypePong)
}
