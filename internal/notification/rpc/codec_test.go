package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodec_Registered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)

	require.NotNil(t, codec)
	assert.Equal(t, "json", codec.Name())
}

func TestJSONCodec_WireFieldNames(t *testing.T) {
	codec := jsonCodec{}

	body, err := codec.Marshal(&NotifyInvitationRequest{Email: "bob@example.com", EventTitle: "Standup"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"bob@example.com","eventTitle":"Standup"}`, string(body))

	body, err = codec.Marshal(&NotifyEventRequest{Title: "Standup", Creator: "alice@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Standup","creator":"alice@example.com"}`, string(body))
}

func TestJSONCodec_Unmarshal(t *testing.T) {
	var reply StatusReply

	err := jsonCodec{}.Unmarshal([]byte(`{"status":"EVENT_NOTIFIED"}`), &reply)

	require.NoError(t, err)
	assert.Equal(t, StatusEventNotified, reply.Status)
}

func TestJSONCodec_UnmarshalError(t *testing.T) {
	var reply StatusReply

	err := jsonCodec{}.Unmarshal([]byte(`{`), &reply)

	assert.Error(t, err)
}
