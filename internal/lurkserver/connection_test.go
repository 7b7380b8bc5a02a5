package lurkserver

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lurkserver/internal/lurk/codec"
)

func TestConnection_ReadLoop_NewConnectionEmitsSyntheticConnect(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()

	conn := NewConnection(serverSide, 1, 16, 0, time.Second)
	events := make(chan Event, 16)
	go conn.ReadLoop(events)

	ev := <-events
	assert.Equal(t, typeConnect, ev.Message.Type)

	conn.CloseAsync()
}

func TestConnection_ReadLoop_IllegalPhaseSendsNotReadyAndContinues(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()

	conn := NewConnection(serverSide, 1, 16, 0, time.Second)
	events := make(chan Event, 16)
	go conn.ReadLoop(events)
	<-events // synthetic connect

	go func() {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(codec.Message{Type: codec.TypeFight}, &buf))
		_, _ = clientSide.Write(buf.Bytes())
	}()

	var frame [256]byte
	n, err := clientSide.Read(frame[:])
	require.NoError(t, err)
	msg, err := codec.Decode(bytes.NewReader(frame[:n]))
	require.NoError(t, err)
	assert.Equal(t, codec.TypeError, msg.Type)
	assert.Equal(t, codec.ErrNotReady, msg.ErrCode)

	conn.CloseAsync()
}

func TestConnection_ReadLoop_ServerOnlyTypeClosesConnection(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()

	conn := NewConnection(serverSide, 1, 16, 0, time.Second)
	events := make(chan Event, 16)
	go conn.ReadLoop(events)
	<-events // synthetic connect

	go func() {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(codec.Message{Type: codec.TypeRoom, RoomName: "x"}, &buf))
		_, _ = clientSide.Write(buf.Bytes())
	}()

	var frame [256]byte
	n, err := clientSide.Read(frame[:])
	require.NoError(t, err)
	msg, err := codec.Decode(bytes.NewReader(frame[:n]))
	require.NoError(t, err)
	assert.Equal(t, codec.TypeError, msg.Type)
	assert.Equal(t, codec.ErrOther, msg.ErrCode)

	leave := <-events
	assert.Equal(t, codec.TypeLeave, leave.Message.Type)
}

func TestConnection_ReadLoop_LegalMessageForwardsAndDecodeFailureEmitsLeave(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()

	conn := NewConnection(serverSide, 1, 16, 0, time.Second)
	conn.SetPhase(PhaseStarted)
	events := make(chan Event, 16)
	go conn.ReadLoop(events)
	<-events // synthetic connect

	go func() {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(codec.Message{Type: codec.TypeFight}, &buf))
		_, _ = clientSide.Write(buf.Bytes())
	}()
	ev := <-events
	assert.Equal(t, codec.TypeFight, ev.Message.Type)

	clientSide.Close()
	leave := <-events
	assert.Equal(t, codec.TypeLeave, leave.Message.Type)
}

func TestConnection_Send_QueueFullDisconnects(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()

	conn := NewConnection(serverSide, 1, 1, 0, 0)
	require.NoError(t, conn.Send([]byte{0x01}))
	err := conn.Send([]byte{0x02})
	assert.Error(t, err)
	assert.Equal(t, PhaseClosed, conn.Phase())
}

func TestConnection_CloseAsync_Idempotent(t *testing.T) {
	_, serverSide := net.Pipe()
	conn := NewConnection(serverSide, 1, 4, 0, 0)
	conn.CloseAsync()
	assert.NotPanics(t, conn.CloseAsync)
	assert.Equal(t, PhaseClosed, conn.Phase())
}

func TestConnection_SetPhaseAndPhase(t *testing.T) {
	_, serverSide := net.Pipe()
	conn := NewConnection(serverSide, 1, 4, 0, 0)
	assert.Equal(t, PhaseAwaitingCharacter, conn.Phase())
	conn.SetPhase(PhaseStarted)
	assert.Equal(t, PhaseStarted, conn.Phase())
	conn.CloseAsync()
}
