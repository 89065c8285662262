package can

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/wibl-org/wibl-go"
	"golang.org/x/sys/unix"
)

const (
	canRaw = 1

	// canIDMask is the bitmask covering the top 3 flag bits (EFF/RTR/ERR)
	// of a SocketCAN can_id field, as distinct from the 29 bits of actual
	// CAN identifier.
	canIDMask = uint32(0b111) << 29
	// canIDERRFlag: 0 = data frame, 1 = error message.
	canIDERRFlag = uint32(1 << 29)
	// canIDRTRFlag: 1 = remote transmission request frame.
	canIDRTRFlag = uint32(1 << 30)
	// canIDEFFFlag: 0 = standard 11-bit id, 1 = extended 29-bit id.
	canIDEFFFlag = uint32(1 << 31)
)

// Connection is a bound, raw AF_CAN socket on a Linux SocketCAN interface.
type Connection struct {
	socketFD int
	timeNow  func() time.Time
}

// NewConnection opens and binds a raw CAN socket on ifName (e.g. "can0").
func NewConnection(ifName string) (*Connection, error) {
	ifi, err := net.InterfaceByName(ifName)
	if err != nil {
		return nil, fmt.Errorf("can: bad interface name: %w", err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, canRaw)
	if err != nil {
		return nil, fmt.Errorf("can: could not create CAN socket: %w", err)
	}

	addr := &unix.SockaddrCAN{Ifindex: ifi.Index}
	if err = unix.Bind(fd, addr); err != nil {
		return nil, fmt.Errorf("can: could not bind CAN socket: %w", err)
	}

	return &Connection{
		socketFD: fd,
		timeNow:  time.Now,
	}, nil
}

func isContinuableSocketErr(err error) bool {
	// EWOULDBLOCK: a read/write with SO_RCVTIMEO/SO_SNDTIMEO hit its
	// deadline with no data available or the send buffer still full.
	// EINTR: a signal interrupted the blocking call.
	return err == syscall.EWOULDBLOCK || err == syscall.EINTR
}

var errReadTimeout = errors.New("can: read timeout")
var errWriteTimeout = errors.New("can: write timeout")

// SetReadTimeout bounds how long ReadRawFrame can block.
func (c Connection) SetReadTimeout(timeout time.Duration) error {
	return c.setSocketTimeout(unix.SO_RCVTIMEO, timeout)
}

// SetSendTimeout bounds how long SendFrame can block.
func (c Connection) SetSendTimeout(timeout time.Duration) error {
	return c.setSocketTimeout(unix.SO_SNDTIMEO, timeout)
}

func (c Connection) setSocketTimeout(opt int, timeout time.Duration) error {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	return unix.SetsockoptTimeval(c.socketFD, unix.SOL_SOCKET, opt, &tv)
}

// Close releases the underlying socket.
func (c Connection) Close() error {
	return unix.Close(c.socketFD)
}

// SendFrame writes raw as a SocketCAN extended data frame.
func (c Connection) SendFrame(raw RawFrame) error {
	// struct can_frame layout: https://github.com/linux-can/can-utils/blob/master/include/linux/can.h
	canFrame := make([]byte, 16)

	canID := raw.Header.Uint32() | canIDEFFFlag
	binary.LittleEndian.PutUint32(canFrame[0:4], canID)

	canFrame[4] = raw.Length
	copy(canFrame[8:], raw.Data[:raw.Length])

	_, err := unix.Write(c.socketFD, canFrame)
	if isContinuableSocketErr(err) {
		return errWriteTimeout
	}
	return err
}

// ReadRawFrame blocks (up to any timeout set via SetReadTimeout) for the
// next CAN data frame and decodes its header.
func (c Connection) ReadRawFrame() (RawFrame, error) {
	canFrame := make([]byte, 16)
	_, err := unix.Read(c.socketFD, canFrame)
	if err != nil {
		if isContinuableSocketErr(err) {
			return RawFrame{}, errReadTimeout
		}
		return RawFrame{}, err
	}
	canID := binary.LittleEndian.Uint32(canFrame[0:4])
	if canID&canIDRTRFlag != 0 {
		return RawFrame{}, errors.New("can: read a remote transmission request frame")
	} else if canID&canIDERRFlag != 0 {
		return RawFrame{}, errors.New("can: read an error message frame")
	}

	f := RawFrame{
		Time:   c.timeNow(),
		Header: wibl.ParseCANID(canID ^ canIDMask),
		Length: canFrame[4],
	}
	copy(f.Data[:], canFrame[8:8+f.Length])

	return f, nil
}
