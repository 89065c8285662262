package wibl

import (
	"fmt"
	"io"
)

// VersionInfo is the payload of the mandatory Version frame (packet id 0),
// spec §3.5. A Writer stamps every file it opens with the same VersionInfo.
type VersionInfo struct {
	SerialiserMajor uint16
	SerialiserMinor uint16
	N2000Major      uint16
	N2000Minor      uint16
	N2000Patch      uint16
	N0183Major      uint16
	N0183Minor      uint16
	N0183Patch      uint16
}

// DefaultVersionInfo is the version datum that the bundled commands and
// tests pass to NewWriter.
var DefaultVersionInfo = VersionInfo{
	SerialiserMajor: 1,
	SerialiserMinor: 0,
	N2000Major:      2,
	N2000Minor:      0,
	N2000Patch:      0,
	N0183Major:      3,
	N0183Minor:      0,
	N0183Patch:      1,
}

func (v VersionInfo) appendTo(buf *Buffer) {
	buf.AppendU16(v.SerialiserMajor)
	buf.AppendU16(v.SerialiserMinor)
	buf.AppendU16(v.N2000Major)
	buf.AppendU16(v.N2000Minor)
	buf.AppendU16(v.N2000Patch)
	buf.AppendU16(v.N0183Major)
	buf.AppendU16(v.N0183Minor)
	buf.AppendU16(v.N0183Patch)
}

// Metadata is the payload of the mandatory second frame (packet id 12),
// spec §3.5: logger name + logger identifier, each a u32 length prefix
// followed by raw bytes (no terminator).
type Metadata struct {
	Name string
	ID   string
}

func (m Metadata) appendTo(buf *Buffer) {
	buf.AppendU32(uint32(len(m.Name)))
	buf.AppendRaw([]byte(m.Name))
	buf.AppendU32(uint32(len(m.ID)))
	buf.AppendRaw([]byte(m.ID))
}

// Writer frames Buffers with the {packet_id, payload_length} header of
// spec §3.2 and writes them to a byte sink. It injects a Version frame and
// a Metadata frame as the first two frames of the file, lazily, on the
// first successful Record call (spec §4.1, §6.1, §8 invariant 1).
//
// A Writer is not safe for concurrent use: it owns the Buffers it is handed
// and writes to its sink strictly in call order.
type Writer struct {
	sink     io.Writer
	version  VersionInfo
	metadata Metadata
	header   bool // true once Version+Metadata have been emitted
}

// NewWriter returns a Writer that will stamp every file opened on sink with
// version and metadata before the first user record.
func NewWriter(sink io.Writer, version VersionInfo, metadata Metadata) *Writer {
	return &Writer{
		sink:     sink,
		version:  version,
		metadata: metadata,
	}
}

// Record writes one frame: {u32 id, u32 len, payload}. The very first call
// on a Writer additionally writes Version then Metadata before id/buf,
// and those two are never re-emitted on later calls. id == 0 is rejected
// with ErrInvalidArgument; no bytes are written for that call.
func (w *Writer) Record(id PacketID, buf *Buffer) error {
	if id == PacketVersion {
		return ErrInvalidArgument
	}
	if !w.header {
		versionBuf := NewBuffer()
		w.version.appendTo(versionBuf)
		if err := w.frame(PacketVersion, versionBuf); err != nil {
			return err
		}

		metadataBuf := NewBuffer()
		w.metadata.appendTo(metadataBuf)
		if err := w.frame(PacketMetadata, metadataBuf); err != nil {
			return err
		}
		w.header = true
	}
	return w.frame(id, buf)
}

// frame writes {u32 id, u32 len} and then the payload to the sink, as two
// separate writes. Any I/O
// error is fatal to the file: the sink may be left with a partial frame,
// and callers must treat the Writer as unusable afterwards.
func (w *Writer) frame(id PacketID, buf *Buffer) error {
	var head [8]byte
	putLE32(head[0:4], uint32(id))
	putLE32(head[4:8], buf.Len())

	if _, err := w.sink.Write(head[:]); err != nil {
		return fmt.Errorf("wibl: writing frame header for packet %s: %w", id, err)
	}
	if _, err := w.sink.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("wibl: writing frame payload for packet %s: %w", id, err)
	}
	return nil
}

func putLE32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}
