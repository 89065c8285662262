package wibl

import "errors"

// Sentinel errors for the WIBL pipeline. Each is local to the boundary it
// guards; see spec §7 for the propagation policy (parse/filter errors never
// escape the factory, I/O errors are always fatal to the current file).
var (
	// ErrUnimplemented is the error for a PacketSource operation that the
	// concrete source does not support. No source in this module returns it:
	// every source has the single Next method of PacketSource.
	ErrUnimplemented = errors.New("wibl: operation not implemented by this packet source")

	// ErrDataTooLarge is returned when a decoded record declares a payload
	// larger than the frame buffer maximum (MaxN2kDataLen).
	ErrDataTooLarge = errors.New("wibl: payload larger than maximum frame buffer")

	// ErrInvalidArgument is returned by Writer.Record when the caller
	// requests the reserved Version packet id (0).
	ErrInvalidArgument = errors.New("wibl: packet id 0 is reserved for the Version record")
)
