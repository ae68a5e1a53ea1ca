package errors

import "strconv"

// ERR is the numeric code carried by every *Error.
type ERR int32

//nolint:revive,stylecheck // error code names mirror the wire names used in logs
const (
	ERR_UNKNOWN             ERR = 0
	ERR_INVALID_ARGUMENT    ERR = 1
	ERR_THRESHOLD_EXCEEDED  ERR = 2
	ERR_NOT_FOUND           ERR = 3
	ERR_PROCESSING          ERR = 4
	ERR_CONFIGURATION       ERR = 5
	ERR_CONTEXT             ERR = 6
	ERR_CONTEXT_CANCELED    ERR = 7
	ERR_ERROR               ERR = 9
	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_ERROR       ERR = 52
	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 69
	ERR_SPENT               ERR = 70
	ERR_INSUFFICIENT_FUNDS  ERR = 80
	ERR_LOCK_CONTENTION     ERR = 81
	ERR_UNSUPPORTED_BACKEND ERR = 82
	ERR_INVALID_CRITERIA    ERR = 83
)

//nolint:revive,stylecheck
var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	2:  "THRESHOLD_EXCEEDED",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	6:  "CONTEXT",
	7:  "CONTEXT_CANCELED",
	9:  "ERROR",
	50: "SERVICE_UNAVAILABLE",
	52: "SERVICE_ERROR",
	60: "STORAGE_UNAVAILABLE",
	69: "STORAGE_ERROR",
	70: "SPENT",
	80: "INSUFFICIENT_FUNDS",
	81: "LOCK_CONTENTION",
	82: "UNSUPPORTED_BACKEND",
	83: "INVALID_CRITERIA",
}

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}
