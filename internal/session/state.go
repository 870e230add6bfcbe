package session

import "fmt"

// StreamState is the lifecycle state of a streaming session. The concrete
// types below are the only implementations.
type StreamState interface {
	streamState()
}

// Idle is the state before the session has been started.
type Idle struct{}

// Connecting is reported while the session is being established.
type Connecting struct{}

// Running is reported once video is flowing.
type Running struct{}

// Quit is reported when the session ended.
type Quit struct {
	Reason QuitReason
	Detail string
}

// CreateError is reported when the session could not be created at all.
type CreateError struct {
	Code ErrorCode
}

// LoginPinRequest is reported when the host wants a login PIN before it
// starts streaming. PinIncorrect is set when the previous PIN was rejected.
type LoginPinRequest struct {
	PinIncorrect bool
}

func (Idle) streamState()            {}
func (Connecting) streamState()      {}
func (Running) streamState()         {}
func (Quit) streamState()            {}
func (CreateError) streamState()     {}
func (LoginPinRequest) streamState() {}

// StateName returns a short label for s, used in logs and the status bar.
func StateName(s StreamState) string {
	switch s := s.(type) {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Running:
		return "running"
	case Quit:
		return "quit: " + s.Reason.String()
	case CreateError:
		return "create error: " + s.Code.String()
	case LoginPinRequest:
		if s.PinIncorrect {
			return "login pin (incorrect)"
		}
		return "login pin"
	default:
		return "unknown"
	}
}

// QuitReason says why a session quit.
type QuitReason string

const (
	QuitNone                             QuitReason = "none"
	QuitStopped                          QuitReason = "stopped"
	QuitSessionRequestUnknown            QuitReason = "session_request_unknown"
	QuitSessionRequestConnectionRefused  QuitReason = "session_request_connection_refused"
	QuitSessionRequestRPInUse            QuitReason = "session_request_rp_in_use"
	QuitSessionRequestRPCrash            QuitReason = "session_request_rp_crash"
	QuitSessionRequestRPVersionMismatch  QuitReason = "session_request_rp_version_mismatch"
	QuitCtrlUnknown                      QuitReason = "ctrl_unknown"
	QuitCtrlConnectFailed                QuitReason = "ctrl_connect_failed"
	QuitCtrlConnectionRefused            QuitReason = "ctrl_connection_refused"
	QuitStreamConnectionUnknown          QuitReason = "stream_connection_unknown"
	QuitStreamConnectionRemoteDisconnect QuitReason = "stream_connection_remote_disconnected"
	QuitStreamConnectionRemoteShutdown   QuitReason = "stream_connection_remote_shutdown"
)

var quitReasonText = map[QuitReason]string{
	QuitNone:                             "None",
	QuitStopped:                          "Stopped",
	QuitSessionRequestUnknown:            "Unknown Session Request Error",
	QuitSessionRequestConnectionRefused:  "Connection Refused in Session Request",
	QuitSessionRequestRPInUse:            "Remote Play on Console is already in use",
	QuitSessionRequestRPCrash:            "Remote Play on Console has crashed",
	QuitSessionRequestRPVersionMismatch:  "Remote Play version mismatch",
	QuitCtrlUnknown:                      "Unknown Ctrl Error",
	QuitCtrlConnectFailed:                "Control Connection Failed",
	QuitCtrlConnectionRefused:            "Control Connection Refused",
	QuitStreamConnectionUnknown:          "Unknown Error in Stream Connection",
	QuitStreamConnectionRemoteDisconnect: "Remote has disconnected from Stream Connection",
	QuitStreamConnectionRemoteShutdown:   "Remote shut down the Stream Connection",
}

func (r QuitReason) String() string {
	if s, ok := quitReasonText[r]; ok {
		return s
	}
	return "Unknown"
}

// IsStopped reports whether the session was stopped on purpose by the user.
// Such a quit needs no prompt.
func (r QuitReason) IsStopped() bool {
	return r == QuitStopped
}

// ErrorCode is an opaque session creation error code.
type ErrorCode int

const (
	CodeSuccess ErrorCode = iota
	CodeUnknown
	CodeParseAddr
	CodeThread
	CodeMemory
	CodeOverflow
	CodeNetwork
	CodeConnectionRefused
	CodeHostDown
	CodeHostUnreach
	CodeDisconnected
	CodeInvalidData
	CodeBufTooSmall
	CodeMutexLocked
	CodeCanceled
	CodeTimeout
	CodeInvalidResponse
	CodeInvalidMAC
	CodeUninitialized
	CodeFECFailed
	CodeVersionMismatch
)

var errorCodeNames = []string{
	"Success",
	"Unknown",
	"Failed to parse host address",
	"Thread error",
	"Memory error",
	"Overflow",
	"Network error",
	"Connection refused",
	"Host down",
	"No route to host",
	"Disconnected",
	"Invalid data",
	"Buffer too small",
	"Mutex is locked",
	"Canceled",
	"Timeout",
	"Invalid Response",
	"Invalid MAC",
	"Uninitialized",
	"FEC failed",
	"Version mismatch",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(errorCodeNames) {
		return fmt.Sprintf("%d (%s)", int(c), errorCodeNames[c])
	}
	return fmt.Sprintf("%d", int(c))
}
