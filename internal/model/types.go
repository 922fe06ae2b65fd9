package model

import (
	"time"

	"primetime/internal/prime"
)

// MethodIsPrime is the single method the protocol defines.
const MethodIsPrime = "isPrime"

// Request is a validated primality query. It only exists after the codec
// has checked the line against the schema; malformed lines never become
// Requests.
type Request struct {
	Method string
	Number prime.Number
}

// Response is the reply to one Request, echoing the method it answers.
type Response struct {
	Method string `json:"method"`
	Prime  bool   `json:"prime"`
}

// ConnectionLog is the diagnostic record of one finished connection.
type ConnectionLog struct {
	Seq        int64     `json:"seq"`
	RemoteAddr string    `json:"remote_addr"`
	Lines      int64     `json:"lines"`
	Requests   int64     `json:"requests"`
	Reason     string    `json:"reason"` // closed, malformed, line-overflow, io-error
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}
