// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package webhook defines the voice-platform payloads. The inbound
// request carries the same content twice: as raw utterance text and as
// a possibly more fragmented NLU token list.
package webhook

// Request is the inbound webhook payload.
type Request struct {
	Request RequestBody `json:"request"`
	Session Session     `json:"session"`
	Meta    *Meta       `json:"meta,omitempty"`
	Version string      `json:"version"`
}

// RequestBody holds the spoken content of one utterance.
type RequestBody struct {
	OriginalUtterance string `json:"original_utterance,omitempty"`
	Command           string `json:"command,omitempty"`
	NLU               *NLU   `json:"nlu,omitempty"`
}

// NLU is the token-level view of the utterance.
type NLU struct {
	Tokens []string `json:"tokens"`
}

// Session identifies the dialog and the voice user.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	New       bool   `json:"new,omitempty"`
}

// Meta carries optional client metadata.
type Meta struct {
	Timezone string `json:"timezone,omitempty"`
}

// Utterance returns the raw spoken text, preferring original_utterance
// and falling back to command; the two are interchangeable.
func (r *Request) Utterance() string {
	if r.Request.OriginalUtterance != "" {
		return r.Request.OriginalUtterance
	}
	return r.Request.Command
}

// Tokens returns the NLU token list, which may be empty.
func (r *Request) Tokens() []string {
	if r.Request.NLU == nil {
		return nil
	}
	return r.Request.NLU.Tokens
}

// Timezone returns the client timezone, if reported.
func (r *Request) Timezone() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta.Timezone
}

// Response is the outbound webhook payload. Sessions are never ended
// by this skill.
type Response struct {
	Response ResponseBody `json:"response"`
	Session  Session      `json:"session"`
	Version  string       `json:"version"`
}

// ResponseBody is the spoken answer.
type ResponseBody struct {
	Text       string `json:"text"`
	EndSession bool   `json:"end_session"`
}

// NewResponse builds the reply envelope for a request.
func NewResponse(text string, req *Request) Response {
	return Response{
		Response: ResponseBody{Text: text, EndSession: false},
		Session:  req.Session,
		Version:  req.Version,
	}
}
