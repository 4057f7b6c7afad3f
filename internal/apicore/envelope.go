package apicore

//
// envelope.go - the <rsp stat="..."> response envelope.
//

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

const (
	// StatOK is the stat attribute value indicating success.
	StatOK = "ok"

	// StatFail is the stat attribute value indicating failure.
	StatFail = "fail"
)

// Envelope is the top-level element of a successful response.
type Envelope struct {
	// Stat is the value of the stat attribute.
	Stat string

	// InnerXML is the raw payload inside the envelope.
	InnerXML []byte
}

// Decode unmarshals the payload into v. The payload is wrapped into a
// synthetic <rsp> element so v may be a struct describing the whole envelope
// with an `xml:"rsp"` name or any struct whose fields use paths like
// `xml:"photo>title"`.
func (env *Envelope) Decode(v any) error {
	var buf bytes.Buffer
	buf.WriteString("<rsp>")
	buf.Write(env.InnerXML)
	buf.WriteString("</rsp>")
	if err := xml.Unmarshal(buf.Bytes(), v); err != nil {
		return &ParseError{Reason: "decoding payload", Err: err}
	}
	return nil
}

// rawEnvelope is the wire representation of the envelope.
type rawEnvelope struct {
	XMLName  xml.Name `xml:"rsp"`
	Stat     *string  `xml:"stat,attr"`
	Err      *rawErr  `xml:"err"`
	InnerXML []byte   `xml:",innerxml"`
}

type rawErr struct {
	Code *string `xml:"code,attr"`
	Msg  string  `xml:"msg,attr"`
}

// parseEnvelope classifies the raw response body. It returns either the
// success envelope or an error: an [*APIError] for stat="fail" responses,
// or a [*ParseError] for anything we cannot make sense of.
func parseEnvelope(body []byte) (*Envelope, error) {
	var raw rawEnvelope
	if err := xml.Unmarshal(body, &raw); err != nil {
		return nil, &ParseError{Reason: "malformed envelope", Err: err}
	}
	if raw.Stat == nil {
		return nil, &ParseError{Reason: "missing stat attribute"}
	}
	switch *raw.Stat {
	case StatOK:
		return &Envelope{Stat: StatOK, InnerXML: raw.InnerXML}, nil
	case StatFail:
		if raw.Err == nil || raw.Err.Code == nil {
			return nil, &ParseError{Reason: "missing err element"}
		}
		code, err := strconv.Atoi(*raw.Err.Code)
		if err != nil {
			return nil, &ParseError{Reason: "invalid error code", Err: err}
		}
		return nil, &APIError{Code: code, Message: raw.Err.Msg}
	default:
		return nil, &ParseError{Reason: "unknown stat value " + strconv.Quote(*raw.Stat)}
	}
}
