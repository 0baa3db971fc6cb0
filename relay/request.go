package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/dmitrymomot/mailrelay/core/email"
	"github.com/dmitrymomot/mailrelay/core/sanitizer"
)

// Request field names, validated in this order.
const (
	FieldToEmail  = "toEmail"
	FieldToName   = "toName"
	FieldSubject  = "subject"
	FieldHTMLBody = "htmlBody"
	FieldTextBody = "textBody"
)

var requiredFields = []string{FieldToEmail, FieldToName, FieldSubject, FieldHTMLBody}

// EmailRequest is a validated send request.
type EmailRequest struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Params converts the request into sender input. An empty TextBody is
// derived from HTMLBody with markup removed.
func (r EmailRequest) Params() email.SendEmailParams {
	text := r.TextBody
	if text == "" {
		text = sanitizer.StripTags(r.HTMLBody)
	}
	return email.SendEmailParams{
		SendTo:     r.ToEmail,
		SendToName: r.ToName,
		Subject:    r.Subject,
		BodyHTML:   r.HTMLBody,
		BodyText:   text,
	}
}

// ParseRequest decodes a JSON object and validates the required fields.
// Errors are *Error values of kind ErrMalformedBody or ErrValidationFailed.
func ParseRequest(body io.Reader) (EmailRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return EmailRequest{}, malformedBody(err)
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v := fields[name]
		if isEmpty(v) {
			return EmailRequest{}, missingField(name)
		}
		s, ok := scalarString(v)
		if !ok {
			return EmailRequest{}, invalidField(name)
		}
		values[name] = s
	}

	req := EmailRequest{
		ToEmail:  values[FieldToEmail],
		ToName:   values[FieldToName],
		Subject:  values[FieldSubject],
		HTMLBody: values[FieldHTMLBody],
	}
	if v := fields[FieldTextBody]; !isEmpty(v) {
		// arrays and objects are not text; fall back to the derived body
		req.TextBody, _ = scalarString(v)
	}

	return req, nil
}

func decodeObject(body io.Reader) (map[string]any, error) {
	if body == nil {
		return nil, errors.New("empty body")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, errors.New("body is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("JSON body must be an object")
	}
	return obj, nil
}

// isEmpty reports whether a decoded JSON value counts as not provided:
// null, false, zero, "", "0" and empty arrays or objects.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// scalarString renders strings, numbers and true as text.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "1", true
		}
		return "", true
	default:
		return "", false
	}
}
