package relay_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/relay"
)

func TestParseRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    relay.EmailRequest
		wantErr error
		wantMsg string
	}{
		{
			name: "all fields",
			body: `{"toEmail":"a@b.com","toName":"A","subject":"Hi","htmlBody":"<p>x</p>","textBody":"x"}`,
			want: relay.EmailRequest{ToEmail: "a@b.com", ToName: "A", Subject: "Hi", HTMLBody: "<p>x</p>", TextBody: "x"},
		},
		{
			name: "unknown fields are ignored",
			body: `{"toEmail":"a@b.com","toName":"A","subject":"Hi","htmlBody":"h","cc":"x@y.z"}`,
			want: relay.EmailRequest{ToEmail: "a@b.com", ToName: "A", Subject: "Hi", HTMLBody: "h"},
		},
		{
			name: "numbers are accepted as text",
			body: `{"toEmail":"a@b.com","toName":7,"subject":1.5,"htmlBody":"h"}`,
			want: relay.EmailRequest{ToEmail: "a@b.com", ToName: "7", Subject: "1.5", HTMLBody: "h"},
		},
		{
			name: "whitespace is not empty",
			body: `{"toEmail":"a@b.com","toName":" ","subject":"Hi","htmlBody":"h"}`,
			want: relay.EmailRequest{ToEmail: "a@b.com", ToName: " ", Subject: "Hi", HTMLBody: "h"},
		},
		{
			name:    "null body",
			body:    `null`,
			wantErr: relay.ErrMalformedBody,
			wantMsg: "Invalid JSON body",
		},
		{
			name:    "truncated object",
			body:    `{"toEmail":`,
			wantErr: relay.ErrMalformedBody,
			wantMsg: "Invalid JSON body",
		},
		{
			name:    "invalid utf-8",
			body:    "{\"toEmail\":\"a@b.com\",\"toName\":\"A\xff\",\"subject\":\"Hi\",\"htmlBody\":\"h\"}",
			wantErr: relay.ErrMalformedBody,
			wantMsg: "Invalid JSON body",
		},
		{
			name: "escaped unicode is fine",
			body: `{"toEmail":"a@b.com","toName":"\u00c5","subject":"Hi","htmlBody":"h"}`,
			want: relay.EmailRequest{ToEmail: "a@b.com", ToName: "Å", Subject: "Hi", HTMLBody: "h"},
		},
		{
			name:    "null field",
			body:    `{"toEmail":null}`,
			wantErr: relay.ErrValidationFailed,
			wantMsg: "Missing field: toEmail",
		},
		{
			name:    "empty array field",
			body:    `{"toEmail":"a@b.com","toName":[]}`,
			wantErr: relay.ErrValidationFailed,
			wantMsg: "Missing field: toName",
		},
		{
			name:    "negative zero",
			body:    `{"toEmail":"a@b.com","toName":"A","subject":-0,"htmlBody":"h"}`,
			wantErr: relay.ErrValidationFailed,
			wantMsg: "Missing field: subject",
		},
		{
			name:    "object field",
			body:    `{"toEmail":"a@b.com","toName":"A","subject":"Hi","htmlBody":{"p":"x"}}`,
			wantErr: relay.ErrValidationFailed,
			wantMsg: "Invalid field: htmlBody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := relay.ParseRequest(strings.NewReader(tt.body))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var re *relay.Error
				require.ErrorAs(t, err, &re)
				assert.Equal(t, tt.wantMsg, re.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequest_NilBody(t *testing.T) {
	t.Parallel()

	_, err := relay.ParseRequest(nil)
	assert.ErrorIs(t, err, relay.ErrMalformedBody)
}

func TestEmailRequest_Params(t *testing.T) {
	t.Parallel()

	req := relay.EmailRequest{
		ToEmail:  "a@b.com",
		ToName:   "A",
		Subject:  "Hi",
		HTMLBody: "<h1>Title</h1><p>Body &amp; more</p>",
	}

	p := req.Params()
	assert.Equal(t, "TitleBody &amp; more", p.BodyText)
	assert.Equal(t, req.HTMLBody, p.BodyHTML)

	req.TextBody = "custom"
	assert.Equal(t, "custom", req.Params().BodyText)
}
