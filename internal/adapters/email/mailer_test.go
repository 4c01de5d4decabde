package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name     string
		config   MailerConfig
		wantType any
		wantErr  bool
	}{
		{"noop", MailerConfig{Provider: "noop"}, &noopMailer{}, false},
		{"empty provider", MailerConfig{}, &noopMailer{}, false},
		{"unknown provider", MailerConfig{Provider: "smtp"}, &noopMailer{}, false},
		{"ses", MailerConfig{Provider: "ses", SES: SESConfig{Region: "us-east-1"}}, &sesMailer{}, false},
		{"ses without region", MailerConfig{Provider: "ses"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, m)
		})
	}
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, fromAddress: "noreply@church.org", fromName: "Grace Church", logger: testLogger}

	err := m.Send(context.Background(), "ann@example.org", "Hello", "<p>hi</p>", "")
	require.NoError(t, err)
	require.NotNil(t, fake.input)
	assert.Equal(t, "Grace Church <noreply@church.org>", aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"ann@example.org"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(fake.input.Message.Body.Html.Data))
	assert.Nil(t, fake.input.Message.Body.Text)
}

func TestSESMailer_Send_error(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	m := &sesMailer{client: fake, fromAddress: "noreply@church.org", logger: testLogger}

	err := m.Send(context.Background(), "ann@example.org", "Hello", "", "hi")
	assert.ErrorContains(t, err, "throttled")
}
