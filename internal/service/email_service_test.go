package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/models"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func sampleDashboard() *models.Dashboard {
	return &models.Dashboard{
		User:    models.User{ID: 1, Name: "Mia <3", Age: 6, TotalStars: 11},
		Reading: []models.LevelSummary{{Level: 1, Completed: 6, Total: 12, Stars: 3, Started: true}, {Level: 2, Total: 12}},
		Math:    []models.LevelSummary{{Level: 1, Total: 10}},
		WeeklyActivity: []models.DayActivity{
			{Date: "2024-03-04", Weekday: "Monday", Minutes: 7.5},
		},
		WeeklyMinutes: 7.5,
		TotalMinutes:  57.5,
		Achievements:  []models.Achievement{{Title: "First Word", Description: "Read a word"}},
	}
}

func TestRenderProgressReport(t *testing.T) {
	subject, htmlBody, textBody := RenderProgressReport(sampleDashboard(), "https://kids.example.com")

	assert.Equal(t, "Mia <3's learning progress", subject)
	assert.Contains(t, textBody, "Total stars: 11")
	assert.Contains(t, textBody, "Level 1: 6/12 items, 3 stars")
	assert.Contains(t, textBody, "Level 2: not started")
	assert.Contains(t, textBody, "First Word - Read a word")
	assert.Contains(t, textBody, "https://kids.example.com")
	assert.Contains(t, htmlBody, "Mia &lt;3")
	assert.NotContains(t, htmlBody, "Mia <3")
}

func TestSendProgressReport(t *testing.T) {
	fake := &fakeSES{}
	svc := newEmailService(fake, "reports@example.com", "KidLearn", "https://kids.example.com/", nop)

	require.NoError(t, svc.SendProgressReport(context.Background(), "parent@example.com", sampleDashboard()))
	require.NotNil(t, fake.input)
	assert.Equal(t, "KidLearn <reports@example.com>", aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"parent@example.com"}, fake.input.Destination.ToAddresses)
	assert.Contains(t, aws.ToString(fake.input.Content.Simple.Body.Text.Data), "57.5 minutes")

	fake.err = errors.New("throttled")
	assert.ErrorContains(t, svc.SendProgressReport(context.Background(), "parent@example.com", sampleDashboard()), "throttled")
}

func TestDisabledEmailService(t *testing.T) {
	svc, err := NewEmailService(context.Background(), "us-east-1", "", "", "", nop)
	require.NoError(t, err)
	assert.False(t, svc.IsEnabled())
	assert.NoError(t, svc.SendProgressReport(context.Background(), "parent@example.com", sampleDashboard()))
}
