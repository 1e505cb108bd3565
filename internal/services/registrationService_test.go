package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/models"
)

type registrationFixture struct {
	svc   *registrationServiceImpl
	items *fakeItemRepo
	regs  *fakeRegistrationRepo
	clock *fakeClock
	item  models.Item
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()
	clock := newFakeClock()
	items := newFakeItemRepo()
	regs := &fakeRegistrationRepo{items: items}
	item, err := items.Create(context.Background(), &models.Item{
		Type:  models.ItemTypeHackathon,
		Title: `Hack "Night"`,
		Date:  clock.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return &registrationFixture{
		svc:   &registrationServiceImpl{registrationRepo: regs, itemRepo: items, now: clock.Now},
		items: items,
		regs:  regs,
		clock: clock,
		item:  *item,
	}
}

func participants(n int) []models.Participant {
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{
			Name:  "Member " + string(rune('A'+i)),
			Email: "member" + string(rune('a'+i)) + "@example.com",
			Phone: "98765" + strings.Repeat(string(rune('0'+i)), 5),
		}
	}
	return out
}

func TestCreateRegistration(t *testing.T) {
	f := newRegistrationFixture(t)

	reg, err := f.svc.CreateRegistration(context.Background(), models.RegistrationInput{
		ItemID:       f.item.ID.Hex(),
		TeamName:     "Null Pointers",
		Participants: participants(2),
	}, testEmail)
	require.NoError(t, err)

	assert.Equal(t, f.item.ID, reg.ItemID)
	assert.Equal(t, models.ItemTypeHackathon, reg.ItemType)
	assert.Equal(t, testEmail, reg.SubmittedBy)
	assert.Equal(t, f.clock.Now(), reg.CreatedAt)
	assert.Len(t, f.regs.registrations, 1)
}

func TestCreateRegistrationValidation(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: f.item.ID.Hex()}, "")
	require.ErrorIs(t, err, ErrValidation)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "itemId and participants required", svcErr.Message)

	for _, n := range []int{0, 6} {
		_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: f.item.ID.Hex(), Participants: participants(n)}, "")
		assert.ErrorIs(t, err, ErrValidation, "%d participants", n)
	}

	missingEmail := participants(1)
	missingEmail[0].Email = ""
	_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: f.item.ID.Hex(), Participants: missingEmail}, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: primitive.NewObjectID().Hex(), Participants: participants(1)}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: "not-an-id", Participants: participants(1)}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, f.regs.registrations)
}

func TestCreateRegistrationAcceptsFiveParticipants(t *testing.T) {
	f := newRegistrationFixture(t)
	_, err := f.svc.CreateRegistration(context.Background(), models.RegistrationInput{
		ItemID:       f.item.ID.Hex(),
		Participants: participants(models.MaxParticipants),
	}, "")
	assert.NoError(t, err)
}

func TestGetRegistrationsFilter(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	other, err := f.items.Create(ctx, &models.Item{Type: models.ItemTypeEvent, Title: "Other"})
	require.NoError(t, err)

	_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: f.item.ID.Hex(), Participants: participants(1)}, "")
	require.NoError(t, err)
	_, err = f.svc.CreateRegistration(ctx, models.RegistrationInput{ItemID: other.ID.Hex(), Participants: participants(1)}, "")
	require.NoError(t, err)

	all, err := f.svc.GetRegistrations(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ItemID, "newest first")
	require.NotNil(t, all[0].Item)
	assert.Equal(t, "Other", all[0].Item.Title)

	filtered, err := f.svc.GetRegistrations(ctx, f.item.ID.Hex())
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, f.item.ID, filtered[0].ItemID)

	_, err = f.svc.GetRegistrations(ctx, "zzz")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportRegistrationsCSV(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	reg, err := f.svc.CreateRegistration(ctx, models.RegistrationInput{
		ItemID:       f.item.ID.Hex(),
		TeamName:     "Team, One",
		Participants: participants(3),
	}, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportRegistrationsCSV(ctx, "", &buf))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"RegistrationID","ItemID","ItemTitle","ItemType","TeamName","ParticipantName","ParticipantEmail","ParticipantPhone","CreatedAt"`, lines[0])

	for i, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, `"`+reg.ID.Hex()+`","`+f.item.ID.Hex()+`","Hack ""Night""","hackathon","Team, One"`), line)
		assert.Contains(t, line, `"Member `+string(rune('A'+i))+`"`)
		assert.True(t, strings.HasSuffix(line, `"`+f.clock.Now().Format(csvTimeLayout)+`"`), line)
		assert.True(t, strings.HasSuffix(line, `.000Z"`), line)
	}
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestExportRegistrationsCSVEmpty(t *testing.T) {
	f := newRegistrationFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportRegistrationsCSV(context.Background(), "", &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), `"RegistrationID"`))
	assert.NotContains(t, buf.String(), "\n")
}

func TestRegistrationRowsWithoutItem(t *testing.T) {
	reg := models.RegistrationWithItem{Registration: models.Registration{
		ID:           primitive.NewObjectID(),
		ItemType:     models.ItemTypeEvent,
		Participants: participants(1),
	}}

	rows := registrationRows(reg)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][1])
	assert.Equal(t, "", rows[0][2])
	assert.Equal(t, "event", rows[0][3])
}
