package policy

import (
	"testing"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	creator  uuid.UUID
	invitee  uuid.UUID
	outsider uuid.UUID
	event    *models.Event
	parts    []models.Participation
}

func newFixture() fixture {
	creator := uuid.New()
	invitee := uuid.New()
	event := &models.Event{ID: uuid.New(), Title: "Standup", CreatorID: creator}
	return fixture{
		creator:  creator,
		invitee:  invitee,
		outsider: uuid.New(),
		event:    event,
		parts: []models.Participation{
			{ID: uuid.New(), EventID: event.ID, UserID: invitee, Status: models.StatusDeclined},
		},
	}
}

func TestNamed(t *testing.T) {
	tests := []struct {
		name   string
		invite InviteRule
		modify ModifyRule
	}{
		{"", InviteCreatorOnly, ModifyCreatorOrParticipant},
		{"default", InviteCreatorOnly, ModifyCreatorOrParticipant},
		{"STRICT", InviteCreatorOnly, ModifyCreatorOnly},
		{"legacy", InviteAnyAuthenticated, ModifyCreatorOrParticipant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Named(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.invite, p.Invite)
			assert.Equal(t, tt.modify, p.Modify)
		})
	}

	_, err := Named("bogus")
	assert.Error(t, err)
}

func TestFromConfig_Overrides(t *testing.T) {
	p, err := FromConfig("strict", "any", "participant")
	require.NoError(t, err)
	assert.Equal(t, InviteAnyAuthenticated, p.Invite)
	assert.Equal(t, ModifyCreatorOrParticipant, p.Modify)

	_, err = FromConfig("default", "everyone", "")
	assert.Error(t, err)

	_, err = FromConfig("default", "", "anyone")
	assert.Error(t, err)
}

func TestCanCreateEvent(t *testing.T) {
	p := Default()
	assert.NoError(t, p.CanCreateEvent(uuid.New()))
	assert.ErrorIs(t, p.CanCreateEvent(uuid.Nil), ErrUnauthenticated)
}

func TestCanModifyEvent_Default(t *testing.T) {
	f := newFixture()
	p := Default()

	assert.NoError(t, p.CanModifyEvent(f.creator, f.event, f.parts))
	// Any status counts, including DECLINED.
	assert.NoError(t, p.CanModifyEvent(f.invitee, f.event, f.parts))
	assert.ErrorIs(t, p.CanModifyEvent(f.outsider, f.event, f.parts), ErrForbidden)
	assert.ErrorIs(t, p.CanModifyEvent(uuid.Nil, f.event, f.parts), ErrUnauthenticated)
}

func TestCanModifyEvent_Strict(t *testing.T) {
	f := newFixture()
	p, _ := Named(VariantStrict)

	assert.NoError(t, p.CanModifyEvent(f.creator, f.event, f.parts))
	assert.ErrorIs(t, p.CanModifyEvent(f.invitee, f.event, f.parts), ErrForbidden)
}

func TestCanModifyEvent_IgnoresParticipationOnOtherEvent(t *testing.T) {
	f := newFixture()
	other := []models.Participation{{ID: uuid.New(), EventID: uuid.New(), UserID: f.outsider}}

	assert.ErrorIs(t, Default().CanModifyEvent(f.outsider, f.event, other), ErrForbidden)
}

func TestCanDeleteEvent(t *testing.T) {
	f := newFixture()
	p, _ := Named(VariantLegacy)

	assert.NoError(t, p.CanDeleteEvent(f.creator, f.event))
	assert.ErrorIs(t, p.CanDeleteEvent(f.invitee, f.event), ErrForbidden)
	assert.ErrorIs(t, p.CanDeleteEvent(f.outsider, f.event), ErrForbidden)
}

func TestCanInvite(t *testing.T) {
	f := newFixture()

	strict := Default()
	assert.NoError(t, strict.CanInvite(f.creator, f.event))
	assert.ErrorIs(t, strict.CanInvite(f.invitee, f.event), ErrForbidden)

	legacy, _ := Named(VariantLegacy)
	assert.NoError(t, legacy.CanInvite(f.outsider, f.event))
	assert.ErrorIs(t, legacy.CanInvite(uuid.Nil, f.event), ErrUnauthenticated)
}

func TestCanRemoveParticipant(t *testing.T) {
	f := newFixture()
	p := Default()
	part := &f.parts[0]

	assert.NoError(t, p.CanRemoveParticipant(f.creator, f.event, part))
	assert.NoError(t, p.CanRemoveParticipant(f.invitee, f.event, part))
	assert.ErrorIs(t, p.CanRemoveParticipant(f.outsider, f.event, part), ErrForbidden)
}

func TestCanRespond(t *testing.T) {
	f := newFixture()
	p := Default()
	part := &f.parts[0]

	assert.NoError(t, p.CanRespond(f.invitee, part))
	assert.ErrorIs(t, p.CanRespond(f.creator, part), ErrForbidden)
}
