package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"
	"campusbot/internal/repository/memory"
	"campusbot/internal/testutil"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)

func newRegistrationService() (*RegistrationService, *memory.ProfileRepo, *memory.RegistrationRepo) {
	profiles := memory.NewProfileRepo()
	registrations := memory.NewRegistrationRepo()
	s := NewRegistrationService(profiles, registrations, testutil.NewTestLogger())
	s.now = func() time.Time { return fixedNow }
	return s, profiles, registrations
}

func TestRegistrationService_FullFlow(t *testing.T) {
	ctx := context.Background()
	s, profiles, registrations := newRegistrationService()
	userID := int64(100)

	reply, err := s.Start(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgAskFullName}, reply)
	assertState(t, s, userID, domain.StateAwaitingFullName)

	reply, err = s.HandleText(ctx, userID, "  Ivan Petrov ")
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgAskGroup}, reply)
	assertState(t, s, userID, domain.StateAwaitingGroup)

	reply, err = s.HandleText(ctx, userID, "101")
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgAskCourse}, reply)
	assertState(t, s, userID, domain.StateAwaitingCourse)

	_, err = profiles.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "profile must not exist before course is accepted")

	reply, err = s.HandleText(ctx, userID, "4")
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgRegistered, ShowMenu: true}, reply)
	assertState(t, s, userID, domain.StateCompleted)

	profile, err := profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{
		UserID:    userID,
		FullName:  "Ivan Petrov",
		Group:     "101",
		Course:    4,
		CreatedAt: fixedNow,
	}, *profile)

	_, err = registrations.GetRegistration(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "buffer must be discarded after completion")
}

func TestRegistrationService_InvalidCourse(t *testing.T) {
	inputs := []string{"0", "7", "abc", "3.5", "-2", "", "четыре"}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			ctx := context.Background()
			s, profiles, _ := newRegistrationService()
			userID := int64(200)

			_, err := s.Start(ctx, userID)
			require.NoError(t, err)
			_, err = s.HandleText(ctx, userID, "Anna")
			require.NoError(t, err)
			_, err = s.HandleText(ctx, userID, "202")
			require.NoError(t, err)

			reply, err := s.HandleText(ctx, userID, input)
			require.NoError(t, err)
			assert.Equal(t, Reply{Text: msgInvalidCourse}, reply)
			assertState(t, s, userID, domain.StateAwaitingCourse)

			_, err = profiles.GetProfile(ctx, userID)
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestRegistrationService_CourseProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("no profile is created for invalid course input", prop.ForAll(
		func(input string) bool {
			ctx := context.Background()
			s, profiles, _ := newRegistrationService()

			if _, err := s.Start(ctx, 1); err != nil {
				return false
			}
			if _, err := s.HandleText(ctx, 1, "Name"); err != nil {
				return false
			}
			if _, err := s.HandleText(ctx, 1, "Group"); err != nil {
				return false
			}
			if _, err := s.HandleText(ctx, 1, input); err != nil {
				return false
			}

			state, err := s.State(ctx, 1)
			_, profileErr := profiles.GetProfile(ctx, 1)
			return err == nil && state == domain.StateAwaitingCourse && profileErr != nil
		},
		gen.OneGenOf(
			gen.AlphaString(),
			gen.IntRange(7, 10000).Map(func(n int) string { return fmt.Sprint(n) }),
			gen.IntRange(-10000, 0).Map(func(n int) string { return fmt.Sprint(n) }),
		),
	))

	properties.TestingRun(t)
}

func TestRegistrationService_StartRegistered(t *testing.T) {
	ctx := context.Background()
	s, profiles, registrations := newRegistrationService()

	require.NoError(t, profiles.SaveProfile(ctx, *testutil.NewTestProfile(300, "Ivan Petrov", "101", 4)))

	reply, err := s.Start(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgWelcomeBack, ShowMenu: true}, reply)

	_, err = registrations.GetRegistration(ctx, 300)
	assert.ErrorIs(t, err, repository.ErrNotFound, "registration must be bypassed")
	assertState(t, s, 300, domain.StateCompleted)
}

func TestRegistrationService_RestartDiscardsBuffer(t *testing.T) {
	ctx := context.Background()
	s, _, registrations := newRegistrationService()

	_, err := s.Start(ctx, 400)
	require.NoError(t, err)
	_, err = s.HandleText(ctx, 400, "Old Name")
	require.NoError(t, err)

	_, err = s.Start(ctx, 400)
	require.NoError(t, err)

	reg, err := registrations.GetRegistration(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingFullName, reg.State)
	assert.Empty(t, reg.FullName)
}

func TestRegistrationService_RestartIsLogged(t *testing.T) {
	ctx := context.Background()
	logger, logs := testutil.NewObservedLogger()
	s := NewRegistrationService(memory.NewProfileRepo(), memory.NewRegistrationRepo(), logger)

	_, err := s.Start(ctx, 410)
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("Restarting registration").Len())

	_, err = s.HandleText(ctx, 410, "Old Name")
	require.NoError(t, err)
	_, err = s.Start(ctx, 410)
	require.NoError(t, err)

	entries := logs.FilterMessage("Restarting registration").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(domain.StateAwaitingGroup), entries[0].ContextMap()["state"])
}

func TestRegistrationService_StartPrefersProfile(t *testing.T) {
	ctx := context.Background()
	s, profiles, registrations := newRegistrationService()

	require.NoError(t, profiles.SaveProfile(ctx, *testutil.NewTestProfile(420, "Ivan Petrov", "101", 2)))
	require.NoError(t, registrations.SaveRegistration(ctx, domain.Registration{
		UserID: 420, State: domain.StateAwaitingCourse, UpdatedAt: fixedNow,
	}))

	reply, err := s.Start(ctx, 420)
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgWelcomeBack, ShowMenu: true}, reply)
	assertState(t, s, 420, domain.StateCompleted)
}

func TestRegistrationService_IdleText(t *testing.T) {
	s, _, _ := newRegistrationService()

	reply, err := s.HandleText(context.Background(), 500, "hello")

	require.NoError(t, err)
	assert.Equal(t, Reply{Text: msgUseMenu}, reply)
	assertState(t, s, 500, domain.StateNotStarted)
}

func TestRegistrationService_RepositoryErrors(t *testing.T) {
	dbErr := fmt.Errorf("db error")

	t.Run("start profile lookup fails", func(t *testing.T) {
		profiles := new(testutil.MockProfileRepository)
		registrations := new(testutil.MockRegistrationRepository)
		profiles.On("GetProfile", mock.Anything, int64(1)).Return(nil, dbErr)

		s := NewRegistrationService(profiles, registrations, testutil.NewTestLogger())
		_, err := s.Start(context.Background(), 1)

		assert.ErrorIs(t, err, dbErr)
		registrations.AssertNotCalled(t, "SaveRegistration", mock.Anything, mock.Anything)
		profiles.AssertExpectations(t)
	})

	t.Run("save profile fails keeps registration", func(t *testing.T) {
		profiles := new(testutil.MockProfileRepository)
		registrations := new(testutil.MockRegistrationRepository)
		registrations.On("GetRegistration", mock.Anything, int64(2)).Return(&domain.Registration{
			UserID: 2, State: domain.StateAwaitingCourse, FullName: "A", Group: "B",
		}, nil)
		profiles.On("SaveProfile", mock.Anything, mock.AnythingOfType("domain.UserProfile")).Return(dbErr)

		s := NewRegistrationService(profiles, registrations, testutil.NewTestLogger())
		_, err := s.HandleText(context.Background(), 2, "3")

		assert.ErrorIs(t, err, dbErr)
		registrations.AssertNotCalled(t, "DeleteRegistration", mock.Anything, mock.Anything)
		profiles.AssertExpectations(t)
		registrations.AssertExpectations(t)
	})

	t.Run("unexpected stored state is dropped", func(t *testing.T) {
		profiles := new(testutil.MockProfileRepository)
		registrations := new(testutil.MockRegistrationRepository)
		registrations.On("GetRegistration", mock.Anything, int64(3)).Return(&domain.Registration{
			UserID: 3, State: domain.StateCompleted,
		}, nil)
		registrations.On("DeleteRegistration", mock.Anything, int64(3)).Return(nil)

		s := NewRegistrationService(profiles, registrations, testutil.NewTestLogger())
		reply, err := s.HandleText(context.Background(), 3, "text")

		assert.NoError(t, err)
		assert.Equal(t, Reply{Text: msgUseMenu}, reply)
		registrations.AssertExpectations(t)
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	next, err := transition(ctx, domain.StateNotStarted, eventBegin)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingFullName, next)

	next, err = transition(ctx, domain.StateAwaitingFullName, eventCourse)
	assert.Error(t, err)
	assert.Equal(t, domain.StateAwaitingFullName, next)

	_, err = transition(ctx, domain.StateCompleted, eventFullName)
	assert.Error(t, err)
}

func assertState(t *testing.T, s *RegistrationService, userID int64, expected domain.RegistrationState) {
	t.Helper()
	state, err := s.State(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, expected, state)
}
