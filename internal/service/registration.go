package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	msgAskFullName   = "Добро пожаловать! Для регистрации введите ваше ФИО:"
	msgAskGroup      = "Введите номер группы (например, 123123):"
	msgAskCourse     = "Введите курс (от 1 до 6):"
	msgInvalidCourse = "Неверный ввод курса. Введите число от 1 до 6."
	msgRegistered    = "Регистрация завершена!"
	msgWelcomeBack   = "С возвращением!"
	msgUseMenu       = "Пожалуйста, используйте главное меню или админские команды."
)

const (
	eventBegin    = "begin"
	eventFullName = "submit_full_name"
	eventGroup    = "submit_group"
	eventCourse   = "submit_course"
)

var registrationEvents = fsm.Events{
	{Name: eventBegin, Src: []string{string(domain.StateNotStarted)}, Dst: string(domain.StateAwaitingFullName)},
	{Name: eventFullName, Src: []string{string(domain.StateAwaitingFullName)}, Dst: string(domain.StateAwaitingGroup)},
	{Name: eventGroup, Src: []string{string(domain.StateAwaitingGroup)}, Dst: string(domain.StateAwaitingCourse)},
	{Name: eventCourse, Src: []string{string(domain.StateAwaitingCourse)}, Dst: string(domain.StateCompleted)},
}

// Reply is a text answer to the user, optionally followed by the main menu
type Reply struct {
	Text     string
	ShowMenu bool
}

// RegistrationService drives the three-step registration dialog
type RegistrationService struct {
	profiles      repository.ProfileRepository
	registrations repository.RegistrationRepository
	logger        *zap.Logger
	now           func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	profiles repository.ProfileRepository,
	registrations repository.RegistrationRepository,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		profiles:      profiles,
		registrations: registrations,
		logger:        logger,
		now:           time.Now,
	}
}

func transition(ctx context.Context, from domain.RegistrationState, event string) (domain.RegistrationState, error) {
	machine := fsm.NewFSM(string(from), registrationEvents, fsm.Callbacks{})
	if err := machine.Event(ctx, event); err != nil {
		return from, fmt.Errorf("registration event %s in state %s: %w", event, from, err)
	}
	return domain.RegistrationState(machine.Current()), nil
}

// Start greets a registered user or (re)starts registration for a new one
func (s *RegistrationService) Start(ctx context.Context, userID int64) (Reply, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return Reply{}, err
	}

	switch state {
	case domain.StateCompleted:
		return Reply{Text: msgWelcomeBack, ShowMenu: true}, nil
	case domain.StateNotStarted:
	default:
		s.logger.Info("Restarting registration",
			zap.Int64("user_id", userID),
			zap.String("state", string(state)),
		)
	}

	reg := domain.Registration{UserID: userID, State: domain.StateNotStarted}
	return s.advance(ctx, reg, eventBegin, Reply{Text: msgAskFullName})
}

// HandleText consumes one answer of the registration dialog
func (s *RegistrationService) HandleText(ctx context.Context, userID int64, text string) (Reply, error) {
	text = strings.TrimSpace(text)

	reg, err := s.registrations.GetRegistration(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Reply{Text: msgUseMenu}, nil
	}
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load registration: %w", err)
	}

	switch reg.State {
	case domain.StateAwaitingFullName:
		reg.FullName = text
		return s.advance(ctx, *reg, eventFullName, Reply{Text: msgAskGroup})

	case domain.StateAwaitingGroup:
		reg.Group = text
		return s.advance(ctx, *reg, eventGroup, Reply{Text: msgAskCourse})

	case domain.StateAwaitingCourse:
		course, err := domain.ParseCourse(text)
		if err != nil {
			return Reply{Text: msgInvalidCourse}, nil
		}
		return s.complete(ctx, *reg, course)

	default:
		s.logger.Warn("Dropping registration in unexpected state",
			zap.Int64("user_id", userID),
			zap.String("state", string(reg.State)),
		)
		if err := s.registrations.DeleteRegistration(ctx, userID); err != nil {
			return Reply{}, fmt.Errorf("failed to delete registration: %w", err)
		}
		return Reply{Text: msgUseMenu}, nil
	}
}

// State reports where the user is in the registration dialog.
// A stored profile wins over a leftover registration record.
func (s *RegistrationService) State(ctx context.Context, userID int64) (domain.RegistrationState, error) {
	_, err := s.profiles.GetProfile(ctx, userID)
	if err == nil {
		return domain.StateCompleted, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	reg, err := s.registrations.GetRegistration(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.StateNotStarted, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load registration: %w", err)
	}
	return reg.State, nil
}

func (s *RegistrationService) advance(ctx context.Context, reg domain.Registration, event string, reply Reply) (Reply, error) {
	next, err := transition(ctx, reg.State, event)
	if err != nil {
		return Reply{}, err
	}

	reg.State = next
	reg.UpdatedAt = s.now()
	if err := s.registrations.SaveRegistration(ctx, reg); err != nil {
		return Reply{}, fmt.Errorf("failed to save registration: %w", err)
	}
	return reply, nil
}

func (s *RegistrationService) complete(ctx context.Context, reg domain.Registration, course int) (Reply, error) {
	if _, err := transition(ctx, reg.State, eventCourse); err != nil {
		return Reply{}, err
	}

	profile := reg.Profile(course, s.now())
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return Reply{}, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := s.registrations.DeleteRegistration(ctx, reg.UserID); err != nil {
		s.logger.Warn("Failed to delete completed registration",
			zap.Int64("user_id", reg.UserID),
			zap.Error(err),
		)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", profile.UserID),
		zap.String("group", profile.Group),
		zap.Int("course", profile.Course),
	)
	return Reply{Text: msgRegistered, ShowMenu: true}, nil
}
