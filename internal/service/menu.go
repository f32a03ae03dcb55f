package service

import (
	"context"
	"errors"
	"fmt"

	"campusbot/internal/content"
	"campusbot/internal/domain"
	"campusbot/internal/repository"
)

const (
	msgMainMenu        = "Главное меню:"
	msgUnknownCommand  = "Неизвестная команда."
	msgProfileNotFound = "Профиль не найден. Пожалуйста, зарегистрируйтесь."
	btnTextGo          = "Перейти"
	btnTextBack        = "Назад"
)

var mainMenuLayout = [][]domain.Topic{
	{domain.TopicProfile, domain.TopicSchedule},
	{domain.TopicMail, domain.TopicCampuses},
	{domain.TopicMedical, domain.TopicSupport},
	{domain.TopicSakay},
	{domain.TopicInterdept},
}

// MenuService builds the screens of the main menu and its pages
type MenuService struct {
	registry *content.Registry
	profiles repository.ProfileRepository
}

// NewMenuService creates a new menu service
func NewMenuService(registry *content.Registry, profiles repository.ProfileRepository) *MenuService {
	return &MenuService{registry: registry, profiles: profiles}
}

// MainMenu returns the root screen
func (s *MenuService) MainMenu() domain.Screen {
	kb := make(domain.Keyboard, 0, len(mainMenuLayout))
	for _, row := range mainMenuLayout {
		buttons := make([]domain.Button, 0, len(row))
		for _, topic := range row {
			buttons = append(buttons, domain.Button{Text: s.registry.Title(topic), Data: topic.String()})
		}
		kb = append(kb, buttons)
	}
	return domain.Screen{Text: msgMainMenu, Keyboard: kb}
}

// Select returns the screen shown after a menu button is pressed
func (s *MenuService) Select(ctx context.Context, topic domain.Topic, userID int64) (domain.Screen, error) {
	switch topic.Kind() {
	case domain.KindNavigation:
		return s.MainMenu(), nil

	case domain.KindLink:
		t, err := s.registry.Get(topic)
		if err != nil {
			return domain.Screen{}, err
		}
		return domain.Screen{
			Text:      fmt.Sprintf("%s: Чтобы перейти на сайт %s, нажмите кнопку '%s'.", t.Title, t.Title, btnTextGo),
			ImagePath: s.registry.ImagePath(topic),
			Keyboard: domain.Keyboard{
				{{Text: btnTextGo, URL: t.URL}},
				{backButton()},
			},
		}, nil

	case domain.KindProfile:
		caption, err := s.profileCaption(ctx, userID)
		if err != nil {
			return domain.Screen{}, err
		}
		return s.page(topic, caption), nil

	case domain.KindInfo:
		t, err := s.registry.Get(topic)
		if err != nil {
			return domain.Screen{}, err
		}
		return s.page(topic, t.Caption), nil

	default:
		return domain.Screen{Text: msgUnknownCommand}, nil
	}
}

func (s *MenuService) profileCaption(ctx context.Context, userID int64) (string, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return msgProfileNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}
	return fmt.Sprintf("Ваш профиль:\nФИО: %s\nГруппа: %s\nКурс: %d", p.FullName, p.Group, p.Course), nil
}

func (s *MenuService) page(topic domain.Topic, caption string) domain.Screen {
	return domain.Screen{
		Text:      caption,
		ImagePath: s.registry.ImagePath(topic),
		Keyboard:  domain.Keyboard{{backButton()}},
	}
}

func backButton() domain.Button {
	return domain.Button{Text: btnTextBack, Data: domain.TopicBack.String()}
}
